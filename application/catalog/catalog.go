package catalog

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/greengarden/greenery/constant"
	"github.com/greengarden/greenery/model"
	listingrepo "github.com/greengarden/greenery/repository/listing"
	"github.com/greengarden/greenery/thirdparty/objectstore"
	"github.com/greengarden/greenery/utils/errors"
	"github.com/greengarden/greenery/utils/logger"
	"go.uber.org/zap"
)

// EventPublisher fans moderation outcomes out to back-office consumers.
type EventPublisher interface {
	PublishModerationEvent(event model.ModerationEvent) error
}

// CatalogApp is the catalog store for a single category partition.
//
// Submit and List are open to any resolved viewer subject to the visibility
// policy; Approve, Reject and EditFields require an admin. Every single-row
// write goes through the repository's affected-row check, so a write the
// store accepted but silently discarded surfaces as ErrNoEffect instead of
// a false success.
type CatalogApp interface {
	Category() constant.Category
	Submit(ctx context.Context, req *model.SubmitListingRequest, ownerID uint64) (*model.ListingEntity, error)
	List(ctx context.Context, viewer model.Viewer) ([]model.ListingEntity, error)
	Get(ctx context.Context, id uint64) (*model.ListingEntity, error)
	Remove(ctx context.Context, id uint64, viewer model.Viewer) error
	Approve(ctx context.Context, id uint64, viewer model.Viewer) error
	Reject(ctx context.Context, id uint64, viewer model.Viewer) error
	EditFields(ctx context.Context, id uint64, req *model.EditListingRequest, viewer model.Viewer) error
}

type catalogAppImpl struct {
	category    constant.Category
	listingRepo listingrepo.ListingRepository
	events      EventPublisher
	images      objectstore.Store
}

func NewCatalogApp(category constant.Category, listingRepo listingrepo.ListingRepository, events EventPublisher, images objectstore.Store) CatalogApp {
	return &catalogAppImpl{
		category:    category,
		listingRepo: listingRepo,
		events:      events,
		images:      images,
	}
}

func (s *catalogAppImpl) Category() constant.Category {
	return s.category
}

func (s *catalogAppImpl) Submit(ctx context.Context, req *model.SubmitListingRequest, ownerID uint64) (*model.ListingEntity, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || req.Price <= 0 || req.ImageURL == "" {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}
	if ownerID == 0 {
		return nil, errors.SetCustomError(constant.ErrOwnership)
	}

	entity := &model.ListingEntity{
		Name:     name,
		Price:    req.Price,
		ImageURL: req.ImageURL,
		OwnerID:  ownerID,
	}

	entity, err := s.listingRepo.Insert(ctx, s.category, entity)
	if err != nil {
		logger.Error("[Submit] error listingRepo.Insert", zap.String("category", s.category.String()), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return entity, nil
}

func (s *catalogAppImpl) List(ctx context.Context, viewer model.Viewer) ([]model.ListingEntity, error) {
	items, err := s.listingRepo.ListByCategory(ctx, s.category)
	if err != nil {
		logger.Error("[List] error listingRepo.ListByCategory", zap.String("category", s.category.String()), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	visible := make([]model.ListingEntity, 0, len(items))
	for _, item := range items {
		if item.VisibleTo(viewer) {
			visible = append(visible, item)
		}
	}
	return visible, nil
}

func (s *catalogAppImpl) Get(ctx context.Context, id uint64) (*model.ListingEntity, error) {
	entity, err := s.listingRepo.GetByID(ctx, s.category, id)
	if err != nil {
		logger.Error("[Get] error listingRepo.GetByID", zap.String("category", s.category.String()), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if entity == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	return entity, nil
}

// Remove deletes a listing. Admins may delete any row; an authenticated
// viewer's delete is scoped to rows they own, so a non-owner attempt reaches
// the store, matches nothing and comes back as ErrNoEffect with the listing
// untouched.
func (s *catalogAppImpl) Remove(ctx context.Context, id uint64, viewer model.Viewer) error {
	switch viewer.Kind {
	case model.ViewerAdmin:
		entity, err := s.listingRepo.GetByID(ctx, s.category, id)
		if err != nil {
			logger.Error("[Remove] error listingRepo.GetByID", zap.String("category", s.category.String()), zap.String("error", err.Error()))
			return errors.SetCustomError(constant.ErrInternal)
		}
		if err := s.listingRepo.Delete(ctx, s.category, id); err != nil {
			return s.mapWriteError("Remove", err)
		}
		s.cleanupImage(ctx, entity)
		return nil
	case model.ViewerAuthenticated:
		if err := s.listingRepo.DeleteByOwner(ctx, s.category, id, viewer.UserID); err != nil {
			return s.mapWriteError("Remove", err)
		}
		return nil
	}
	return errors.SetCustomError(constant.ErrOwnership)
}

func (s *catalogAppImpl) Approve(ctx context.Context, id uint64, viewer model.Viewer) error {
	if !viewer.IsAdmin() {
		return errors.SetCustomError(constant.ErrOwnership)
	}

	entity, err := s.listingRepo.GetByID(ctx, s.category, id)
	if err != nil {
		logger.Error("[Approve] error listingRepo.GetByID", zap.String("category", s.category.String()), zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.listingRepo.SetApproved(ctx, s.category, id); err != nil {
		return s.mapWriteError("Approve", err)
	}

	if entity != nil {
		s.publishModeration(entity, model.ModerationActionApproved)
	}
	return nil
}

// Reject removes a pending listing outright; there is no stored rejected
// state. The image blob is cleaned up best-effort.
func (s *catalogAppImpl) Reject(ctx context.Context, id uint64, viewer model.Viewer) error {
	if !viewer.IsAdmin() {
		return errors.SetCustomError(constant.ErrOwnership)
	}

	entity, err := s.listingRepo.GetByID(ctx, s.category, id)
	if err != nil {
		logger.Error("[Reject] error listingRepo.GetByID", zap.String("category", s.category.String()), zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.listingRepo.Delete(ctx, s.category, id); err != nil {
		return s.mapWriteError("Reject", err)
	}

	s.cleanupImage(ctx, entity)
	if entity != nil {
		s.publishModeration(entity, model.ModerationActionRejected)
	}
	return nil
}

func (s *catalogAppImpl) EditFields(ctx context.Context, id uint64, req *model.EditListingRequest, viewer model.Viewer) error {
	if !viewer.IsAdmin() {
		return errors.SetCustomError(constant.ErrOwnership)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" || req.Price <= 0 {
		return errors.SetCustomError(constant.ErrInvalidRequest)
	}

	if err := s.listingRepo.UpdateFields(ctx, s.category, id, name, req.Price); err != nil {
		return s.mapWriteError("EditFields", err)
	}
	return nil
}

func (s *catalogAppImpl) mapWriteError(op string, err error) error {
	if stderrors.Is(err, errors.ErrNoRowsAffected) {
		return errors.SetCustomError(constant.ErrNoEffect)
	}
	logger.Error("["+op+"] error listing write", zap.String("category", s.category.String()), zap.String("error", err.Error()))
	return errors.SetCustomError(constant.ErrInternal)
}

func (s *catalogAppImpl) publishModeration(entity *model.ListingEntity, action string) {
	if s.events == nil {
		return
	}
	event := model.ModerationEvent{
		Category:   s.category,
		ListingID:  entity.ID,
		OwnerID:    entity.OwnerID,
		Action:     action,
		OccurredAt: time.Now(),
	}
	if err := s.events.PublishModerationEvent(event); err != nil {
		logger.Warn("[publishModeration] error publishing event", zap.Uint64("listing_id", entity.ID), zap.String("error", err.Error()))
	}
}

func (s *catalogAppImpl) cleanupImage(ctx context.Context, entity *model.ListingEntity) {
	if s.images == nil || entity == nil || entity.ImageURL == "" {
		return
	}
	if err := s.images.Delete(ctx, entity.ImageURL); err != nil {
		logger.Warn("[cleanupImage] error deleting image", zap.Uint64("listing_id", entity.ID), zap.String("error", err.Error()))
	}
}
