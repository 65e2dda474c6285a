package review

import (
	"context"
	"sort"

	"github.com/greengarden/greenery/application/catalog"
	"github.com/greengarden/greenery/constant"
	"github.com/greengarden/greenery/model"
	"github.com/greengarden/greenery/utils/errors"
)

// ReviewApp aggregates the moderation queue across every category partition.
type ReviewApp interface {
	PendingAcrossCategories(ctx context.Context, viewer model.Viewer) ([]model.ListingEntity, error)
}

type reviewAppImpl struct {
	catalogs []catalog.CatalogApp
}

func NewReviewApp(catalogs []catalog.CatalogApp) ReviewApp {
	return &reviewAppImpl{catalogs: catalogs}
}

// PendingAcrossCategories lists every pending listing across the partitions,
// newest first regardless of category. Admin only.
func (s *reviewAppImpl) PendingAcrossCategories(ctx context.Context, viewer model.Viewer) ([]model.ListingEntity, error) {
	if !viewer.IsAdmin() {
		return nil, errors.SetCustomError(constant.ErrOwnership)
	}

	pending := make([]model.ListingEntity, 0)
	for _, app := range s.catalogs {
		items, err := app.List(ctx, viewer)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			if item.State == model.StatePending {
				pending = append(pending, item)
			}
		}
	}

	sort.SliceStable(pending, func(i, j int) bool {
		if !pending[i].CreatedAt.Equal(pending[j].CreatedAt) {
			return pending[i].CreatedAt.After(pending[j].CreatedAt)
		}
		return pending[i].ID > pending[j].ID
	})

	return pending, nil
}
