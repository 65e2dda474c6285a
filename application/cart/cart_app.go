package cart

import (
	"context"

	"github.com/greengarden/greenery/application/catalog"
	"github.com/greengarden/greenery/constant"
	"github.com/greengarden/greenery/model"
	"github.com/greengarden/greenery/utils/errors"
)

// CartApp exposes the session cart operations to transport. Only approved
// listings can enter a cart; the unit price is snapshotted from the catalog
// at add time.
type CartApp interface {
	Add(ctx context.Context, sessionKey string, req *model.CartItemRequest) (*model.CartResponse, error)
	Decrement(ctx context.Context, sessionKey string, req *model.CartItemRequest) (*model.CartResponse, error)
	Remove(ctx context.Context, sessionKey string, req *model.CartItemRequest) (*model.CartResponse, error)
	View(ctx context.Context, sessionKey string) (*model.CartResponse, error)
}

type cartAppImpl struct {
	manager  *Manager
	catalogs map[constant.Category]catalog.CatalogApp
}

func NewCartApp(manager *Manager, catalogs map[constant.Category]catalog.CatalogApp) CartApp {
	return &cartAppImpl{manager: manager, catalogs: catalogs}
}

func (s *cartAppImpl) key(req *model.CartItemRequest) (model.CartItemKey, catalog.CatalogApp, error) {
	category := constant.Category(req.Category)
	app, ok := s.catalogs[category]
	if !ok {
		return model.CartItemKey{}, nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}
	return model.CartItemKey{Category: category, ID: req.ListingID}, app, nil
}

func (s *cartAppImpl) Add(ctx context.Context, sessionKey string, req *model.CartItemRequest) (*model.CartResponse, error) {
	key, app, err := s.key(req)
	if err != nil {
		return nil, err
	}

	listing, err := app.Get(ctx, req.ListingID)
	if err != nil {
		return nil, err
	}
	if listing.State != model.StateApproved {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	agg := s.manager.Get(sessionKey)
	agg.Add(key, listing.Name, listing.Price)
	view := agg.View()
	return &view, nil
}

func (s *cartAppImpl) Decrement(ctx context.Context, sessionKey string, req *model.CartItemRequest) (*model.CartResponse, error) {
	key, _, err := s.key(req)
	if err != nil {
		return nil, err
	}

	agg := s.manager.Get(sessionKey)
	agg.Decrement(key)
	view := agg.View()
	return &view, nil
}

func (s *cartAppImpl) Remove(ctx context.Context, sessionKey string, req *model.CartItemRequest) (*model.CartResponse, error) {
	key, _, err := s.key(req)
	if err != nil {
		return nil, err
	}

	agg := s.manager.Get(sessionKey)
	agg.Remove(key)
	view := agg.View()
	return &view, nil
}

func (s *cartAppImpl) View(ctx context.Context, sessionKey string) (*model.CartResponse, error) {
	view := s.manager.Get(sessionKey).View()
	return &view, nil
}
