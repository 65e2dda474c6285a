package cart_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	appcart "github.com/greengarden/greenery/application/cart"
	appcatalog "github.com/greengarden/greenery/application/catalog"
	"github.com/greengarden/greenery/constant"
	listingmocks "github.com/greengarden/greenery/mocks/repository/listing"
	"github.com/greengarden/greenery/model"
	cerr "github.com/greengarden/greenery/utils/errors"
	"github.com/stretchr/testify/mock"
)

func seedKey(id uint64) model.CartItemKey {
	return model.CartItemKey{Category: constant.CategorySeeds, ID: id}
}

func TestAggregator_TotalDerivedFromLines(t *testing.T) {
	agg := appcart.NewAggregator()
	agg.Add(seedKey(1), "Tomato Seeds", 10)
	agg.Add(seedKey(1), "Tomato Seeds", 10)
	agg.Add(seedKey(2), "Basil Seeds", 5.5)

	if got := agg.Total(); got != 25.5 {
		t.Fatalf("Total() = %v, want 25.5", got)
	}

	view := agg.View()
	var sum float64
	for _, l := range view.Items {
		sum += float64(l.Quantity) * l.UnitPrice
	}
	if view.Total != sum {
		t.Fatalf("View().Total = %v, lines sum to %v", view.Total, sum)
	}
}

func TestAggregator_AddTwiceDecrementOnce(t *testing.T) {
	agg := appcart.NewAggregator()
	agg.Add(seedKey(1), "Tomato Seeds", 20)
	agg.Add(seedKey(1), "Tomato Seeds", 20)
	agg.Decrement(seedKey(1))

	view := agg.View()
	if len(view.Items) != 1 || view.Items[0].Quantity != 1 {
		t.Fatalf("View() items = %+v, want one line with quantity 1", view.Items)
	}
	if view.Total != 20 {
		t.Fatalf("View().Total = %v, want 20", view.Total)
	}
}

func TestAggregator_DecrementRemovesAtZero(t *testing.T) {
	agg := appcart.NewAggregator()
	agg.Add(seedKey(1), "Tomato Seeds", 20)
	agg.Decrement(seedKey(1))

	if view := agg.View(); len(view.Items) != 0 || view.Total != 0 {
		t.Fatalf("View() after final decrement = %+v, want empty cart", view)
	}

	// decrementing an absent item stays a no-op
	agg.Decrement(seedKey(1))
	if view := agg.View(); len(view.Items) != 0 {
		t.Fatalf("View() after absent decrement = %+v, want empty cart", view)
	}
}

func TestAggregator_RemoveIgnoresQuantity(t *testing.T) {
	agg := appcart.NewAggregator()
	agg.Add(seedKey(1), "Tomato Seeds", 20)
	agg.Add(seedKey(1), "Tomato Seeds", 20)
	agg.Add(seedKey(1), "Tomato Seeds", 20)
	agg.Remove(seedKey(1))

	if view := agg.View(); len(view.Items) != 0 || view.Total != 0 {
		t.Fatalf("View() after Remove = %+v, want empty cart", view)
	}

	agg.Remove(seedKey(1))
	if view := agg.View(); len(view.Items) != 0 {
		t.Fatalf("View() after absent Remove = %+v, want empty cart", view)
	}
}

func TestAggregator_PriceSnapshotOnFirstAdd(t *testing.T) {
	agg := appcart.NewAggregator()
	agg.Add(seedKey(1), "Tomato Seeds", 20)
	agg.Add(seedKey(1), "Tomato Seeds", 35)

	view := agg.View()
	if view.Items[0].UnitPrice != 20 {
		t.Fatalf("UnitPrice = %v, want snapshot price 20", view.Items[0].UnitPrice)
	}
	if view.Total != 40 {
		t.Fatalf("View().Total = %v, want 40", view.Total)
	}
}

func TestAggregator_ViewStableOrder(t *testing.T) {
	agg := appcart.NewAggregator()
	agg.Add(model.CartItemKey{Category: constant.CategoryVegetables, ID: 1}, "Carrot", 3)
	agg.Add(model.CartItemKey{Category: constant.CategorySeeds, ID: 2}, "Basil Seeds", 5)
	agg.Add(model.CartItemKey{Category: constant.CategorySeeds, ID: 1}, "Tomato Seeds", 10)

	view := agg.View()
	want := []model.CartLine{
		{Category: constant.CategorySeeds, ItemID: 1, Name: "Tomato Seeds", UnitPrice: 10, Quantity: 1},
		{Category: constant.CategorySeeds, ItemID: 2, Name: "Basil Seeds", UnitPrice: 5, Quantity: 1},
		{Category: constant.CategoryVegetables, ItemID: 1, Name: "Carrot", UnitPrice: 3, Quantity: 1},
	}
	if !reflect.DeepEqual(view.Items, want) {
		t.Fatalf("View().Items = %+v, want %+v", view.Items, want)
	}
}

func TestManager_SessionsIsolated(t *testing.T) {
	mgr := appcart.NewManager()
	mgr.Get("session:a").Add(seedKey(1), "Tomato Seeds", 10)

	if view := mgr.Get("session:b").View(); len(view.Items) != 0 {
		t.Fatalf("session b cart = %+v, want empty", view.Items)
	}
	if view := mgr.Get("session:a").View(); len(view.Items) != 1 {
		t.Fatalf("session a cart = %+v, want one line", view.Items)
	}

	mgr.Drop("session:a")
	if view := mgr.Get("session:a").View(); len(view.Items) != 0 {
		t.Fatalf("session a cart after Drop = %+v, want empty", view.Items)
	}
}

func TestCartApp_Add(t *testing.T) {
	type fields struct {
		listingRepo *listingmocks.ListingRepository
	}
	type args struct {
		ctx        context.Context
		sessionKey string
		req        *model.CartItemRequest
	}
	tests := []struct {
		name      string
		fields    fields
		args      args
		mockCall  func(f fields)
		want      *model.CartResponse
		wantErr   bool
		errorType constant.ErrorType
	}{
		{
			name: "success: approved listing enters the cart with snapshot price",
			fields: fields{
				listingRepo: listingmocks.NewListingRepository(t),
			},
			args: args{
				ctx:        context.Background(),
				sessionKey: "session:a",
				req:        &model.CartItemRequest{Category: "seeds", ListingID: 1},
			},
			mockCall: func(f fields) {
				f.listingRepo.
					On("GetByID", mock.Anything, constant.CategorySeeds, uint64(1)).
					Return(&model.ListingEntity{
						ID:       1,
						Name:     "Tomato Seeds",
						Price:    10,
						OwnerID:  7,
						State:    model.StateApproved,
						Category: constant.CategorySeeds,
					}, nil).
					Once()
			},
			want: &model.CartResponse{
				Items: []model.CartLine{
					{Category: constant.CategorySeeds, ItemID: 1, Name: "Tomato Seeds", UnitPrice: 10, Quantity: 1},
				},
				Total: 10,
			},
			wantErr: false,
		},
		{
			name: "error: pending listing is rejected",
			fields: fields{
				listingRepo: listingmocks.NewListingRepository(t),
			},
			args: args{
				ctx:        context.Background(),
				sessionKey: "session:a",
				req:        &model.CartItemRequest{Category: "seeds", ListingID: 2},
			},
			mockCall: func(f fields) {
				f.listingRepo.
					On("GetByID", mock.Anything, constant.CategorySeeds, uint64(2)).
					Return(&model.ListingEntity{
						ID:       2,
						Name:     "Basil Seeds",
						Price:    5,
						OwnerID:  7,
						State:    model.StatePending,
						Category: constant.CategorySeeds,
					}, nil).
					Once()
			},
			want:      nil,
			wantErr:   true,
			errorType: constant.ErrInvalidRequest,
		},
		{
			name: "error: unknown category",
			fields: fields{
				listingRepo: listingmocks.NewListingRepository(t),
			},
			args: args{
				ctx:        context.Background(),
				sessionKey: "session:a",
				req:        &model.CartItemRequest{Category: "furniture", ListingID: 1},
			},
			want:      nil,
			wantErr:   true,
			errorType: constant.ErrInvalidRequest,
		},
		{
			name: "error: listing does not exist",
			fields: fields{
				listingRepo: listingmocks.NewListingRepository(t),
			},
			args: args{
				ctx:        context.Background(),
				sessionKey: "session:a",
				req:        &model.CartItemRequest{Category: "seeds", ListingID: 99},
			},
			mockCall: func(f fields) {
				f.listingRepo.
					On("GetByID", mock.Anything, constant.CategorySeeds, uint64(99)).
					Return(nil, nil).
					Once()
			},
			want:      nil,
			wantErr:   true,
			errorType: constant.ErrNotFound,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				ttFields := tt.fields
				tt.mockCall(ttFields)
			}
			catalogs := map[constant.Category]appcatalog.CatalogApp{
				constant.CategorySeeds: appcatalog.NewCatalogApp(constant.CategorySeeds, tt.fields.listingRepo, nil, nil),
			}
			app := appcart.NewCartApp(appcart.NewManager(), catalogs)

			got, err := app.Add(tt.args.ctx, tt.args.sessionKey, tt.args.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Add() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errorType] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errorType])
				}
				return
			}

			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Add() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCartApp_DecrementAndRemove(t *testing.T) {
	listingRepo := listingmocks.NewListingRepository(t)
	listingRepo.
		On("GetByID", mock.Anything, constant.CategorySeeds, uint64(1)).
		Return(&model.ListingEntity{
			ID:       1,
			Name:     "Tomato Seeds",
			Price:    10,
			State:    model.StateApproved,
			Category: constant.CategorySeeds,
		}, nil).
		Twice()

	catalogs := map[constant.Category]appcatalog.CatalogApp{
		constant.CategorySeeds: appcatalog.NewCatalogApp(constant.CategorySeeds, listingRepo, nil, nil),
	}
	app := appcart.NewCartApp(appcart.NewManager(), catalogs)

	ctx := context.Background()
	req := &model.CartItemRequest{Category: "seeds", ListingID: 1}
	if _, err := app.Add(ctx, "session:a", req); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if _, err := app.Add(ctx, "session:a", req); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	got, err := app.Decrement(ctx, "session:a", req)
	if err != nil {
		t.Fatalf("Decrement() error = %v", err)
	}
	if len(got.Items) != 1 || got.Items[0].Quantity != 1 || got.Total != 10 {
		t.Fatalf("Decrement() = %+v, want quantity 1 total 10", got)
	}

	got, err = app.Remove(ctx, "session:a", req)
	if err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if len(got.Items) != 0 || got.Total != 0 {
		t.Fatalf("Remove() = %+v, want empty cart", got)
	}

	view, err := app.View(ctx, "session:a")
	if err != nil {
		t.Fatalf("View() error = %v", err)
	}
	if len(view.Items) != 0 {
		t.Fatalf("View() = %+v, want empty cart", view)
	}
}
