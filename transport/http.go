package transport

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/greengarden/greenery/application/cart"
	"github.com/greengarden/greenery/application/catalog"
	"github.com/greengarden/greenery/application/message"
	"github.com/greengarden/greenery/application/review"
	"github.com/greengarden/greenery/application/user"
	"github.com/greengarden/greenery/constant"
	"github.com/greengarden/greenery/model"
	"github.com/greengarden/greenery/thirdparty/objectstore"
	utilsContext "github.com/greengarden/greenery/utils/context"
	"github.com/greengarden/greenery/utils/errors"
	validatorx "github.com/greengarden/greenery/utils/validator"
	httpSwagger "github.com/swaggo/http-swagger"
)

const maxUploadBytes = 10 << 20

type RestHandler struct {
	UserApp    user.UserApp
	CartApp    cart.CartApp
	ReviewApp  review.ReviewApp
	MessageApp message.MessageApp
	Catalogs   map[constant.Category]catalog.CatalogApp
	Syncs      map[constant.Category]*catalog.Synchronizer
	Images     objectstore.Store
}

func NewTransport(rh *RestHandler) http.Handler {
	mux := mux.NewRouter()

	// Swagger UI
	mux.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// Public routes
	mux.HandleFunc("/register", rh.Register).Methods(http.MethodPost)
	mux.HandleFunc("/login", rh.Login).Methods(http.MethodPost)

	// Catalog routes (GET is public, the rest require authentication)
	mux.HandleFunc("/catalog/{category}", rh.ListListings).Methods(http.MethodGet)
	mux.HandleFunc("/catalog/{category}", rh.SubmitListing).Methods(http.MethodPost)
	mux.HandleFunc("/catalog/{category}/{id}", rh.RemoveListing).Methods(http.MethodDelete)

	// Cart routes
	mux.HandleFunc("/cart", rh.ViewCart).Methods(http.MethodGet)
	mux.HandleFunc("/cart/add", rh.CartAdd).Methods(http.MethodPost)
	mux.HandleFunc("/cart/decrement", rh.CartDecrement).Methods(http.MethodPost)
	mux.HandleFunc("/cart/remove", rh.CartRemove).Methods(http.MethodPost)

	// Admin routes
	mux.HandleFunc("/admin/queue", rh.ReviewQueue).Methods(http.MethodGet)
	mux.HandleFunc("/admin/catalog/{category}/{id}/approve", rh.ApproveListing).Methods(http.MethodPost)
	mux.HandleFunc("/admin/catalog/{category}/{id}/reject", rh.RejectListing).Methods(http.MethodPost)
	mux.HandleFunc("/admin/catalog/{category}/{id}", rh.EditListing).Methods(http.MethodPut)
	mux.HandleFunc("/admin/messages", rh.ListMessages).Methods(http.MethodGet)
	mux.HandleFunc("/admin/messages/{id}", rh.DeleteMessage).Methods(http.MethodDelete)

	// Admin inbox
	mux.HandleFunc("/messages", rh.SendMessage).Methods(http.MethodPost)

	// middleware
	mux.Use(LoggingMiddleware())
	mux.Use(AuthMiddleware(rh.UserApp))

	return mux
}

func (s *RestHandler) catalogFromRequest(r *http.Request) (catalog.CatalogApp, error) {
	category := constant.Category(mux.Vars(r)["category"])
	app, ok := s.Catalogs[category]
	if !ok {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}
	return app, nil
}

func listingIDFromRequest(r *http.Request) (uint64, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil || id == 0 {
		return 0, errors.SetCustomError(constant.ErrInvalidRequest)
	}
	return id, nil
}

// cartSession keys the session cart: the user id when authenticated, a
// client-chosen session id otherwise.
func cartSession(r *http.Request) (string, error) {
	viewer := utilsContext.GetViewer(r.Context())
	if !viewer.IsAnonymous() {
		return fmt.Sprintf("user:%d", viewer.UserID), nil
	}
	if sid := r.Header.Get("X-Cart-Session"); sid != "" {
		return "session:" + sid, nil
	}
	return "", errors.SetCustomError(constant.ErrInvalidRequest)
}

// Register handler
// @Summary Register user
// @Description Register a new marketplace profile
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.RegisterRequest true "Register Request"
// @Success 200 {object} model.RegisterResponse
// @Failure 400 {object} errors.CustomError
// @Router /register [post]
func (s *RestHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.UserApp.Register(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// Login handler
// @Summary Login user
// @Description Login with email or phone and receive JWT token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Login Request"
// @Success 200 {object} model.LoginResponse
// @Failure 400 {object} errors.CustomError
// @Router /login [post]
func (s *RestHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.UserApp.Login(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ListListings handler
// @Summary List listings in a category
// @Description Lists the listings visible to the caller. Anonymous viewers are served the periodically refreshed public snapshot.
// @Tags Catalog
// @Produce json
// @Param category path string true "Category"
// @Success 200 {object} model.ListingListResponse
// @Failure 400 {object} errors.CustomError
// @Router /catalog/{category} [get]
func (s *RestHandler) ListListings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	app, err := s.catalogFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	viewer := utilsContext.GetViewer(ctx)

	// The anonymous view is the synchronizer's snapshot: eventually
	// consistent within one refresh period. Authenticated viewers get a
	// live read because their view includes their own pending items.
	if viewer.IsAnonymous() {
		if sync, ok := s.Syncs[app.Category()]; ok {
			writeSuccess(w, model.ListingListResponse{
				Category: app.Category(),
				Items:    sync.Snapshot(),
			})
			return
		}
	}

	items, err := app.List(ctx, viewer)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, model.ListingListResponse{Category: app.Category(), Items: items})
}

// SubmitListing handler
// @Summary Submit a listing
// @Description Upload an image and create a pending listing in the category
// @Tags Catalog
// @Accept mpfd
// @Produce json
// @Param category path string true "Category"
// @Param name formData string true "Display name"
// @Param price formData number true "Unit price"
// @Param image formData file true "Product image"
// @Success 200 {object} model.ListingEntity
// @Failure 400 {object} errors.CustomError
// @Security BearerAuth
// @Router /catalog/{category} [post]
func (s *RestHandler) SubmitListing(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	app, err := s.catalogFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	viewer := utilsContext.GetViewer(ctx)
	if viewer.IsAnonymous() {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	imageURL := r.FormValue("image_url")
	file, header, err := r.FormFile("image")
	if err == nil {
		defer file.Close()
		if s.Images == nil {
			writeError(w, errors.SetCustomError(constant.ErrInternal))
			return
		}
		key := fmt.Sprintf("%s/%s%s", app.Category(), uuid.NewString(), filepath.Ext(header.Filename))
		contentType := header.Header.Get("Content-Type")
		imageURL, err = s.Images.Upload(ctx, key, contentType, file)
		if err != nil {
			writeError(w, errors.SetCustomError(constant.ErrInternal))
			return
		}
	}

	req := &model.SubmitListingRequest{
		Name:     r.FormValue("name"),
		Price:    price,
		ImageURL: imageURL,
	}
	if err := validatorx.ValidateStruct(req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := app.Submit(ctx, req, viewer.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// RemoveListing handler
// @Summary Remove a listing
// @Description Owners delete their own listings, admins delete any
// @Tags Catalog
// @Produce json
// @Param category path string true "Category"
// @Param id path int true "Listing ID"
// @Success 200 {object} apiResponse
// @Failure 403 {object} errors.CustomError
// @Failure 409 {object} errors.CustomError
// @Security BearerAuth
// @Router /catalog/{category}/{id} [delete]
func (s *RestHandler) RemoveListing(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	app, err := s.catalogFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	id, err := listingIDFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := app.Remove(ctx, id, utilsContext.GetViewer(ctx)); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// ViewCart handler
// @Summary View the session cart
// @Tags Cart
// @Produce json
// @Success 200 {object} model.CartResponse
// @Router /cart [get]
func (s *RestHandler) ViewCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sessionKey, err := cartSession(r)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.CartApp.View(ctx, sessionKey)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

func (s *RestHandler) cartMutation(w http.ResponseWriter, r *http.Request,
	op func(sessionKey string, req *model.CartItemRequest) (*model.CartResponse, error)) {

	sessionKey, err := cartSession(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req model.CartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := op(sessionKey, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// CartAdd handler
// @Summary Add an approved listing to the cart
// @Tags Cart
// @Accept json
// @Produce json
// @Param request body model.CartItemRequest true "Item"
// @Success 200 {object} model.CartResponse
// @Failure 400 {object} errors.CustomError
// @Router /cart/add [post]
func (s *RestHandler) CartAdd(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s.cartMutation(w, r, func(sessionKey string, req *model.CartItemRequest) (*model.CartResponse, error) {
		return s.CartApp.Add(ctx, sessionKey, req)
	})
}

// CartDecrement handler
// @Summary Decrement an item's quantity, dropping it at zero
// @Tags Cart
// @Accept json
// @Produce json
// @Param request body model.CartItemRequest true "Item"
// @Success 200 {object} model.CartResponse
// @Router /cart/decrement [post]
func (s *RestHandler) CartDecrement(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s.cartMutation(w, r, func(sessionKey string, req *model.CartItemRequest) (*model.CartResponse, error) {
		return s.CartApp.Decrement(ctx, sessionKey, req)
	})
}

// CartRemove handler
// @Summary Remove an item from the cart regardless of quantity
// @Tags Cart
// @Accept json
// @Produce json
// @Param request body model.CartItemRequest true "Item"
// @Success 200 {object} model.CartResponse
// @Router /cart/remove [post]
func (s *RestHandler) CartRemove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s.cartMutation(w, r, func(sessionKey string, req *model.CartItemRequest) (*model.CartResponse, error) {
		return s.CartApp.Remove(ctx, sessionKey, req)
	})
}

// ReviewQueue handler
// @Summary Pending listings across all categories
// @Tags Admin
// @Produce json
// @Success 200 {array} model.ListingEntity
// @Failure 403 {object} errors.CustomError
// @Security BearerAuth
// @Router /admin/queue [get]
func (s *RestHandler) ReviewQueue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	res, err := s.ReviewApp.PendingAcrossCategories(ctx, utilsContext.GetViewer(ctx))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ApproveListing handler
// @Summary Approve a pending listing
// @Tags Admin
// @Produce json
// @Param category path string true "Category"
// @Param id path int true "Listing ID"
// @Success 200 {object} apiResponse
// @Failure 409 {object} errors.CustomError
// @Security BearerAuth
// @Router /admin/catalog/{category}/{id}/approve [post]
func (s *RestHandler) ApproveListing(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	app, err := s.catalogFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	id, err := listingIDFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := app.Approve(ctx, id, utilsContext.GetViewer(ctx)); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// RejectListing handler
// @Summary Reject (delete) a listing
// @Tags Admin
// @Produce json
// @Param category path string true "Category"
// @Param id path int true "Listing ID"
// @Success 200 {object} apiResponse
// @Failure 409 {object} errors.CustomError
// @Security BearerAuth
// @Router /admin/catalog/{category}/{id}/reject [post]
func (s *RestHandler) RejectListing(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	app, err := s.catalogFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	id, err := listingIDFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := app.Reject(ctx, id, utilsContext.GetViewer(ctx)); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// EditListing handler
// @Summary Edit a listing's name and price
// @Tags Admin
// @Accept json
// @Produce json
// @Param category path string true "Category"
// @Param id path int true "Listing ID"
// @Param request body model.EditListingRequest true "Fields"
// @Success 200 {object} apiResponse
// @Failure 409 {object} errors.CustomError
// @Security BearerAuth
// @Router /admin/catalog/{category}/{id} [put]
func (s *RestHandler) EditListing(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	app, err := s.catalogFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	id, err := listingIDFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req model.EditListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := app.EditFields(ctx, id, &req, utilsContext.GetViewer(ctx)); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// SendMessage handler
// @Summary Send a message to the admins
// @Tags Messages
// @Accept json
// @Produce json
// @Param request body model.SendMessageRequest true "Message"
// @Success 200 {object} model.MessageEntity
// @Security BearerAuth
// @Router /messages [post]
func (s *RestHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	viewer := utilsContext.GetViewer(ctx)
	res, err := s.MessageApp.Send(ctx, &req, viewer.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ListMessages handler
// @Summary List admin inbox messages
// @Tags Admin
// @Produce json
// @Success 200 {array} model.MessageEntity
// @Failure 403 {object} errors.CustomError
// @Security BearerAuth
// @Router /admin/messages [get]
func (s *RestHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	res, err := s.MessageApp.List(ctx, utilsContext.GetViewer(ctx))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// DeleteMessage handler
// @Summary Delete an inbox message
// @Tags Admin
// @Produce json
// @Param id path int true "Message ID"
// @Success 200 {object} apiResponse
// @Failure 409 {object} errors.CustomError
// @Security BearerAuth
// @Router /admin/messages/{id} [delete]
func (s *RestHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := listingIDFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.MessageApp.Delete(ctx, id, utilsContext.GetViewer(ctx)); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}
