package model

import (
	"time"

	"github.com/greengarden/greenery/constant"
)

// ListingEntity is one product row within a single category partition.
// State is derived by NormalizeApproval at the read boundary; the raw stored
// value never leaves the repository.
type ListingEntity struct {
	ID        uint64            `db:"id" json:"id"`
	Name      string            `db:"name" json:"name"`
	Price     float64           `db:"price" json:"price"`
	ImageURL  string            `db:"image_url" json:"image_url"`
	OwnerID   uint64            `db:"user_id" json:"user_id"`
	State     ApprovalState     `db:"-" json:"state"`
	Category  constant.Category `db:"-" json:"category"`
	CreatedAt time.Time         `db:"created_at" json:"created_at"`
}

// VisibleTo decides whether the listing appears in the given viewer's
// catalog view. Approved listings are public; pending ones are shown only to
// their owner and to admins, never to an anonymous viewer.
func (l *ListingEntity) VisibleTo(v Viewer) bool {
	if l.State == StateApproved {
		return true
	}
	switch v.Kind {
	case ViewerAdmin:
		return true
	case ViewerAuthenticated:
		return v.UserID == l.OwnerID
	}
	return false
}

// SubmitListingRequest for creating a listing in a category
type SubmitListingRequest struct {
	Name     string  `json:"name" validate:"required"`
	Price    float64 `json:"price" validate:"required,gt=0"`
	ImageURL string  `json:"image_url" validate:"required"`
}

// EditListingRequest for the admin edit operation
type EditListingRequest struct {
	Name  string  `json:"name" validate:"required"`
	Price float64 `json:"price" validate:"required,gt=0"`
}

type ListingListResponse struct {
	Category constant.Category `json:"category"`
	Items    []ListingEntity   `json:"items"`
}
