package model

import (
	"time"

	"github.com/greengarden/greenery/constant"
)

const (
	ModerationActionApproved = "approved"
	ModerationActionRejected = "rejected"
)

// ModerationEvent is published after an admin approve/reject so back-office
// consumers (notifications, audit) can react. Catalog readers still rely on
// polling; this never feeds client views.
type ModerationEvent struct {
	Category   constant.Category `json:"category"`
	ListingID  uint64            `json:"listing_id"`
	OwnerID    uint64            `json:"owner_id"`
	Action     string            `json:"action"`
	OccurredAt time.Time         `json:"occurred_at"`
}
