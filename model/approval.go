package model

// ApprovalState is the canonical moderation flag of a listing.
type ApprovalState int

const (
	StatePending ApprovalState = iota
	StateApproved
)

func (s ApprovalState) String() string {
	if s == StateApproved {
		return "approved"
	}
	return "pending"
}

func (s ApprovalState) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// NormalizeApproval maps whatever the store hands back for the approved
// column into an ApprovalState. Legacy rows predate moderation and carry no
// value at all; those must stay visible, so absence maps to approved.
// Anything that is not a recognized true-like value maps to pending.
func NormalizeApproval(raw any) ApprovalState {
	switch v := raw.(type) {
	case nil:
		return StateApproved
	case bool:
		if v {
			return StateApproved
		}
	case string:
		if v == "true" || v == "t" || v == "1" {
			return StateApproved
		}
	case []byte:
		s := string(v)
		if s == "true" || s == "t" || s == "1" || (len(v) == 1 && v[0] == 1) {
			return StateApproved
		}
	case int:
		if v == 1 {
			return StateApproved
		}
	case int8:
		if v == 1 {
			return StateApproved
		}
	case int16:
		if v == 1 {
			return StateApproved
		}
	case int32:
		if v == 1 {
			return StateApproved
		}
	case int64:
		if v == 1 {
			return StateApproved
		}
	case uint:
		if v == 1 {
			return StateApproved
		}
	case uint8:
		if v == 1 {
			return StateApproved
		}
	case uint16:
		if v == 1 {
			return StateApproved
		}
	case uint32:
		if v == 1 {
			return StateApproved
		}
	case uint64:
		if v == 1 {
			return StateApproved
		}
	case float32:
		if v == 1 {
			return StateApproved
		}
	case float64:
		if v == 1 {
			return StateApproved
		}
	}
	return StatePending
}
