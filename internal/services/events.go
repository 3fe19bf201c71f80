package services

import (
	"github.com/localnerve/shopdb/internal/types"
)

// JoinInput is the join event payload.
type JoinInput struct {
	EventID *types.FlexInt64 `json:"eventId"`
}

// Event returns the validated event identifier.
func (in JoinInput) Event() (int64, error) {
	if in.EventID == nil {
		return 0, types.MissingField("eventId")
	}
	if in.EventID.Int64() <= 0 {
		return 0, types.Validation("Event id %d is not valid", in.EventID.Int64())
	}
	return in.EventID.Int64(), nil
}
