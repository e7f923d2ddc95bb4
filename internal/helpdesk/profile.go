package helpdesk

import (
	"context"

	"go.uber.org/zap"

	"portal-service/internal/store"
)

// Profile holds a user's helpdesk capabilities. The two base flags are
// computed independently and may both be true.
type Profile struct {
	CanReceiveTickets bool `json:"pode_receber_chamados"`
	ManagesArea       bool `json:"is_gerente_area"`
}

// CanViewQueues derives directly from queue membership
func (p Profile) CanViewQueues() bool {
	return p.CanReceiveTickets
}

// CanViewManagedAreas derives directly from area managership
func (p Profile) CanViewManagedAreas() bool {
	return p.ManagesArea
}

// CanViewTree derives directly from area managership
func (p Profile) CanViewTree() bool {
	return p.ManagesArea
}

// CanViewOwnTickets holds for every authenticated user
func (p Profile) CanViewOwnTickets() bool {
	return true
}

// ProfileResolver derives helpdesk capabilities from queue membership and
// area managership.
type ProfileResolver struct {
	store store.HelpdeskStore
	log   *zap.Logger
}

// NewProfileResolver creates a profile resolver over the given store
func NewProfileResolver(s store.HelpdeskStore, log *zap.Logger) *ProfileResolver {
	return &ProfileResolver{store: s, log: log}
}

// GetProfile computes the user's helpdesk profile. CanReceiveTickets holds
// iff the user belongs to at least one queue; ManagesArea holds iff the user
// is the designated manager of at least one area.
func (r *ProfileResolver) GetProfile(ctx context.Context, userID uint) (*Profile, error) {
	member, err := r.store.IsQueueMember(ctx, userID)
	if err != nil {
		return nil, err
	}
	manages, err := r.store.ManagesArea(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Profile{
		CanReceiveTickets: member,
		ManagesArea:       manages,
	}, nil
}
