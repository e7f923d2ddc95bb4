// Package admin holds administrative bulk operations that run outside the
// request path.
package admin

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"portal-service/internal/audit"
	"portal-service/internal/model"
	"portal-service/internal/store"
)

// Reassigner moves the whole group population under one client.
type Reassigner struct {
	store   store.AdminStore
	auditor *audit.Logger
	log     *zap.Logger
}

// NewReassigner creates a reassigner over the given store
func NewReassigner(s store.AdminStore, a *audit.Logger, log *zap.Logger) *Reassigner {
	return &Reassigner{store: s, auditor: a, log: log}
}

// ReassignGroups resolves the target client by name (the store matches it
// case-insensitively), moves every group under it in one transaction and
// records an audit entry for the acting administrator. Returns the resolved
// target and how many groups moved. Sectors follow their group implicitly.
func (r *Reassigner) ReassignGroups(ctx context.Context, clientName string, adminID uint) (*model.Client, int64, error) {
	target, err := r.store.FindClientByName(ctx, clientName)
	if err != nil {
		return nil, 0, err
	}

	moved, err := r.store.ReassignAllGroups(ctx, target.ID)
	if err != nil {
		return nil, 0, err
	}

	r.auditor.Record(ctx, adminID, "reassign", "group", target.ID,
		fmt.Sprintf("moved %d groups to client %q (%d)", moved, target.Name, target.ID))

	r.log.Info("Groups reassigned",
		zap.Int64("moved", moved),
		zap.String("client", target.Name),
		zap.Uint("client_id", target.ID))
	return target, moved, nil
}
