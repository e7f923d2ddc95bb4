package audit

import (
	"context"

	"go.uber.org/zap"

	"portal-service/internal/model"
	"portal-service/internal/store"
)

// Logger is the append-only audit sink for administrative mutations. A
// failed append is logged and does not fail the mutation; nothing ever
// reads audit rows back for decisions.
type Logger struct {
	store store.AuditStore
	log   *zap.Logger
}

// NewLogger creates an audit logger over the given store
func NewLogger(s store.AuditStore, log *zap.Logger) *Logger {
	return &Logger{store: s, log: log}
}

// Record appends one audit entry
func (a *Logger) Record(ctx context.Context, userID uint, action, entity string, entityID uint, details string) {
	entry := &model.AuditLog{
		UserID:   userID,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Details:  details,
	}
	if err := a.store.Append(ctx, entry); err != nil {
		a.log.Error("Failed to append audit entry",
			zap.String("action", action),
			zap.String("entity", entity),
			zap.Uint("entity_id", entityID),
			zap.Error(err))
	}
}
