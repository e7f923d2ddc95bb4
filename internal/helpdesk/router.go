package helpdesk

import (
	"context"

	"go.uber.org/zap"

	"portal-service/internal/model"
	"portal-service/internal/store"
	"portal-service/pkg/apperr"
)

// Router assigns tickets to queues and fans out notifications. Queue
// assignment depends only on the ticket's client and area, never on its
// lifecycle state.
type Router struct {
	store store.HelpdeskStore
	log   *zap.Logger
}

// NewRouter creates a helpdesk router over the given store
func NewRouter(s store.HelpdeskStore, log *zap.Logger) *Router {
	return &Router{store: s, log: log}
}

// RouteTicket resolves the queues a ticket belongs to. Starting from the
// ticket's area, it walks up the client's area tree and returns the queues
// of the most specific area that has any. Without a match it falls back to
// the client's default queue; a missing default is a configuration error,
// never a silent drop.
func (r *Router) RouteTicket(ctx context.Context, ticket *model.Ticket) ([]model.Queue, error) {
	if ticket.AreaID != nil {
		areas, err := r.store.AreasByClient(ctx, ticket.ClientID)
		if err != nil {
			return nil, err
		}
		byID := make(map[uint]model.HelpdeskArea, len(areas))
		for _, area := range areas {
			byID[area.ID] = area
		}

		visited := make(map[uint]bool)
		current := ticket.AreaID
		for current != nil && !visited[*current] {
			visited[*current] = true
			area, ok := byID[*current]
			if !ok {
				// Area belongs to another client or is gone; fall back.
				break
			}
			queues, err := r.store.QueuesByArea(ctx, area.ID)
			if err != nil {
				return nil, err
			}
			if len(queues) > 0 {
				return queues, nil
			}
			current = area.ParentID
		}
	}

	fallback, err := r.store.DefaultQueue(ctx, ticket.ClientID)
	if err != nil {
		if apperr.CodeOf(err) == apperr.CodeNotFound {
			r.log.Error("no queue configured for client",
				zap.Uint("client_id", ticket.ClientID),
				zap.Uint("ticket_id", ticket.ID))
			return nil, apperr.New(apperr.CodeConfiguration, "no queue configured")
		}
		return nil, err
	}
	return []model.Queue{*fallback}, nil
}

// NotifyOnEvent records one notification per recipient for the given ticket
// event. The insert is an atomic conflict-ignore upsert keyed on
// (recipient, ticket, event): a repeated event leaves exactly one row and an
// existing read_at untouched. Recipients are decided by the caller.
func (r *Router) NotifyOnEvent(ctx context.Context, ticket *model.Ticket, event string, recipientIDs []uint) error {
	for _, userID := range recipientIDs {
		created, err := r.store.InsertNotification(ctx, userID, ticket.ID, event)
		if err != nil {
			return err
		}
		if !created {
			r.log.Debug("notification already recorded",
				zap.Uint("user_id", userID),
				zap.Uint("ticket_id", ticket.ID),
				zap.String("event", event))
		}
	}
	return nil
}

// FanOut routes the ticket and notifies every member of its queues of the
// event, each at most once.
func (r *Router) FanOut(ctx context.Context, ticket *model.Ticket, event string) error {
	queues, err := r.RouteTicket(ctx, ticket)
	if err != nil {
		return err
	}
	return r.notifyQueues(ctx, ticket, event, queues)
}

func (r *Router) notifyQueues(ctx context.Context, ticket *model.Ticket, event string, queues []model.Queue) error {
	recipients := make(map[uint]bool)
	for _, queue := range queues {
		members, err := r.store.QueueMemberIDs(ctx, queue.ID)
		if err != nil {
			return err
		}
		for _, id := range members {
			recipients[id] = true
		}
	}

	ids := make([]uint, 0, len(recipients))
	for id := range recipients {
		ids = append(ids, id)
	}
	return r.NotifyOnEvent(ctx, ticket, event, ids)
}

// OpenTicket creates a ticket, routes it and notifies every member of the
// target queues of the creation event.
func (r *Router) OpenTicket(ctx context.Context, ticket *model.Ticket) ([]model.Queue, error) {
	// Route before persisting so a misconfigured client fails the whole
	// attempt instead of leaving an unroutable ticket behind.
	queues, err := r.RouteTicket(ctx, ticket)
	if err != nil {
		return nil, err
	}

	if err := r.store.CreateTicket(ctx, ticket); err != nil {
		return nil, err
	}

	if err := r.notifyQueues(ctx, ticket, model.EventTicketCreated, queues); err != nil {
		return nil, err
	}

	r.log.Info("ticket routed",
		zap.Uint("ticket_id", ticket.ID),
		zap.Uint("client_id", ticket.ClientID),
		zap.Int("queues", len(queues)))
	return queues, nil
}
