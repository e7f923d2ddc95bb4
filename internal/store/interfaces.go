package store

import (
	"context"

	"portal-service/internal/model"
)

// PermissionStore is the read surface the permission resolver depends on.
// Every method is a plain read; callers may race with writers and observe
// either the pre- or post-write state.
type PermissionStore interface {
	FindUser(ctx context.Context, id uint) (*model.User, error)
	FindClient(ctx context.Context, id uint) (*model.Client, error)
	FindTool(ctx context.Context, id uint) (*model.Tool, error)
	FindToolBySlug(ctx context.Context, slug string) (*model.Tool, error)

	// LinkedClientIDs returns the clients a tool is shared with (ClientTool rows).
	LinkedClientIDs(ctx context.Context, toolID uint) ([]uint, error)

	// Client-level grant paths for a user.
	DirectClientIDs(ctx context.Context, userID uint) ([]uint, error)
	GroupIDs(ctx context.Context, userID uint) ([]uint, error)
	SectorIDs(ctx context.Context, userID uint) ([]uint, error)
	ClientIDsOfGroups(ctx context.Context, groupIDs []uint) ([]uint, error)
	ClientIDsOfSectors(ctx context.Context, sectorIDs []uint) ([]uint, error)

	// Tool-level grant path.
	ToolPermissions(ctx context.Context, toolID uint) ([]model.ToolPermission, error)

	// Lifecycle filtering and enumeration.
	ActiveClients(ctx context.Context, ids []uint) ([]model.Client, error)
	AllActiveClients(ctx context.Context) ([]model.Client, error)
	ToolsLinkedToClients(ctx context.Context, clientIDs []uint) ([]model.Tool, error)
	ToolsGrantedTo(ctx context.Context, userID uint, groupIDs, sectorIDs []uint) ([]model.Tool, error)
	AllTools(ctx context.Context) ([]model.Tool, error)
}

// HelpdeskStore covers queue membership, the managed-area tree, tickets and
// the notification ledger rows.
type HelpdeskStore interface {
	IsQueueMember(ctx context.Context, userID uint) (bool, error)
	ManagesArea(ctx context.Context, userID uint) (bool, error)
	ManagedAreas(ctx context.Context, userID uint) ([]model.HelpdeskArea, error)

	AreasByClient(ctx context.Context, clientID uint) ([]model.HelpdeskArea, error)
	QueuesByArea(ctx context.Context, areaID uint) ([]model.Queue, error)
	DefaultQueue(ctx context.Context, clientID uint) (*model.Queue, error)
	QueueMemberIDs(ctx context.Context, queueID uint) ([]uint, error)

	CreateTicket(ctx context.Context, ticket *model.Ticket) error
	FindTicket(ctx context.Context, id uint) (*model.Ticket, error)
	TicketsForUser(ctx context.Context, userID uint) ([]model.Ticket, error)
	AddMessage(ctx context.Context, msg *model.TicketMessage) error

	// InsertNotification is an atomic conflict-ignore upsert keyed on
	// (user, ticket, event). It reports whether a row was created.
	InsertNotification(ctx context.Context, userID, ticketID uint, event string) (bool, error)
	MarkRead(ctx context.Context, userID, ticketID uint) (int64, error)
	MarkAllRead(ctx context.Context, userID uint) (int64, error)
	UnreadCount(ctx context.Context, userID uint) (int64, error)
	ListNotifications(ctx context.Context, userID uint, unreadOnly bool, limit int) ([]model.HelpdeskNotification, error)
}

// AdminStore backs administrative mutations: grant bookkeeping and the bulk
// group reassignment.
type AdminStore interface {
	FindClientByName(ctx context.Context, name string) (*model.Client, error)
	// ReassignAllGroups moves every group to the target client inside one
	// transaction, so a concurrent reader never observes a partial move.
	ReassignAllGroups(ctx context.Context, targetClientID uint) (int64, error)
	CountGroupsByClient(ctx context.Context, clientID uint) (int64, error)
}

// AuditStore is an append-only write sink. Never read back for decisions.
type AuditStore interface {
	Append(ctx context.Context, entry *model.AuditLog) error
}
