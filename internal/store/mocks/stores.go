// Package mocks provides testify mocks for the store contracts.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"portal-service/internal/model"
)

// MockPermissionStore mocks store.PermissionStore
type MockPermissionStore struct {
	mock.Mock
}

func (m *MockPermissionStore) FindUser(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockPermissionStore) FindClient(ctx context.Context, id uint) (*model.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Client), args.Error(1)
}

func (m *MockPermissionStore) FindTool(ctx context.Context, id uint) (*model.Tool, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tool), args.Error(1)
}

func (m *MockPermissionStore) FindToolBySlug(ctx context.Context, slug string) (*model.Tool, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tool), args.Error(1)
}

func (m *MockPermissionStore) LinkedClientIDs(ctx context.Context, toolID uint) ([]uint, error) {
	args := m.Called(ctx, toolID)
	return idsOf(args.Get(0)), args.Error(1)
}

func (m *MockPermissionStore) DirectClientIDs(ctx context.Context, userID uint) ([]uint, error) {
	args := m.Called(ctx, userID)
	return idsOf(args.Get(0)), args.Error(1)
}

func (m *MockPermissionStore) GroupIDs(ctx context.Context, userID uint) ([]uint, error) {
	args := m.Called(ctx, userID)
	return idsOf(args.Get(0)), args.Error(1)
}

func (m *MockPermissionStore) SectorIDs(ctx context.Context, userID uint) ([]uint, error) {
	args := m.Called(ctx, userID)
	return idsOf(args.Get(0)), args.Error(1)
}

func (m *MockPermissionStore) ClientIDsOfGroups(ctx context.Context, groupIDs []uint) ([]uint, error) {
	args := m.Called(ctx, groupIDs)
	return idsOf(args.Get(0)), args.Error(1)
}

func (m *MockPermissionStore) ClientIDsOfSectors(ctx context.Context, sectorIDs []uint) ([]uint, error) {
	args := m.Called(ctx, sectorIDs)
	return idsOf(args.Get(0)), args.Error(1)
}

func (m *MockPermissionStore) ToolPermissions(ctx context.Context, toolID uint) ([]model.ToolPermission, error) {
	args := m.Called(ctx, toolID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ToolPermission), args.Error(1)
}

func (m *MockPermissionStore) ActiveClients(ctx context.Context, ids []uint) ([]model.Client, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Client), args.Error(1)
}

func (m *MockPermissionStore) AllActiveClients(ctx context.Context) ([]model.Client, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Client), args.Error(1)
}

func (m *MockPermissionStore) ToolsLinkedToClients(ctx context.Context, clientIDs []uint) ([]model.Tool, error) {
	args := m.Called(ctx, clientIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Tool), args.Error(1)
}

func (m *MockPermissionStore) ToolsGrantedTo(ctx context.Context, userID uint, groupIDs, sectorIDs []uint) ([]model.Tool, error) {
	args := m.Called(ctx, userID, groupIDs, sectorIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Tool), args.Error(1)
}

func (m *MockPermissionStore) AllTools(ctx context.Context) ([]model.Tool, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Tool), args.Error(1)
}

// MockHelpdeskStore mocks store.HelpdeskStore
type MockHelpdeskStore struct {
	mock.Mock
}

func (m *MockHelpdeskStore) IsQueueMember(ctx context.Context, userID uint) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockHelpdeskStore) ManagesArea(ctx context.Context, userID uint) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockHelpdeskStore) ManagedAreas(ctx context.Context, userID uint) ([]model.HelpdeskArea, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.HelpdeskArea), args.Error(1)
}

func (m *MockHelpdeskStore) AreasByClient(ctx context.Context, clientID uint) ([]model.HelpdeskArea, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.HelpdeskArea), args.Error(1)
}

func (m *MockHelpdeskStore) QueuesByArea(ctx context.Context, areaID uint) ([]model.Queue, error) {
	args := m.Called(ctx, areaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Queue), args.Error(1)
}

func (m *MockHelpdeskStore) DefaultQueue(ctx context.Context, clientID uint) (*model.Queue, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Queue), args.Error(1)
}

func (m *MockHelpdeskStore) QueueMemberIDs(ctx context.Context, queueID uint) ([]uint, error) {
	args := m.Called(ctx, queueID)
	return idsOf(args.Get(0)), args.Error(1)
}

func (m *MockHelpdeskStore) CreateTicket(ctx context.Context, ticket *model.Ticket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

func (m *MockHelpdeskStore) FindTicket(ctx context.Context, id uint) (*model.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ticket), args.Error(1)
}

func (m *MockHelpdeskStore) TicketsForUser(ctx context.Context, userID uint) ([]model.Ticket, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Ticket), args.Error(1)
}

func (m *MockHelpdeskStore) AddMessage(ctx context.Context, msg *model.TicketMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockHelpdeskStore) InsertNotification(ctx context.Context, userID, ticketID uint, event string) (bool, error) {
	args := m.Called(ctx, userID, ticketID, event)
	return args.Bool(0), args.Error(1)
}

func (m *MockHelpdeskStore) MarkRead(ctx context.Context, userID, ticketID uint) (int64, error) {
	args := m.Called(ctx, userID, ticketID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockHelpdeskStore) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockHelpdeskStore) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockHelpdeskStore) ListNotifications(ctx context.Context, userID uint, unreadOnly bool, limit int) ([]model.HelpdeskNotification, error) {
	args := m.Called(ctx, userID, unreadOnly, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.HelpdeskNotification), args.Error(1)
}

// MockAdminStore mocks store.AdminStore
type MockAdminStore struct {
	mock.Mock
}

func (m *MockAdminStore) FindClientByName(ctx context.Context, name string) (*model.Client, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Client), args.Error(1)
}

func (m *MockAdminStore) ReassignAllGroups(ctx context.Context, targetClientID uint) (int64, error) {
	args := m.Called(ctx, targetClientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAdminStore) CountGroupsByClient(ctx context.Context, clientID uint) (int64, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).(int64), args.Error(1)
}

// MockAuditStore mocks store.AuditStore
type MockAuditStore struct {
	mock.Mock
}

func (m *MockAuditStore) Append(ctx context.Context, entry *model.AuditLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func idsOf(v interface{}) []uint {
	if v == nil {
		return nil
	}
	return v.([]uint)
}
