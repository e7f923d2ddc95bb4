package admin_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"portal-service/internal/admin"
	"portal-service/internal/audit"
	"portal-service/internal/model"
	"portal-service/internal/store/mocks"
	"portal-service/pkg/apperr"
)

func newReassigner(s *mocks.MockAdminStore, a *mocks.MockAuditStore) *admin.Reassigner {
	return admin.NewReassigner(s, audit.NewLogger(a, zap.NewNop()), zap.NewNop())
}

func TestReassignGroupsMovesEverythingUnderTarget(t *testing.T) {
	s := new(mocks.MockAdminStore)
	a := new(mocks.MockAuditStore)
	target := &model.Client{ID: 2, Name: "Client B", Status: model.StatusActive}
	// Mixed-case input reaches the store untouched; the store matches the
	// name case-insensitively.
	s.On("FindClientByName", mock.Anything, "client b").Return(target, nil)
	s.On("ReassignAllGroups", mock.Anything, uint(2)).Return(int64(3), nil)

	var entry *model.AuditLog
	a.On("Append", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		entry = args.Get(1).(*model.AuditLog)
	})

	resolved, moved, err := newReassigner(s, a).ReassignGroups(context.Background(), "client b", 9)
	require.NoError(t, err)
	assert.Equal(t, uint(2), resolved.ID)
	assert.Equal(t, int64(3), moved)

	require.NotNil(t, entry)
	assert.Equal(t, uint(9), entry.UserID)
	assert.Equal(t, "reassign", entry.Action)
	assert.Equal(t, "group", entry.Entity)
	assert.Equal(t, uint(2), entry.EntityID)
	assert.Contains(t, entry.Details, "moved 3 groups")
	assert.Contains(t, entry.Details, `"Client B"`)
}

func TestReassignGroupsMissingTargetFails(t *testing.T) {
	s := new(mocks.MockAdminStore)
	a := new(mocks.MockAuditStore)
	s.On("FindClientByName", mock.Anything, "ghost").
		Return(nil, apperr.New(apperr.CodeNotFound, "client not found"))

	_, _, err := newReassigner(s, a).ReassignGroups(context.Background(), "ghost", 9)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
	// Nothing moves and nothing is audited when the target does not resolve.
	s.AssertNotCalled(t, "ReassignAllGroups", mock.Anything, mock.Anything)
	a.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestReassignGroupsStoreFailure(t *testing.T) {
	s := new(mocks.MockAdminStore)
	a := new(mocks.MockAuditStore)
	target := &model.Client{ID: 2, Name: "Client B", Status: model.StatusActive}
	s.On("FindClientByName", mock.Anything, "Client B").Return(target, nil)
	s.On("ReassignAllGroups", mock.Anything, uint(2)).
		Return(int64(0), apperr.New(apperr.CodeTransient, "group reassignment failed"))

	_, _, err := newReassigner(s, a).ReassignGroups(context.Background(), "Client B", 9)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeTransient, apperr.CodeOf(err))
	a.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestReassignGroupsAuditFailureDoesNotFailTheMove(t *testing.T) {
	s := new(mocks.MockAdminStore)
	a := new(mocks.MockAuditStore)
	target := &model.Client{ID: 2, Name: "Client B", Status: model.StatusActive}
	s.On("FindClientByName", mock.Anything, "Client B").Return(target, nil)
	s.On("ReassignAllGroups", mock.Anything, uint(2)).Return(int64(3), nil)
	a.On("Append", mock.Anything, mock.Anything).
		Return(apperr.New(apperr.CodeTransient, "audit append failed"))

	_, moved, err := newReassigner(s, a).ReassignGroups(context.Background(), "Client B", 9)
	require.NoError(t, err)
	assert.Equal(t, int64(3), moved)
}
