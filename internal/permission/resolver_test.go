package permission_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"portal-service/internal/model"
	"portal-service/internal/permission"
	"portal-service/internal/store/mocks"
	"portal-service/pkg/apperr"
)

func activeUser(id uint) *model.User {
	return &model.User{ID: id, Role: model.RoleUser, Status: model.StatusActive}
}

func adminUser(id uint) *model.User {
	return &model.User{ID: id, Role: model.RoleAdmin, Status: model.StatusActive}
}

func activeClient(id uint, name string) model.Client {
	return model.Client{ID: id, Name: name, Status: model.StatusActive}
}

func activeTool(id, clientID uint, name string) model.Tool {
	return model.Tool{ID: id, ClientID: clientID, Name: name, Type: model.ToolTypeApp, Status: model.StatusActive}
}

// sameSet matches a []uint argument regardless of order
func sameSet(want ...uint) interface{} {
	return mock.MatchedBy(func(got []uint) bool {
		if len(got) != len(want) {
			return false
		}
		set := make(map[uint]bool, len(got))
		for _, id := range got {
			set[id] = true
		}
		for _, id := range want {
			if !set[id] {
				return false
			}
		}
		return true
	})
}

func TestCanAccessToolSectorGrant(t *testing.T) {
	// User 7 holds a sector grant on sector 5 under client 1; the tool is
	// linked to client 1 through a ClientTool row.
	s := new(mocks.MockPermissionStore)
	s.On("FindUser", mock.Anything, uint(7)).Return(activeUser(7), nil)
	tool := activeTool(10, 1, "negociacoes")
	s.On("FindTool", mock.Anything, uint(10)).Return(&tool, nil)
	owner := activeClient(1, "acme")
	s.On("FindClient", mock.Anything, uint(1)).Return(&owner, nil)
	s.On("GroupIDs", mock.Anything, uint(7)).Return(nil, nil)
	s.On("SectorIDs", mock.Anything, uint(7)).Return([]uint{5}, nil)
	s.On("LinkedClientIDs", mock.Anything, uint(10)).Return([]uint{1}, nil)
	s.On("DirectClientIDs", mock.Anything, uint(7)).Return(nil, nil)
	s.On("ClientIDsOfGroups", mock.Anything, mock.Anything).Return(nil, nil)
	s.On("ClientIDsOfSectors", mock.Anything, []uint{5}).Return([]uint{1}, nil)
	s.On("ActiveClients", mock.Anything, sameSet(1)).Return([]model.Client{owner}, nil)
	s.On("ToolPermissions", mock.Anything, uint(10)).Return([]model.ToolPermission{}, nil)

	resolver := permission.NewResolver(s, zap.NewNop())
	allowed, err := resolver.CanAccessTool(context.Background(), 7, 10)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestCanAccessToolSectorGrantRevoked(t *testing.T) {
	// Same shape as above but the sector grant is gone: every path fails.
	s := new(mocks.MockPermissionStore)
	s.On("FindUser", mock.Anything, uint(7)).Return(activeUser(7), nil)
	tool := activeTool(10, 1, "negociacoes")
	s.On("FindTool", mock.Anything, uint(10)).Return(&tool, nil)
	owner := activeClient(1, "acme")
	s.On("FindClient", mock.Anything, uint(1)).Return(&owner, nil)
	s.On("GroupIDs", mock.Anything, uint(7)).Return(nil, nil)
	s.On("SectorIDs", mock.Anything, uint(7)).Return(nil, nil)
	s.On("LinkedClientIDs", mock.Anything, uint(10)).Return([]uint{1}, nil)
	s.On("DirectClientIDs", mock.Anything, uint(7)).Return(nil, nil)
	s.On("ClientIDsOfGroups", mock.Anything, mock.Anything).Return(nil, nil)
	s.On("ClientIDsOfSectors", mock.Anything, mock.Anything).Return(nil, nil)
	s.On("ToolPermissions", mock.Anything, uint(10)).Return([]model.ToolPermission{}, nil)

	resolver := permission.NewResolver(s, zap.NewNop())
	allowed, err := resolver.CanAccessTool(context.Background(), 7, 10)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestCanAccessToolGroupGrantAlone(t *testing.T) {
	// Group membership alone reaches the linked client; no direct or
	// sector grant exists.
	s := new(mocks.MockPermissionStore)
	s.On("FindUser", mock.Anything, uint(7)).Return(activeUser(7), nil)
	tool := activeTool(10, 1, "relatorio-vendas")
	s.On("FindTool", mock.Anything, uint(10)).Return(&tool, nil)
	owner := activeClient(1, "acme")
	s.On("FindClient", mock.Anything, uint(1)).Return(&owner, nil)
	s.On("GroupIDs", mock.Anything, uint(7)).Return([]uint{3}, nil)
	s.On("SectorIDs", mock.Anything, uint(7)).Return(nil, nil)
	s.On("LinkedClientIDs", mock.Anything, uint(10)).Return([]uint{1}, nil)
	s.On("DirectClientIDs", mock.Anything, uint(7)).Return(nil, nil)
	s.On("ClientIDsOfGroups", mock.Anything, []uint{3}).Return([]uint{1}, nil)
	s.On("ClientIDsOfSectors", mock.Anything, mock.Anything).Return(nil, nil)
	s.On("ActiveClients", mock.Anything, sameSet(1)).Return([]model.Client{owner}, nil)
	s.On("ToolPermissions", mock.Anything, uint(10)).Return([]model.ToolPermission{}, nil)

	resolver := permission.NewResolver(s, zap.NewNop())
	allowed, err := resolver.CanAccessTool(context.Background(), 7, 10)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestCanAccessToolPrincipalGrants(t *testing.T) {
	cases := []struct {
		name  string
		perm  model.ToolPermission
		allow bool
	}{
		{"user principal", model.ToolPermission{ToolID: 10, PrincipalType: model.PrincipalUser, PrincipalID: 7}, true},
		{"group principal", model.ToolPermission{ToolID: 10, PrincipalType: model.PrincipalGroup, PrincipalID: 3}, true},
		{"sector principal", model.ToolPermission{ToolID: 10, PrincipalType: model.PrincipalSector, PrincipalID: 5}, true},
		{"other user", model.ToolPermission{ToolID: 10, PrincipalType: model.PrincipalUser, PrincipalID: 99}, false},
		{"foreign group", model.ToolPermission{ToolID: 10, PrincipalType: model.PrincipalGroup, PrincipalID: 42}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := new(mocks.MockPermissionStore)
			s.On("FindUser", mock.Anything, uint(7)).Return(activeUser(7), nil)
			tool := activeTool(10, 1, "negociacoes")
			s.On("FindTool", mock.Anything, uint(10)).Return(&tool, nil)
			owner := activeClient(1, "acme")
			s.On("FindClient", mock.Anything, uint(1)).Return(&owner, nil)
			s.On("GroupIDs", mock.Anything, uint(7)).Return([]uint{3}, nil)
			s.On("SectorIDs", mock.Anything, uint(7)).Return([]uint{5}, nil)
			// No client-level path: the tool is not linked anywhere.
			s.On("LinkedClientIDs", mock.Anything, uint(10)).Return(nil, nil)
			s.On("ToolPermissions", mock.Anything, uint(10)).Return([]model.ToolPermission{tc.perm}, nil)

			resolver := permission.NewResolver(s, zap.NewNop())
			allowed, err := resolver.CanAccessTool(context.Background(), 7, 10)
			require.NoError(t, err)
			assert.Equal(t, tc.allow, allowed)
		})
	}
}

func TestCanAccessToolAdminSkipsGrantChecks(t *testing.T) {
	s := new(mocks.MockPermissionStore)
	s.On("FindUser", mock.Anything, uint(1)).Return(adminUser(1), nil)
	tool := activeTool(10, 1, "negociacoes")
	s.On("FindTool", mock.Anything, uint(10)).Return(&tool, nil)
	owner := activeClient(1, "acme")
	s.On("FindClient", mock.Anything, uint(1)).Return(&owner, nil)

	resolver := permission.NewResolver(s, zap.NewNop())
	allowed, err := resolver.CanAccessTool(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.True(t, allowed)
	s.AssertNotCalled(t, "ToolPermissions", mock.Anything, mock.Anything)
	s.AssertNotCalled(t, "LinkedClientIDs", mock.Anything, mock.Anything)
}

func TestCanAccessToolAdminStillLifecycleFiltered(t *testing.T) {
	// Admins bypass grants, not tenant lifecycle: an inactive owning
	// client denies even an admin.
	s := new(mocks.MockPermissionStore)
	s.On("FindUser", mock.Anything, uint(1)).Return(adminUser(1), nil)
	tool := activeTool(10, 1, "negociacoes")
	s.On("FindTool", mock.Anything, uint(10)).Return(&tool, nil)
	inactive := model.Client{ID: 1, Name: "acme", Status: model.StatusInactive}
	s.On("FindClient", mock.Anything, uint(1)).Return(&inactive, nil)

	resolver := permission.NewResolver(s, zap.NewNop())
	allowed, err := resolver.CanAccessTool(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestCanAccessToolFailsClosed(t *testing.T) {
	notFound := apperr.New(apperr.CodeNotFound, "user not found")

	t.Run("missing user", func(t *testing.T) {
		s := new(mocks.MockPermissionStore)
		s.On("FindUser", mock.Anything, uint(7)).Return(nil, notFound)

		resolver := permission.NewResolver(s, zap.NewNop())
		allowed, err := resolver.CanAccessTool(context.Background(), 7, 10)
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("missing tool", func(t *testing.T) {
		s := new(mocks.MockPermissionStore)
		s.On("FindUser", mock.Anything, uint(7)).Return(activeUser(7), nil)
		s.On("FindTool", mock.Anything, uint(10)).Return(nil, apperr.New(apperr.CodeNotFound, "tool not found"))

		resolver := permission.NewResolver(s, zap.NewNop())
		allowed, err := resolver.CanAccessTool(context.Background(), 7, 10)
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("inactive user", func(t *testing.T) {
		s := new(mocks.MockPermissionStore)
		inactive := &model.User{ID: 7, Role: model.RoleUser, Status: model.StatusInactive}
		s.On("FindUser", mock.Anything, uint(7)).Return(inactive, nil)

		resolver := permission.NewResolver(s, zap.NewNop())
		allowed, err := resolver.CanAccessTool(context.Background(), 7, 10)
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("inactive tool", func(t *testing.T) {
		s := new(mocks.MockPermissionStore)
		s.On("FindUser", mock.Anything, uint(7)).Return(activeUser(7), nil)
		disabled := model.Tool{ID: 10, ClientID: 1, Status: model.StatusInactive}
		s.On("FindTool", mock.Anything, uint(10)).Return(&disabled, nil)

		resolver := permission.NewResolver(s, zap.NewNop())
		allowed, err := resolver.CanAccessTool(context.Background(), 7, 10)
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("missing owning client", func(t *testing.T) {
		s := new(mocks.MockPermissionStore)
		s.On("FindUser", mock.Anything, uint(7)).Return(activeUser(7), nil)
		tool := activeTool(10, 1, "negociacoes")
		s.On("FindTool", mock.Anything, uint(10)).Return(&tool, nil)
		s.On("FindClient", mock.Anything, uint(1)).Return(nil, apperr.New(apperr.CodeNotFound, "client not found"))

		resolver := permission.NewResolver(s, zap.NewNop())
		allowed, err := resolver.CanAccessTool(context.Background(), 7, 10)
		require.NoError(t, err)
		assert.False(t, allowed)
	})
}

func TestCanAccessToolStoreErrorPropagates(t *testing.T) {
	// A transient store failure is signalled, never turned into an allow.
	s := new(mocks.MockPermissionStore)
	transient := apperr.New(apperr.CodeTransient, "store read failed")
	s.On("FindUser", mock.Anything, uint(7)).Return(nil, transient)

	resolver := permission.NewResolver(s, zap.NewNop())
	allowed, err := resolver.CanAccessTool(context.Background(), 7, 10)
	assert.False(t, allowed)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeTransient, apperr.CodeOf(err))
}

func TestListToolsForUserDedupAndOrder(t *testing.T) {
	s := new(mocks.MockPermissionStore)
	s.On("FindUser", mock.Anything, uint(7)).Return(activeUser(7), nil)
	s.On("GroupIDs", mock.Anything, uint(7)).Return(nil, nil)
	s.On("SectorIDs", mock.Anything, uint(7)).Return(nil, nil)
	s.On("DirectClientIDs", mock.Anything, uint(7)).Return([]uint{1}, nil)
	s.On("ClientIDsOfGroups", mock.Anything, mock.Anything).Return(nil, nil)
	s.On("ClientIDsOfSectors", mock.Anything, mock.Anything).Return(nil, nil)

	client := activeClient(1, "acme")
	s.On("ActiveClients", mock.Anything, sameSet(1)).Return([]model.Client{client}, nil)

	zulu := activeTool(2, 1, "zulu")
	alfa := activeTool(3, 1, "alfa")
	s.On("ToolsLinkedToClients", mock.Anything, []uint{1}).Return([]model.Tool{zulu, alfa}, nil)
	// The tool-principal path returns alfa again plus one more.
	bravo := activeTool(4, 1, "bravo")
	s.On("ToolsGrantedTo", mock.Anything, uint(7), mock.Anything, mock.Anything).
		Return([]model.Tool{alfa, bravo}, nil)

	resolver := permission.NewResolver(s, zap.NewNop())
	tools, err := resolver.ListToolsForUser(context.Background(), 7)
	require.NoError(t, err)

	names := make([]string, 0, len(tools))
	for _, tool := range tools {
		names = append(names, tool.Name)
	}
	assert.Equal(t, []string{"alfa", "bravo", "zulu"}, names)
}

func TestListToolsForUserHidesDeactivatedClient(t *testing.T) {
	// The user reaches active client 1, but the candidate tool is owned by
	// client 2 which has been deactivated: the lifecycle post-filter drops
	// it even though the grant rows are untouched.
	s := new(mocks.MockPermissionStore)
	s.On("FindUser", mock.Anything, uint(7)).Return(activeUser(7), nil)
	s.On("GroupIDs", mock.Anything, uint(7)).Return(nil, nil)
	s.On("SectorIDs", mock.Anything, uint(7)).Return(nil, nil)
	s.On("DirectClientIDs", mock.Anything, uint(7)).Return([]uint{1}, nil)
	s.On("ClientIDsOfGroups", mock.Anything, mock.Anything).Return(nil, nil)
	s.On("ClientIDsOfSectors", mock.Anything, mock.Anything).Return(nil, nil)

	client := activeClient(1, "acme")
	s.On("ActiveClients", mock.Anything, sameSet(1)).Return([]model.Client{client}, nil)

	orphan := activeTool(2, 2, "orphan")
	s.On("ToolsLinkedToClients", mock.Anything, []uint{1}).Return([]model.Tool{orphan}, nil)
	s.On("ToolsGrantedTo", mock.Anything, uint(7), mock.Anything, mock.Anything).
		Return([]model.Tool{}, nil)
	// Owner lookup in the post-filter: client 2 is not active.
	s.On("ActiveClients", mock.Anything, sameSet(2)).Return([]model.Client{}, nil)

	resolver := permission.NewResolver(s, zap.NewNop())
	tools, err := resolver.ListToolsForUser(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, tools)
}

func TestListToolsForUserAdmin(t *testing.T) {
	s := new(mocks.MockPermissionStore)
	s.On("FindUser", mock.Anything, uint(1)).Return(adminUser(1), nil)

	beta := activeTool(2, 1, "beta")
	alfa := activeTool(3, 1, "alfa")
	dead := model.Tool{ID: 4, ClientID: 1, Name: "dead", Status: model.StatusInactive}
	s.On("AllTools", mock.Anything).Return([]model.Tool{beta, alfa, dead}, nil)
	client := activeClient(1, "acme")
	s.On("ActiveClients", mock.Anything, sameSet(1)).Return([]model.Client{client}, nil)

	resolver := permission.NewResolver(s, zap.NewNop())
	tools, err := resolver.ListToolsForUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, tools, 2)
	assert.Equal(t, "alfa", tools[0].Name)
	assert.Equal(t, "beta", tools[1].Name)
	s.AssertNotCalled(t, "DirectClientIDs", mock.Anything, mock.Anything)
}

func TestListReportsForUserFiltersType(t *testing.T) {
	s := new(mocks.MockPermissionStore)
	s.On("FindUser", mock.Anything, uint(1)).Return(adminUser(1), nil)

	report := model.Tool{ID: 2, ClientID: 1, Name: "vendas", Type: model.ToolTypeReport, Status: model.StatusActive}
	app := activeTool(3, 1, "portal")
	s.On("AllTools", mock.Anything).Return([]model.Tool{report, app}, nil)
	client := activeClient(1, "acme")
	s.On("ActiveClients", mock.Anything, sameSet(1)).Return([]model.Client{client}, nil)

	resolver := permission.NewResolver(s, zap.NewNop())
	reports, err := resolver.ListReportsForUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "vendas", reports[0].Name)
}

func TestListClientsForHelpdeskAdmin(t *testing.T) {
	s := new(mocks.MockPermissionStore)
	s.On("FindUser", mock.Anything, uint(1)).Return(adminUser(1), nil)
	s.On("AllActiveClients", mock.Anything).Return([]model.Client{
		activeClient(2, "zeta"),
		activeClient(1, "acme"),
	}, nil)

	resolver := permission.NewResolver(s, zap.NewNop())
	clients, err := resolver.ListClientsForHelpdesk(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, clients, 2)
	assert.Equal(t, "acme", clients[0].Name)
	assert.Equal(t, "zeta", clients[1].Name)
	s.AssertNotCalled(t, "DirectClientIDs", mock.Anything, mock.Anything)
}

func TestListClientsForHelpdeskGrantUnion(t *testing.T) {
	s := new(mocks.MockPermissionStore)
	s.On("FindUser", mock.Anything, uint(7)).Return(activeUser(7), nil)
	s.On("GroupIDs", mock.Anything, uint(7)).Return([]uint{3}, nil)
	s.On("SectorIDs", mock.Anything, uint(7)).Return(nil, nil)
	s.On("DirectClientIDs", mock.Anything, uint(7)).Return([]uint{1}, nil)
	s.On("ClientIDsOfGroups", mock.Anything, []uint{3}).Return([]uint{2}, nil)
	s.On("ClientIDsOfSectors", mock.Anything, mock.Anything).Return(nil, nil)
	// Client 2 was soft-deleted; only client 1 survives the filter.
	s.On("ActiveClients", mock.Anything, sameSet(1, 2)).Return([]model.Client{activeClient(1, "acme")}, nil)

	resolver := permission.NewResolver(s, zap.NewNop())
	clients, err := resolver.ListClientsForHelpdesk(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, uint(1), clients[0].ID)
}

func TestListToolsForUserUnknownUser(t *testing.T) {
	s := new(mocks.MockPermissionStore)
	s.On("FindUser", mock.Anything, uint(99)).Return(nil, apperr.New(apperr.CodeNotFound, "user not found"))

	resolver := permission.NewResolver(s, zap.NewNop())
	tools, err := resolver.ListToolsForUser(context.Background(), 99)
	require.NoError(t, err)
	assert.Empty(t, tools)
}
