package permission

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"portal-service/internal/model"
	"portal-service/internal/store"
	"portal-service/pkg/apperr"
)

// Resolver computes tool and client visibility for a user. Access is the OR
// of independent grant paths — direct client grant, group membership, sector
// membership, and tool-level principal grants — with client lifecycle
// filtering applied on top. It never caches and never retries; on any
// uncertainty it resolves to deny or to an empty set.
type Resolver struct {
	store store.PermissionStore
	log   *zap.Logger
}

// NewResolver creates a permission resolver over the given store
func NewResolver(s store.PermissionStore, log *zap.Logger) *Resolver {
	return &Resolver{store: s, log: log}
}

// CanAccessTool reports whether the user may open the tool. Fails closed:
// a missing or inactive user, tool or owning client denies access. Admins
// skip grant-path checks but not the owning-client lifecycle check.
func (r *Resolver) CanAccessTool(ctx context.Context, userID, toolID uint) (bool, error) {
	user, err := r.store.FindUser(ctx, userID)
	if err != nil {
		return deny(err)
	}
	if !user.IsActive() {
		return false, nil
	}

	tool, err := r.store.FindTool(ctx, toolID)
	if err != nil {
		return deny(err)
	}
	if !tool.IsActive() {
		return false, nil
	}

	owner, err := r.store.FindClient(ctx, tool.ClientID)
	if err != nil {
		return deny(err)
	}
	if !owner.IsActive() {
		return false, nil
	}

	if user.IsAdmin() {
		return true, nil
	}

	groupIDs, err := r.store.GroupIDs(ctx, userID)
	if err != nil {
		return false, err
	}
	sectorIDs, err := r.store.SectorIDs(ctx, userID)
	if err != nil {
		return false, err
	}

	viaClient, err := r.reachesLinkedClient(ctx, userID, toolID, groupIDs, sectorIDs)
	if err != nil {
		return false, err
	}
	viaTool, err := r.holdsToolGrant(ctx, userID, toolID, groupIDs, sectorIDs)
	if err != nil {
		return false, err
	}

	return viaClient || viaTool, nil
}

// CanAccessToolBySlug resolves the tool by its slug first
func (r *Resolver) CanAccessToolBySlug(ctx context.Context, userID uint, slug string) (bool, error) {
	tool, err := r.store.FindToolBySlug(ctx, slug)
	if err != nil {
		return deny(err)
	}
	return r.CanAccessTool(ctx, userID, tool.ID)
}

// reachesLinkedClient is the client-level path: the tool is linked to some
// active client the user reaches directly, through a group, or through a
// sector.
func (r *Resolver) reachesLinkedClient(ctx context.Context, userID, toolID uint, groupIDs, sectorIDs []uint) (bool, error) {
	linked, err := r.store.LinkedClientIDs(ctx, toolID)
	if err != nil {
		return false, err
	}
	if len(linked) == 0 {
		return false, nil
	}

	reachable, err := r.reachableClientIDs(ctx, userID, groupIDs, sectorIDs)
	if err != nil {
		return false, err
	}

	var candidates []uint
	for _, id := range linked {
		if reachable[id] {
			candidates = append(candidates, id)
		}
	}
	if len(candidates) == 0 {
		return false, nil
	}

	active, err := r.store.ActiveClients(ctx, candidates)
	if err != nil {
		return false, err
	}
	return len(active) > 0, nil
}

// holdsToolGrant is the tool-level path: a ToolPermission names the user, or
// one of the user's groups or sectors, as its principal.
func (r *Resolver) holdsToolGrant(ctx context.Context, userID, toolID uint, groupIDs, sectorIDs []uint) (bool, error) {
	perms, err := r.store.ToolPermissions(ctx, toolID)
	if err != nil {
		return false, err
	}

	groups := toSet(groupIDs)
	sectors := toSet(sectorIDs)
	for _, perm := range perms {
		switch perm.PrincipalType {
		case model.PrincipalUser:
			if perm.PrincipalID == userID {
				return true, nil
			}
		case model.PrincipalGroup:
			if groups[perm.PrincipalID] {
				return true, nil
			}
		case model.PrincipalSector:
			if sectors[perm.PrincipalID] {
				return true, nil
			}
		}
	}
	return false, nil
}

// reachableClientIDs unions the three client-level grant paths. Lifecycle
// filtering is not applied here; callers run the shared post-filter.
func (r *Resolver) reachableClientIDs(ctx context.Context, userID uint, groupIDs, sectorIDs []uint) (map[uint]bool, error) {
	reachable := make(map[uint]bool)

	direct, err := r.store.DirectClientIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, id := range direct {
		reachable[id] = true
	}

	viaGroups, err := r.store.ClientIDsOfGroups(ctx, groupIDs)
	if err != nil {
		return nil, err
	}
	for _, id := range viaGroups {
		reachable[id] = true
	}

	viaSectors, err := r.store.ClientIDsOfSectors(ctx, sectorIDs)
	if err != nil {
		return nil, err
	}
	for _, id := range viaSectors {
		reachable[id] = true
	}

	return reachable, nil
}

// ListToolsForUser enumerates every tool reachable by any grant path,
// deduplicated by tool identity and sorted by name then ID. Admins get all
// active tools of active clients without grant checks.
func (r *Resolver) ListToolsForUser(ctx context.Context, userID uint) ([]model.Tool, error) {
	user, err := r.store.FindUser(ctx, userID)
	if err != nil {
		return emptyToolsOnNotFound(err)
	}
	if !user.IsActive() {
		return []model.Tool{}, nil
	}

	var candidates []model.Tool
	if user.IsAdmin() {
		candidates, err = r.store.AllTools(ctx)
		if err != nil {
			return nil, err
		}
	} else {
		groupIDs, err := r.store.GroupIDs(ctx, userID)
		if err != nil {
			return nil, err
		}
		sectorIDs, err := r.store.SectorIDs(ctx, userID)
		if err != nil {
			return nil, err
		}

		reachable, err := r.reachableClientIDs(ctx, userID, groupIDs, sectorIDs)
		if err != nil {
			return nil, err
		}
		activeReachable, err := r.store.ActiveClients(ctx, keys(reachable))
		if err != nil {
			return nil, err
		}
		activeIDs := make([]uint, 0, len(activeReachable))
		for _, client := range activeReachable {
			activeIDs = append(activeIDs, client.ID)
		}

		linked, err := r.store.ToolsLinkedToClients(ctx, activeIDs)
		if err != nil {
			return nil, err
		}
		granted, err := r.store.ToolsGrantedTo(ctx, userID, groupIDs, sectorIDs)
		if err != nil {
			return nil, err
		}

		seen := make(map[uint]bool)
		for _, tool := range append(linked, granted...) {
			if !seen[tool.ID] {
				seen[tool.ID] = true
				candidates = append(candidates, tool)
			}
		}
	}

	visible, err := r.filterVisible(ctx, candidates)
	if err != nil {
		return nil, err
	}
	sortTools(visible)
	return visible, nil
}

// ListReportsForUser narrows ListToolsForUser to report-type tools
func (r *Resolver) ListReportsForUser(ctx context.Context, userID uint) ([]model.Tool, error) {
	tools, err := r.ListToolsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	reports := make([]model.Tool, 0, len(tools))
	for _, tool := range tools {
		if tool.Type == model.ToolTypeReport {
			reports = append(reports, tool)
		}
	}
	return reports, nil
}

// ListClientsForHelpdesk returns the clients a user may open tickets
// against: all active clients for admins, the client-level grant-path union
// for everyone else.
func (r *Resolver) ListClientsForHelpdesk(ctx context.Context, userID uint) ([]model.Client, error) {
	user, err := r.store.FindUser(ctx, userID)
	if err != nil {
		return emptyClientsOnNotFound(err)
	}
	if !user.IsActive() {
		return []model.Client{}, nil
	}

	var clients []model.Client
	if user.IsAdmin() {
		clients, err = r.store.AllActiveClients(ctx)
		if err != nil {
			return nil, err
		}
	} else {
		groupIDs, err := r.store.GroupIDs(ctx, userID)
		if err != nil {
			return nil, err
		}
		sectorIDs, err := r.store.SectorIDs(ctx, userID)
		if err != nil {
			return nil, err
		}
		reachable, err := r.reachableClientIDs(ctx, userID, groupIDs, sectorIDs)
		if err != nil {
			return nil, err
		}
		clients, err = r.store.ActiveClients(ctx, keys(reachable))
		if err != nil {
			return nil, err
		}
	}

	sort.Slice(clients, func(i, j int) bool {
		if clients[i].Name != clients[j].Name {
			return clients[i].Name < clients[j].Name
		}
		return clients[i].ID < clients[j].ID
	})
	return clients, nil
}

// filterVisible is the single lifecycle post-filter: it drops inactive
// tools and every tool whose owning client is inactive or soft-deleted.
// Grant rows are never consulted or touched here.
func (r *Resolver) filterVisible(ctx context.Context, tools []model.Tool) ([]model.Tool, error) {
	if len(tools) == 0 {
		return []model.Tool{}, nil
	}

	ownerIDs := make(map[uint]bool)
	for _, tool := range tools {
		ownerIDs[tool.ClientID] = true
	}
	owners, err := r.store.ActiveClients(ctx, keys(ownerIDs))
	if err != nil {
		return nil, err
	}
	activeOwners := make(map[uint]bool, len(owners))
	for _, client := range owners {
		activeOwners[client.ID] = true
	}

	visible := make([]model.Tool, 0, len(tools))
	for _, tool := range tools {
		if tool.IsActive() && activeOwners[tool.ClientID] {
			visible = append(visible, tool)
		}
	}
	return visible, nil
}

func sortTools(tools []model.Tool) {
	sort.Slice(tools, func(i, j int) bool {
		if tools[i].Name != tools[j].Name {
			return tools[i].Name < tools[j].Name
		}
		return tools[i].ID < tools[j].ID
	})
}

// deny maps a not-found store result to a plain deny and propagates
// everything else, so the boundary treats resolution failure as deny.
func deny(err error) (bool, error) {
	if apperr.CodeOf(err) == apperr.CodeNotFound {
		return false, nil
	}
	return false, err
}

func emptyToolsOnNotFound(err error) ([]model.Tool, error) {
	if apperr.CodeOf(err) == apperr.CodeNotFound {
		return []model.Tool{}, nil
	}
	return nil, err
}

func emptyClientsOnNotFound(err error) ([]model.Client, error) {
	if apperr.CodeOf(err) == apperr.CodeNotFound {
		return []model.Client{}, nil
	}
	return nil, err
}

func toSet(ids []uint) map[uint]bool {
	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func keys(set map[uint]bool) []uint {
	out := make([]uint, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}
