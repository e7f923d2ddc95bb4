package handler

import (
	"portal-service/internal/audit"
	"portal-service/internal/extdb"
	"portal-service/internal/helpdesk"
	"portal-service/internal/permission"
	"portal-service/internal/store"
)

// Package-level collaborators, wired once at startup.
var (
	resolver *permission.Resolver
	profiles *helpdesk.ProfileResolver
	router   *helpdesk.Router
	ledger   *helpdesk.Ledger
	auditor  *audit.Logger
	entities *store.Store
	extPools *extdb.Manager
)

// Init wires the handler package to its collaborators
func Init(
	r *permission.Resolver,
	p *helpdesk.ProfileResolver,
	hr *helpdesk.Router,
	l *helpdesk.Ledger,
	a *audit.Logger,
	s *store.Store,
	pools *extdb.Manager,
) {
	resolver = r
	profiles = p
	router = hr
	ledger = l
	auditor = a
	entities = s
	extPools = pools
}
