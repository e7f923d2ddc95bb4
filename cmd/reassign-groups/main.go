// Command reassign-groups moves every group (and transitively every sector)
// under a single target client, matched by case-insensitive name. Runs as
// one transaction so a concurrent reader never observes a partial move.
//
// Usage: reassign-groups -client "Client Name" [-user <admin id>]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"portal-service/internal/admin"
	"portal-service/internal/audit"
	"portal-service/internal/store"
	"portal-service/pkg/config"
	"portal-service/pkg/database"
	"portal-service/pkg/logger"
)

func main() {
	clientName := flag.String("client", "", "target client name (case-insensitive)")
	adminID := flag.Uint("user", 0, "acting administrator user ID for the audit trail")
	flag.Parse()

	if *clientName == "" {
		fmt.Fprintln(os.Stderr, "usage: reassign-groups -client \"Client Name\" [-user <admin id>]")
		os.Exit(2)
	}

	cfg, err := config.Load("portal-service")
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	if err := logger.InitLogger(&logger.LogConfig{
		Level:       cfg.Log.Level,
		Environment: cfg.Server.Env,
		ServiceName: "reassign-groups",
	}); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()

	db, err := database.InitDB(&cfg.DB)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}

	entities := store.New(db)
	auditor := audit.NewLogger(entities, log)
	reassigner := admin.NewReassigner(entities, auditor, log)

	target, moved, err := reassigner.ReassignGroups(context.Background(), *clientName, *adminID)
	if err != nil {
		log.Fatal("Reassignment failed", zap.String("name", *clientName), zap.Error(err))
	}

	fmt.Printf("moved %d groups to client %q (%d)\n", moved, target.Name, target.ID)
}
