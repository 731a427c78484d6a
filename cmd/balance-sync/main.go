// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/balance-app/balance-sync/internal/client"
	"github.com/balance-app/balance-sync/internal/config"
	"github.com/balance-app/balance-sync/internal/logger"
	"github.com/balance-app/balance-sync/internal/service"
	"github.com/balance-app/balance-sync/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	var (
		role    string
		session string
		paste   bool
	)
	flag.StringVar(&role, "mode", "offer", "Connection role: offer (shows the first code) or join (answers it)")
	flag.StringVar(&session, "session", "sync", "Session to run: pair, sync, send-backup or receive-backup")
	flag.BoolVar(&paste, "paste", false, "Read incoming codes from the clipboard instead of stdin")

	printBuildInfo()

	log := logger.NewClientLogger("balance-sync")

	// config.GetClientConfig parses the shared flag set, -mode and -session
	// included.
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	storages, err := store.NewStorages(cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}

	services := service.NewServices(storages, log)

	app := client.NewApp(*cfg, storages, services, log)
	app.UseClipboardInput(paste)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, app, client.Role(role), session); err != nil {
		log.Fatal().Err(err).Str("session", session).Msg("session failed")
	}
}

func run(ctx context.Context, app *client.App, role client.Role, session string) error {
	if role != client.RoleOffer && role != client.RoleJoin {
		return fmt.Errorf("unknown -mode %q: want offer or join", role)
	}

	switch session {
	case "pair":
		return app.RunPair(ctx, role)
	case "sync":
		return app.RunSync(ctx, role)
	case "send-backup":
		return app.RunSendBackup(ctx, role)
	case "receive-backup":
		return app.RunReceiveBackup(ctx, role, service.ImportReplace)
	case "receive-backup-merge":
		return app.RunReceiveBackup(ctx, role, service.ImportMerge)
	default:
		return fmt.Errorf("unknown -session %q: want pair, sync, send-backup or receive-backup", session)
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
