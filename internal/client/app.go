// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/balance-app/balance-sync/internal/app"
	"github.com/balance-app/balance-sync/internal/config"
	"github.com/balance-app/balance-sync/internal/logger"
	"github.com/balance-app/balance-sync/internal/service"
	"github.com/balance-app/balance-sync/internal/store"
	"github.com/balance-app/balance-sync/internal/transport"
	"github.com/balance-app/balance-sync/internal/utils"
	"github.com/balance-app/balance-sync/models"
)

// Role selects which side of the descriptor exchange this device performs.
// The offering side produces the first code; the joining side answers it.
type Role string

const (
	RoleOffer Role = "offer"
	RoleJoin  Role = "join"
)

// ErrNotPaired is returned when an incremental sync is requested before the
// device ever completed a pairing handshake.
var ErrNotPaired = errors.New("this device is not paired with another device yet")

// Conn is the full connection surface the flows drive: session descriptor
// exchange plus the messaging half used by the session protocols. Satisfied
// by *transport.Manager.
type Conn interface {
	service.Connection

	CreateOffer(ctx context.Context) (string, error)
	AcceptOffer(ctx context.Context, offer string) (string, error)
	CompleteConnection(ctx context.Context, answer string) error
	WaitOpen(ctx context.Context) error
}

// App ties storage, services and transport into the user-facing flows.
type App struct {
	services *service.Services
	storages *store.Storages
	log      *logger.Logger

	// dial produces a fresh connection per session; tests inject fakes.
	dial func() (Conn, error)

	in    *bufio.Scanner
	out   io.Writer
	paste bool
}

// UseClipboardInput makes the app read incoming codes from the clipboard
// instead of prompting on stdin, falling back to stdin when the clipboard is
// empty or unavailable.
func (a *App) UseClipboardInput(enabled bool) {
	a.paste = enabled
}

func NewApp(cfg config.ClientConfig, storages *store.Storages, services *service.Services, log *logger.Logger) *App {
	scanner := bufio.NewScanner(os.Stdin)
	// Коды сессии — одна длинная строка, стандартного буфера не хватает.
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	return &App{
		services: services,
		storages: storages,
		log:      log,
		dial: func() (Conn, error) {
			return transport.NewManager(transport.Config{
				ICEServers:      cfg.Transport.ICEServers,
				RelayUsername:   cfg.Transport.RelayUsername,
				RelayCredential: cfg.Transport.RelayCredential,
				ConnectTimeout:  cfg.Transport.ConnectTimeout,
			}, log)
		},
		in:  scanner,
		out: os.Stdout,
	}
}

// RunSync connects to the paired device and runs one incremental sync. The
// sync cursor moves to the session's start time only after the session
// succeeds, so an interrupted sync is retried from the previous cursor.
func (a *App) RunSync(ctx context.Context, role Role) error {
	householdID, _, err := a.storages.Meta.Household(ctx)
	if err != nil {
		return fmt.Errorf("read pairing state: %w", err)
	}
	if householdID == "" {
		return ErrNotPaired
	}

	conn, err := a.connect(ctx, role)
	if err != nil {
		return a.report(err)
	}
	defer conn.Close()

	since, err := a.storages.Meta.LastSyncAt(ctx)
	if err != nil {
		return fmt.Errorf("read sync cursor: %w", err)
	}

	start := utils.NowMillis()
	summary, err := a.services.SyncSession.Run(ctx, conn, since, a.progressPrinter())
	if err != nil {
		return a.report(err)
	}
	if err = a.storages.Meta.SetLastSyncAt(ctx, start); err != nil {
		return fmt.Errorf("move sync cursor: %w", err)
	}

	a.printSummary(summary)
	return nil
}

// RunPair runs the pairing handshake and the first sync. The offering side
// initiates the link; the joining side is asked to confirm it.
func (a *App) RunPair(ctx context.Context, role Role) error {
	conn, err := a.connect(ctx, role)
	if err != nil {
		return a.report(err)
	}
	defer conn.Close()

	var summary models.MergeSummary
	if role == RoleOffer {
		fmt.Fprintln(a.out, faintStyle.Render("waiting for the other device to accept..."))
		summary, err = a.services.PairingSession.RunInitiator(ctx, conn)
	} else {
		summary, err = a.services.PairingSession.RunResponder(ctx, conn, a.confirmLink)
	}
	if err != nil {
		return a.report(err)
	}

	fmt.Fprintln(a.out, successStyle.Render("devices are paired"))
	a.printSummary(summary)
	return nil
}

// RunSendBackup transmits a full backup of this device and waits for the
// receiver's confirmation.
func (a *App) RunSendBackup(ctx context.Context, role Role) error {
	conn, err := a.connect(ctx, role)
	if err != nil {
		return a.report(err)
	}
	defer conn.Close()

	imported, err := a.services.TransferSession.RunSender(ctx, conn, a.progressPrinter())
	if err != nil {
		return a.report(err)
	}

	fmt.Fprintln(a.out, successStyle.Render(fmt.Sprintf("the other device imported %d records", imported)))
	return nil
}

// RunReceiveBackup waits for one full backup and imports it in the given
// mode.
func (a *App) RunReceiveBackup(ctx context.Context, role Role, mode service.ImportMode) error {
	conn, err := a.connect(ctx, role)
	if err != nil {
		return a.report(err)
	}
	defer conn.Close()

	imported, err := a.services.TransferSession.RunReceiver(ctx, conn, mode, a.progressPrinter())
	if err != nil {
		return a.report(err)
	}

	fmt.Fprintln(a.out, successStyle.Render(fmt.Sprintf("imported %d records", imported)))
	return nil
}

// connect performs the out-of-band descriptor exchange for the given role
// and blocks until the data channel is open.
func (a *App) connect(ctx context.Context, role Role) (Conn, error) {
	conn, err := a.dial()
	if err != nil {
		return nil, fmt.Errorf("create connection: %w", err)
	}

	switch role {
	case RoleOffer:
		offer, err := conn.CreateOffer(ctx)
		if err != nil {
			conn.Close()
			return nil, err
		}
		a.showCode("your connection code", offer)

		answer, err := a.readCode("paste the answer code from the other device")
		if err != nil {
			conn.Close()
			return nil, err
		}
		if err = conn.CompleteConnection(ctx, answer); err != nil {
			conn.Close()
			return nil, err
		}

	case RoleJoin:
		offer, err := a.readCode("paste the connection code from the other device")
		if err != nil {
			conn.Close()
			return nil, err
		}
		answer, err := conn.AcceptOffer(ctx, offer)
		if err != nil {
			conn.Close()
			return nil, err
		}
		a.showCode("your answer code", answer)

	default:
		conn.Close()
		return nil, fmt.Errorf("unknown role %q", role)
	}

	fmt.Fprintln(a.out, faintStyle.Render("connecting..."))
	if err = conn.WaitOpen(ctx); err != nil {
		conn.Close()
		return nil, err
	}

	fmt.Fprintln(a.out, successStyle.Render("connected"))
	return conn, nil
}

// showCode renders a descriptor and mirrors it to the clipboard. Clipboard
// support is absent on headless systems, so a failure only logs.
func (a *App) showCode(title, code string) {
	fmt.Fprintln(a.out, titleStyle.Render(title))
	fmt.Fprintln(a.out, codeStyle.Render(code))

	if err := clipboard.WriteAll(code); err != nil {
		a.log.Debug().Str("func", "showCode").Err(err).Msg("clipboard unavailable")
		return
	}
	fmt.Fprintln(a.out, faintStyle.Render("(copied to clipboard)"))
}

// readCode obtains a peer descriptor code, preferring the clipboard when
// clipboard input is enabled.
func (a *App) readCode(prompt string) (string, error) {
	if a.paste {
		code, err := clipboard.ReadAll()
		if err == nil && strings.TrimSpace(code) != "" {
			fmt.Fprintln(a.out, faintStyle.Render("(code taken from clipboard)"))
			return strings.TrimSpace(code), nil
		}
		if err != nil {
			a.log.Debug().Str("func", "readCode").Err(err).Msg("clipboard unavailable")
		}
	}
	return a.readLine(prompt)
}

func (a *App) readLine(prompt string) (string, error) {
	fmt.Fprintln(a.out, promptStyle.Render(prompt+":"))
	if !a.in.Scan() {
		if err := a.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", errors.New("input closed")
	}
	return strings.TrimSpace(a.in.Text()), nil
}

// confirmLink asks the local user whether to accept an incoming pairing
// request.
func (a *App) confirmLink(request models.LinkRequest) bool {
	answer, err := a.readLine(fmt.Sprintf("device %s wants to pair with you, accept? [y/N]", request.DeviceID))
	if err != nil {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}

// progressPrinter renders in-place frame progress for long transfers.
func (a *App) progressPrinter() func(models.SyncProgress) {
	return func(p models.SyncProgress) {
		verb := "sending"
		if p.Direction == "receive" {
			verb = "receiving"
		}
		fmt.Fprintf(a.out, "\r%s", faintStyle.Render(fmt.Sprintf("%s %d/%d", verb, p.FramesDone, p.FramesTotal)))
		if p.FramesTotal > 0 && p.FramesDone >= p.FramesTotal {
			fmt.Fprintln(a.out)
		}
	}
}

func (a *App) printSummary(s models.MergeSummary) {
	fmt.Fprintln(a.out, fmt.Sprintf("sent %d, received %d, applied %d", s.TotalSent, s.TotalReceived, s.TotalUpserted))
}

// report maps a session error onto its user-facing message and preserves the
// original for logs and callers.
func (a *App) report(err error) error {
	fmt.Fprintln(a.out, errorStyle.Render(app.Describe(err)))
	return err
}
