// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/MKhiriev/bijukaru-sync/internal/logger"
	"github.com/MKhiriev/bijukaru-sync/internal/service"
	"github.com/MKhiriev/bijukaru-sync/models"
)

const helpText = `commands:
  fav <media-source> <category-id>   mark a category as favourite
  like <id> [title]                  like an image
  show                               print the local state
  stats                              print connection statistics
  sync                               push the local state now
  reconnect                          reconnect after the client gave up
  quit                               disconnect and exit`

type App struct {
	sync service.ClientSyncService
	in   io.Reader

	outMu sync.Mutex
	out   io.Writer

	logger *logger.Logger
}

func NewApp(services *service.ClientServices, in io.Reader, out io.Writer, logger *logger.Logger) *App {
	return &App{
		sync:   services.SyncService,
		in:     in,
		out:    out,
		logger: logger,
	}
}

func (a *App) Run(ctx context.Context, token string) error {
	a.sync.OnChange(func(s models.SyncedState) {
		size := models.SizeOf(s)
		a.printf("state changed: %d favourite sources, %d liked images\n", size.Favourites, size.LikedImages)
	})

	if err := a.sync.Start(ctx, token); err != nil {
		if errors.Is(err, service.ErrNoToken) || errors.Is(err, service.ErrTokenMalformed) {
			return err
		}
		a.printf("offline: %v (retrying in background)\n", err)
	}
	defer func() {
		if err := a.sync.Stop(); err != nil {
			a.logger.Err(err).Msg("error disconnecting")
		}
	}()

	a.printf("syncing device token %s, type help for commands\n", token)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := a.readLines(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if quit := a.exec(ctx, line); quit {
				return nil
			}
		}
	}
}

func (a *App) readLines(ctx context.Context) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(a.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			a.logger.Err(err).Msg("error reading input")
		}
	}()
	return lines
}

// exec runs one command line and reports whether the console should exit.
func (a *App) exec(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	var err error
	switch cmd, args := strings.ToLower(fields[0]), fields[1:]; cmd {
	case "quit", "exit":
		return true
	case "help":
		a.printf("%s\n", helpText)
	case "fav":
		if len(args) != 2 {
			a.printf("usage: fav <media-source> <category-id>\n")
			return false
		}
		err = a.sync.AddFavourite(ctx, args[0], args[1])
	case "like":
		if len(args) == 0 {
			a.printf("usage: like <id> [title]\n")
			return false
		}
		err = a.sync.LikeItem(ctx, models.LikedItem{ID: args[0], Title: strings.Join(args[1:], " ")})
	case "show":
		var payload []byte
		if payload, err = a.sync.State().Encode(); err == nil {
			a.printf("%s\n", payload)
		}
	case "stats":
		a.printStats(a.sync.Stats())
	case "sync":
		err = a.sync.ForceSync(ctx)
	case "reconnect":
		err = a.sync.Reconnect(ctx)
	default:
		a.printf("unknown command %q, type help for commands\n", cmd)
	}

	if err != nil {
		a.printf("error: %v\n", err)
	}
	return false
}

func (a *App) printStats(s service.ClientStats) {
	a.printf("status: %s\nserver: %s\ntoken: %s\nreconnect attempts: %d\nfavourite sources: %d\nliked images: %d\n",
		s.Status, s.URL, s.Token, s.ReconnectAttempts, s.DataSize.Favourites, s.DataSize.LikedImages)
}

func (a *App) printf(format string, args ...any) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	_, _ = fmt.Fprintf(a.out, format, args...)
}
