// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/bijukaru-sync/internal/adapter"
	"github.com/MKhiriev/bijukaru-sync/internal/client"
	"github.com/MKhiriev/bijukaru-sync/internal/config"
	"github.com/MKhiriev/bijukaru-sync/internal/logger"
	"github.com/MKhiriev/bijukaru-sync/internal/service"
	"github.com/MKhiriev/bijukaru-sync/internal/store"
	"github.com/MKhiriev/bijukaru-sync/models"
)

var errTokenRequired = errors.New("device token is required: pass --token or set ADAPTER_TOKEN")

// cliContext is shared by every subcommand once flags are parsed.
type cliContext struct {
	overrides config.StructuredConfig
	cfg       *config.StructuredConfig
	log       *logger.Logger
	newLogger func(role string) *logger.Logger
}

// load resolves the configuration once flags are parsed.
func (c *cliContext) load() error {
	cfg, err := config.GetClientConfig(&c.overrides)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.log = c.newLogger("bijukaru-sync-client")
	return nil
}

func newRootCmd(buildInfo models.AppBuildInfo, newLogger func(role string) *logger.Logger) *cobra.Command {
	cli := &cliContext{newLogger: newLogger}

	root := &cobra.Command{
		Use:          "bijukaru-client",
		Short:        "Sync favourites and liked images across devices",
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&cli.overrides.Adapter.HTTPAddress, "server", "s", "", "sync server base URL")
	flags.StringVarP(&cli.overrides.Adapter.Token, "token", "t", "", "device token")
	flags.StringVar(&cli.overrides.Storage.DB.DSN, "db", "", "local cache database (SQLite path or postgres:// DSN)")
	flags.StringVarP(&cli.overrides.JSONFilePath, "config", "c", "", "path to a JSON or YAML config file")

	root.AddCommand(
		newVersionCmd(buildInfo),
		newTokenCmd(cli),
		newStatusCmd(cli),
		newRunCmd(cli),
	)

	return root
}

func newVersionCmd(buildInfo models.AppBuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), buildInfo)
		},
	}
}

func newTokenCmd(cli *cliContext) *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Ask the server for a new device token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := cli.load(); err != nil {
				return err
			}
			serverAdapter, err := adapter.NewHTTPServerAdapter(cli.cfg.Adapter, cli.log)
			if err != nil {
				return err
			}

			token, err := serverAdapter.GenerateToken(cmd.Context())
			if err != nil {
				return fmt.Errorf("error generating token: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
}

func newStatusCmd(cli *cliContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the server-side status of the device token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := cli.load(); err != nil {
				return err
			}
			token := cli.cfg.Adapter.Token
			if token == "" {
				return errTokenRequired
			}

			serverAdapter, err := adapter.NewHTTPServerAdapter(cli.cfg.Adapter, cli.log)
			if err != nil {
				return err
			}

			status, err := serverAdapter.GetStatus(cmd.Context(), token)
			if err != nil {
				return fmt.Errorf("error getting status: %w", err)
			}

			lastUpdated := "never"
			if status.LastUpdated != nil {
				lastUpdated = fmt.Sprintf("%d", *status.LastUpdated)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "connected devices: %d\nlast updated: %s\nfavourite sources: %d\nliked images: %d\n",
				status.Connected, lastUpdated, status.DataSize.Favourites, status.DataSize.LikedImages)
			return nil
		},
	}
}

func newRunCmd(cli *cliContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Sync the device interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := cli.load(); err != nil {
				return err
			}
			cfg := cli.cfg
			if cfg.Adapter.Token == "" {
				return errTokenRequired
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			agent, err := adapter.NewSyncAgent(cfg.Adapter, cfg.Server.MaxMessageBytes, cli.log)
			if err != nil {
				return err
			}

			storages, err := store.NewClientStorages(ctx, cfg.Storage, cli.log)
			if err != nil {
				return fmt.Errorf("error creating local storage: %w", err)
			}
			defer func() {
				if err := storages.Close(); err != nil {
					cli.log.Err(err).Msg("error closing local storage")
				}
			}()

			services := service.NewClientServices(storages, agent, *cfg, cli.log)
			app := client.NewApp(services, cmd.InOrStdin(), cmd.OutOrStdout(), cli.log)

			return app.Run(ctx, cfg.Adapter.Token)
		},
	}
}
