// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/mealctl/internal/cache"
	"github.com/staranto/mealctl/internal/meta"
	"github.com/staranto/mealctl/internal/web"
)

// ServeCommandAction serves the recipe pages until interrupted.
func ServeCommandAction(ctx context.Context, cmd *cli.Command) error {
	client, release, err := NewService(ctx, cmd)
	if err != nil {
		return err
	}
	defer release()

	srv, err := web.NewServer(client, cmd.String("prefix"))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{
		"listen":   cmd.String("listen"),
		"prefix":   srv.Prefix(),
		"upstream": client.BaseURL(),
	}).Info("starting server")
	return srv.ListenAndServe(ctx, cmd.String("listen"))
}

func ServeCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    "listen",
			Usage:   "address to listen on",
			Sources: configSources("serve", "listen"),
			Value:   ":8080",
		},
		&cli.StringFlag{
			Name:    "prefix",
			Usage:   "route basename",
			Sources: configSources("serve", "prefix"),
			Value:   web.DefaultPrefix,
		},
	}
	flags = append(flags, NewServiceFlags("serve", cache.StoreMemory)...)

	return &cli.Command{
		Name:      "serve",
		Usage:     "serve the recipe browser over http",
		UsageText: "mealctl serve [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags:  flags,
		Action: ServeCommandAction,
	}
}
