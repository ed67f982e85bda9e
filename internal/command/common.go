// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/apex/log"
	"github.com/hashicorp/jsonapi"
	"github.com/urfave/cli/v3"

	"github.com/staranto/mealctl/internal/attrs"
	"github.com/staranto/mealctl/internal/cache"
	"github.com/staranto/mealctl/internal/config"
	"github.com/staranto/mealctl/internal/mealdb"
	"github.com/staranto/mealctl/internal/meta"
	"github.com/staranto/mealctl/internal/output"
)

// DumpSchemaIfRequested prints the attrs of t when --schema is set, and
// returns true if it handled the request.
func DumpSchemaIfRequested(cmd *cli.Command, t reflect.Type) bool {
	if cmd.Bool("schema") {
		output.DumpSchema(Writer(cmd), "", t)
		return true
	}
	return false
}

// BuildAttrs constructs an AttrList with defaults and optional extras from
// --attrs, then applies the global transform spec.
func BuildAttrs(cmd *cli.Command, defaults ...string) (attrs.AttrList, error) {
	var al attrs.AttrList
	for _, d := range defaults {
		if err := al.Set(d); err != nil {
			return nil, err
		}
	}
	if extras := cmd.String("attrs"); extras != "" {
		if err := al.Set(extras); err != nil {
			return nil, fmt.Errorf("invalid --attrs: %w", err)
		}
	}
	return al, al.SetGlobalTransformSpec()
}

// EmitJSONAPISlice marshals a slice as JSONAPI and passes it to the common
// output routine.
func EmitJSONAPISlice(results any, al attrs.AttrList, cmd *cli.Command) error {
	var raw bytes.Buffer
	if err := jsonapi.MarshalPayload(&raw, results); err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}
	return output.SliceDiceSpit(raw.Bytes(), al, output.OptionsFrom(cmd), "data", Writer(cmd))
}

// Writer is where command output goes, the root command's Writer or stdout.
func Writer(cmd *cli.Command) io.Writer {
	if cmd != nil {
		if root := cmd.Root(); root != nil && root.Writer != nil {
			return root.Writer
		}
	}
	return os.Stdout
}

// ErrWriter is where diagnostics go, the root command's ErrWriter or stderr.
func ErrWriter(cmd *cli.Command) io.Writer {
	if cmd != nil {
		if root := cmd.Root(); root != nil && root.ErrWriter != nil {
			return root.ErrWriter
		}
	}
	return os.Stderr
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// NewService builds the recipe client and its cache from the service flags.
// The returned func releases the cache and must be called.
func NewService(ctx context.Context, cmd *cli.Command) (*mealdb.Client, func(), error) {
	dir, _ := config.GetString("cache.dir", "")
	dbPath, _ := config.GetString("cache.db_path", "")
	bucket, _ := config.GetString("cache.bucket", "")
	prefix, _ := config.GetString("cache.prefix", "mealctl")
	region, _ := config.GetString("cache.region", "")
	profile, _ := config.GetString("cache.profile", "")
	endpoint, _ := config.GetString("cache.endpoint", "")

	rc, err := cache.Open(ctx, cache.Settings{
		Store:    cmd.String("cache-store"),
		TTL:      cmd.Duration("cache-ttl"),
		Dir:      dir,
		DBPath:   dbPath,
		Bucket:   bucket,
		Prefix:   prefix,
		Region:   region,
		Profile:  profile,
		Endpoint: endpoint,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open cache: %w", err)
	}

	client := mealdb.NewClient(
		mealdb.WithBaseURL(cmd.String("base-url")),
		mealdb.WithCache(rc),
	)
	release := func() {
		if rc == nil {
			return
		}
		if err := rc.Close(); err != nil {
			log.WithError(err).Warn("failed to close cache")
		}
	}
	return client, release, nil
}

// QueryCommandBuilder is a helper that constructs a cli.Command for query
// subcommands (sq, gq, dq, cq, aq) using a consistent pattern. The builder
// wires metadata, the schema, service and global flags, and the validators.
type QueryCommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	Flags     []cli.Flag
	Action    func(context.Context, *cli.Command) error
	Meta      meta.Meta
}

// Build returns a configured cli.Command from the builder.
func (qcb *QueryCommandBuilder) Build() *cli.Command {
	flags := append([]cli.Flag{schemaFlag}, qcb.Flags...)
	flags = append(flags, NewServiceFlags(qcb.Name, cache.StoreFile)...)
	flags = append(flags, NewGlobalFlags(qcb.Name)...)

	return &cli.Command{
		Name:      qcb.Name,
		Usage:     qcb.Usage,
		UsageText: qcb.UsageText,
		Metadata: map[string]any{
			"meta": qcb.Meta,
		},
		Flags: flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: qcb.Action,
	}
}

// QueryActionRunner[T] encapsulates the common query action: schema short
// circuit, attrs, service setup, fetch and emission. FetchFn only has to get
// the data.
type QueryActionRunner[T any] struct {
	CommandName  string
	SchemaType   reflect.Type
	DefaultAttrs []string
	FetchFn      func(context.Context, *cli.Command, *mealdb.Client) ([]T, error)
}

// Run executes the query action with the provided context and command.
func (qar *QueryActionRunner[T]) Run(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if DumpSchemaIfRequested(cmd, qar.SchemaType) {
		return nil
	}

	al, err := BuildAttrs(cmd, qar.DefaultAttrs...)
	if err != nil {
		return err
	}
	log.Debugf("attrs: %v", al.String())

	client, release, err := NewService(ctx, cmd)
	if err != nil {
		return err
	}
	defer release()

	results, err := qar.FetchFn(ctx, cmd, client)
	if err != nil {
		return err
	}

	return EmitJSONAPISlice(results, al, cmd)
}
