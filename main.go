// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/apex/log"

	"github.com/staranto/mealctl/internal/command"
	"github.com/staranto/mealctl/internal/config"
	mylog "github.com/staranto/mealctl/internal/log"
)

// version is stamped at build time with -ldflags "-X main.version=...".
var version = "dev"

var ctx = context.Background()

func main() {
	os.Exit(realMain(os.Args))
}

func realMain(args []string) int {
	mylog.InitLogger()

	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "No command specified.")
		args = append(args, "--help")
	} else {
		args = mangleArguments(args)
	}

	// Short-circuit --version/-v.
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version)
			return 0
		}
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	return 0
}

// mangleArguments splices a named argument set from the config into args.
// "@name" anywhere after the command selects <command>.name; without one,
// <command>.defaults is used if present. The set is inserted right after the
// command so explicit flags still win.
func mangleArguments(args []string) []string {
	// We know the first two args are going to be the executable and command.
	out := make([]string, 2, len(args)+4) //nolint:mnd
	copy(out, args[:2])

	// Short-circuit for --help/-h. If help is requested, just keep the preamble
	// and add --help flag.
	for _, a := range args {
		if a == "--help" || a == "-h" {
			return append(out, "--help")
		}
	}
	if strings.HasPrefix(args[1], "-") {
		return args
	}

	set := "defaults"
	var rest []string
	for _, a := range args[2:] {
		if len(a) > 1 && strings.HasPrefix(a, "@") {
			set = a[1:]
			continue
		}
		rest = append(rest, a)
	}

	setArgs, _ := config.GetStringSlice(args[1] + "." + set)
	for _, arg := range setArgs {
		out = append(out, strings.Fields(arg)...)
	}
	out = append(out, rest...)

	log.Debugf("set=%s, args=%v", set, out)
	return out
}
