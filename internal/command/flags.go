// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/mealctl/internal/cache"
	"github.com/staranto/mealctl/internal/config"
	"github.com/staranto/mealctl/internal/mealdb"
)

func init() {
	cfg, _ = config.Load("")
}

var (
	cfg config.Type

	schemaFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "schema",
		Usage:       "dump the attrs available to --attrs",
		HideDefault: true,
	}
)

// NewGlobalFlags returns the presentation flags shared by every query
// command. params[0] is the command name used to namespace config keys.
func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	ns := params[0]
	flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of attributes to include in results",
			Validator: func(value string) error {
				return FlagValidators(value, JammedFlagValidator)
			},
		},
		&cli.BoolWithInverseFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Sources: configSources(ns, "color"),
			Value:   false,
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
			Validator: func(value string) error {
				return FlagValidators(value, JammedFlagValidator)
			},
		},
		&cli.BoolFlag{
			Name:        "local",
			Usage:       "render timestamps in the local timezone",
			HideDefault: true,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format (text, json, yaml, raw)",
			Sources: configSources(ns, "output"),
			Value:   "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of attributes to sort the results by",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+".sort", altsrc.StringSourcer(cfg.Source)),
			),
		},
		&cli.BoolWithInverseFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Sources: configSources(ns, "titles"),
			Value:   false,
		},
	}

	return
}

// NewServiceFlags returns the flags that select the upstream API and the
// response cache.
func NewServiceFlags(ns, store string) []cli.Flag {
	return []cli.Flag{
		NameSpacedValueChainFlagFromConfigFile(ns, "base_url", cfg.Source, &cli.StringFlag{
			Name:    "base-url",
			Usage:   "recipe API root",
			Sources: cli.NewValueSourceChain(cli.EnvVar("MEALCTL_BASE_URL")),
			Value:   mealdb.DefaultBaseURL,
		}),
		&cli.StringFlag{
			Name:  "cache-store",
			Usage: "response cache store (memory, file, sqlite, s3, none)",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("MEALCTL_CACHE_STORE"),
				yaml.YAML(ns+".cache.store", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("cache.store", altsrc.StringSourcer(cfg.Source)),
			),
			Value: store,
			Validator: func(value string) error {
				return FlagValidators(value, CacheStoreValidator)
			},
		},
		&cli.DurationFlag{
			Name:  "cache-ttl",
			Usage: "how long a cached response is served",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("MEALCTL_CACHE_TTL"),
				yaml.YAML(ns+".cache.ttl", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("cache.ttl", altsrc.StringSourcer(cfg.Source)),
			),
			Value: cache.DefaultTTL,
		},
	}
}

// configSources looks up key under the command namespace first, then at the
// top level of the config file.
func configSources(ns, key string) cli.ValueSourceChain {
	return cli.NewValueSourceChain(
		yaml.YAML(ns+"."+key, altsrc.StringSourcer(cfg.Source)),
		yaml.YAML(key, altsrc.StringSourcer(cfg.Source)),
	)
}

// NameSpacedValueChainFlagFromConfigFile appends the namespaced and global
// config file sources for key to the flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns, key, path string, flag *cli.StringFlag) *cli.StringFlag {
	src := yaml.YAML(ns+"."+key, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	src = yaml.YAML(key, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}
