// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/mealctl/internal/meta"
)

const bashCompletionScript = `# bash completion for mealctl
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_mealctl()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "sq gq dq cq aq ui serve cache completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--attrs -a --color -c --filter -f --output -o --sort -s --titles -t --local --schema"
    local service="--base-url --cache-store --cache-ttl"

    case "$cmd" in
        sq|cq|aq)
            local opts="$common $service"
            ;;
        gq)
            local opts="$common $service --category -C --area -A"
            ;;
        dq)
            local opts="$common $service --next --prev --copy"
            ;;
        ui)
            local opts="$service --sort --order"
            ;;
        serve)
            local opts="$service --listen --prefix"
            ;;
        cache)
            if [[ ${COMP_CWORD} -eq 2 ]]; then
                COMPREPLY=( $(compgen -W "stats ls clear" -- "$cur") )
                return 0
            fi
            local opts="$common $service --expired"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
            return 0
            ;;
        --cache-store)
            COMPREPLY=( $(compgen -W "memory file sqlite s3 none" -- "$cur") )
            return 0
            ;;
        --sort)
            if [[ "$cmd" == "ui" ]]; then
                COMPREPLY=( $(compgen -W "name category area" -- "$cur") )
                return 0
            fi
            ;;
    esac

    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
}

complete -F _mealctl mealctl
`

const zshCompletionScript = `#compdef mealctl

_mealctl() {
  local -a cmds
  cmds=(
    'sq:search recipes by name'
    'gq:gallery query by category and area'
    'dq:recipe detail query'
    'cq:category query'
    'aq:area query'
    'ui:interactive search'
    'serve:serve the recipe browser over http'
    'cache:inspect and clear the response cache'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-a --attrs)'{-a,--attrs}'[attributes to include]:attrs'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
  '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
  '(-t --titles)'{-t,--titles}'[show titles]'
  '--local[local timestamps]'
  '--schema[dump schema]'
  )

  local -a service
  service=(
  '--base-url[recipe API root]:url'
  '--cache-store[cache store]:store:(memory file sqlite s3 none)'
  '--cache-ttl[cache ttl]:duration'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'mealctl commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    sq)
      _arguments -C $common $service '*:query'
      ;;
    gq)
      _arguments -C $common $service \
        '*'{-C,--category}'[category]:category' \
        '*'{-A,--area}'[area]:area'
      ;;
    dq)
      _arguments -C $common $service \
        '(--prev)--next[next in category]' \
        '(--next)--prev[previous in category]' \
        '--copy[copy ingredients]' \
        '1:meal id'
      ;;
    cq|aq)
      _arguments -C $common $service
      ;;
    ui)
      _arguments -C $service '--sort[sort field]:field:(name category area)' '--order[sort order]:order:(asc desc)'
      ;;
    serve)
      _arguments -C $service '--listen[listen address]:addr' '--prefix[route prefix]:prefix'
      ;;
    cache)
      _arguments -C '1: :(stats ls clear)' $common $service '--expired[only expired]'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _mealctl mealctl
`

// CompletionCommandAction writes the completion script for the named shell,
// or for $SHELL when none is given.
func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := cmd.Args().First()
	if shell == "" {
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			shell = "zsh"
		case strings.HasSuffix(sh, "bash"):
			shell = "bash"
		}
	}

	w := Writer(cmd)
	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		fmt.Fprintln(ErrWriter(cmd), "usage: mealctl completion [bash|zsh]")
	}
	return nil
}

func CompletionCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "mealctl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}
