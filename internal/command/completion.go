// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/snapgpa/snapgpa/internal/meta"
)

const bashCompletionScript = `# bash completion for snapgpa
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_snapgpa()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "dump stats balances completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local filter="--pubkey -p --pubkeyfile -P --owner -O --format --profile --region"

    case "$cmd" in
        dump)
            local opts="$filter --output -o --noheader"
            ;;
        stats)
            local opts="$filter --color -c --sort -s --titles -t"
            ;;
        balances)
            local opts="--symbols --display --out-delim"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
    esac

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "csv tsv json yaml" -- "$cur") )
            return 0
            ;;
        --format)
            COMPREPLY=( $(compgen -W "auto zst lz4 gz bz2 tar" -- "$cur") )
            return 0
            ;;
        --display)
            COMPREPLY=( $(compgen -W "symbol name" -- "$cur") )
            return 0
            ;;
        --pubkeyfile|-P|--symbols)
            COMPREPLY=( $(compgen -f -- "$cur") )
            return 0
            ;;
    esac

    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    COMPREPLY=( $(compgen -f -- "$cur") )
    return 0
}

complete -F _snapgpa snapgpa
`

const zshCompletionScript = `#compdef snapgpa

_snapgpa() {
  local -a cmds
  cmds=(
    'dump:write matching accounts'
    'stats:summarize matching accounts per owner'
    'balances:export wallet balances from dump output'
    'completion:generate shell completion script'
  )

  local -a filter
  filter=(
    '*'{-p,--pubkey}'[account address]:pubkey'
    '(-P --pubkeyfile)'{-P,--pubkeyfile}'[file of addresses]:file:_files'
    '*'{-O,--owner}'[owner program filter]:owner'
    '--format[archive compression]:format:(auto zst lz4 gz bz2 tar)'
    '--profile[AWS profile]:profile'
    '--region[AWS region]:region'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'snapgpa commands' cmds
    return
  fi

  case $words[2] in
    dump)
      _arguments -C \
        $filter \
        '(-o --output)'{-o,--output}'[output format]:format:(csv tsv json yaml)' \
        '--noheader[omit header row]' \
        ':source:_files'
      ;;
    stats)
      _arguments -C \
        $filter \
        '(-c --color)'{-c,--color}'[enable colored text]' \
        '(-s --sort)'{-s,--sort}'[sort columns]:columns' \
        '(-t --titles)'{-t,--titles}'[show titles]' \
        ':source:_files'
      ;;
    balances)
      _arguments -C \
        '--symbols[symbols file]:file:_files' \
        '--display[token column]:display:(symbol name)' \
        '--out-delim[output delimiter]:delimiter' \
        ':input:_files' \
        ':output:_files'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
  esac
}

if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _snapgpa snapgpa
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
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

	switch shell {
	case "bash":
		fmt.Fprint(Stdout, bashCompletionScript)
	case "zsh":
		fmt.Fprint(Stdout, zshCompletionScript)
	default:
		fmt.Fprintln(os.Stderr, "usage: snapgpa completion [bash|zsh]")
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "snapgpa completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
