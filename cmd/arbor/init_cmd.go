package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "init [shell]",
		Short:     "Output shell integration",
		GroupID:   GroupConfig,
		ValidArgs: []string{"bash", "zsh", "fish"},
		Args:      cobra.MaximumNArgs(1),
		Long: `Output an 'ajump' shell function that changes directory.

'arbor' and 'arbor jump' print the selected worktree path on stdout, but a
subprocess cannot change its parent shell's directory. The wrapper wires the
printed path into a cd. The shell defaults to the 'shell' config field.`,
		Example: `  eval "$(arbor init bash)"        # add to ~/.bashrc
  eval "$(arbor init zsh)"         # add to ~/.zshrc
  arbor init fish | source         # add to ~/.config/fish/config.fish`,
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := cfg.Shell
			if len(args) > 0 {
				shell = args[0]
			}
			switch shell {
			case "bash":
				fmt.Print(bashInit)
			case "zsh":
				fmt.Print(zshInit)
			case "fish":
				fmt.Print(fishInit)
			case "":
				return fmt.Errorf("no shell given and none configured (supported: bash, zsh, fish)")
			default:
				return fmt.Errorf("unsupported shell: %s (supported: bash, zsh, fish)", shell)
			}
			return nil
		},
	}

	return cmd
}

const bashInit = `# arbor shell integration
# Install: eval "$(arbor init bash)"

ajump() {
    local dir
    if [[ $# -eq 0 ]]; then
        dir="$(command arbor)" && [[ -n "$dir" ]] && cd "$dir"
    else
        dir="$(command arbor jump "$@")" && [[ -n "$dir" ]] && cd "$dir"
    fi
}
`

const zshInit = `# arbor shell integration
# Install: eval "$(arbor init zsh)"

ajump() {
    local dir
    if [[ $# -eq 0 ]]; then
        dir="$(command arbor)" && [[ -n "$dir" ]] && cd "$dir"
    else
        dir="$(command arbor jump "$@")" && [[ -n "$dir" ]] && cd "$dir"
    fi
}
`

const fishInit = `# arbor shell integration
# Install: arbor init fish | source

function ajump --description 'Jump to an arbor worktree'
    if test (count $argv) -eq 0
        set -l dir (command arbor)
        and test -n "$dir"
        and cd $dir
    else
        set -l dir (command arbor jump $argv)
        and test -n "$dir"
        and cd $dir
    end
end
`
