// Package completion provides shell completion generation commands.
package completion

import (
	"io"

	"github.com/spf13/cobra"
)

// shell describes one supported shell and how to install its script.
type shell struct {
	name    string
	title   string
	install string
	gen     func(root *cobra.Command, w io.Writer) error
}

var shells = []shell{
	{
		name:  "bash",
		title: "bash",
		install: `  # Load in current session
  source <(bbm completion bash)

  # Install permanently (Linux)
  bbm completion bash | sudo tee /etc/bash_completion.d/bbm > /dev/null

  # Install permanently (macOS with Homebrew)
  bbm completion bash > $(brew --prefix)/etc/bash_completion.d/bbm`,
		gen: func(root *cobra.Command, w io.Writer) error {
			return root.GenBashCompletion(w)
		},
	},
	{
		name:  "zsh",
		title: "zsh",
		install: `  # Enable completion if not already enabled
  echo "autoload -U compinit; compinit" >> ~/.zshrc

  # Install permanently
  bbm completion zsh > "${fpath[1]}/_bbm"`,
		gen: func(root *cobra.Command, w io.Writer) error {
			return root.GenZshCompletion(w)
		},
	},
	{
		name:  "fish",
		title: "fish",
		install: `  # Load in current session
  bbm completion fish | source

  # Install permanently
  bbm completion fish > ~/.config/fish/completions/bbm.fish`,
		gen: func(root *cobra.Command, w io.Writer) error {
			return root.GenFishCompletion(w, true)
		},
	},
	{
		name:  "powershell",
		title: "PowerShell",
		install: `  # Load in current session
  bbm completion powershell | Out-String | Invoke-Expression

  # Install permanently
  bbm completion powershell >> $PROFILE`,
		gen: func(root *cobra.Command, w io.Writer) error {
			return root.GenPowerShellCompletionWithDesc(w)
		},
	},
}

// NewCmdCompletion creates the completion command.
func NewCmdCompletion() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for bbm.

These scripts enable tab-completion for commands, flags, and arguments.
See each sub-command's help for installation instructions.`,
	}

	for _, s := range shells {
		cmd.AddCommand(newCmdShell(s))
	}

	return cmd
}

func newCmdShell(s shell) *cobra.Command {
	return &cobra.Command{
		Use:                   s.name,
		Short:                 "Generate " + s.title + " completion script",
		Long:                  "Generate " + s.title + " completion script for bbm.",
		Example:               s.install,
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return s.gen(cmd.Root(), cmd.OutOrStdout())
		},
	}
}
