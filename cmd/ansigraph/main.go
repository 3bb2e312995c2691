package main

import (
	"fmt"
	"os"

	"github.com/ansigraph/ansigraph/cmd/ansigraph/commands"
	"github.com/ansigraph/ansigraph/logger"
	"github.com/spf13/cobra"
)

var (
	jsonFlag    bool
	verboseFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "ansigraph",
	Short: "Diagram Ansible playbook and role dependencies",
	Long: `ansigraph - Use Graphviz to diagram Ansible playbook/role dependencies.

Two drivers exist over the same graph model:
  folder   - Scan a whole playbook tree for a batch overview
  playbook - Follow one playbook's control flow in detail

Examples:
  ansigraph folder ~/src/openshift-ansible          # Graph the whole repository
  ansigraph playbook playbooks/byo/config.yml      # Graph one playbook
  ansigraph playbook site.yml --role-deps          # Expand role dependency chains`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logger.Initialize(jsonFlag); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		if verboseFlag {
			logger.SetVerbose()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "JSON diagnostics output")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Increase diagnostics verbosity")

	rootCmd.AddCommand(commands.FolderCmd)
	rootCmd.AddCommand(commands.PlaybookCmd)
}

func main() {
	defer logger.Cleanup()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
