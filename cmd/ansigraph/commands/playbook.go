package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ansigraph/ansigraph/config"
	"github.com/ansigraph/ansigraph/errors"
	"github.com/ansigraph/ansigraph/gitinfo"
	"github.com/ansigraph/ansigraph/graph"
	"github.com/ansigraph/ansigraph/logger"
	"github.com/ansigraph/ansigraph/sym"
	"github.com/ansigraph/ansigraph/walk"
	"github.com/spf13/cobra"
)

// PlaybookCmd represents the playbook (single-entry) command
var PlaybookCmd = &cobra.Command{
	Use:   "playbook <playbook.yml>",
	Short: sym.Play + " Graph a single playbook and everything it reaches",
	Long: sym.Play + ` playbook — Graph a single playbook and everything it reaches

Reads one playbook, follows its includes recursively, and expands plays into
their task sections. The entry playbook's cluster is highlighted green.

Examples:
  ansigraph playbook playbooks/byo/config.yml
  ansigraph playbook site.yml --role-deps
  ansigraph playbook site.yml --no-roles --format svg`,
	Args: cobra.ExactArgs(1),
	RunE: runPlaybook,
}

var (
	playbookNoRolesFlag   bool
	playbookRoleDepsFlag  bool
	playbookFormatsFlag   []string
	playbookOutputDirFlag string
)

func init() {
	PlaybookCmd.Flags().BoolVar(&playbookNoRolesFlag, "no-roles", false, "Summarize roles as a count instead of listing them")
	PlaybookCmd.Flags().BoolVar(&playbookRoleDepsFlag, "role-deps", false, "Follow role dependency chains from meta/main.yml")
	PlaybookCmd.Flags().StringArrayVar(&playbookFormatsFlag, "format", nil, "Image format to render (repeatable; overrides config)")
	PlaybookCmd.Flags().StringVar(&playbookOutputDirFlag, "output-dir", "", "Directory for generated files (overrides config)")
}

func runPlaybook(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}
	if playbookNoRolesFlag {
		cfg.Roles.Display = false
	}
	if playbookRoleDepsFlag {
		cfg.Roles.DisplayDeps = true
	}
	applyOutputFlags(&cfg.Output, playbookFormatsFlag, playbookOutputDirFlag)

	path, err := filepath.Abs(args[0])
	if err != nil {
		return errors.Wrapf(err, "bad playbook path %s", args[0])
	}
	if _, err := os.Stat(path); err != nil {
		return errors.Wrapf(err, "cannot access %s", path)
	}

	// Node keys are repo-relative, so the walk is anchored at the repo root
	// rather than the playbook's own directory.
	root, err := gitinfo.RepoRoot(filepath.Dir(path))
	if err != nil {
		return errors.Wrapf(err, "%s is not inside a git repository", path)
	}

	checkout := checkoutLabel(root)
	title := fmt.Sprintf("%s (%s)", filepath.Base(path), checkout)

	attrs := graph.RootAttrs("TB")
	attrs["size"] = "300,300"
	attrs["dpi"] = "96"
	g := graph.New(title, attrs)
	g.NodeDefaults = graph.DefaultNodeAttrs()

	w := walk.NewWalker(cfg, logger.Logger, root)
	if err := w.AddPlaybook(g, path, ""); err != nil {
		return err
	}

	logger.Infow("graph built",
		"nodes", g.NodeCount(), "edges", g.EdgeCount(), "subgraphs", g.SubgraphCount())

	return writeOutputs(cmd.Context(), g, &cfg.Output, playbookBaseName(checkout, path))
}

// playbookBaseName builds an output name like 2017-03-14-3.5.32-byo_config
// from the checkout label and the playbook's parent dir and file name.
func playbookBaseName(checkout, path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	parent := filepath.Base(filepath.Dir(path))
	return fmt.Sprintf("%s-%s_%s", checkout, parent, stem)
}
