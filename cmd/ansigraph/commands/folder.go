package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ansigraph/ansigraph/config"
	"github.com/ansigraph/ansigraph/errors"
	"github.com/ansigraph/ansigraph/folder"
	"github.com/ansigraph/ansigraph/graph"
	"github.com/ansigraph/ansigraph/logger"
	"github.com/ansigraph/ansigraph/sym"
	"github.com/spf13/cobra"
)

// FolderCmd represents the folder (whole-tree) command
var FolderCmd = &cobra.Command{
	Use:   "folder <repo-path>",
	Short: sym.Graph + " Graph a whole playbook folder tree",
	Long: sym.Graph + ` folder — Graph a whole playbook folder tree

Scans <repo-path>/playbooks for playbook files and directories, adds include
and role edges, and clusters the roles directory with its dependency links.

Examples:
  ansigraph folder ~/src/openshift-ansible
  ansigraph folder . --exclude-unsupported
  ansigraph folder . --format png --format svg`,
	Args: cobra.ExactArgs(1),
	RunE: runFolder,
}

var (
	folderPlaybookDirFlag        string
	folderExcludeUnsupportedFlag bool
	folderFormatsFlag            []string
	folderOutputDirFlag          string
)

func init() {
	FolderCmd.Flags().StringVar(&folderPlaybookDirFlag, "playbook-dir", "playbooks", "Playbook directory relative to the repo root")
	FolderCmd.Flags().BoolVar(&folderExcludeUnsupportedFlag, "exclude-unsupported", false, "Leave unsupported-platform folders out instead of tagging them")
	FolderCmd.Flags().StringArrayVar(&folderFormatsFlag, "format", nil, "Image format to render (repeatable; overrides config)")
	FolderCmd.Flags().StringVar(&folderOutputDirFlag, "output-dir", "", "Directory for generated files (overrides config)")
}

func runFolder(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}
	if folderExcludeUnsupportedFlag {
		cfg.Scan.IncludeUnsupported = false
	}
	applyOutputFlags(&cfg.Output, folderFormatsFlag, folderOutputDirFlag)

	root, err := filepath.Abs(args[0])
	if err != nil {
		return errors.Wrapf(err, "bad repo path %s", args[0])
	}
	if _, err := os.Stat(root); err != nil {
		return errors.Wrapf(err, "cannot access %s", root)
	}

	checkout := checkoutLabel(root)
	title := fmt.Sprintf("%s (%s)", filepath.Base(root), checkout)

	attrs := graph.RootAttrs("LR")
	attrs["concentrate"] = "true"
	attrs["ranksep"] = "2.0"
	g := graph.New(title, attrs)
	g.NodeDefaults = graph.DefaultNodeAttrs()

	s := folder.NewScanner(cfg, logger.Logger)
	playbookDir := filepath.Join(root, folderPlaybookDirFlag)

	if err := s.AddFolder(g, playbookDir, root); err != nil {
		return err
	}
	if err := s.AddEdges(g, playbookDir, root); err != nil {
		return err
	}

	rolesDir := filepath.Join(root, cfg.Roles.Dir)
	if err := s.AddRoleCluster(g, rolesDir, root); err != nil {
		// A repo without a roles directory still graphs its playbooks
		logger.Warnw("no role cluster", "dir", rolesDir, "error", err)
	}
	if err := s.AddRoleLinks(g, playbookDir, root); err != nil {
		return err
	}

	logger.Infow("graph built",
		"nodes", g.NodeCount(), "edges", g.EdgeCount(), "subgraphs", g.SubgraphCount())

	return writeOutputs(cmd.Context(), g, &cfg.Output, checkout)
}

// applyOutputFlags lets per-run flags override the configured output options
func applyOutputFlags(out *config.OutputConfig, formats []string, dir string) {
	if len(formats) > 0 {
		out.Formats = formats
	}
	if dir != "" {
		out.Dir = dir
	}
	if out.Dir == "" {
		out.Dir = "."
	}
}
