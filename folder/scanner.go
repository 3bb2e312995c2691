// Package folder implements the batch tree scanner: one node per playbook
// file, one nested cluster per directory, plus include, role-invocation, and
// role-dependency edges gathered in separate passes over the same tree.
package folder

import (
	"os"
	"path/filepath"

	"github.com/ansigraph/ansigraph/config"
	"github.com/ansigraph/ansigraph/errors"
	"github.com/ansigraph/ansigraph/graph"
	"github.com/ansigraph/ansigraph/playbook"
	"go.uber.org/zap"
)

// container is the part of the graph a folder scan writes into; both
// *graph.Graph and *graph.Subgraph satisfy it, which lets the node pass
// recurse from the root into nested clusters.
type container interface {
	AddNode(key, label string, attrs graph.Attrs) *graph.Node
	Subgraph(key, label string, attrs graph.Attrs) *graph.Subgraph
}

// Scanner walks a playbook tree and populates a graph. It holds no state
// across calls beyond its configuration; the graph being built carries
// everything else.
type Scanner struct {
	cfg    *config.Config
	reader *playbook.Reader
	logger *zap.SugaredLogger
}

// NewScanner creates a Scanner bound to a configuration snapshot.
func NewScanner(cfg *config.Config, logger *zap.SugaredLogger) *Scanner {
	return &Scanner{
		cfg:    cfg,
		reader: playbook.NewReader(&cfg.Scan),
		logger: logger.Named("folder"),
	}
}

// AddFolder adds a node for every eligible file under dir and a nested
// cluster for every non-deny-listed directory, recursing depth-first.
// Failure to list dir itself is the caller's problem; deeper listing
// failures are logged and skipped.
func (s *Scanner) AddFolder(g *graph.Graph, dir, root string) error {
	return s.addFolder(g, dir, root)
}

func (s *Scanner) addFolder(c container, dir, root string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.Wrapf(err, "failed to list %s", dir)
	}

	for _, entry := range entries {
		name := entry.Name()
		path := filepath.Join(dir, name)
		switch {
		case !entry.IsDir():
			if s.cfg.Scan.HasExtension(name) && !s.cfg.Scan.SkipFile(name) {
				c.AddNode(graph.ShortName(path, root), name, nil)
			}
		case !s.cfg.Scan.SkipFolder(name):
			sub := s.addSubgraph(c, path, root)
			if err := s.addFolder(sub, path, root); err != nil {
				s.logger.Warnw("skipping unreadable directory", "dir", path, "error", err)
			}
		}
	}
	return nil
}

// addSubgraph creates or fetches the cluster for a directory, tagging
// unsupported-platform folders with a warning style.
func (s *Scanner) addSubgraph(c container, dir, root string) *graph.Subgraph {
	name := graph.ShortName(dir, root)
	label := filepath.Base(dir)
	attrs := graph.SubgraphAttrs()
	if s.cfg.Scan.Unsupported(label) {
		label += " (unsupported)"
		attrs = graph.UnsupportedSubgraphAttrs()
	}
	return c.Subgraph(graph.ClusterKey(name), label, attrs)
}

// AddEdges walks the tree a second time, after all nodes exist, and adds an
// include edge for every include statement found at the top level of a
// record or one level down in a play's task list. Includes that resolve to
// no known node get a visibly-marked stub so the diagram surfaces the
// dangling reference.
func (s *Scanner) AddEdges(g *graph.Graph, dir, root string) error {
	return s.walkFiles(dir, func(path string) {
		s.addIncludeEdges(g, path, root)
	})
}

func (s *Scanner) addIncludeEdges(g *graph.Graph, path, root string) {
	records, ok := s.read(path)
	if !ok {
		return
	}

	fileKey := graph.ShortName(path, root)
	for _, rec := range records {
		if inc := playbook.StringValue(rec, "include"); inc != "" {
			s.linkInclude(g, fileKey, path, root, inc)
		}
		for _, task := range playbook.Tasks(playbook.ListValue(rec, "tasks")) {
			if inc := playbook.StringValue(task, "include"); inc != "" {
				s.linkInclude(g, fileKey, path, root, inc)
			}
		}
	}
}

func (s *Scanner) linkInclude(g *graph.Graph, fileKey, path, root, include string) {
	resolved := filepath.Join(filepath.Dir(path), playbook.IncludeTarget(include))
	targetKey := graph.ShortName(resolved, root)
	if !g.HasNode(targetKey) {
		s.logger.Warnw("include points at a non-existent playbook",
			"file", fileKey, "target", targetKey)
		g.AddNode(targetKey, "Non-existent: "+targetKey, graph.StubNodeAttrs())
	}
	g.AddEdge(fileKey, targetKey, nil)
}

// AddRoleLinks walks the tree again and adds a role-invocation edge from
// each file to roles/<name> for every role its plays list. Role nodes are
// created by AddRoleCluster; no existence check happens here.
func (s *Scanner) AddRoleLinks(g *graph.Graph, dir, root string) error {
	return s.walkFiles(dir, func(path string) {
		s.addRoleLinks(g, path, root)
	})
}

func (s *Scanner) addRoleLinks(g *graph.Graph, path, root string) {
	records, ok := s.read(path)
	if !ok {
		return
	}

	fileKey := graph.ShortName(path, root)
	for _, rec := range records {
		for _, entry := range playbook.ListValue(rec, "roles") {
			name := playbook.RoleName(entry)
			if name == "" {
				s.logger.Warnw("unusable role entry", "file", fileKey, "entry", entry)
				continue
			}
			g.AddEdge(fileKey, roleKey(name), graph.RoleEdgeAttrs())
		}
	}
}

// AddRoleCluster creates the roles cluster with one node per role directory,
// then adds a role-dependency edge for every dependency a role's meta file
// declares. A missing meta file or a meta file without a dependencies key
// means no dependencies.
func (s *Scanner) AddRoleCluster(g *graph.Graph, rolesDir, root string) error {
	entries, err := os.ReadDir(rolesDir)
	if err != nil {
		return errors.Wrapf(err, "failed to list roles directory %s", rolesDir)
	}

	sub := g.Subgraph(
		graph.ClusterKey(graph.ShortName(rolesDir, root)),
		filepath.Base(rolesDir),
		graph.RoleClusterAttrs(),
	)

	for _, entry := range entries {
		if !entry.IsDir() || s.cfg.Scan.SkipFolder(entry.Name()) {
			continue
		}
		sub.AddNode(roleKey(entry.Name()), entry.Name(), nil)
	}

	for _, entry := range entries {
		if !entry.IsDir() || s.cfg.Scan.SkipFolder(entry.Name()) {
			continue
		}
		s.addRoleDependencies(g, rolesDir, entry.Name())
	}
	return nil
}

func (s *Scanner) addRoleDependencies(g *graph.Graph, rolesDir, role string) {
	meta, ok := playbook.RoleMetaPath(rolesDir, role)
	if !ok {
		return
	}

	rec, err := s.reader.ReadMapping(meta)
	if err != nil {
		// A key-less or empty meta file means no dependencies; only a real
		// parse failure is worth a diagnostic.
		if !errors.IsNoRecordsError(err) {
			s.logger.Warnw("skipping unparseable role meta", "file", meta, "error", err)
		}
		return
	}

	for _, entry := range playbook.ListValue(rec, "dependencies") {
		name := playbook.RoleName(entry)
		if name == "" {
			continue
		}
		g.AddEdge(roleKey(role), roleKey(name), graph.DepEdgeAttrs(false))
	}
}

// walkFiles applies fn to every eligible file in the tree, honoring the
// folder deny-list so the edge passes never visit a folder the node pass
// skipped.
func (s *Scanner) walkFiles(dir string, fn func(path string)) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.Wrapf(err, "failed to list %s", dir)
	}

	for _, entry := range entries {
		name := entry.Name()
		path := filepath.Join(dir, name)
		switch {
		case !entry.IsDir():
			if s.cfg.Scan.HasExtension(name) {
				fn(path)
			}
		case !s.cfg.Scan.SkipFolder(name):
			if err := s.walkFiles(path, fn); err != nil {
				s.logger.Warnw("skipping unreadable directory", "dir", path, "error", err)
			}
		}
	}
	return nil
}

// read parses a file, reporting recoverable failures and telling the caller
// whether there is anything to process.
func (s *Scanner) read(path string) ([]playbook.Record, bool) {
	records, err := s.reader.ReadRecords(path)
	switch {
	case err == nil:
		return records, true
	case errors.IsNotPlaybookError(err):
		s.logger.Debugw("skipping deny-listed file", "file", path)
	case errors.IsNoRecordsError(err):
		s.logger.Debugw("file has no records", "file", path)
	default:
		s.logger.Warnw("skipping unparseable file", "file", path, "error", err)
	}
	return nil, false
}

func roleKey(name string) string {
	return filepath.ToSlash(filepath.Join("roles", name))
}
