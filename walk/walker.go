// Package walk implements the playbook walker: starting from one entry
// playbook it recursively expands only the files and roles that playbook
// actually references, modeling each file's control flow as a sequential
// chain of nodes inside a per-file cluster.
package walk

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/ansigraph/ansigraph/config"
	"github.com/ansigraph/ansigraph/errors"
	"github.com/ansigraph/ansigraph/graph"
	"github.com/ansigraph/ansigraph/playbook"
	"go.uber.org/zap"
)

// Walker expands one playbook into a graph. The per-file cluster registry is
// the cycle guard: a cluster is created before its file's records are
// expanded, so a file that includes its own ancestor finds the ancestor's
// cluster already present and links back instead of recursing forever.
type Walker struct {
	cfg    *config.Config
	reader *playbook.Reader
	logger *zap.SugaredLogger
	// root is the repository root; display names and cluster keys are
	// derived relative to it
	root string
}

// NewWalker creates a Walker for the repository rooted at root.
func NewWalker(cfg *config.Config, logger *zap.SugaredLogger, root string) *Walker {
	return &Walker{
		cfg:    cfg,
		reader: playbook.NewReader(&cfg.Scan),
		logger: logger.Named("walk"),
		root:   root,
	}
}

// AddPlaybook expands the playbook at path into g. parent is the key of the
// node in the calling file that should link to this file's first node; ""
// for the entry playbook. A file is expanded at most once: later references
// get an edge to the existing cluster's first node.
//
// The returned error covers only this file's own read; the caller decides
// whether that is fatal (the entry playbook) or survivable (an include).
func (w *Walker) AddPlaybook(g *graph.Graph, path, parent string) error {
	name := graph.ShortName(path, w.root)
	key := graph.ClusterKey(name)

	if existing := g.FindSubgraph(key); existing != nil {
		if parent != "" && existing.FirstNode() != nil {
			g.AddEdge(parent, existing.FirstNode().Key, nil)
		}
		return nil
	}

	records, err := w.reader.ReadRecords(path)
	if err != nil {
		return errors.Wrapf(err, "failed to expand %s", name)
	}

	// The very first cluster in the walk is the entry point; give it the
	// highlight style. The cluster must exist before any include recursion
	// below, or a file including its own ancestor would expand forever.
	attrs := graph.SubgraphAttrs()
	if g.SubgraphCount() == 0 {
		attrs = graph.EntrySubgraphAttrs()
	}
	sub := g.Subgraph(key, name, attrs)

	previousTask := ""
	for _, rec := range records {
		if playbook.HasKey(rec, "include") {
			previousTask = w.addInclude(g, sub, rec, path, parent, previousTask)
		}
		if playbook.HasKey(rec, "hosts") {
			previousTask = w.addPlay(g, sub, rec, path, parent, previousTask)
		}
	}
	return nil
}

// addInclude creates the include marker for a playbook-level include and
// recursively expands the target file unless it is a runtime expression.
func (w *Walker) addInclude(g *graph.Graph, sub *graph.Subgraph, rec playbook.Record, path, parent, previousTask string) string {
	include := playbook.StringValue(rec, "include")
	marker := graph.NewSyntheticID()

	if playbook.IsTemplated(include) {
		// Runtime expression: show the marker, never resolve the path
		sub.AddNode(marker, "include: "+include, nil)
		w.link(g, sub, parent, previousTask, marker, nil)
		return marker
	}

	// Drop inline parameters from the include value
	target := playbook.IncludeTarget(include)
	sub.AddNode(marker, "include: "+target, nil)

	resolved := filepath.Join(filepath.Dir(path), target)
	if err := w.AddPlaybook(g, resolved, marker); err != nil {
		w.logger.Warnw("skipping unexpandable include",
			"file", graph.ShortName(path, w.root), "include", target, "error", err)
	}

	w.link(g, sub, parent, previousTask, marker, nil)
	return marker
}

// addPlay creates the play node and, in sequence, the pre_tasks, roles,
// tasks, and post_tasks summary nodes with their detailed expansions.
func (w *Walker) addPlay(g *graph.Graph, sub *graph.Subgraph, rec playbook.Record, path, parent, previousTask string) string {
	name := playbook.StringValue(rec, "name")
	if name == "" {
		name = "(Unnamed)"
	}
	play := graph.NewSyntheticID()
	label := fmt.Sprintf("Play: %s\n(%v)", name, rec["hosts"])
	sub.AddNode(play, label, graph.PlayNodeAttrs())

	cursor := play
	for _, section := range []string{"pre_tasks", "roles", "tasks", "post_tasks"} {
		list := playbook.ListValue(rec, section)
		if len(list) == 0 {
			continue
		}
		if section == "roles" && !w.cfg.Roles.Display && !w.cfg.Roles.DisplayDeps {
			continue
		}

		count := graph.NewSyntheticID()
		sub.AddNode(count, fmt.Sprintf("%s: %d", section, len(list)), nil)
		sub.AddEdge(cursor, count, nil)

		if section == "roles" {
			w.addRoles(list, sub, count)
		} else {
			w.addTasks(playbook.Tasks(list), sub, g, count, path)
		}
		cursor = count
	}

	w.link(g, sub, parent, previousTask, play, nil)
	return play
}

// link attaches a new chain node: the first node of a file links from the
// calling file's marker (when there is one), later nodes from their
// predecessor in this file.
func (w *Walker) link(g *graph.Graph, sub *graph.Subgraph, parent, previousTask, node string, attrs graph.Attrs) {
	if previousTask == "" {
		if parent != "" {
			g.AddEdge(parent, node, attrs)
		}
		return
	}
	sub.AddEdge(previousTask, node, attrs)
}

// addTasks walks a task list, chaining task nodes from anchor and expanding
// blocks, role includes, and file includes as it goes.
func (w *Walker) addTasks(tasks []playbook.Record, sub *graph.Subgraph, g *graph.Graph, anchor, file string) {
	previousTask := anchor
	for _, task := range tasks {
		switch {
		case playbook.HasKey(task, "block"):
			block := graph.NewSyntheticID()
			sub.AddNode(block, "block:", graph.TaskNodeAttrs())
			sub.AddEdge(previousTask, block, graph.TaskEdgeAttrs())
			w.addTasks(playbook.Tasks(playbook.ListValue(task, "block")), sub, g, block, file)
			previousTask = block

		case playbook.HasKey(task, "include_role"):
			previousTask = w.addRoleInclude(task, sub, previousTask)

		case playbook.HasKey(task, "include"):
			previousTask = w.addTaskInclude(task, sub, g, previousTask, file)

		default:
			name := playbook.StringValue(task, "name")
			if name == "" {
				// No name; punt and show the task's first key
				name = "(Unnamed) " + firstKey(task)
			}
			node := graph.NewSyntheticID()
			sub.AddNode(node, "task: "+name, graph.TaskNodeAttrs())
			sub.AddEdge(previousTask, node, graph.TaskEdgeAttrs())
			previousTask = node
		}
	}
}

// addRoleInclude handles an include_role task: a marker node plus the
// referenced role attached beneath it.
func (w *Walker) addRoleInclude(task playbook.Record, sub *graph.Subgraph, previousTask string) string {
	name := playbook.StringValue(task, "name")
	if name == "" {
		name = "(Unnamed)"
	}
	marker := graph.NewSyntheticID()
	sub.AddNode(marker, "include_role: "+name, graph.TaskNodeAttrs())

	if params, ok := task["include_role"].(map[string]interface{}); ok {
		if roleName, ok := params["name"].(string); ok && roleName != "" {
			w.addRoles([]interface{}{roleName}, sub, marker)
		}
	}

	sub.AddEdge(previousTask, marker, graph.TaskEdgeAttrs())
	return marker
}

// addTaskInclude handles a task-level include: a marker node, then either a
// back-edge to an already-expanded file or a fresh cluster expanded in place.
func (w *Walker) addTaskInclude(task playbook.Record, sub *graph.Subgraph, g *graph.Graph, previousTask, file string) string {
	include := playbook.StringValue(task, "include")
	marker := graph.NewSyntheticID()

	if playbook.IsTemplated(include) {
		// Runtime expression: marker only, no expansion
		sub.AddNode(marker, "include: "+include, graph.TaskNodeAttrs())
		sub.AddEdge(previousTask, marker, graph.TaskEdgeAttrs())
		return marker
	}

	target := playbook.IncludeTarget(include)
	sub.AddNode(marker, "include: "+target, graph.TaskNodeAttrs())
	sub.AddEdge(previousTask, marker, graph.TaskEdgeAttrs())

	resolved := filepath.Join(filepath.Dir(file), target)
	name := graph.ShortName(resolved, w.root)
	if existing := g.FindSubgraph(graph.ClusterKey(name)); existing != nil {
		if existing.FirstNode() != nil {
			sub.AddEdge(marker, existing.FirstNode().Key, nil)
		}
		return marker
	}

	records, err := w.reader.ReadRecords(resolved)
	if err != nil {
		w.logger.Warnw("skipping unexpandable task include",
			"file", graph.ShortName(file, w.root), "include", target, "error", err)
		return marker
	}

	includeSub := g.Subgraph(graph.ClusterKey(name), name, graph.SubgraphAttrs())
	w.addTasks(records, includeSub, g, marker, resolved)
	return marker
}

// addRoles chains role nodes from anchor, optionally expanding each role's
// declared dependencies.
func (w *Walker) addRoles(roles []interface{}, sub *graph.Subgraph, anchor string) {
	previousRole := ""
	for _, entry := range roles {
		name := playbook.RoleName(entry)
		if name == "" {
			w.logger.Warnw("unusable role entry", "entry", entry)
			continue
		}

		role := graph.NewSyntheticID()
		sub.AddNode(role, "role: "+name, graph.RoleNodeAttrs())

		if w.cfg.Roles.DisplayDeps {
			visited := map[string]bool{name: true}
			w.addRoleDependency(sub, role, name, 0, true, visited)
		}

		if previousRole == "" {
			sub.AddEdge(anchor, role, graph.RoleEdgeAttrs())
		} else {
			sub.AddEdge(previousRole, role, graph.RoleEdgeAttrs())
		}
		previousRole = role
	}
}

// addRoleDependency expands one role's meta declarations as a depth-labeled
// chain. visited breaks dependency cycles, which role metadata can express
// even though no sane repository should.
func (w *Walker) addRoleDependency(sub *graph.Subgraph, anchor, roleName string, depth int, primary bool, visited map[string]bool) {
	depth++

	meta, ok := playbook.RoleMetaPath(filepath.Join(w.root, w.cfg.Roles.Dir), roleName)
	if !ok {
		return
	}

	rec, err := w.reader.ReadMapping(meta)
	if err != nil {
		// No dependencies key and no records both mean "no dependencies"
		if !errors.IsNoRecordsError(err) {
			w.logger.Warnw("skipping unparseable role meta", "file", meta, "error", err)
		}
		return
	}

	previousNode := anchor
	for _, entry := range playbook.ListValue(rec, "dependencies") {
		name := playbook.RoleName(entry)
		if name == "" {
			continue
		}
		if visited[name] {
			w.logger.Warnw("role dependency cycle", "role", roleName, "dependency", name)
			continue
		}
		visited[name] = true

		dep := graph.NewSyntheticID()
		sub.AddNode(dep, fmt.Sprintf("role_dep(%d): %s", depth, name), graph.DepNodeAttrs())
		sub.AddEdge(previousNode, dep, graph.DepEdgeAttrs(primary))

		w.addRoleDependency(sub, dep, name, depth, false, visited)
		previousNode = dep
	}
}

// firstKey returns the lexically first key of a record, for labeling tasks
// that have no name.
func firstKey(rec playbook.Record) string {
	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) == 0 {
		return ""
	}
	return keys[0]
}
