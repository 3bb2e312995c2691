package folder

import (
	"path/filepath"
	"testing"

	"github.com/ansigraph/ansigraph/config"
	"github.com/ansigraph/ansigraph/graph"
	ansitest "github.com/ansigraph/ansigraph/internal/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() *config.Config {
	return &config.Config{
		Scan: config.ScanConfig{
			Extensions:           []string{".yml", ".yaml"},
			SkipFolders:          []string{"adhoc", "roles", "library"},
			SkipFiles:            []string{"vars.yml"},
			UnsupportedPlatforms: []string{"openstack"},
			IncludeUnsupported:   true,
		},
		Roles: config.RolesConfig{Dir: "roles", Display: true},
	}
}

func newTestScanner() *Scanner {
	return NewScanner(testConfig(), zap.NewNop().Sugar())
}

func TestAddFolderNodesAndSubgraphs(t *testing.T) {
	root := ansitest.CreateTestRepo(t, map[string]string{
		"playbooks/site.yml":          "- include: common/config.yml\n",
		"playbooks/common/config.yml": "- hosts: all\n",
		"playbooks/vars.yml":          "foo: bar\n",
		"playbooks/README.md":         "not a playbook\n",
		"playbooks/adhoc/tool.yml":    "- hosts: all\n",
	})

	g := graph.New("test", nil)
	s := newTestScanner()
	require.NoError(t, s.AddFolder(g, filepath.Join(root, "playbooks"), root))

	assert.True(t, g.HasNode("playbooks/site.yml"))
	assert.True(t, g.HasNode("playbooks/common/config.yml"))
	assert.False(t, g.HasNode("playbooks/vars.yml"), "deny-listed file must not become a node")
	assert.False(t, g.HasNode("playbooks/README.md"), "unrecognized extension must not become a node")
	assert.False(t, g.HasNode("playbooks/adhoc/tool.yml"), "deny-listed folder must not be scanned")

	common := g.FindSubgraph("cluster_playbooks/common")
	require.NotNil(t, common, "directories become nested clusters")
	assert.Equal(t, "common", common.Label)
	require.Len(t, common.Nodes(), 1)
	assert.Equal(t, "playbooks/common/config.yml", common.Nodes()[0].Key)

	assert.Nil(t, g.FindSubgraph("cluster_playbooks/adhoc"))
}

func TestAddFolderUnsupportedTagging(t *testing.T) {
	root := ansitest.CreateTestRepo(t, map[string]string{
		"playbooks/openstack/launch.yml": "- hosts: all\n",
		"playbooks/common/config.yml":    "- hosts: all\n",
	})

	g := graph.New("test", nil)
	s := newTestScanner()
	require.NoError(t, s.AddFolder(g, filepath.Join(root, "playbooks"), root))

	unsupported := g.FindSubgraph("cluster_playbooks/openstack")
	require.NotNil(t, unsupported)
	assert.Equal(t, "openstack (unsupported)", unsupported.Label)
	assert.Equal(t, "red", unsupported.Attrs["color"])
	assert.Equal(t, "filled, dashed", unsupported.Attrs["style"])

	ordinary := g.FindSubgraph("cluster_playbooks/common")
	require.NotNil(t, ordinary)
	assert.NotEqual(t, unsupported.Attrs["color"], ordinary.Attrs["color"])
}

func TestAddFolderExcludesUnsupportedWhenConfigured(t *testing.T) {
	root := ansitest.CreateTestRepo(t, map[string]string{
		"playbooks/openstack/launch.yml": "- hosts: all\n",
	})

	cfg := testConfig()
	cfg.Scan.IncludeUnsupported = false
	s := NewScanner(cfg, zap.NewNop().Sugar())

	g := graph.New("test", nil)
	require.NoError(t, s.AddFolder(g, filepath.Join(root, "playbooks"), root))

	assert.Nil(t, g.FindSubgraph("cluster_playbooks/openstack"))
	assert.False(t, g.HasNode("playbooks/openstack/launch.yml"))
}

func TestAddEdgesIncludes(t *testing.T) {
	root := ansitest.CreateTestRepo(t, map[string]string{
		"playbooks/site.yml":          "- include: common/config.yml\n- include: common/config.yml\n",
		"playbooks/common/config.yml": "- hosts: all\n",
	})

	g := graph.New("test", nil)
	s := newTestScanner()
	dir := filepath.Join(root, "playbooks")
	require.NoError(t, s.AddFolder(g, dir, root))
	require.NoError(t, s.AddEdges(g, dir, root))

	assert.True(t, g.HasEdge("playbooks/site.yml", "playbooks/common/config.yml"))
	assert.Equal(t, 1, g.EdgeCount(), "strict graph merges the duplicate include edge")
}

func TestAddEdgesDanglingStub(t *testing.T) {
	root := ansitest.CreateTestRepo(t, map[string]string{
		"playbooks/site.yml": "- include: missing.yml\n",
	})

	g := graph.New("test", nil)
	s := newTestScanner()
	dir := filepath.Join(root, "playbooks")
	require.NoError(t, s.AddFolder(g, dir, root))
	require.NoError(t, s.AddEdges(g, dir, root))

	stub := g.Node("playbooks/missing.yml")
	require.NotNil(t, stub, "dangling include must synthesize a stub node")
	assert.Equal(t, "Non-existent: playbooks/missing.yml", stub.Label)
	assert.Equal(t, "red", stub.Attrs["color"])
	assert.True(t, g.HasEdge("playbooks/site.yml", "playbooks/missing.yml"))
}

func TestAddEdgesTaskLevelIncludes(t *testing.T) {
	root := ansitest.CreateTestRepo(t, map[string]string{
		"playbooks/site.yml": `
- hosts: masters
  tasks:
  - include: tasks/setup.yml
  - name: something else
    command: /bin/true
`,
		"playbooks/tasks/setup.yml": "- name: setup\n  command: /bin/true\n",
	})

	g := graph.New("test", nil)
	s := newTestScanner()
	dir := filepath.Join(root, "playbooks")
	require.NoError(t, s.AddFolder(g, dir, root))
	require.NoError(t, s.AddEdges(g, dir, root))

	assert.True(t, g.HasEdge("playbooks/site.yml", "playbooks/tasks/setup.yml"))
}

func TestAddEdgesSkipsMalformedFiles(t *testing.T) {
	root := ansitest.CreateTestRepo(t, map[string]string{
		"playbooks/broken.yml": "hosts: all\nthis is: [unclosed\n",
		"playbooks/site.yml":   "- include: other.yml\n",
		"playbooks/other.yml":  "- hosts: all\n",
	})

	g := graph.New("test", nil)
	s := newTestScanner()
	dir := filepath.Join(root, "playbooks")
	require.NoError(t, s.AddFolder(g, dir, root))
	require.NoError(t, s.AddEdges(g, dir, root), "a malformed file must not abort the walk")

	assert.True(t, g.HasEdge("playbooks/site.yml", "playbooks/other.yml"))
}

func TestAddEdgesNeverParsesSkipFiles(t *testing.T) {
	root := ansitest.CreateTestRepo(t, map[string]string{
		// Would produce an edge if it were ever parsed
		"playbooks/vars.yml": "- include: ghost.yml\n",
	})

	g := graph.New("test", nil)
	s := newTestScanner()
	dir := filepath.Join(root, "playbooks")
	require.NoError(t, s.AddFolder(g, dir, root))
	require.NoError(t, s.AddEdges(g, dir, root))

	assert.Equal(t, 0, g.EdgeCount())
	assert.False(t, g.HasNode("playbooks/ghost.yml"))
}

func TestAddRoleLinks(t *testing.T) {
	root := ansitest.CreateTestRepo(t, map[string]string{
		"playbooks/site.yml": `
- hosts: masters
  roles:
  - openshift_facts
  - role: etcd
    when: something
`,
	})

	g := graph.New("test", nil)
	s := newTestScanner()
	dir := filepath.Join(root, "playbooks")
	require.NoError(t, s.AddFolder(g, dir, root))
	require.NoError(t, s.AddRoleLinks(g, dir, root))

	site := "playbooks/site.yml"
	assert.True(t, g.HasEdge(site, "roles/openshift_facts"))
	assert.True(t, g.HasEdge(site, "roles/etcd"))

	for _, e := range g.Edges() {
		assert.Equal(t, "blue", e.Attrs["color"], "role links are drawn blue")
	}
}

func TestAddRoleCluster(t *testing.T) {
	root := ansitest.CreateTestRepo(t, map[string]string{
		"roles/etcd/meta/main.yml":            "dependencies:\n- role: openshift_facts\n",
		"roles/openshift_facts/tasks/main.yml": "- name: gather\n  command: /bin/true\n",
		"roles/standalone/tasks/main.yml":     "- name: solo\n  command: /bin/true\n",
	})

	g := graph.New("test", nil)
	s := newTestScanner()
	rolesDir := filepath.Join(root, "roles")
	require.NoError(t, s.AddRoleCluster(g, rolesDir, root))

	cluster := g.FindSubgraph("cluster_roles")
	require.NotNil(t, cluster)
	assert.Equal(t, "blue", cluster.Attrs["color"])

	assert.True(t, g.HasNode("roles/etcd"))
	assert.True(t, g.HasNode("roles/openshift_facts"))
	assert.True(t, g.HasNode("roles/standalone"))

	assert.True(t, g.HasEdge("roles/etcd", "roles/openshift_facts"),
		"meta dependency becomes a role-dependency edge")
	assert.False(t, g.HasEdge("roles/standalone", "roles/etcd"))
}

func TestAddRoleClusterMissingMeta(t *testing.T) {
	root := ansitest.CreateTestRepo(t, map[string]string{
		"roles/no_meta/tasks/main.yml": "- name: task\n  command: /bin/true\n",
		"roles/empty_meta/meta/main.yml": "---\n",
		"roles/keyless_meta/meta/main.yml": "galaxy_info:\n  author: someone\n",
	})

	g := graph.New("test", nil)
	s := newTestScanner()
	require.NoError(t, s.AddRoleCluster(g, filepath.Join(root, "roles"), root),
		"missing or key-less meta files are not errors")

	assert.Equal(t, 0, g.EdgeCount())
	assert.Equal(t, 3, len(g.FindSubgraph("cluster_roles").Nodes()))
}

func TestAddRoleClusterMissingDirectory(t *testing.T) {
	g := graph.New("test", nil)
	s := newTestScanner()
	err := s.AddRoleCluster(g, filepath.Join(t.TempDir(), "roles"), t.TempDir())
	assert.Error(t, err, "an inaccessible roles directory is the caller's problem")
}
