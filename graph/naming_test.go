package graph

import (
	"testing"
)

// TestShortName tests repo-relative name derivation
func TestShortName(t *testing.T) {
	tests := []struct {
		path     string
		root     string
		expected string
	}{
		{"/repo/playbooks/site.yml", "/repo", "playbooks/site.yml"},
		{"/repo/site.yml", "/repo", "site.yml"},
		{"/elsewhere/site.yml", "/repo", "/elsewhere/site.yml"},
		{"/repo/playbooks/site.yml", "", "/repo/playbooks/site.yml"},
	}

	for _, tt := range tests {
		result := ShortName(tt.path, tt.root)
		if result != tt.expected {
			t.Errorf("ShortName(%q, %q) = %q, want %q", tt.path, tt.root, result, tt.expected)
		}
	}
}

// TestClusterKey tests cluster name derivation
func TestClusterKey(t *testing.T) {
	if got := ClusterKey("playbooks/site.yml"); got != "cluster_playbooks/site.yml" {
		t.Errorf("ClusterKey = %q", got)
	}
}

// TestNewSyntheticID tests uniqueness of generated IDs
func TestNewSyntheticID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewSyntheticID()
		if id == "" {
			t.Fatal("empty synthetic ID")
		}
		if seen[id] {
			t.Fatalf("duplicate synthetic ID %q", id)
		}
		seen[id] = true
	}
}
