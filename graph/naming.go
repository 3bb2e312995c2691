package graph

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// clusterPrefix makes Graphviz draw a subgraph as a boxed collection
const clusterPrefix = "cluster_"

// ShortName returns path relative to root for use as a display name and
// subgraph identity. Falls back to the path itself when it is not under root.
func ShortName(path, root string) string {
	if root == "" {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}

// ClusterKey derives the subgraph key for a logical name
func ClusterKey(name string) string {
	return clusterPrefix + name
}

// NewSyntheticID returns a collision-resistant key for anonymous nodes
// (task markers, include markers, play nodes). Only uniqueness matters.
func NewSyntheticID() string {
	return uuid.NewString()
}
