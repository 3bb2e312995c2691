package config

import "strings"

// Config represents the ansigraph run configuration.
// A loaded Config is treated as an immutable snapshot: the scanner and walker
// receive it at construction time and never write to it.
type Config struct {
	Scan   ScanConfig   `mapstructure:"scan"`
	Roles  RolesConfig  `mapstructure:"roles"`
	Output OutputConfig `mapstructure:"output"`
}

// ScanConfig configures tree traversal and file eligibility
type ScanConfig struct {
	// Extensions lists the recognized playbook file extensions (lowercase, with dot)
	Extensions []string `mapstructure:"extensions"`
	// SkipFolders lists directory base names excluded from every traversal
	SkipFolders []string `mapstructure:"skip_folders"`
	// SkipFiles lists file base names never turned into nodes or parsed
	// (variable files that sit next to playbooks)
	SkipFiles []string `mapstructure:"skip_files"`
	// UnsupportedPlatforms lists folder names diagrammed with a warning style
	UnsupportedPlatforms []string `mapstructure:"unsupported_platforms"`
	// IncludeUnsupported keeps unsupported-platform folders in the graph.
	// When false they are treated as skip folders.
	IncludeUnsupported bool `mapstructure:"include_unsupported"`
}

// RolesConfig configures role discovery and display
type RolesConfig struct {
	// Dir is the role bundle directory name relative to the repo root
	Dir string `mapstructure:"dir"`
	// Display adds role nodes when a play lists roles
	Display bool `mapstructure:"display"`
	// DisplayDeps expands role dependency chains from meta declarations
	DisplayDeps bool `mapstructure:"display_deps"`
}

// OutputConfig configures diagram output
type OutputConfig struct {
	// Formats lists image formats rendered in addition to the DOT file
	// (e.g., "png", "svg"); empty means DOT only
	Formats []string `mapstructure:"formats"`
	// Dir is the directory generated files are written to
	Dir string `mapstructure:"dir"`
}

// HasExtension reports whether path ends in one of the recognized
// playbook extensions. Comparison is case-insensitive.
func (c *ScanConfig) HasExtension(path string) bool {
	lowered := strings.ToLower(path)
	for _, ext := range c.Extensions {
		if strings.HasSuffix(lowered, ext) {
			return true
		}
	}
	return false
}

// SkipFolder reports whether a directory base name is deny-listed.
func (c *ScanConfig) SkipFolder(name string) bool {
	if contains(c.SkipFolders, name) {
		return true
	}
	if !c.IncludeUnsupported && contains(c.UnsupportedPlatforms, name) {
		return true
	}
	return false
}

// SkipFile reports whether a file base name is deny-listed.
func (c *ScanConfig) SkipFile(name string) bool {
	return contains(c.SkipFiles, name)
}

// Unsupported reports whether a folder name is on the unsupported-platform list.
func (c *ScanConfig) Unsupported(name string) bool {
	return contains(c.UnsupportedPlatforms, name)
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
