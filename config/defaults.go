package config

import (
	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options.
// The deny-lists default to the folder layout of openshift-ansible, the
// repository this tool was first built for.
func SetDefaults(v *viper.Viper) {
	// Scan defaults
	v.SetDefault("scan.extensions", []string{".yml", ".yaml"})
	v.SetDefault("scan.skip_folders", []string{
		"adhoc",          // does not provide much value to the graph
		"roles",          // roles are handled separately
		"upgrades",       // upgrades make the graph a bit complicated right now
		"files",          // these are usually heat templates
		"library",        // no yml files
		"templates",      // no yml files
		"filter_plugins", // no yml files
		"lookup_plugins", // no yml files
		"v3_3",           // old upgrade playbooks
		"v3_4",           // old upgrade playbooks
		"v3_5",           // old upgrade playbooks
	})
	v.SetDefault("scan.skip_files", []string{
		"cluster_hosts.yml",
		"vars.yml",
		"vars.defaults.yml", // file exists in older versions
	})
	v.SetDefault("scan.unsupported_platforms", []string{
		"aws",
		"gce",
		"libvirt",
		"openstack",
	})
	v.SetDefault("scan.include_unsupported", true)

	// Roles defaults
	v.SetDefault("roles.dir", "roles")
	v.SetDefault("roles.display", true)
	v.SetDefault("roles.display_deps", false)

	// Output defaults
	v.SetDefault("output.formats", []string{"png"})
	v.SetDefault("output.dir", ".")
}
