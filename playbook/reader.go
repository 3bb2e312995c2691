// Package playbook reads Ansible YAML files into ordered record sequences
// and provides the duck-typed accessors the graph walkers share. A playbook,
// a task list, and a role meta file are all "a YAML sequence of mappings"
// at this level; the walkers decide what the keys mean.
package playbook

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ansigraph/ansigraph/config"
	"github.com/ansigraph/ansigraph/errors"
	"gopkg.in/yaml.v3"
)

// Record is one parsed configuration statement: a play, a task, or a
// dependency declaration, depending on the file.
type Record map[string]interface{}

// Reader parses playbook files, honoring the configured file deny-list.
type Reader struct {
	cfg *config.ScanConfig
}

// NewReader creates a Reader bound to a scan configuration.
func NewReader(cfg *config.ScanConfig) *Reader {
	return &Reader{cfg: cfg}
}

// ReadRecords parses one file into its ordered record sequence.
//
// Error contract (callers must treat all of these as recoverable):
//   - errors.ErrNotPlaybook: the file name is deny-listed; nothing was read
//   - errors.ErrNoRecords: the file parsed cleanly but holds no records
//   - anything else: IO or YAML failure; log and skip the file
func (r *Reader) ReadRecords(path string) ([]Record, error) {
	if r.cfg.SkipFile(filepath.Base(path)) {
		return nil, errors.Wrapf(errors.ErrNotPlaybook, "%s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	var records []Record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}

	if len(records) == 0 {
		return nil, errors.Wrapf(errors.ErrNoRecords, "%s", path)
	}

	return records, nil
}

// ReadMapping parses a file whose top level is a single mapping rather than
// a record sequence (role meta files are the one case). The error contract
// matches ReadRecords; an empty mapping yields ErrNoRecords.
func (r *Reader) ReadMapping(path string) (Record, error) {
	if r.cfg.SkipFile(filepath.Base(path)) {
		return nil, errors.Wrapf(errors.ErrNotPlaybook, "%s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	var record Record
	if err := yaml.Unmarshal(data, &record); err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}

	if len(record) == 0 {
		return nil, errors.Wrapf(errors.ErrNoRecords, "%s", path)
	}

	return record, nil
}

// StringValue returns the string under key, or "" when absent or not a string.
func StringValue(rec Record, key string) string {
	if v, ok := rec[key].(string); ok {
		return v
	}
	return ""
}

// HasKey reports whether key is present, even with a nil value.
func HasKey(rec Record, key string) bool {
	_, ok := rec[key]
	return ok
}

// ListValue returns the sequence under key. Absent keys and explicit nulls
// ("tasks:" with no entries) both come back empty.
func ListValue(rec Record, key string) []interface{} {
	if v, ok := rec[key].([]interface{}); ok {
		return v
	}
	return nil
}

// Tasks converts a raw sequence into records, dropping entries that are not
// mappings. A task list containing a stray scalar still expands around it.
func Tasks(list []interface{}) []Record {
	out := make([]Record, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]interface{}); ok {
			out = append(out, Record(m))
		}
	}
	return out
}

// RoleName canonicalizes a role list entry. Entries are either a bare name
// or a mapping with a 'role' key; anything else yields "" and the caller
// skips the entry.
func RoleName(entry interface{}) string {
	switch v := entry.(type) {
	case string:
		return v
	case map[string]interface{}:
		if name, ok := v["role"].(string); ok {
			return name
		}
	}
	return ""
}

// RoleMetaPath locates a role's dependency declaration under
// <rolesDir>/<role>/meta/, trying main.yml then main.yaml. A missing file is
// not an error; the role simply has no dependencies to show.
func RoleMetaPath(rolesDir, role string) (string, bool) {
	for _, base := range []string{"main.yml", "main.yaml"} {
		path := filepath.Join(rolesDir, role, "meta", base)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// IsTemplated reports whether an include value is a runtime variable
// expression rather than a literal path. Templated includes are shown as
// marker nodes but never resolved or expanded.
func IsTemplated(value string) bool {
	return strings.Contains(value, "{{")
}

// IncludeTarget extracts the file name from an include value, dropping any
// inline parameters ("setup.yml key=value" includes just setup.yml).
func IncludeTarget(value string) string {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return value
	}
	return fields[0]
}
