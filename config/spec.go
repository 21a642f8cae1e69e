package config

import (
	"fmt"

	"github.com/codecity-go/heapdump/dumperrors"
	"github.com/codecity-go/heapdump/selector"
	"gopkg.in/yaml.v3"
)

// ContentEntry is one normalized entry of a SpecEntry's contents: a path
// (still a dotted selector string here — it is turned into Parts only
// when inserted into a Tree), the depth directive to apply there, and
// whether out-of-order property emission is permitted for it.
type ContentEntry struct {
	Path    string
	Do      Do
	Reorder bool
}

// UnmarshalYAML accepts either the shorthand ("$.util.cmd", meaning
// {Do: RECURSE, Reorder: false}) or the expanded mapping form. This is
// the one place the string-shorthand normalization spec.md §4.2 requires
// happens, mirroring the teacher's own pattern of giving a low-level
// node type a custom decode step instead of scattering "is this a string
// or a map" checks through calling code.
func (c *ContentEntry) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var path string
		if err := node.Decode(&path); err != nil {
			return err
		}
		c.Path = path
		c.Do = RECURSE
		c.Reorder = false
		return nil
	}

	var raw struct {
		Path    string `yaml:"path"`
		Do      string `yaml:"do"`
		Reorder bool   `yaml:"reorder"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	if raw.Path == "" {
		return &dumperrors.ConfigError{Reason: "content entry missing path"}
	}
	do := RECURSE
	if raw.Do != "" {
		parsed, ok := ParseDo(raw.Do)
		if !ok {
			return &dumperrors.ConfigError{Reason: fmt.Sprintf("unknown do level %q", raw.Do)}
		}
		do = parsed
	}
	c.Path = raw.Path
	c.Do = do
	c.Reorder = raw.Reorder
	return nil
}

// SpecEntry is one output file: its name, its normalized content
// entries in declared order, and whether it is the distinguished rest
// file that absorbs everything no earlier file claimed.
type SpecEntry struct {
	Filename string         `yaml:"filename"`
	Contents []ContentEntry `yaml:"contents"`
	Rest     bool           `yaml:"rest"`
}

// LoadSpec parses a config spec document (spec.md §6, "Config spec")
// from YAML. The ordering of the returned slice is the declared file
// order the dump driver walks in.
func LoadSpec(data []byte) ([]SpecEntry, error) {
	var entries []SpecEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, &dumperrors.ConfigError{Reason: "malformed config spec: " + err.Error()}
	}
	if err := validateSpec(entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func validateSpec(entries []SpecEntry) error {
	restSeen := -1
	for i, e := range entries {
		if e.Filename == "" {
			return &dumperrors.ConfigError{Reason: fmt.Sprintf("spec entry %d has no filename", i)}
		}
		if e.Rest {
			if restSeen >= 0 {
				return &dumperrors.ConfigError{
					Reason: fmt.Sprintf("multiple rest entries: file %d (%s) and file %d (%s)",
						restSeen, entries[restSeen].Filename, i, e.Filename),
				}
			}
			restSeen = i
		}
		for _, c := range e.Contents {
			if _, err := selector.ToParts(c.Path); err != nil {
				return err
			}
		}
	}
	return nil
}
