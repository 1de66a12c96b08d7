package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Sources describes per-source reconciliation policy, loaded from an optional
// YAML file so operators can adjust it without a rebuild.
type Sources struct {
	// SalaryAuthority orders salary sources from most to least authoritative.
	// The first listed source that reported a figure wins when sources disagree
	// beyond tolerance only if it is marked authoritative here; unordered
	// sources must agree within tolerance.
	SalaryAuthority []string `yaml:"salary_authority"`
	// AliasOverrides maps a raw source spelling to the canonical full name it
	// must resolve to, for names automatic normalization gets wrong.
	AliasOverrides map[string]string `yaml:"alias_overrides"`
	// TeamOverrides extends the built-in abbreviation remap.
	TeamOverrides map[string]string `yaml:"team_overrides"`
}

// DefaultSources returns the policy used when no sources file is configured.
func DefaultSources() Sources {
	return Sources{
		SalaryAuthority: []string{"espn"},
	}
}

// LoadSources reads the sources file at path, or the defaults when path is empty.
func LoadSources(path string) (Sources, error) {
	if path == "" {
		return DefaultSources(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Sources{}, fmt.Errorf("read sources file: %w", err)
	}
	var s Sources
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Sources{}, fmt.Errorf("parse sources file %s: %w", path, err)
	}
	if len(s.SalaryAuthority) == 0 {
		s.SalaryAuthority = DefaultSources().SalaryAuthority
	}
	return s, nil
}

// AuthorityRank returns the priority of a salary source (0 is highest) and
// whether the source is listed at all.
func (s Sources) AuthorityRank(source string) (int, bool) {
	for i, name := range s.SalaryAuthority {
		if name == source {
			return i, true
		}
	}
	return 0, false
}
