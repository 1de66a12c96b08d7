package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSourcesEmptyPathUsesDefaults(t *testing.T) {
	s, err := LoadSources("")
	if err != nil {
		t.Fatalf("expected defaults, got %v", err)
	}
	if len(s.SalaryAuthority) == 0 {
		t.Fatalf("expected a default salary authority")
	}
}

func TestLoadSourcesParsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	content := `salary_authority:
  - spotrac
  - espn
alias_overrides:
  "N. Jokic": "Nikola Jokic"
team_overrides:
  NJN: BKN
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	s, err := LoadSources(path)
	if err != nil {
		t.Fatalf("LoadSources: %v", err)
	}
	if len(s.SalaryAuthority) != 2 || s.SalaryAuthority[0] != "spotrac" {
		t.Fatalf("unexpected authority order %v", s.SalaryAuthority)
	}
	if s.AliasOverrides["N. Jokic"] != "Nikola Jokic" {
		t.Fatalf("unexpected alias overrides %v", s.AliasOverrides)
	}
	if s.TeamOverrides["NJN"] != "BKN" {
		t.Fatalf("unexpected team overrides %v", s.TeamOverrides)
	}
}

func TestLoadSourcesMissingFileErrors(t *testing.T) {
	if _, err := LoadSources(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestAuthorityRank(t *testing.T) {
	s := Sources{SalaryAuthority: []string{"spotrac", "espn"}}

	rank, ok := s.AuthorityRank("espn")
	if !ok || rank != 1 {
		t.Fatalf("expected espn at rank 1, got %d %v", rank, ok)
	}
	if _, ok := s.AuthorityRank("hoopshype"); ok {
		t.Fatalf("expected unlisted source to be unranked")
	}
}
