package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/banshee-data/orca/internal/orca"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	return path
}

func TestEmptySolverConfigUsesDefaults(t *testing.T) {
	cfg := EmptySolverConfig()

	if diff := cmp.Diff(orca.DefaultConfig(), cfg.OrcaConfig()); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("empty config should be valid, got %v", err)
	}
}

func TestLoadSolverConfig(t *testing.T) {
	path := writeConfig(t, "solver.json", `{
  "time_horizon": 3.5,
  "cluster_static_agents": false,
  "static_speed_threshold": 0.001,
  "relaxation_step": 0.01,
  "max_relaxations": 200
}`)

	cfg, err := LoadSolverConfig(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	want := orca.Config{
		TimeHorizon:          3.5,
		ClusterStaticAgents:  false,
		StaticSpeedThreshold: 0.001,
		RelaxationStep:       0.01,
		MaxRelaxations:       200,
	}
	if diff := cmp.Diff(want, cfg.OrcaConfig()); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadSolverConfigPartial(t *testing.T) {
	path := writeConfig(t, "partial.json", `{"time_horizon": 1.25}`)

	cfg, err := LoadSolverConfig(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if got := cfg.GetTimeHorizon(); got != 1.25 {
		t.Errorf("GetTimeHorizon() = %v, want 1.25", got)
	}
	if cfg.ClusterStaticAgents != nil {
		t.Errorf("Expected ClusterStaticAgents nil, got %v", *cfg.ClusterStaticAgents)
	}
	if got := cfg.GetMaxRelaxations(); got != orca.DefaultMaxRelaxations {
		t.Errorf("GetMaxRelaxations() = %d, want %d", got, orca.DefaultMaxRelaxations)
	}
}

func TestLoadSolverConfigMissing(t *testing.T) {
	if _, err := LoadSolverConfig(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoadSolverConfigRejectsNonJSON(t *testing.T) {
	path := writeConfig(t, "solver.yaml", "time_horizon: 2")
	_, err := LoadSolverConfig(path)
	if err == nil || !strings.Contains(err.Error(), ".json extension") {
		t.Errorf("Expected extension error, got %v", err)
	}
}

func TestLoadSolverConfigRejectsLargeFile(t *testing.T) {
	path := writeConfig(t, "big.json", `{"time_horizon": 2}`+strings.Repeat(" ", 1024*1024+1))
	_, err := LoadSolverConfig(path)
	if err == nil || !strings.Contains(err.Error(), "too large") {
		t.Errorf("Expected size error, got %v", err)
	}
}

func TestLoadSolverConfigInvalid(t *testing.T) {
	testCases := []struct {
		name   string
		body   string
		target error
	}{
		{"malformed", `{"time_horizon": }`, nil},
		{"zero_time_horizon", `{"time_horizon": 0}`, orca.ErrInvalidTimeHorizon},
		{"negative_time_horizon", `{"time_horizon": -2}`, orca.ErrInvalidTimeHorizon},
		{"negative_step", `{"relaxation_step": -0.1}`, orca.ErrInvalidConfig},
		{"negative_cap", `{"max_relaxations": -5}`, orca.ErrInvalidConfig},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, tc.name+".json", tc.body)
			_, err := LoadSolverConfig(path)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if tc.target != nil && !errors.Is(err, tc.target) {
				t.Errorf("Expected %v, got %v", tc.target, err)
			}
		})
	}
}

func TestLoadDefaultConfigFile(t *testing.T) {
	cfg := MustLoadDefaultConfig()

	if diff := cmp.Diff(orca.DefaultConfig(), cfg.OrcaConfig()); diff != "" {
		t.Errorf("%s drifted from orca.DefaultConfig (-want +got):\n%s", DefaultConfigPath, diff)
	}
}
