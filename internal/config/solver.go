package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/banshee-data/orca/internal/orca"
)

// DefaultConfigPath is the path to the canonical solver defaults file.
const DefaultConfigPath = "config/orca.defaults.json"

// SolverConfig is the JSON form of orca.Config. Omitted fields fall back to
// orca.DefaultConfig through the Get* methods, so partial files are safe.
type SolverConfig struct {
	TimeHorizon          *float64 `json:"time_horizon,omitempty"`
	ClusterStaticAgents  *bool    `json:"cluster_static_agents,omitempty"`
	StaticSpeedThreshold *float64 `json:"static_speed_threshold,omitempty"`
	RelaxationStep       *float64 `json:"relaxation_step,omitempty"`
	MaxRelaxations       *int     `json:"max_relaxations,omitempty"`
}

// EmptySolverConfig returns a SolverConfig with all fields set to nil.
func EmptySolverConfig() *SolverConfig {
	return &SolverConfig{}
}

// LoadSolverConfig loads a SolverConfig from a JSON file.
// The file must have a .json extension and be at most 1MB.
func LoadSolverConfig(path string) (*SolverConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptySolverConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads DefaultConfigPath, searching the current
// directory and its parents up to the repository root.
// Panics if the file cannot be loaded, intended for test setup.
func MustLoadDefaultConfig() *SolverConfig {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,       // from cmd/orca-demo/
		"../../" + DefaultConfigPath,    // from internal/config/
		"../../../" + DefaultConfigPath, // deeper packages
	}
	for _, path := range candidates {
		if cfg, err := LoadSolverConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks the fields that are set by building the orca.Config they
// describe.
func (c *SolverConfig) Validate() error {
	return c.OrcaConfig().Validate()
}

// OrcaConfig returns the solver configuration with defaults filled in.
func (c *SolverConfig) OrcaConfig() orca.Config {
	return orca.Config{
		TimeHorizon:          c.GetTimeHorizon(),
		ClusterStaticAgents:  c.GetClusterStaticAgents(),
		StaticSpeedThreshold: c.GetStaticSpeedThreshold(),
		RelaxationStep:       c.GetRelaxationStep(),
		MaxRelaxations:       c.GetMaxRelaxations(),
	}
}

// GetTimeHorizon returns the time_horizon value or the default.
func (c *SolverConfig) GetTimeHorizon() float64 {
	if c.TimeHorizon == nil {
		return orca.DefaultConfig().TimeHorizon
	}
	return *c.TimeHorizon
}

// GetClusterStaticAgents returns the cluster_static_agents value or the default.
func (c *SolverConfig) GetClusterStaticAgents() bool {
	if c.ClusterStaticAgents == nil {
		return orca.DefaultConfig().ClusterStaticAgents
	}
	return *c.ClusterStaticAgents
}

// GetStaticSpeedThreshold returns the static_speed_threshold value or the default.
func (c *SolverConfig) GetStaticSpeedThreshold() float64 {
	if c.StaticSpeedThreshold == nil {
		return orca.DefaultConfig().StaticSpeedThreshold
	}
	return *c.StaticSpeedThreshold
}

// GetRelaxationStep returns the relaxation_step value or the default.
func (c *SolverConfig) GetRelaxationStep() float64 {
	if c.RelaxationStep == nil {
		return orca.DefaultConfig().RelaxationStep
	}
	return *c.RelaxationStep
}

// GetMaxRelaxations returns the max_relaxations value or the default.
func (c *SolverConfig) GetMaxRelaxations() int {
	if c.MaxRelaxations == nil {
		return orca.DefaultConfig().MaxRelaxations
	}
	return *c.MaxRelaxations
}
