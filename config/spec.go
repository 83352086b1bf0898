package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type MapsSpec struct {
	Dir     string `yaml:"dir"`
	BaseURL string `yaml:"base_url"`
	Watch   bool   `yaml:"watch"`
	Start   string `yaml:"start"`
}

type PhysicsSpec struct {
	DefaultMaxSpeed float64 `yaml:"default_max_speed"`
	TickSeconds     float64 `yaml:"tick_seconds"`
}

type LogSpec struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type StreamSpec struct {
	Addr string `yaml:"addr"`
}

// EngineSpec configures cmd/tiledsim and the systems it wires up.
type EngineSpec struct {
	Maps    MapsSpec    `yaml:"maps"`
	Physics PhysicsSpec `yaml:"physics"`
	Log     LogSpec     `yaml:"log"`
	Stream  StreamSpec  `yaml:"stream"`
}

const (
	DefaultMaxSpeed    = 100.0
	DefaultTickSeconds = 1.0 / 60
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("config: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("config: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LoadEngineSpec reads engine.yaml, or the file at path when it is set, and
// fills in defaults for zero fields.
func LoadEngineSpec(path string) (*EngineSpec, error) {
	var spec EngineSpec
	if path == "" {
		loaded, err := LoadSpec[EngineSpec]("engine.yaml")
		if err != nil {
			return nil, err
		}
		spec = loaded
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &spec); err != nil {
			return nil, fmt.Errorf("config: unmarshal %s: %w", path, err)
		}
	}
	spec.applyDefaults()
	return &spec, nil
}

func (s *EngineSpec) applyDefaults() {
	if s.Physics.DefaultMaxSpeed <= 0 {
		s.Physics.DefaultMaxSpeed = DefaultMaxSpeed
	}
	if s.Physics.TickSeconds <= 0 {
		s.Physics.TickSeconds = DefaultTickSeconds
	}
	if s.Log.Level == "" {
		s.Log.Level = "info"
	}
	if s.Log.Format == "" {
		s.Log.Format = "text"
	}
	if s.Maps.Start == "" {
		s.Maps.Start = "demo.json"
	}
}
