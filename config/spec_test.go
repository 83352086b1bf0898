package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEngineSpec(t *testing.T) {
	dir := t.TempDir()
	partial := filepath.Join(dir, "partial.yaml")
	if err := os.WriteFile(partial, []byte("maps:\n  dir: ./levels\n  watch: true\nphysics:\n  default_max_speed: 40\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	broken := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(broken, []byte("maps: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		check   func(t *testing.T, s *EngineSpec)
		wantErr bool
	}{
		{
			name: "embedded",
			check: func(t *testing.T, s *EngineSpec) {
				if s.Physics.DefaultMaxSpeed != 100 || s.Maps.Start != "demo.json" || s.Log.Level != "info" {
					t.Fatalf("unexpected embedded spec %+v", s)
				}
			},
		},
		{
			name: "partial_file_gets_defaults",
			path: partial,
			check: func(t *testing.T, s *EngineSpec) {
				if s.Maps.Dir != "./levels" || !s.Maps.Watch || s.Physics.DefaultMaxSpeed != 40 {
					t.Fatalf("file values lost: %+v", s)
				}
				if s.Physics.TickSeconds != DefaultTickSeconds || s.Log.Format != "text" || s.Maps.Start != "demo.json" {
					t.Fatalf("defaults not applied: %+v", s)
				}
			},
		},
		{name: "broken", path: broken, wantErr: true},
		{name: "missing", path: filepath.Join(dir, "nope.yaml"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := LoadEngineSpec(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			tt.check(t, s)
		})
	}
}
