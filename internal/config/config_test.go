package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	if cfg.Workers != 4 {
		t.Errorf("expected default workers 4, got %d", cfg.Workers)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Errorf("expected default http timeout 30s, got %v", cfg.HTTPTimeout)
	}
	if cfg.MaxImages != 0 {
		t.Errorf("expected default max images 0, got %d", cfg.MaxImages)
	}
	if cfg.Permissive {
		t.Error("expected strict matching by default")
	}
}

func TestLoadFromYAML(t *testing.T) {
	yamlContent := `
annotations: annots.csv
labelmap: labelmap.csv
images: images.csv
output_dir: out
objects:
  - dog
  - cat
max_images: 100
workers: 8
permissive: true
exclude_occluded: true
progress: true
seed: 42
http_timeout: 10s
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}

	if cfg.Annotations != "annots.csv" {
		t.Errorf("expected annotations annots.csv, got %s", cfg.Annotations)
	}
	if cfg.Labelmap != "labelmap.csv" {
		t.Errorf("expected labelmap labelmap.csv, got %s", cfg.Labelmap)
	}
	if cfg.Images != "images.csv" {
		t.Errorf("expected images images.csv, got %s", cfg.Images)
	}
	if cfg.OutputDir != "out" {
		t.Errorf("expected output_dir out, got %s", cfg.OutputDir)
	}
	if len(cfg.Objects) != 2 || cfg.Objects[0] != "dog" || cfg.Objects[1] != "cat" {
		t.Errorf("expected objects [dog cat], got %v", cfg.Objects)
	}
	if cfg.MaxImages != 100 {
		t.Errorf("expected max images 100, got %d", cfg.MaxImages)
	}
	if cfg.Workers != 8 {
		t.Errorf("expected workers 8, got %d", cfg.Workers)
	}
	if !cfg.Permissive {
		t.Error("expected permissive true")
	}
	if !cfg.ExcludeOccluded {
		t.Error("expected exclude_occluded true")
	}
	if !cfg.Progress {
		t.Error("expected progress true")
	}
	if cfg.Seed != 42 {
		t.Errorf("expected seed 42, got %d", cfg.Seed)
	}
	if cfg.HTTPTimeout != 10*time.Second {
		t.Errorf("expected http timeout 10s, got %v", cfg.HTTPTimeout)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("OIDL_ANNOTATIONS", "env-annots.csv")
	t.Setenv("OIDL_OBJECTS", "dog, bicycle wheel ,cat")
	t.Setenv("OIDL_MAX_IMAGES", "50")
	t.Setenv("OIDL_WORKERS", "2")
	t.Setenv("OIDL_PERMISSIVE", "1")
	t.Setenv("OIDL_HTTP_TIMEOUT", "5s")

	cfg := Default()
	if err := cfg.LoadFromEnv(); err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}

	if cfg.Annotations != "env-annots.csv" {
		t.Errorf("expected annotations env-annots.csv, got %s", cfg.Annotations)
	}
	want := []string{"dog", "bicycle wheel", "cat"}
	if len(cfg.Objects) != len(want) {
		t.Fatalf("expected %d objects, got %v", len(want), cfg.Objects)
	}
	for i := range want {
		if cfg.Objects[i] != want[i] {
			t.Errorf("object %d: expected %q, got %q", i, want[i], cfg.Objects[i])
		}
	}
	if cfg.MaxImages != 50 {
		t.Errorf("expected max images 50, got %d", cfg.MaxImages)
	}
	if cfg.Workers != 2 {
		t.Errorf("expected workers 2, got %d", cfg.Workers)
	}
	if !cfg.Permissive {
		t.Error("expected permissive true")
	}
	if cfg.HTTPTimeout != 5*time.Second {
		t.Errorf("expected http timeout 5s, got %v", cfg.HTTPTimeout)
	}
}

func TestLoadFromEnvInvalid(t *testing.T) {
	t.Setenv("OIDL_WORKERS", "not-a-number")

	cfg := Default()
	if err := cfg.LoadFromEnv(); err == nil {
		t.Error("expected error for invalid OIDL_WORKERS")
	}
}

func TestValidate(t *testing.T) {
	valid := Config{
		Annotations: "annots.csv",
		Labelmap:    "labelmap.csv",
		Images:      "images.csv",
		OutputDir:   "out",
		Objects:     []string{"dog"},
		Workers:     4,
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid config", mutate: func(c *Config) {}, wantErr: false},
		{name: "missing annotations", mutate: func(c *Config) { c.Annotations = "" }, wantErr: true},
		{name: "missing labelmap", mutate: func(c *Config) { c.Labelmap = "" }, wantErr: true},
		{name: "missing images", mutate: func(c *Config) { c.Images = "" }, wantErr: true},
		{name: "missing output dir", mutate: func(c *Config) { c.OutputDir = "" }, wantErr: true},
		{name: "no objects", mutate: func(c *Config) { c.Objects = nil }, wantErr: true},
		{name: "invalid workers", mutate: func(c *Config) { c.Workers = 0 }, wantErr: true},
		{name: "negative max images", mutate: func(c *Config) { c.MaxImages = -1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	base := Default()
	base.Annotations = "annots.csv"
	base.Labelmap = "labelmap.csv"
	base.Objects = []string{"dog"}

	override := Config{
		Workers:   8,
		MaxImages: 25,
	}

	merged := base.Merge(override)

	if merged.Annotations != "annots.csv" {
		t.Errorf("expected annotations preserved, got %s", merged.Annotations)
	}
	if merged.Labelmap != "labelmap.csv" {
		t.Errorf("expected labelmap preserved, got %s", merged.Labelmap)
	}
	if len(merged.Objects) != 1 || merged.Objects[0] != "dog" {
		t.Errorf("expected objects preserved, got %v", merged.Objects)
	}
	if merged.HTTPTimeout != 30*time.Second {
		t.Errorf("expected http timeout preserved, got %v", merged.HTTPTimeout)
	}

	if merged.Workers != 8 {
		t.Errorf("expected workers overridden to 8, got %d", merged.Workers)
	}
	if merged.MaxImages != 25 {
		t.Errorf("expected max images overridden to 25, got %d", merged.MaxImages)
	}
}

func TestLoadYAMLFileNotFound(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestLoadYAMLInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("invalid: [yaml: content"), 0644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	_, err := LoadFromFile(configPath)
	if err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestSplitObjects(t *testing.T) {
	got := SplitObjects(" dog ,, cat,bicycle wheel ")
	want := []string{"dog", "cat", "bicycle wheel"}
	if len(got) != len(want) {
		t.Fatalf("expected %d objects, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("object %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}
