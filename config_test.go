package speedcam

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigurationValidate(t *testing.T) {

	tests := []struct {
		name    string
		cfg     Configuration
		wantErr bool
	}{
		{
			name:    "valid",
			cfg:     Configuration{LeftCoordinate: 100, RightCoordinate: 500, Distance: 200, FPS: 30},
			wantErr: false,
		},
		{
			name:    "right not greater than left",
			cfg:     Configuration{LeftCoordinate: 500, RightCoordinate: 500, Distance: 200, FPS: 30},
			wantErr: true,
		},
		{
			name:    "negative left",
			cfg:     Configuration{LeftCoordinate: -1, RightCoordinate: 500, Distance: 200, FPS: 30},
			wantErr: true,
		},
		{
			name:    "zero distance",
			cfg:     Configuration{LeftCoordinate: 100, RightCoordinate: 500, Distance: 0, FPS: 30},
			wantErr: true,
		},
		{
			name:    "zero fps",
			cfg:     Configuration{LeftCoordinate: 100, RightCoordinate: 500, Distance: 200, FPS: 0},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()

			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigurationScaledTo(t *testing.T) {

	cfg := Configuration{
		LeftCoordinate:  200,
		RightCoordinate: 1000,
		Distance:        400,
		FPS:             30,
		DownsizeVideo:   960,
	}

	scaled, factor := cfg.ScaledTo(1920)

	if factor != 0.5 {
		t.Errorf("expected scale factor 0.5, got %f", factor)
	}

	if scaled.LeftCoordinate != 100 || scaled.RightCoordinate != 500 {
		t.Errorf("expected scaled coordinates 100/500, got %d/%d",
			scaled.LeftCoordinate, scaled.RightCoordinate)
	}

	// real world values must not scale
	if scaled.Distance != cfg.Distance || scaled.FPS != cfg.FPS {
		t.Errorf("distance/fps must be unchanged by scaling")
	}

	// no downsize configured
	cfg.DownsizeVideo = 0
	same, factor := cfg.ScaledTo(1920)

	if factor != 1.0 || same.LeftCoordinate != cfg.LeftCoordinate {
		t.Errorf("expected unchanged config when downsize not set")
	}
}

func TestLoadConfig(t *testing.T) {

	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")

	content := []byte("left_coordinate: 100\nright_coordinate: 500\ndistance: 200.0\nfps: 30.0\n")

	if err := os.WriteFile(file, content, 0644); err != nil {
		t.Fatalf("error writing config file: %v", err)
	}

	cfg, err := LoadConfig(file)

	if err != nil {
		t.Fatalf("error loading config: %v", err)
	}

	if cfg.LeftCoordinate != 100 || cfg.RightCoordinate != 500 ||
		cfg.Distance != 200.0 || cfg.FPS != 30.0 {
		t.Errorf("unexpected config values: %+v", cfg)
	}
}

func TestLoadConfigInvalid(t *testing.T) {

	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")

	// right coordinate before left
	content := []byte("left_coordinate: 500\nright_coordinate: 100\ndistance: 200.0\nfps: 30.0\n")

	if err := os.WriteFile(file, content, 0644); err != nil {
		t.Fatalf("error writing config file: %v", err)
	}

	_, err := LoadConfig(file)

	if err == nil {
		t.Errorf("expected error for invalid configuration")
	}

	_, err = LoadConfig(filepath.Join(dir, "missing.yaml"))

	if err == nil {
		t.Errorf("expected error for missing file")
	}
}
