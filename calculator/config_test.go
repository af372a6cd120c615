package calculator

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/ini.v1"

	"dhpipe/model"
)

func writeIni(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.ini")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write ini: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeIni(t, ""))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("empty file gave %+v, want the reference case", cfg)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	cfg, err := LoadConfig(writeIni(t, `
[pipe]
Capacity = Insulation
NominalDiameter = 50
InsulationClass = 3
GroundFactor = 2

[boundary]
Role = Return
MassFlow = 0.2
GroundTemperature = 8

[discretization]
Nodes = 21
Steps = 500

[warm_start]
GroundOffset = 0

[soil]
Conductivity = 1.2
`))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Segment.NominalDiameter != 50 || cfg.Segment.InsulationClass != 3 || cfg.Segment.GroundFactor != 2 ||
		cfg.Segment.Capacity != model.CapacityInsulation {
		t.Errorf("segment = %+v", cfg.Segment)
	}
	if cfg.Boundary.Role != model.Return || cfg.Boundary.MassFlow != 0.2 || cfg.Boundary.GroundTemperature != 8 {
		t.Errorf("boundary = %+v", cfg.Boundary)
	}
	if cfg.Boundary.Length != 15 {
		t.Errorf("length = %v, want default 15", cfg.Boundary.Length)
	}
	if cfg.Discretization.Nodes != 21 || cfg.Discretization.Steps != 500 || cfg.Discretization.TimeStep != 1 {
		t.Errorf("discretization = %+v", cfg.Discretization)
	}
	if cfg.WarmStart.GroundOffset != 0 || cfg.WarmStart.InsulationOffset != -1 {
		t.Errorf("warm start = %+v", cfg.WarmStart)
	}
	if cfg.Materials.Soil.Conductivity != 1.2 || cfg.Materials.Soil.Density != 1400 {
		t.Errorf("soil = %+v", cfg.Materials.Soil)
	}
}

func TestLoadConfigBadRole(t *testing.T) {
	_, err := LoadConfig(writeIni(t, "[boundary]\nRole = bypass\n"))
	if !errors.Is(err, model.ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}
}

func TestLoadConfigBadCapacity(t *testing.T) {
	_, err := LoadConfig(writeIni(t, "[pipe]\nCapacity = wall\n"))
	if !errors.Is(err, model.ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}
}

func TestParseConfigShippedFile(t *testing.T) {
	file, err := ini.Load(filepath.Join("..", "conf", "config.ini"))
	if err != nil {
		t.Fatalf("load shipped config: %v", err)
	}
	cfg, err := ParseConfig(file)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("conf/config.ini gave %+v, want the reference case", cfg)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.ini")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestWithEnv(t *testing.T) {
	role, dn, steps, ground := "return", 32, 60, 0.0
	cfg, err := DefaultConfig().WithEnv(model.Env{
		Role:              &role,
		NominalDiameter:   &dn,
		Steps:             &steps,
		GroundTemperature: &ground,
	})
	if err != nil {
		t.Fatalf("WithEnv: %v", err)
	}
	if cfg.Boundary.Role != model.Return || cfg.Segment.NominalDiameter != 32 || cfg.Discretization.Steps != 60 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Boundary.GroundTemperature != 0 {
		t.Errorf("ground temperature = %v, want explicit 0", cfg.Boundary.GroundTemperature)
	}
	if cfg.Boundary.InletTemperature != 70 {
		t.Errorf("unset inlet changed to %v", cfg.Boundary.InletTemperature)
	}

	bad := "sideways"
	if _, err := DefaultConfig().WithEnv(model.Env{Role: &bad}); !errors.Is(err, model.ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}
	if _, err := DefaultConfig().WithEnv(model.Env{Capacity: &bad}); !errors.Is(err, model.ErrInvalidArgument) {
		t.Fatalf("capacity err = %v, want ErrInvalidArgument", err)
	}

	capacity := "insulation"
	cfg, err = DefaultConfig().WithEnv(model.Env{Capacity: &capacity})
	if err != nil || cfg.Segment.Capacity != model.CapacityInsulation {
		t.Fatalf("capacity env: cfg %+v, err %v", cfg.Segment, err)
	}
}
