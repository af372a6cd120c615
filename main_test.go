package main

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dhpipe/calculator"
)

func TestWriteOutputs(t *testing.T) {
	cfg := calculator.DefaultConfig()
	cfg.Discretization.Steps = 30
	res, err := calculator.Simulate(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	dir := filepath.Join(t.TempDir(), "out")
	if err := writeOutputs(dir, res, true); err != nil {
		t.Fatalf("writeOutputs: %v", err)
	}

	outlet, err := os.ReadFile(filepath.Join(dir, "outlet.csv"))
	if err != nil {
		t.Fatalf("read outlet.csv: %v", err)
	}
	if lines := strings.Split(strings.TrimSpace(string(outlet)), "\n"); len(lines) != 32 {
		t.Errorf("outlet.csv has %d lines, want header + 31", len(lines))
	}
	profile, err := os.ReadFile(filepath.Join(dir, "profile.csv"))
	if err != nil {
		t.Fatalf("read profile.csv: %v", err)
	}
	if lines := strings.Split(strings.TrimSpace(string(profile)), "\n"); len(lines) != 11 {
		t.Errorf("profile.csv has %d lines, want header + 10", len(lines))
	}
	if st, err := os.Stat(filepath.Join(dir, "outlet.png")); err != nil || st.Size() == 0 {
		t.Errorf("outlet.png missing or empty: %v", err)
	}
}

func TestWriteFileErrors(t *testing.T) {
	dir := t.TempDir()
	if err := writeFile(filepath.Join(dir, "missing", "x.csv"), func(io.Writer) error { return nil }); err == nil {
		t.Error("create in a missing folder succeeded")
	}

	boom := errors.New("boom")
	if err := writeFile(filepath.Join(dir, "x.csv"), func(io.Writer) error { return boom }); !errors.Is(err, boom) {
		t.Errorf("err = %v, want the write error", err)
	}
}
