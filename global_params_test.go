// global_params_test.go - Tests for persisted global settings

package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGlobalParams_Defaults(t *testing.T) {
	var p GlobalParams
	p.SetDefaults()

	if p.PitchBendRange != 12 || p.ModWheelIntensity != 0 || p.MidiChannel != 1 {
		t.Errorf("unexpected defaults: %+v", p)
	}
}

func TestGlobalParams_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.bin")

	saved := GlobalParams{
		PitchBendRange:    2,
		ModWheelIntensity: 64,
		ModWheelAssignment: ModWheelAssignment{
			PitchModDepth: true,
			EGBias:        true,
		},
		MidiChannel: 9,
	}
	if err := saved.SaveToFile(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	var loaded GlobalParams
	if err := loaded.LoadFromFile(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != saved {
		t.Errorf("loaded %+v, want %+v", loaded, saved)
	}
}

func TestGlobalParams_ClampsOnLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.bin")

	out := GlobalParams{
		PitchBendRange:    200,
		ModWheelIntensity: 150,
		MidiChannel:       99,
	}
	if err := out.SaveToFile(path); err != nil {
		t.Fatal(err)
	}

	var in GlobalParams
	if err := in.LoadFromFile(path); err != nil {
		t.Fatal(err)
	}
	if in.PitchBendRange != 24 || in.ModWheelIntensity != 99 || in.MidiChannel != 16 {
		t.Errorf("loaded values not clamped: %+v", in)
	}
}

func TestGlobalParams_MissingFileFallsBackToDefaults(t *testing.T) {
	var p GlobalParams
	err := p.LoadFromFile(filepath.Join(t.TempDir(), "nope.bin"))
	if err == nil {
		t.Error("missing file loaded without error")
	}
	if p.PitchBendRange != 12 {
		t.Error("defaults not applied after failed load")
	}
}

func TestGlobalParams_BadMagicFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.bin")
	if err := os.WriteFile(path, []byte("NOTPARAMS!!"), 0o644); err != nil {
		t.Fatal(err)
	}

	var p GlobalParams
	if err := p.LoadFromFile(path); err == nil {
		t.Error("bad magic loaded without error")
	}
	if p.PitchBendRange != 12 || p.MidiChannel != 1 {
		t.Error("defaults not applied after bad magic")
	}
}
