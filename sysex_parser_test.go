// sysex_parser_test.go - Tests for the DX7 bank decoder

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// xorshift32 gives the tests deterministic pseudo-random bytes.
type xorshift32 uint32

func (x *xorshift32) next() uint32 {
	v := uint32(*x)
	v ^= v << 13
	v ^= v >> 17
	v ^= v << 5
	*x = xorshift32(v)
	return v
}

// buildTestVoice fills a 155-parameter array with in-range values.
func buildTestVoice(seed uint32) [SYSEX_NUM_PARAMS]uint8 {
	rng := xorshift32(seed)
	var params [SYSEX_NUM_PARAMS]uint8

	for op := 0; op < 6; op++ {
		base := op * 21
		for i := 0; i < 11; i++ { // rates, levels, breakpoint, depths
			params[base+i] = uint8(rng.next() % 100)
		}
		params[base+11] = uint8(rng.next() % 4)   // Left curve
		params[base+12] = uint8(rng.next() % 4)   // Right curve
		params[base+13] = uint8(rng.next() % 8)   // Rate scaling
		params[base+14] = uint8(rng.next() % 4)   // AMS
		params[base+15] = uint8(rng.next() % 8)   // KVS
		params[base+16] = uint8(rng.next() % 100) // Output level
		params[base+17] = uint8(rng.next() % 2)   // Fixed mode
		params[base+18] = uint8(rng.next() % 32)  // Coarse
		params[base+19] = uint8(rng.next() % 100) // Fine
		params[base+20] = uint8(rng.next() % 15)  // Detune
	}

	for i := 126; i < 134; i++ { // Pitch EG
		params[i] = uint8(rng.next() % 100)
	}
	params[134] = uint8(rng.next() % 32) // Algorithm
	params[135] = uint8(rng.next() % 8)  // Feedback
	params[136] = uint8(rng.next() % 2)  // OSC key sync
	params[137] = uint8(rng.next() % 100)
	params[138] = uint8(rng.next() % 100)
	params[139] = uint8(rng.next() % 100)
	params[140] = uint8(rng.next() % 100)
	params[141] = uint8(rng.next() % 2) // LFO key sync
	params[142] = uint8(rng.next() % 6) // LFO waveform
	params[143] = uint8(rng.next() % 8) // LFO PMS
	params[144] = uint8(rng.next() % 49)
	copy(params[145:], "TESTVOICE ")
	return params
}

// buildTestBank packs 32 voices into a full 4104-byte dump.
func buildTestBank() []byte {
	data := make([]byte, SYSEX_BANK_SIZE)
	// Framing bytes are accepted but never validated
	copy(data[0:6], []byte{0xF0, 0x43, 0x00, 0x09, 0x20, 0x00})
	for voice := 0; voice < SYSEX_NUM_VOICES; voice++ {
		params := buildTestVoice(uint32(voice + 1))
		packVoice(&params, data[SYSEX_HEADER_SIZE+voice*SYSEX_VOICE_SIZE:])
	}
	return data
}

func TestSysex_PackUnpackRoundTrip(t *testing.T) {
	// Pack then unpack recovers every parameter exactly
	for seed := uint32(1); seed <= 16; seed++ {
		params := buildTestVoice(seed)

		packed := make([]byte, SYSEX_VOICE_SIZE)
		packVoice(&params, packed)

		var unpacked [SYSEX_NUM_PARAMS]uint8
		unpackVoice(packed, &unpacked)

		if params != unpacked {
			t.Fatalf("seed %d: parameters changed across pack/unpack", seed)
		}
	}
}

func TestSysex_UnpackPackByteFidelity(t *testing.T) {
	// Arbitrary packed bytes: unpack/repack must be byte-identical
	// modulo the format's don't-care bits, i.e. repacking the unpacked
	// parameters a second time reproduces the same canonical bytes
	rng := xorshift32(0xBADC0FFE)
	for round := 0; round < 16; round++ {
		raw := make([]byte, SYSEX_VOICE_SIZE)
		for i := range raw {
			raw[i] = uint8(rng.next())
		}

		var p1 [SYSEX_NUM_PARAMS]uint8
		unpackVoice(raw, &p1)

		canonical := make([]byte, SYSEX_VOICE_SIZE)
		packVoice(&p1, canonical)

		var p2 [SYSEX_NUM_PARAMS]uint8
		unpackVoice(canonical, &p2)

		if p1 != p2 {
			t.Fatal("parameters changed between first and second unpack")
		}

		repacked := make([]byte, SYSEX_VOICE_SIZE)
		packVoice(&p2, repacked)
		if !bytes.Equal(canonical, repacked) {
			t.Fatal("canonical packed form is not stable")
		}
	}
}

func TestSysex_LoadBankData(t *testing.T) {
	var bank SysexBank
	if err := bank.LoadBankData(buildTestBank()); err != nil {
		t.Fatalf("LoadBankData: %v", err)
	}
	if !bank.IsBankLoaded() {
		t.Fatal("bank not marked loaded")
	}

	for voice := uint8(0); voice < SYSEX_NUM_VOICES; voice++ {
		want := buildTestVoice(uint32(voice) + 1)
		got := bank.RawPreset(voice)
		if got != want {
			t.Fatalf("voice %d parameters differ after bank decode", voice)
		}
	}

	if got := bank.PresetName(0); got != "TESTVOICE" {
		t.Errorf("preset name %q, want %q", got, "TESTVOICE")
	}
}

func TestSysex_TruncatedBankFails(t *testing.T) {
	var bank SysexBank
	data := buildTestBank()[:2000]
	if err := bank.LoadBankData(data); err == nil {
		t.Fatal("truncated bank decoded without error")
	}
	if bank.IsBankLoaded() {
		t.Error("truncated bank marked loaded")
	}
}

func TestSysex_MaterialiseReversesOperators(t *testing.T) {
	initLUT()

	var bank SysexBank
	if err := bank.LoadBankData(buildTestBank()); err != nil {
		t.Fatalf("LoadBankData: %v", err)
	}

	params := buildTestVoice(1)
	var cfg SynthConfig
	if err := bank.Preset(0, &cfg); err != nil {
		t.Fatalf("Preset: %v", err)
	}

	// DX7 stores OP6 first; the core stores it at index 0
	for dx7Op := 0; dx7Op < 6; dx7Op++ {
		ourOp := 5 - dx7Op
		base := dx7Op * 21
		op := &cfg.VoiceConfig.OperatorConfigs[ourOp]

		if op.Envelope.R1 != params[base+0] || op.Envelope.L1 != params[base+4] {
			t.Errorf("operator %d: envelope mapping wrong", ourOp)
		}
		if op.Envelope.OutputLevel != params[base+16] {
			t.Errorf("operator %d: output level %d, want %d", ourOp, op.Envelope.OutputLevel, params[base+16])
		}
		if op.Frequency.Coarse != params[base+18] || op.Frequency.Detune != params[base+20] {
			t.Errorf("operator %d: frequency mapping wrong", ourOp)
		}
		if op.VelocitySensitivity != params[base+15] || op.AmpModSens != params[base+14] {
			t.Errorf("operator %d: sensitivity mapping wrong", ourOp)
		}
	}

	if cfg.VoiceConfig.Algorithm != &algorithmCatalogue[params[134]] {
		t.Error("algorithm pointer does not match the stored index")
	}
	if cfg.VoiceConfig.Feedback != params[135] || cfg.VoiceConfig.Transpose != params[144] {
		t.Error("feedback/transpose mapping wrong")
	}
	if cfg.LFOConfig.Waveform != params[142] || cfg.LFOConfig.Speed != params[137] {
		t.Error("LFO mapping wrong")
	}
	if cfg.PitchEnvelopeConfig.R1 != params[126] || cfg.PitchEnvelopeConfig.L1 != params[130] {
		t.Error("pitch envelope mapping wrong")
	}
}

func TestSysex_OversizeAlgorithmFallsBack(t *testing.T) {
	data := buildTestBank()

	// Corrupt voice 0's algorithm byte beyond 31; the 5-bit mask keeps
	// decoded values in range, so force the raw parameter instead
	var bank SysexBank
	if err := bank.LoadBankData(data); err != nil {
		t.Fatalf("LoadBankData: %v", err)
	}
	bank.bankParams[0][134] = 40

	var cfg SynthConfig
	if err := bank.Preset(0, &cfg); err != nil {
		t.Fatalf("Preset: %v", err)
	}
	if cfg.VoiceConfig.Algorithm != &algorithmCatalogue[0] {
		t.Error("out-of-range algorithm did not fall back to algorithm 1")
	}
}

func TestSysex_UnloadBank(t *testing.T) {
	var bank SysexBank
	if err := bank.LoadBankData(buildTestBank()); err != nil {
		t.Fatalf("LoadBankData: %v", err)
	}

	bank.UnloadBank()
	if bank.IsBankLoaded() {
		t.Error("bank still loaded after unload")
	}
	if bank.BankName() != "" {
		t.Errorf("bank name %q after unload, want empty", bank.BankName())
	}
	if got := bank.PresetName(0); got != "" {
		t.Errorf("preset name %q after unload, want empty", got)
	}

	var cfg SynthConfig
	if err := bank.Preset(0, &cfg); err == nil {
		t.Error("Preset succeeded after unload")
	}
}

func TestSysex_ListBanks(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"rom1a.syx", "rom2b.SYX", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte{0xF0}, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	var bank SysexBank
	if err := bank.ListBanks(dir); err != nil {
		t.Fatalf("ListBanks: %v", err)
	}

	names := bank.BanksList()
	if len(names) != 2 {
		t.Fatalf("found %d banks, want 2: %v", len(names), names)
	}
	found := map[string]bool{}
	for _, n := range names {
		found[n] = true
	}
	if !found["rom1a"] || !found["rom2b"] {
		t.Errorf("bank names %v, want rom1a and rom2b without extensions", names)
	}

	if err := bank.ListBanks(filepath.Join(dir, "missing")); err == nil {
		t.Error("ListBanks on a missing directory succeeded")
	}
}

func TestSysex_PresetWithoutBank(t *testing.T) {
	var bank SysexBank
	var cfg SynthConfig
	if err := bank.Preset(0, &cfg); err == nil {
		t.Error("Preset succeeded with no bank loaded")
	}
}
