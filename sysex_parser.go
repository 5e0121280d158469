// sysex_parser.go - DX7 SysEx 32-voice bank decoder

/*
A DX7 bulk dump is 4104 bytes: 6 framing bytes (accepted, not
validated), then 32 consecutive 128-byte packed voices, then trailing
framing. Each packed voice expands to 155 parameters: six operators of
21 parameters (stored OP6 first through OP1 last, 17 packed bytes
each), then the global block (pitch EG, algorithm, feedback/key sync,
LFO, transpose, 10 ASCII name characters).

The decoder keeps the raw 155-parameter arrays for all 32 presets and
materialises them into SynthConfig values on demand, reversing the
operator order so core operator 0 is DX7 OP6 (the descending hot path
then matches DX7 numbering visually).
*/

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	SYSEX_BANK_SIZE   = 4104
	SYSEX_HEADER_SIZE = 6
	SYSEX_VOICE_SIZE  = 128
	SYSEX_NUM_VOICES  = 32
	SYSEX_NUM_PARAMS  = 155
)

// SysexBank holds one decoded 32-voice DX7 bank.
type SysexBank struct {
	bankParams [SYSEX_NUM_VOICES][SYSEX_NUM_PARAMS]uint8
	bankName   string
	bankLoaded bool

	availableBanks []string
}

// unpackVoice expands 128 bytes of packed DX7 voice data into 155
// parameters. Each nibble and bit triplet is masked explicitly; the
// format's don't-care bits are dropped.
func unpackVoice(packed []byte, params *[SYSEX_NUM_PARAMS]uint8) {
	// Six operators, OP6 first through OP1 last in DX7 storage order
	for op := 0; op < 6; op++ {
		base := op * 17
		paramBase := op * 21

		// EG rates and levels (bytes 0-7)
		params[paramBase+0] = packed[base+0] & 0x7F // R1
		params[paramBase+1] = packed[base+1] & 0x7F // R2
		params[paramBase+2] = packed[base+2] & 0x7F // R3
		params[paramBase+3] = packed[base+3] & 0x7F // R4
		params[paramBase+4] = packed[base+4] & 0x7F // L1
		params[paramBase+5] = packed[base+5] & 0x7F // L2
		params[paramBase+6] = packed[base+6] & 0x7F // L3
		params[paramBase+7] = packed[base+7] & 0x7F // L4

		// Level scaling (bytes 8-10)
		params[paramBase+8] = packed[base+8] & 0x7F   // Breakpoint
		params[paramBase+9] = packed[base+9] & 0x7F   // Left depth
		params[paramBase+10] = packed[base+10] & 0x7F // Right depth

		// Left/right curves share byte 11's low nibble
		curves := packed[base+11] & 0x0F
		params[paramBase+11] = curves & 0x03        // Left curve (bits 1-0)
		params[paramBase+12] = (curves >> 2) & 0x03 // Right curve (bits 3-2)

		// Rate scaling and detune share byte 12
		detuneRS := packed[base+12] & 0x7F
		params[paramBase+13] = detuneRS & 0x07        // Rate scaling (bits 2-0)
		params[paramBase+20] = (detuneRS >> 3) & 0x0F // Detune (bits 6-3)

		// Velocity sensitivity and AMS share byte 13
		kvsAMS := packed[base+13] & 0x1F
		params[paramBase+14] = kvsAMS & 0x03        // AMS (bits 1-0)
		params[paramBase+15] = (kvsAMS >> 2) & 0x07 // KVS (bits 4-2)

		// Output level (byte 14)
		params[paramBase+16] = packed[base+14] & 0x7F

		// Oscillator mode and coarse share byte 15
		coarseMode := packed[base+15] & 0x3F
		params[paramBase+17] = coarseMode & 0x01        // Fixed mode (bit 0)
		params[paramBase+18] = (coarseMode >> 1) & 0x1F // Coarse (bits 5-1)

		// Fine frequency (byte 16)
		params[paramBase+19] = packed[base+16] & 0x7F
	}

	// Global parameters start at byte 102
	globalBase := 102

	// Pitch EG rates and levels
	params[126] = packed[globalBase+0] & 0x7F // PR1
	params[127] = packed[globalBase+1] & 0x7F // PR2
	params[128] = packed[globalBase+2] & 0x7F // PR3
	params[129] = packed[globalBase+3] & 0x7F // PR4
	params[130] = packed[globalBase+4] & 0x7F // PL1
	params[131] = packed[globalBase+5] & 0x7F // PL2
	params[132] = packed[globalBase+6] & 0x7F // PL3
	params[133] = packed[globalBase+7] & 0x7F // PL4

	// Algorithm
	params[134] = packed[globalBase+8] & 0x1F

	// Feedback and oscillator key sync share byte 111
	oksFB := packed[globalBase+9] & 0x0F
	params[135] = oksFB & 0x07        // Feedback (bits 2-0)
	params[136] = (oksFB >> 3) & 0x01 // OSC key sync (bit 3)

	// LFO block
	params[137] = packed[globalBase+10] & 0x7F // Speed
	params[138] = packed[globalBase+11] & 0x7F // Delay
	params[139] = packed[globalBase+12] & 0x7F // Pitch mod depth
	params[140] = packed[globalBase+13] & 0x7F // Amp mod depth

	// LFO key sync, waveform and pitch mod sensitivity share byte 116
	lpms := packed[globalBase+14] & 0x7F
	params[141] = lpms & 0x01        // Key sync (bit 0)
	params[142] = (lpms >> 1) & 0x07 // Waveform (bits 3-1)
	params[143] = (lpms >> 4) & 0x07 // Pitch mod sens (bits 6-4)

	// Transpose
	params[144] = packed[globalBase+15] & 0x7F

	// Voice name (10 ASCII characters)
	for i := 0; i < 10; i++ {
		params[145+i] = packed[globalBase+16+i] & 0x7F
	}
}

// packVoice is the exact inverse of unpackVoice: it rebuilds the
// 128-byte packed layout from 155 parameters, writing don't-care bits
// as zero.
func packVoice(params *[SYSEX_NUM_PARAMS]uint8, packed []byte) {
	for op := 0; op < 6; op++ {
		base := op * 17
		paramBase := op * 21

		for i := 0; i < 8; i++ {
			packed[base+i] = params[paramBase+i] & 0x7F
		}
		packed[base+8] = params[paramBase+8] & 0x7F
		packed[base+9] = params[paramBase+9] & 0x7F
		packed[base+10] = params[paramBase+10] & 0x7F
		packed[base+11] = (params[paramBase+11] & 0x03) | ((params[paramBase+12] & 0x03) << 2)
		packed[base+12] = (params[paramBase+13] & 0x07) | ((params[paramBase+20] & 0x0F) << 3)
		packed[base+13] = (params[paramBase+14] & 0x03) | ((params[paramBase+15] & 0x07) << 2)
		packed[base+14] = params[paramBase+16] & 0x7F
		packed[base+15] = (params[paramBase+17] & 0x01) | ((params[paramBase+18] & 0x1F) << 1)
		packed[base+16] = params[paramBase+19] & 0x7F
	}

	globalBase := 102

	for i := 0; i < 8; i++ {
		packed[globalBase+i] = params[126+i] & 0x7F
	}
	packed[globalBase+8] = params[134] & 0x1F
	packed[globalBase+9] = (params[135] & 0x07) | ((params[136] & 0x01) << 3)
	packed[globalBase+10] = params[137] & 0x7F
	packed[globalBase+11] = params[138] & 0x7F
	packed[globalBase+12] = params[139] & 0x7F
	packed[globalBase+13] = params[140] & 0x7F
	packed[globalBase+14] = (params[141] & 0x01) | ((params[142] & 0x07) << 1) | ((params[143] & 0x07) << 4)
	packed[globalBase+15] = params[144] & 0x7F
	for i := 0; i < 10; i++ {
		packed[globalBase+16+i] = params[145+i] & 0x7F
	}
}

// paramsToSynthConfig materialises one preset's 155 parameters into a
// SynthConfig, reversing the DX7 operator order.
func paramsToSynthConfig(params *[SYSEX_NUM_PARAMS]uint8, cfg *SynthConfig) {
	voiceCfg := &cfg.VoiceConfig

	for dx7Op := 0; dx7Op < 6; dx7Op++ {
		// Core operator 0 is DX7 OP6, core operator 5 is DX7 OP1
		ourOp := 5 - dx7Op
		paramBase := dx7Op * 21

		voiceCfg.OperatorConfigs[ourOp] = OperatorConfig{
			On: true,
			Frequency: FrequencyConfig{
				FixedFrequency: params[paramBase+17] == 1,
				Detune:         params[paramBase+20],
				Coarse:         params[paramBase+18],
				Fine:           params[paramBase+19],
			},
			Envelope: EnvelopeConfig{
				OutputLevel: params[paramBase+16],
				L1:          params[paramBase+4],
				L2:          params[paramBase+5],
				L3:          params[paramBase+6],
				L4:          params[paramBase+7],
				R1:          params[paramBase+0],
				R2:          params[paramBase+1],
				R3:          params[paramBase+2],
				R4:          params[paramBase+3],
				RateScaling: params[paramBase+13],
			},
			VelocitySensitivity: params[paramBase+15],
			AmpModSens:          params[paramBase+14],
			LvlSclBreakpoint:    params[paramBase+8],
			LvlSclLeftDepth:     params[paramBase+9],
			LvlSclRightDepth:    params[paramBase+10],
			LvlSclLeftCurve:     params[paramBase+11],
			LvlSclRightCurve:    params[paramBase+12],
			OSCKeySync:          params[136] == 1,
			Waveform:            WAVEFORM_SINE,
		}
	}

	voiceCfg.Algorithm = AlgorithmByIndex(params[134])
	voiceCfg.Feedback = params[135]
	voiceCfg.Transpose = params[144]

	cfg.LFOConfig = LFOConfig{
		Waveform:      params[142],
		Speed:         params[137],
		Delay:         params[138],
		PitchModDepth: params[139],
		AmpModDepth:   params[140],
		PitchModSens:  params[143],
		LFOKeySync:    params[141] == 1,
	}

	cfg.PitchEnvelopeConfig = PitchEnvelopeConfig{
		R1: params[126], R2: params[127], R3: params[128], R4: params[129],
		L1: params[130], L2: params[131], L3: params[132], L4: params[133],
	}

	cfg.Monophonic = false
}

// LoadBank reads and decodes a .syx bank file.
func (b *SysexBank) LoadBank(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		b.bankLoaded = false
		return fmt.Errorf("could not open bank file: %w", err)
	}

	name := filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(name))

	if err := b.LoadBankData(data); err != nil {
		return err
	}
	b.bankName = name
	return nil
}

// LoadBankData decodes a bank from an in-memory buffer.
func (b *SysexBank) LoadBankData(data []byte) error {
	b.bankLoaded = false

	if len(data) != SYSEX_BANK_SIZE {
		fmt.Printf("Warning: file size is %d bytes (expected %d for 32-voice DX7 dump)\n",
			len(data), SYSEX_BANK_SIZE)
	}

	for voice := 0; voice < SYSEX_NUM_VOICES; voice++ {
		offset := SYSEX_HEADER_SIZE + voice*SYSEX_VOICE_SIZE
		if len(data) < offset+SYSEX_VOICE_SIZE {
			return fmt.Errorf("bank truncated: %d bytes is too small for 32 voices", len(data))
		}
		unpackVoice(data[offset:offset+SYSEX_VOICE_SIZE], &b.bankParams[voice])
	}

	b.bankLoaded = true
	return nil
}

// Preset materialises preset 0-31 into the given SynthConfig.
func (b *SysexBank) Preset(index uint8, cfg *SynthConfig) error {
	if !b.bankLoaded {
		return fmt.Errorf("no bank loaded")
	}
	if index >= SYSEX_NUM_VOICES {
		return fmt.Errorf("preset index %d out of range (0-31)", index)
	}
	paramsToSynthConfig(&b.bankParams[index], cfg)
	return nil
}

// PresetName returns the 10-character voice name of a preset, with
// trailing padding trimmed for display.
func (b *SysexBank) PresetName(index uint8) string {
	if !b.bankLoaded || index >= SYSEX_NUM_VOICES {
		return ""
	}
	name := make([]byte, 10)
	for i := 0; i < 10; i++ {
		name[i] = b.bankParams[index][145+i]
	}
	return strings.TrimRight(string(name), " \x00")
}

// AllPresetNames returns the 32 voice names for menu display.
func (b *SysexBank) AllPresetNames() [SYSEX_NUM_VOICES]string {
	var names [SYSEX_NUM_VOICES]string
	for i := uint8(0); i < SYSEX_NUM_VOICES; i++ {
		names[i] = b.PresetName(i)
	}
	return names
}

// RawPreset returns the 155 decoded parameters of a preset.
func (b *SysexBank) RawPreset(index uint8) [SYSEX_NUM_PARAMS]uint8 {
	if !b.bankLoaded || index >= SYSEX_NUM_VOICES {
		return [SYSEX_NUM_PARAMS]uint8{}
	}
	return b.bankParams[index]
}

// BankName returns the name of the loaded bank (from the filename).
func (b *SysexBank) BankName() string {
	return b.bankName
}

// IsBankLoaded reports whether a bank has been decoded successfully.
func (b *SysexBank) IsBankLoaded() bool {
	return b.bankLoaded
}

// UnloadBank forgets the current bank.
func (b *SysexBank) UnloadBank() {
	b.bankLoaded = false
	b.bankName = ""
}

// ListBanks scans a directory for .syx files and remembers their names
// without extensions.
func (b *SysexBank) ListBanks(dir string) error {
	b.availableBanks = b.availableBanks[:0]

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("could not read presets directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.EqualFold(filepath.Ext(name), ".syx") {
			b.availableBanks = append(b.availableBanks, strings.TrimSuffix(name, filepath.Ext(name)))
		}
	}

	fmt.Printf("Found %d .syx banks\n", len(b.availableBanks))
	return nil
}

// BanksList returns the bank names found by the last ListBanks call.
func (b *SysexBank) BanksList() []string {
	return b.availableBanks
}
