// live_keyboard.go - Interactive computer-keyboard note input

/*
Maps two rows of the keyboard onto a chromatic octave (the classic
tracker layout: z-row naturals with s/d/g/h/j sharps, q-row one octave
up) and feeds NoteOn/NoteOff events into the synth pump. Raw terminal
mode gives us keypresses without line buffering; since a terminal
cannot report key releases, each press retriggers its note and the
previous note on the same key is released first.

Only instantiated in main.go for interactive use — never in tests.
*/

package main

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// keyToSemitone maps keyboard characters to semitone offsets from the
// base note (middle C by default).
var keyToSemitone = map[byte]int{
	'z': 0, 's': 1, 'x': 2, 'd': 3, 'c': 4, 'v': 5, 'g': 6,
	'b': 7, 'h': 8, 'n': 9, 'j': 10, 'm': 11, ',': 12,
	'q': 12, '2': 13, 'w': 14, '3': 15, 'e': 16, 'r': 17, '5': 18,
	't': 19, '6': 20, 'y': 21, '7': 22, 'u': 23, 'i': 24,
}

// LiveKeyboard owns the raw-mode terminal session.
type LiveKeyboard struct {
	pump     *SynthPump
	bank     *SysexBank
	preset   uint8
	baseNote int
	velocity uint8
	keySync  bool

	heldNotes map[byte]uint8
}

// NewLiveKeyboard prepares an interactive session on the given pump.
// bank may be nil when no SysEx bank is loaded.
func NewLiveKeyboard(pump *SynthPump, bank *SysexBank, preset uint8) *LiveKeyboard {
	return &LiveKeyboard{
		pump:      pump,
		bank:      bank,
		preset:    preset,
		baseNote:  60,
		velocity:  100,
		heldNotes: make(map[byte]uint8),
	}
}

// Run switches the terminal to raw mode and processes keys until ESC.
func (k *LiveKeyboard) Run() error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to set raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	fmt.Print("Live keyboard: z-row and q-row play notes, -/= octave, [/] preset, k key sync, ESC quits\r\n")
	k.printPreset()

	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil || n == 0 {
			continue
		}

		key := buf[0]
		switch {
		case key == 27: // ESC
			k.releaseAll()
			fmt.Print("\r\n")
			return nil
		case key == '-':
			if k.baseNote >= 12 {
				k.baseNote -= 12
			}
			fmt.Printf("Octave base: MIDI %d\r\n", k.baseNote)
		case key == '=':
			if k.baseNote <= 96 {
				k.baseNote += 12
			}
			fmt.Printf("Octave base: MIDI %d\r\n", k.baseNote)
		case key == '[':
			k.switchPreset(-1)
		case key == ']':
			k.switchPreset(1)
		case key == 'k':
			k.toggleKeySync()
		case key == ' ':
			k.releaseAll()
		default:
			if semitone, ok := keyToSemitone[key]; ok {
				k.playKey(key, semitone)
			}
		}
	}
}

func (k *LiveKeyboard) playKey(key byte, semitone int) {
	note := k.baseNote + semitone
	if note < 0 || note > 127 {
		return
	}

	if prev, held := k.heldNotes[key]; held {
		k.pump.NoteOff(prev)
	}
	k.pump.NoteOn(uint8(note), k.velocity)
	k.heldNotes[key] = uint8(note)
}

func (k *LiveKeyboard) releaseAll() {
	for key, note := range k.heldNotes {
		k.pump.NoteOff(note)
		delete(k.heldNotes, key)
	}
}

func (k *LiveKeyboard) toggleKeySync() {
	k.keySync = !k.keySync
	k.pump.SetOSCKeySync(k.keySync)
	if k.keySync {
		fmt.Print("OSC key sync: on\r\n")
	} else {
		fmt.Print("OSC key sync: off\r\n")
	}
}

func (k *LiveKeyboard) switchPreset(delta int) {
	if k.bank == nil || !k.bank.IsBankLoaded() {
		return
	}

	k.releaseAll()
	k.preset = uint8((int(k.preset) + delta + SYSEX_NUM_VOICES) % SYSEX_NUM_VOICES)

	var cfg SynthConfig
	if err := k.bank.Preset(k.preset, &cfg); err != nil {
		fmt.Printf("Error loading preset: %v\r\n", err)
		return
	}
	k.pump.Configure(&cfg)
	k.printPreset()
}

func (k *LiveKeyboard) printPreset() {
	if k.bank != nil && k.bank.IsBankLoaded() {
		fmt.Printf("Preset %02d: %s\r\n", k.preset+1, k.bank.PresetName(k.preset))
	}
}
