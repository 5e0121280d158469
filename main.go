// main.go - AS7 command line entry point

/*
AS7 is a polyphonic six-operator FM synthesizer compatible at the
voice-parameter level with the Yamaha DX7.

Modes:
  -render file.wav   offline render to a float-32 mono WAV file
  -play              realtime playback of the demo sequence
  -live              interactive computer-keyboard performance
  -list              print the 32 preset names of a bank
  -list-banks dir    print the .syx banks found in a directory

A DX7 32-voice bank is selected with -bank and -preset; without a bank
the power-on default voice is used. -user-preset loads a native .as7
preset instead.
*/

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"
)

func main() {
	var (
		renderPath string
		modePlay   bool
		modeLive   bool
		modeList   bool
		banksDir   string
		bankPath   string
		presetNum  int
		userPreset string
		noteDur    float64
		totalDur   float64
		mono       bool
	)

	flagSet := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.StringVar(&renderPath, "render", "", "Render to WAV file")
	flagSet.BoolVar(&modePlay, "play", false, "Play the demo sequence in realtime")
	flagSet.BoolVar(&modeLive, "live", false, "Interactive keyboard mode")
	flagSet.BoolVar(&modeList, "list", false, "List the presets of a bank")
	flagSet.StringVar(&banksDir, "list-banks", "", "List the .syx banks in a directory")
	flagSet.StringVar(&bankPath, "bank", "", "DX7 SysEx bank file (.syx)")
	flagSet.IntVar(&presetNum, "preset", 0, "Preset number 1-32 within the bank")
	flagSet.StringVar(&userPreset, "user-preset", "", "Native preset file (.as7)")
	flagSet.Float64Var(&noteDur, "note-duration", 8.0, "Seconds before note-off in render/play mode")
	flagSet.Float64Var(&totalDur, "duration", 10.0, "Total seconds rendered/played")
	flagSet.BoolVar(&mono, "mono", false, "Monophonic voice allocation")

	flagSet.Usage = func() {
		flagSet.SetOutput(os.Stdout)
		fmt.Println("Usage: ./as7 -render out.wav|-play|-live|-list|-list-banks dir [-bank file.syx] [-preset N] [-user-preset file.as7]")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			flagSet.Usage()
			os.Exit(0)
		}
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	modeCount := 0
	if renderPath != "" {
		modeCount++
	}
	if modePlay {
		modeCount++
	}
	if modeLive {
		modeCount++
	}
	if modeList {
		modeCount++
	}
	if banksDir != "" {
		modeCount++
	}
	if modeCount != 1 {
		fmt.Println("Error: select exactly one mode: -render, -play, -live, -list or -list-banks")
		flagSet.Usage()
		os.Exit(1)
	}

	if banksDir != "" {
		var banks SysexBank
		if err := banks.ListBanks(banksDir); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		for _, name := range banks.BanksList() {
			fmt.Println(name)
		}
		return
	}

	initLUT()

	// Global performance settings; defaults when the file is absent
	var params GlobalParams
	if err := params.LoadFromFile(PARAMS_FILE_PATH); err != nil {
		params.SetDefaults()
	}

	var bank *SysexBank
	if bankPath != "" {
		bank = &SysexBank{}
		if err := bank.LoadBank(bankPath); err != nil {
			fmt.Printf("Error loading bank: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Successfully loaded DX7 bank: %s\n", bank.BankName())
	}

	if modeList {
		if bank == nil {
			fmt.Println("Error: -list requires -bank")
			os.Exit(1)
		}
		for i, name := range bank.AllPresetNames() {
			fmt.Printf("%02d: %s\n", i+1, name)
		}
		return
	}

	cfg := DefaultSynthConfig()
	switch {
	case userPreset != "":
		name, err := LoadUserPreset(userPreset, &cfg)
		if err != nil {
			fmt.Printf("Error loading preset: %v\n", err)
			os.Exit(1)
		}
		// A user preset supersedes any loaded bank
		if bank != nil {
			bank.UnloadBank()
		}
		fmt.Printf("Loaded user preset: %s\n", name)
	case bank != nil:
		if presetNum < 1 || presetNum > SYSEX_NUM_VOICES {
			fmt.Println("Error: -preset must be 1-32")
			os.Exit(1)
		}
		if err := bank.Preset(uint8(presetNum-1), &cfg); err != nil {
			fmt.Printf("Error loading preset: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Loaded preset: %s\n", bank.PresetName(uint8(presetNum-1)))
	}
	cfg.Monophonic = mono

	synth := &Synth{}
	synth.Configure(&cfg)

	switch {
	case renderPath != "":
		if err := render(synth, renderPath, noteDur, totalDur); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

	case modePlay:
		pump := NewSynthPump(synth)
		output, err := NewAudioOutput(int(SAMPLE_RATE), pump)
		if err != nil {
			fmt.Printf("Failed to initialize audio: %v\n", err)
			os.Exit(1)
		}
		defer output.Close()
		if err := output.Start(); err != nil {
			fmt.Printf("Failed to start audio: %v\n", err)
			os.Exit(1)
		}

		playDemo(pump, noteDur, totalDur)

	case modeLive:
		pump := NewSynthPump(synth)
		output, err := NewAudioOutput(int(SAMPLE_RATE), pump)
		if err != nil {
			fmt.Printf("Failed to initialize audio: %v\n", err)
			os.Exit(1)
		}
		defer output.Close()
		if err := output.Start(); err != nil {
			fmt.Printf("Failed to start audio: %v\n", err)
			os.Exit(1)
		}

		keyboard := NewLiveKeyboard(pump, bank, uint8(max(presetNum-1, 0)))
		if err := keyboard.Run(); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}
}

// render generates the demo sequence offline and writes it to a WAV file.
func render(synth *Synth, path string, noteDur, totalDur float64) error {
	totalSamples := int(SAMPLE_RATE * totalDur)
	samples := make([]float32, 0, totalSamples)

	chordSamples := [3]int{0, int(SAMPLE_RATE * 1.0), int(SAMPLE_RATE * 2.0)}
	chordNotes := [3]uint8{69, 72, 76}
	offSample := int(SAMPLE_RATE * noteDur)

	start := time.Now()

	for i := 0; i < totalSamples; i++ {
		for n := range chordNotes {
			if i == chordSamples[n] {
				synth.NoteOn(chordNotes[n], 100)
			}
		}
		if i == offSample {
			for _, note := range chordNotes {
				synth.NoteOff(note)
			}
		}

		samples = append(samples, synth.Process()*OPERATOR_SCALING)
	}

	elapsed := time.Since(start)

	if err := WriteWavFile(path, samples, uint32(SAMPLE_RATE)); err != nil {
		return err
	}

	fmt.Printf("Samples generated: %d\n", len(samples))
	fmt.Printf("Total duration: %.1f seconds\n", totalDur)
	fmt.Printf("Generation time: %d µs\n", elapsed.Microseconds())
	fmt.Printf("Real-time factor: %.1fx\n", totalDur/elapsed.Seconds())
	return nil
}

// playDemo schedules the same sequence against the realtime clock.
func playDemo(pump *SynthPump, noteDur, totalDur float64) {
	chordNotes := [3]uint8{69, 72, 76}

	pump.NoteOn(chordNotes[0], 100)
	time.Sleep(time.Second)
	pump.NoteOn(chordNotes[1], 100)
	time.Sleep(time.Second)
	pump.NoteOn(chordNotes[2], 100)

	remaining := noteDur - 2.0
	if remaining > 0 {
		time.Sleep(time.Duration(remaining * float64(time.Second)))
	}
	for _, note := range chordNotes {
		pump.NoteOff(note)
	}

	tail := totalDur - noteDur
	if tail > 0 {
		time.Sleep(time.Duration(tail * float64(time.Second)))
	}
}
