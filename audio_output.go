// audio_output.go - Audio backend interface and the realtime synth pump

package main

import "sync"

// SampleSource supplies one mono sample per call. Implemented by
// SynthPump for realtime playback.
type SampleSource interface {
	ReadSample() float32
}

// AudioOutput is the playback backend contract. The concrete backend
// is selected at build time: oto by default, portaudio with the
// "portaudio" tag, a no-op sink with the "headless" tag.
type AudioOutput interface {
	Start() error
	Stop()
	Close()
}

// NewAudioOutput opens the build-selected playback backend.
func NewAudioOutput(sampleRate int, src SampleSource) (AudioOutput, error) {
	return newPlaybackOutput(sampleRate, src)
}

// SynthPump serializes access to a Synth shared between the audio
// callback and the event thread. The synth itself stays lock-free; all
// cross-thread traffic funnels through this mutex.
type SynthPump struct {
	mutex sync.Mutex
	synth *Synth
}

// NewSynthPump wraps a synth for realtime use.
func NewSynthPump(synth *Synth) *SynthPump {
	return &SynthPump{synth: synth}
}

// ReadSample produces one output sample, pre-scaled for playback.
func (p *SynthPump) ReadSample() float32 {
	p.mutex.Lock()
	sample := p.synth.Process() * OPERATOR_SCALING
	p.mutex.Unlock()
	return sample
}

// NoteOn forwards a note-on event at the next sample boundary.
func (p *SynthPump) NoteOn(note, velocity uint8) {
	p.mutex.Lock()
	p.synth.NoteOn(note, velocity)
	p.mutex.Unlock()
}

// NoteOff forwards a note-off event at the next sample boundary.
func (p *SynthPump) NoteOff(note uint8) {
	p.mutex.Lock()
	p.synth.NoteOff(note)
	p.mutex.Unlock()
}

// Configure installs a new configuration between samples.
func (p *SynthPump) Configure(cfg *SynthConfig) {
	p.mutex.Lock()
	p.synth.Configure(cfg)
	p.mutex.Unlock()
}

// SetOSCKeySync toggles oscillator key sync between samples.
func (p *SynthPump) SetOSCKeySync(sync bool) {
	p.mutex.Lock()
	p.synth.SetOSCKeySync(sync)
	p.mutex.Unlock()
}
