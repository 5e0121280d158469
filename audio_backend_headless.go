//go:build headless

// audio_backend_headless.go - No-op audio output for headless builds

package main

type HeadlessPlayer struct {
	started bool
}

func newPlaybackOutput(sampleRate int, src SampleSource) (AudioOutput, error) {
	return &HeadlessPlayer{}, nil
}

func (p *HeadlessPlayer) Start() error {
	p.started = true
	return nil
}

func (p *HeadlessPlayer) Stop() {
	p.started = false
}

func (p *HeadlessPlayer) Close() {
	p.started = false
}
