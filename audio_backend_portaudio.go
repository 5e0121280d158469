//go:build portaudio && !headless

// audio_backend_portaudio.go - PortAudio output implementation

package main

import (
	"sync"

	"github.com/gordonklaus/portaudio"
)

// PortAudioPlayer streams samples from a SampleSource through a
// PortAudio callback stream.
type PortAudioPlayer struct {
	stream  *portaudio.Stream
	src     SampleSource
	started bool
	mutex   sync.Mutex
}

func newPlaybackOutput(sampleRate int, src SampleSource) (AudioOutput, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}

	p := &PortAudioPlayer{src: src}
	stream, err := portaudio.OpenDefaultStream(0, 1, float64(sampleRate), 0,
		func(out []float32) {
			for i := range out {
				out[i] = p.src.ReadSample()
			}
		})
	if err != nil {
		portaudio.Terminate()
		return nil, err
	}
	p.stream = stream
	return p, nil
}

func (p *PortAudioPlayer) Start() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.started || p.stream == nil {
		return nil
	}
	if err := p.stream.Start(); err != nil {
		return err
	}
	p.started = true
	return nil
}

func (p *PortAudioPlayer) Stop() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.started && p.stream != nil {
		p.stream.Stop()
		p.started = false
	}
}

func (p *PortAudioPlayer) Close() {
	p.Stop()
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.stream != nil {
		p.stream.Close()
		p.stream = nil
		portaudio.Terminate()
	}
}
