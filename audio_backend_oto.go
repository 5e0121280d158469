//go:build !headless && !portaudio && !alsa

// audio_backend_oto.go - OTO v3 audio output implementation

package main

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// OtoPlayer streams samples from a SampleSource through oto. The
// context pulls from Read on its own goroutine; the source handles its
// own synchronization.
type OtoPlayer struct {
	ctx     *oto.Context
	player  *oto.Player
	src     SampleSource
	started bool
	mutex   sync.Mutex // Only for setup/control operations
}

func newPlaybackOutput(sampleRate int, src SampleSource) (AudioOutput, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   4,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	p := &OtoPlayer{ctx: ctx, src: src}
	p.player = ctx.NewPlayer(p)
	return p, nil
}

// Read fills the oto buffer with float32 little-endian samples.
func (p *OtoPlayer) Read(buf []byte) (int, error) {
	numSamples := len(buf) / 4
	for i := 0; i < numSamples; i++ {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(p.src.ReadSample()))
	}
	return numSamples * 4, nil
}

func (p *OtoPlayer) Start() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if !p.started && p.player != nil {
		p.player.Play()
		p.started = true
	}
	return nil
}

func (p *OtoPlayer) Stop() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.started && p.player != nil {
		p.player.Pause()
		p.started = false
	}
}

func (p *OtoPlayer) Close() {
	p.Stop()
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.player != nil {
		p.player.Close()
		p.player = nil
	}
}
