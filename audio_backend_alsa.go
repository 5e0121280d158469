//go:build alsa && !headless && !portaudio

// audio_backend_alsa.go - ALSA audio output implementation

package main

/*
#cgo LDFLAGS: -lasound
#include <alsa/asoundlib.h>
#include <stdlib.h>

static snd_pcm_t* openPCM(const char* device, int* err) {
    snd_pcm_t* handle;
    *err = snd_pcm_open(&handle, device, SND_PCM_STREAM_PLAYBACK, 0);
    return handle;
}

static int setupPCM(snd_pcm_t* handle, unsigned int rate) {
    snd_pcm_hw_params_t* params;
    int err;

    snd_pcm_hw_params_alloca(&params);
    err = snd_pcm_hw_params_any(handle, params);
    if (err < 0) return err;

    err = snd_pcm_hw_params_set_access(handle, params, SND_PCM_ACCESS_RW_INTERLEAVED);
    if (err < 0) return err;

    err = snd_pcm_hw_params_set_format(handle, params, SND_PCM_FORMAT_FLOAT);
    if (err < 0) return err;

    err = snd_pcm_hw_params_set_channels(handle, params, 1);
    if (err < 0) return err;

    err = snd_pcm_hw_params_set_rate(handle, params, rate, 0);
    if (err < 0) return err;

    err = snd_pcm_hw_params(handle, params);
    if (err < 0) return err;

    return snd_pcm_prepare(handle);
}

static int writePCM(snd_pcm_t* handle, float* buffer, int frames) {
    return snd_pcm_writei(handle, buffer, frames);
}

static void closePCM(snd_pcm_t* handle) {
    if (handle != NULL) {
        snd_pcm_drain(handle);
        snd_pcm_close(handle);
    }
}
*/
import "C"
import (
	"fmt"
	"sync"
	"unsafe"
)

const alsaChunkFrames = 512

// ALSAPlayer pushes samples to an ALSA PCM device from its own
// goroutine, chunk by chunk.
type ALSAPlayer struct {
	handle  *C.snd_pcm_t
	src     SampleSource
	buf     []float32
	stopCh  chan struct{}
	done    chan struct{}
	started bool
	mutex   sync.Mutex
}

func newPlaybackOutput(sampleRate int, src SampleSource) (AudioOutput, error) {
	device := C.CString("default")
	defer C.free(unsafe.Pointer(device))

	var cerr C.int
	handle := C.openPCM(device, &cerr)
	if cerr < 0 {
		return nil, fmt.Errorf("ALSA open failed: %d", int(cerr))
	}

	if rc := C.setupPCM(handle, C.uint(sampleRate)); rc < 0 {
		C.closePCM(handle)
		return nil, fmt.Errorf("ALSA setup failed: %d", int(rc))
	}

	return &ALSAPlayer{
		handle: handle,
		src:    src,
		buf:    make([]float32, alsaChunkFrames),
	}, nil
}

func (p *ALSAPlayer) Start() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.started || p.handle == nil {
		return nil
	}
	p.stopCh = make(chan struct{})
	p.done = make(chan struct{})
	p.started = true

	go p.pumpLoop(p.stopCh, p.done)
	return nil
}

func (p *ALSAPlayer) pumpLoop(stopCh chan struct{}, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-stopCh:
			return
		default:
		}

		for i := range p.buf {
			p.buf[i] = p.src.ReadSample()
		}
		rc := C.writePCM(p.handle, (*C.float)(unsafe.Pointer(&p.buf[0])), C.int(len(p.buf)))
		if rc < 0 {
			// Recover from underruns, bail on hard errors
			if C.snd_pcm_recover(p.handle, rc, 1) < 0 {
				return
			}
		}
	}
}

func (p *ALSAPlayer) Stop() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.started {
		close(p.stopCh)
		<-p.done
		p.started = false
	}
}

func (p *ALSAPlayer) Close() {
	p.Stop()
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.handle != nil {
		C.closePCM(p.handle)
		p.handle = nil
	}
}
