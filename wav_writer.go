// wav_writer.go - Mono float-32 WAV output for the offline renderer

package main

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
)

// WavWriter streams mono IEEE float-32 samples into a RIFF/WAVE file.
// The size fields in the header are patched on Close.
type WavWriter struct {
	file       *os.File
	sampleRate uint32
	dataBytes  uint32
}

// NewWavWriter creates the output file and writes the header.
func NewWavWriter(path string, sampleRate uint32) (*WavWriter, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("could not create WAV file: %w", err)
	}

	w := &WavWriter{file: file, sampleRate: sampleRate}
	if err := w.writeHeader(); err != nil {
		file.Close()
		return nil, err
	}
	return w, nil
}

func (w *WavWriter) writeHeader() error {
	header := make([]byte, 44)
	copy(header[0:4], "RIFF")
	// Sizes at offsets 4 and 40 are patched on Close
	copy(header[8:12], "WAVE")
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], 3) // IEEE float
	binary.LittleEndian.PutUint16(header[22:24], 1) // Mono
	binary.LittleEndian.PutUint32(header[24:28], w.sampleRate)
	binary.LittleEndian.PutUint32(header[28:32], w.sampleRate*4)
	binary.LittleEndian.PutUint16(header[32:34], 4)
	binary.LittleEndian.PutUint16(header[34:36], 32)
	copy(header[36:40], "data")

	_, err := w.file.Write(header)
	if err != nil {
		return fmt.Errorf("could not write WAV header: %w", err)
	}
	return nil
}

// WriteSamples appends samples to the data chunk.
func (w *WavWriter) WriteSamples(samples []float32) error {
	buf := make([]byte, len(samples)*4)
	for i, s := range samples {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(s))
	}

	n, err := w.file.Write(buf)
	w.dataBytes += uint32(n)
	if err != nil {
		return fmt.Errorf("could not write samples: %w", err)
	}
	return nil
}

// Close patches the header sizes and closes the file.
func (w *WavWriter) Close() error {
	var sizeBuf [4]byte

	binary.LittleEndian.PutUint32(sizeBuf[:], w.dataBytes+36)
	if _, err := w.file.WriteAt(sizeBuf[:], 4); err != nil {
		w.file.Close()
		return fmt.Errorf("could not patch WAV header: %w", err)
	}

	binary.LittleEndian.PutUint32(sizeBuf[:], w.dataBytes)
	if _, err := w.file.WriteAt(sizeBuf[:], 40); err != nil {
		w.file.Close()
		return fmt.Errorf("could not patch WAV header: %w", err)
	}

	return w.file.Close()
}

// WriteWavFile writes a whole sample buffer in one call.
func WriteWavFile(path string, samples []float32, sampleRate uint32) error {
	w, err := NewWavWriter(path, sampleRate)
	if err != nil {
		return err
	}
	if err := w.WriteSamples(samples); err != nil {
		w.file.Close()
		return err
	}
	return w.Close()
}
