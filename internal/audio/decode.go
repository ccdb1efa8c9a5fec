package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	mp3 "github.com/hajimehoshi/go-mp3"
)

// Samples per chunk when draining a WAV decoder.
const wavChunkSize = 65536

// Decode reads an entire .wav or .mp3 file into a Track.
func Decode(path string) (*Track, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return decodeWAV(path)
	case ".mp3":
		return decodeMP3(path)
	default:
		return nil, fmt.Errorf("unsupported audio format %q (want .wav or .mp3)", filepath.Ext(path))
	}
}

func decodeWAV(path string) (*Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input file: %w", err)
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	format := decoder.Format()
	numChannels := format.NumChannels
	if numChannels <= 0 {
		return nil, fmt.Errorf("WAV file reports %d channels: %s", numChannels, path)
	}
	bitDepth := int(decoder.BitDepth)
	if bitDepth <= 0 {
		bitDepth = 16
	}
	scale := float32(int64(1) << (bitDepth - 1))

	track := &Track{Rate: format.SampleRate}
	chunk := &goaudio.IntBuffer{
		Format:         format,
		Data:           make([]int, wavChunkSize),
		SourceBitDepth: bitDepth,
	}
	for {
		n, err := decoder.PCMBuffer(chunk)
		if err != nil {
			return nil, fmt.Errorf("read PCM data: %w", err)
		}
		if n == 0 {
			break
		}
		frames := n / numChannels
		for i := 0; i < frames; i++ {
			left := float32(chunk.Data[i*numChannels]) / scale
			right := left
			if numChannels > 1 {
				right = float32(chunk.Data[i*numChannels+1]) / scale
			}
			track.Samples = append(track.Samples, left, right)
		}
	}

	if track.Frames() == 0 {
		return nil, fmt.Errorf("WAV file contains no samples: %s", path)
	}
	return track, nil
}

func decodeMP3(path string) (*Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input file: %w", err)
	}
	defer f.Close()

	decoder, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, fmt.Errorf("invalid MP3 file %s: %w", path, err)
	}

	// go-mp3 always emits 16-bit little-endian stereo at the source rate.
	raw, err := io.ReadAll(decoder)
	if err != nil {
		return nil, fmt.Errorf("decode MP3 data: %w", err)
	}

	track := &Track{
		Rate:    decoder.SampleRate(),
		Samples: make([]float32, 0, len(raw)/2),
	}
	for i := 0; i+3 < len(raw); i += 4 {
		left := int16(binary.LittleEndian.Uint16(raw[i:]))
		right := int16(binary.LittleEndian.Uint16(raw[i+2:]))
		track.Samples = append(track.Samples, float32(left)/32768, float32(right)/32768)
	}

	if track.Frames() == 0 {
		return nil, fmt.Errorf("MP3 file contains no samples: %s", path)
	}
	return track, nil
}
