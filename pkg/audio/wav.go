package audio

import (
	"encoding/binary"
	"fmt"
	"os"
)

// EncodeWAV wraps raw 16-bit signed little-endian PCM data in a standard
// RIFF/WAV container. The returned byte slice is suitable for writing to
// disk or for direct inclusion in a multipart form upload.
func EncodeWAV(pcm []byte, sampleRate, channels int) []byte {
	bps := bitsPerSample
	byteRate := sampleRate * channels * bps / 8
	blockAlign := channels * bps / 8
	dataSize := len(pcm)

	buf := make([]byte, 44+dataSize)

	// RIFF chunk descriptor
	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], uint32(36+dataSize)) // file size − 8
	copy(buf[8:12], "WAVE")

	// fmt sub-chunk
	copy(buf[12:16], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:20], 16)                 // sub-chunk size (PCM)
	binary.LittleEndian.PutUint16(buf[20:22], 1)                  // audio format: PCM
	binary.LittleEndian.PutUint16(buf[22:24], uint16(channels))   // num channels
	binary.LittleEndian.PutUint32(buf[24:28], uint32(sampleRate)) // sample rate
	binary.LittleEndian.PutUint32(buf[28:32], uint32(byteRate))   // byte rate
	binary.LittleEndian.PutUint16(buf[32:34], uint16(blockAlign)) // block align
	binary.LittleEndian.PutUint16(buf[34:36], uint16(bps))        // bits per sample

	// data sub-chunk
	copy(buf[36:40], "data")
	binary.LittleEndian.PutUint32(buf[40:44], uint32(dataSize))
	copy(buf[44:], pcm)

	return buf
}

// DecodeWAV parses a RIFF/WAV container and returns the PCM payload with
// its format. Only uncompressed 16-bit PCM is supported. Unknown chunks
// (LIST, fact, ...) are skipped. Truncated data chunks are tolerated and
// clamped to the available bytes.
func DecodeWAV(data []byte) (*Clip, error) {
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, fmt.Errorf("audio: not a RIFF/WAVE file")
	}

	var (
		format   Format
		pcm      []byte
		haveFmt  bool
		haveData bool
	)

	pos := 12
	for pos+8 <= len(data) {
		id := string(data[pos : pos+4])
		size := int(binary.LittleEndian.Uint32(data[pos+4 : pos+8]))
		body := pos + 8
		if size < 0 || body > len(data) {
			break
		}
		if body+size > len(data) {
			size = len(data) - body
		}

		switch id {
		case "fmt ":
			if size < 16 {
				return nil, fmt.Errorf("audio: wav fmt chunk too short (%d bytes)", size)
			}
			audioFormat := binary.LittleEndian.Uint16(data[body : body+2])
			if audioFormat != 1 {
				return nil, fmt.Errorf("audio: unsupported wav encoding %d (want PCM)", audioFormat)
			}
			channels := int(binary.LittleEndian.Uint16(data[body+2 : body+4]))
			rate := int(binary.LittleEndian.Uint32(data[body+4 : body+8]))
			bits := int(binary.LittleEndian.Uint16(data[body+14 : body+16]))
			if bits != bitsPerSample {
				return nil, fmt.Errorf("audio: unsupported wav bit depth %d (want %d)", bits, bitsPerSample)
			}
			if channels <= 0 || rate <= 0 {
				return nil, fmt.Errorf("audio: invalid wav format %dch @ %dHz", channels, rate)
			}
			format = Format{SampleRate: rate, Channels: channels}
			haveFmt = true
		case "data":
			pcm = data[body : body+size]
			haveData = true
		}

		pos = body + size
		if size%2 == 1 {
			pos++ // chunks are word-aligned
		}
	}

	if !haveFmt {
		return nil, fmt.Errorf("audio: wav missing fmt chunk")
	}
	if !haveData {
		return nil, fmt.Errorf("audio: wav missing data chunk")
	}
	if len(pcm) == 0 {
		return nil, ErrNoAudio
	}
	return &Clip{Data: pcm, Format: format}, nil
}

// ReadWAVFile loads and decodes a WAV file from disk.
func ReadWAVFile(path string) (*Clip, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("audio: read %q: %w", path, err)
	}
	clip, err := DecodeWAV(data)
	if err != nil {
		return nil, fmt.Errorf("audio: decode %q: %w", path, err)
	}
	return clip, nil
}

// WriteWAVFile encodes the clip as WAV and writes it to path with 0644
// permissions.
func WriteWAVFile(path string, clip *Clip) error {
	wav := EncodeWAV(clip.Data, clip.Format.SampleRate, clip.Format.Channels)
	if err := os.WriteFile(path, wav, 0o644); err != nil {
		return fmt.Errorf("audio: write %q: %w", path, err)
	}
	return nil
}
