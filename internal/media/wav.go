package media

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

var ErrNotWAV = errors.New("not a RIFF/WAVE file")

// Info is the probed shape of an uploaded WAV file.
type Info struct {
	SampleRate    int
	Channels      int
	BitsPerSample int
	Duration      float64 // seconds
}

// ProbeWAV reads the RIFF header and fmt/data chunks of a WAV stream.
// It only inspects metadata; sample data is skipped, not decoded.
func ProbeWAV(r io.ReadSeeker) (*Info, error) {
	var riff [12]byte
	if _, err := io.ReadFull(r, riff[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotWAV, err)
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return nil, ErrNotWAV
	}

	info := &Info{}
	var byteRate uint32
	haveFmt := false

	for {
		var hdr [8]byte
		if _, err := io.ReadFull(r, hdr[:]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				break
			}
			return nil, fmt.Errorf("read chunk header: %w", err)
		}
		chunkID := string(hdr[0:4])
		chunkSize := binary.LittleEndian.Uint32(hdr[4:8])

		switch chunkID {
		case "fmt ":
			if chunkSize < 16 {
				return nil, fmt.Errorf("%w: fmt chunk too small", ErrNotWAV)
			}
			var fmtBody [16]byte
			if _, err := io.ReadFull(r, fmtBody[:]); err != nil {
				return nil, fmt.Errorf("read fmt chunk: %w", err)
			}
			info.Channels = int(binary.LittleEndian.Uint16(fmtBody[2:4]))
			info.SampleRate = int(binary.LittleEndian.Uint32(fmtBody[4:8]))
			byteRate = binary.LittleEndian.Uint32(fmtBody[8:12])
			info.BitsPerSample = int(binary.LittleEndian.Uint16(fmtBody[14:16]))
			haveFmt = true
			if chunkSize > 16 {
				if _, err := r.Seek(int64(chunkSize-16), io.SeekCurrent); err != nil {
					return nil, fmt.Errorf("skip fmt extension: %w", err)
				}
			}

		case "data":
			if !haveFmt {
				return nil, fmt.Errorf("%w: data chunk before fmt", ErrNotWAV)
			}
			if byteRate > 0 {
				info.Duration = float64(chunkSize) / float64(byteRate)
			}
			if info.SampleRate <= 0 || info.Channels <= 0 {
				return nil, fmt.Errorf("%w: invalid fmt values", ErrNotWAV)
			}
			return info, nil

		default:
			// Chunks are word-aligned; odd sizes carry a pad byte.
			skip := int64(chunkSize)
			if chunkSize%2 == 1 {
				skip++
			}
			if _, err := r.Seek(skip, io.SeekCurrent); err != nil {
				return nil, fmt.Errorf("skip chunk %q: %w", chunkID, err)
			}
		}
	}

	return nil, fmt.Errorf("%w: no data chunk", ErrNotWAV)
}
