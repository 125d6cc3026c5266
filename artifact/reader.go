package artifact

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// ---------------------------------------------------------------------------
// Reader Error Types
// ---------------------------------------------------------------------------

var (
	ErrInvalidMagic    = errors.New("invalid magic number: expected FMOD")
	ErrVersionMismatch = errors.New("artifact version mismatch")
	ErrCorruptHeader   = errors.New("corrupt artifact header")
	ErrCorruptSection  = errors.New("corrupt section directory")
)

// ---------------------------------------------------------------------------
// Reading
// ---------------------------------------------------------------------------

// Read parses an artifact from a byte slice. Section payloads alias data;
// callers that mutate the input must copy first.
func Read(data []byte) (*Artifact, error) {
	if len(data) < HeaderSize {
		return nil, ErrCorruptHeader
	}

	offset := 0

	magic := data[offset : offset+4]
	offset += 4
	if string(magic) != string(Magic[:]) {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidMagic, magic)
	}

	version := binary.LittleEndian.Uint32(data[offset:])
	offset += 4
	if version != Version {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrVersionMismatch, Version, version)
	}

	flags := binary.LittleEndian.Uint32(data[offset:])
	offset += 4

	count := binary.LittleEndian.Uint32(data[offset:])
	offset += 4

	// Directory entries are at least name-len(2) + offset(8) + length(8)
	// bytes each; reject counts the remaining data cannot possibly hold
	// before allocating.
	remaining := uint64(len(data) - offset)
	if uint64(count) > remaining/18 {
		return nil, fmt.Errorf("%w: %d sections in %d bytes", ErrCorruptSection, count, len(data))
	}

	a := &Artifact{
		Version:  version,
		Flags:    flags,
		Sections: make([]Section, 0, count),
		data:     data,
		byName:   make(map[string]int, count),
	}

	for i := uint32(0); i < count; i++ {
		if len(data)-offset < 2 {
			return nil, fmt.Errorf("%w: truncated directory entry %d", ErrCorruptSection, i)
		}
		nameLen := int(binary.LittleEndian.Uint16(data[offset:]))
		offset += 2

		if len(data)-offset < nameLen+16 {
			return nil, fmt.Errorf("%w: truncated directory entry %d", ErrCorruptSection, i)
		}
		name := string(data[offset : offset+nameLen])
		offset += nameLen

		payloadOffset := binary.LittleEndian.Uint64(data[offset:])
		offset += 8
		payloadLen := binary.LittleEndian.Uint64(data[offset:])
		offset += 8

		end := payloadOffset + payloadLen
		if end < payloadOffset || end > uint64(len(data)) {
			return nil, fmt.Errorf("%w: section %q spans [%d, %d) beyond %d bytes",
				ErrCorruptSection, name, payloadOffset, end, len(data))
		}

		if _, dup := a.byName[name]; dup {
			return nil, fmt.Errorf("%w: duplicate section %q", ErrCorruptSection, name)
		}
		a.byName[name] = len(a.Sections)
		a.Sections = append(a.Sections, Section{
			Name:    name,
			Payload: data[payloadOffset:end],
		})
	}

	return a, nil
}

// ReadFrom reads a full artifact from r.
func ReadFrom(r io.Reader) (*Artifact, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading artifact data: %w", err)
	}
	return Read(data)
}

// ReadFile reads an artifact from disk.
func ReadFile(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading artifact %s: %w", path, err)
	}
	return Read(data)
}
