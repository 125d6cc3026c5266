package artifact

import (
	"encoding/binary"
	"fmt"
	"os"
)

// ---------------------------------------------------------------------------
// Builder: Serializes named sections into an artifact
// ---------------------------------------------------------------------------

// Builder assembles an artifact from named sections. The compiler side of
// the host environment and the test suite are the only producers; the
// delegation toolkit itself only reads.
type Builder struct {
	flags    uint32
	sections []Section
	byName   map[string]int
}

// NewBuilder creates an empty artifact builder.
func NewBuilder() *Builder {
	return &Builder{
		byName: make(map[string]int),
	}
}

// SetFlags sets the artifact flag word.
func (b *Builder) SetFlags(flags uint32) {
	b.flags = flags
}

// AddSection appends a named section. Adding a name twice replaces the
// earlier payload; directory order is first-add order.
func (b *Builder) AddSection(name string, payload []byte) {
	if i, ok := b.byName[name]; ok {
		b.sections[i].Payload = payload
		return
	}
	b.byName[name] = len(b.sections)
	b.sections = append(b.sections, Section{Name: name, Payload: payload})
}

// Bytes serializes the artifact.
// Layout:
//
//	[magic:4] [version:4] [flags:4] [section_count:4]
//	per section: [name_len:2] [name:...] [offset:8] [length:8]
//	section payloads, in directory order
func (b *Builder) Bytes() ([]byte, error) {
	if len(b.sections) > 0xFFFF {
		return nil, fmt.Errorf("too many sections: %d", len(b.sections))
	}

	directorySize := 0
	payloadSize := 0
	for _, s := range b.sections {
		if len(s.Name) > 0xFFFF {
			return nil, fmt.Errorf("section name too long: %d bytes", len(s.Name))
		}
		directorySize += 2 + len(s.Name) + 16
		payloadSize += len(s.Payload)
	}

	buf := make([]byte, 0, HeaderSize+directorySize+payloadSize)

	buf = append(buf, Magic[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, Version)
	buf = binary.LittleEndian.AppendUint32(buf, b.flags)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(b.sections)))

	// Payloads start immediately after the directory.
	payloadOffset := uint64(HeaderSize + directorySize)
	for _, s := range b.sections {
		buf = binary.LittleEndian.AppendUint16(buf, uint16(len(s.Name)))
		buf = append(buf, s.Name...)
		buf = binary.LittleEndian.AppendUint64(buf, payloadOffset)
		buf = binary.LittleEndian.AppendUint64(buf, uint64(len(s.Payload)))
		payloadOffset += uint64(len(s.Payload))
	}

	for _, s := range b.sections {
		buf = append(buf, s.Payload...)
	}

	return buf, nil
}

// Build serializes and reparses, returning the Artifact view directly.
func (b *Builder) Build() (*Artifact, error) {
	data, err := b.Bytes()
	if err != nil {
		return nil, err
	}
	return Read(data)
}

// WriteFile serializes the artifact to disk.
func (b *Builder) WriteFile(path string) error {
	data, err := b.Bytes()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing artifact %s: %w", path, err)
	}
	return nil
}
