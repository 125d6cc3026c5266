package artifact

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// buildArtifact assembles an artifact with the given sections, failing the
// test on builder errors.
func buildArtifact(t *testing.T, sections map[string][]byte) []byte {
	t.Helper()

	b := NewBuilder()
	// Deterministic order for the directory keeps tests stable.
	for _, name := range []string{SectionCode, SectionDocs, SectionSpec, SectionMeta} {
		if payload, ok := sections[name]; ok {
			b.AddSection(name, payload)
		}
	}
	for name, payload := range sections {
		b.AddSection(name, payload)
	}

	data, err := b.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	return data
}

func TestRoundTrip(t *testing.T) {
	data := buildArtifact(t, map[string][]byte{
		SectionCode: {0x01, 0x02, 0x03},
		SectionDocs: []byte("doc payload"),
		SectionSpec: {},
	})

	a, err := Read(data)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if a.Version != Version {
		t.Errorf("version = %d, want %d", a.Version, Version)
	}
	if len(a.Sections) != 3 {
		t.Fatalf("section count = %d, want 3", len(a.Sections))
	}

	docs, ok := a.Section(SectionDocs)
	if !ok {
		t.Fatal("Docs section missing")
	}
	if !bytes.Equal(docs, []byte("doc payload")) {
		t.Errorf("Docs payload = %q", docs)
	}

	code, ok := a.Section(SectionCode)
	if !ok || !bytes.Equal(code, []byte{0x01, 0x02, 0x03}) {
		t.Errorf("Code payload = %v, ok = %v", code, ok)
	}

	// Empty payload is still a present section.
	spec, ok := a.Section(SectionSpec)
	if !ok {
		t.Error("Spec section missing")
	}
	if len(spec) != 0 {
		t.Errorf("Spec payload = %v, want empty", spec)
	}
}

func TestSectionAbsence(t *testing.T) {
	data := buildArtifact(t, map[string][]byte{SectionCode: {0xFF}})

	a, err := Read(data)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if _, ok := a.Section(SectionDocs); ok {
		t.Error("expected Docs section to be absent")
	}
	if a.Has(SectionSpec) {
		t.Error("expected Spec section to be absent")
	}
}

func TestReadErrors(t *testing.T) {
	valid := buildArtifact(t, map[string][]byte{SectionCode: {0x01}})

	tests := []struct {
		name    string
		mutate  func([]byte) []byte
		wantErr error
	}{
		{
			name:    "empty input",
			mutate:  func(b []byte) []byte { return nil },
			wantErr: ErrCorruptHeader,
		},
		{
			name:    "short header",
			mutate:  func(b []byte) []byte { return b[:HeaderSize-1] },
			wantErr: ErrCorruptHeader,
		},
		{
			name: "bad magic",
			mutate: func(b []byte) []byte {
				b[0] = 'X'
				return b
			},
			wantErr: ErrInvalidMagic,
		},
		{
			name: "wrong version",
			mutate: func(b []byte) []byte {
				binary.LittleEndian.PutUint32(b[4:], Version+1)
				return b
			},
			wantErr: ErrVersionMismatch,
		},
		{
			name: "section count beyond data",
			mutate: func(b []byte) []byte {
				binary.LittleEndian.PutUint32(b[12:], 0xFFFFFFFF)
				return b
			},
			wantErr: ErrCorruptSection,
		},
		{
			name: "truncated directory",
			mutate: func(b []byte) []byte {
				return b[:HeaderSize+3]
			},
			wantErr: ErrCorruptSection,
		},
		{
			name: "payload out of bounds",
			mutate: func(b []byte) []byte {
				// Directory entry: name_len(2) + "Code"(4), then offset(8).
				binary.LittleEndian.PutUint64(b[HeaderSize+6:], uint64(len(b)))
				return b
			},
			wantErr: ErrCorruptSection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.mutate(bytes.Clone(valid))
			_, err := Read(data)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Read error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDuplicateSection(t *testing.T) {
	// The builder replaces duplicates, so construct the directory by hand:
	// two entries named "Dup" pointing at the same zero-length payload.
	var buf []byte
	buf = append(buf, Magic[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, Version)
	buf = binary.LittleEndian.AppendUint32(buf, FlagNone)
	buf = binary.LittleEndian.AppendUint32(buf, 2)
	for i := 0; i < 2; i++ {
		buf = binary.LittleEndian.AppendUint16(buf, 3)
		buf = append(buf, "Dup"...)
		buf = binary.LittleEndian.AppendUint64(buf, 0)
		buf = binary.LittleEndian.AppendUint64(buf, 0)
	}

	_, err := Read(buf)
	if !errors.Is(err, ErrCorruptSection) {
		t.Errorf("Read error = %v, want ErrCorruptSection", err)
	}
}

func TestBuilderReplacesPayload(t *testing.T) {
	b := NewBuilder()
	b.AddSection(SectionDocs, []byte("old"))
	b.AddSection(SectionDocs, []byte("new"))

	a, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(a.Sections) != 1 {
		t.Fatalf("section count = %d, want 1", len(a.Sections))
	}
	payload, _ := a.Section(SectionDocs)
	if string(payload) != "new" {
		t.Errorf("payload = %q, want %q", payload, "new")
	}
}

func TestWriteReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mod.fmod")

	b := NewBuilder()
	b.SetFlags(FlagDebugInfo)
	b.AddSection(SectionMeta, []byte("meta"))
	if err := b.WriteFile(path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	a, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if a.Flags != FlagDebugInfo {
		t.Errorf("flags = %d, want %d", a.Flags, FlagDebugInfo)
	}
	if got := a.SectionNames(); len(got) != 1 || got[0] != SectionMeta {
		t.Errorf("section names = %v", got)
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.fmod"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want os.ErrNotExist", err)
	}
}
