// Package artifact implements the .fmod compiled-module container format:
// a small header followed by a directory of named sections, each an opaque
// byte payload. The toolkit reads metadata sections out of artifacts the
// compiler produced; it never interprets code sections.
package artifact

// ---------------------------------------------------------------------------
// Format Constants
// ---------------------------------------------------------------------------

// Magic is the magic number identifying a compiled module artifact.
var Magic = [4]byte{'F', 'M', 'O', 'D'}

// Format version
// v1: initial format
// v2: section names widened to u16 lengths, 64-bit offsets
const Version uint32 = 2

// HeaderSize is the fixed header size in bytes:
// magic(4) + version(4) + flags(4) + sectionCount(4) = 16
const HeaderSize = 16

// Artifact flags
const (
	FlagNone      uint32 = 0
	FlagDebugInfo uint32 = 1 << 0 // compiler included debug sections
)

// Well-known section names. The directory is open-ended; these are the
// sections this toolkit knows how to decode.
const (
	SectionDocs = "Docs" // documentation table (CBOR)
	SectionSpec = "Spec" // type-signature table (CBOR)
	SectionMeta = "Meta" // module metadata (CBOR)
	SectionCode = "Code" // compiled code, opaque here
)

// Section is one named payload in an artifact.
type Section struct {
	Name    string
	Payload []byte
}

// Artifact is a parsed compiled-module container. It is immutable after
// Read returns; payloads alias the input buffer and must not be modified.
type Artifact struct {
	Version  uint32
	Flags    uint32
	Sections []Section

	data   []byte
	byName map[string]int
}

// Bytes returns the serialized artifact this view was parsed from. The
// slice is shared with the section payloads; treat it as read-only.
func (a *Artifact) Bytes() []byte {
	return a.data
}

// Section returns the payload of the named section. The second result is
// false when the section is not present; a missing section is a normal
// state (a module compiled without docs simply has no Docs section), never
// an error.
func (a *Artifact) Section(name string) ([]byte, bool) {
	i, ok := a.byName[name]
	if !ok {
		return nil, false
	}
	return a.Sections[i].Payload, true
}

// Has reports whether the named section is present.
func (a *Artifact) Has(name string) bool {
	_, ok := a.byName[name]
	return ok
}

// SectionNames returns the section names in directory order.
func (a *Artifact) SectionNames() []string {
	names := make([]string, len(a.Sections))
	for i, s := range a.Sections {
		names[i] = s.Name
	}
	return names
}
