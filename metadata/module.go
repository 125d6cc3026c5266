package metadata

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/chazu/facade/artifact"
)

// ---------------------------------------------------------------------------
// Module view: decoded metadata sections of one artifact
// ---------------------------------------------------------------------------

// Meta is the decoded Meta section: compile-time facts about the module.
type Meta struct {
	Module     string `cbor:"1,keyasint"`
	Source     string `cbor:"2,keyasint,omitempty"`
	CompiledAt int64  `cbor:"3,keyasint,omitempty"` // unix seconds
	Compiler   string `cbor:"4,keyasint,omitempty"`
}

// Module is the queryable metadata view over one artifact. Decoding is a
// pure function of the section bytes: decoding the same artifact twice
// yields identical views.
type Module struct {
	Docs  []DocRecord
	Specs []SpecRecord
	Meta  Meta
}

// sectionDecoders maps section names to the decoder that populates the
// Module view from that section's bytes. The directory is open-ended;
// sections without a decoder here are simply not metadata this package
// understands.
var sectionDecoders = map[string]func(*Module, []byte){
	artifact.SectionDocs: func(m *Module, chunk []byte) {
		m.Docs = DecodeDocs(chunk)
	},
	artifact.SectionSpec: func(m *Module, chunk []byte) {
		m.Specs = DecodeSpecs(chunk)
	},
	artifact.SectionMeta: func(m *Module, chunk []byte) {
		// Meta is best-effort like the other sections.
		if err := cbor.Unmarshal(chunk, &m.Meta); err != nil {
			log.Debugf("discarding malformed Meta section: %s", err.Error())
		}
	},
}

// Decode extracts and decodes every metadata section the package knows
// about. Missing sections leave their fields empty; a module compiled
// without docs behaves exactly like one whose Docs section decoded to
// nothing.
func Decode(a *artifact.Artifact) *Module {
	m := &Module{}
	for name, decode := range sectionDecoders {
		if chunk, ok := a.Section(name); ok {
			decode(m, chunk)
		}
	}
	return m
}

// EncodeMeta serializes a Meta section payload.
func EncodeMeta(meta Meta) ([]byte, error) {
	return cborEncMode.Marshal(meta)
}
