package metadata

import "github.com/fxamacker/cbor/v2"

// ---------------------------------------------------------------------------
// Documentation Table
// ---------------------------------------------------------------------------

// DocRecord is one entry of an artifact's Docs section.
//
// Doc distinguishes three states: nil means the author never wrote
// documentation, Hidden means documentation was deliberately suppressed,
// and a non-nil Doc is the text itself. An empty string is valid
// documentation, not absence. Downstream rendering collapses the first two
// into the same placeholder, but the encoding keeps them apart so tooling
// that cares can still tell.
type DocRecord struct {
	Name     string   `cbor:"1,keyasint"`
	Arity    int      `cbor:"2,keyasint"`
	Kind     string   `cbor:"3,keyasint,omitempty"` // "function" (default) or "macro"
	ArgNames []string `cbor:"4,keyasint,omitempty"`
	Doc      *string  `cbor:"5,keyasint,omitempty"`
	Hidden   bool     `cbor:"6,keyasint,omitempty"`
}

// DecodeDocs decodes a Docs section payload into its records. A nil or
// empty chunk, or one that fails to decode, yields nil: documentation is
// best-effort and malformed metadata must never block generation.
func DecodeDocs(chunk []byte) []DocRecord {
	if len(chunk) == 0 {
		return nil
	}
	var records []DocRecord
	if err := cbor.Unmarshal(chunk, &records); err != nil {
		log.Debugf("discarding malformed Docs section: %s", err.Error())
		return nil
	}
	return records
}

// EncodeDocs serializes doc records for a Docs section. Canonical encoding
// keeps the payload deterministic for a given record sequence.
func EncodeDocs(records []DocRecord) ([]byte, error) {
	return cborEncMode.Marshal(records)
}

// FindDoc returns the documentation text for (name, arity): the first
// matching record that is not hidden and carries text. Hidden records are
// skipped rather than surfaced as empty docs; a function can be
// deliberately undocumented even though a record exists. The second result
// is false when no usable documentation was found.
func FindDoc(records []DocRecord, name string, arity int) (string, bool) {
	for _, r := range records {
		if r.Name != name || r.Arity != arity {
			continue
		}
		if r.Hidden || r.Doc == nil {
			continue
		}
		return *r.Doc, true
	}
	return "", false
}

// ArgNamesFor returns the recorded argument names for (name, arity), or
// nil when no record carries them.
func ArgNamesFor(records []DocRecord, name string, arity int) []string {
	for _, r := range records {
		if r.Name == name && r.Arity == arity && len(r.ArgNames) > 0 {
			return r.ArgNames
		}
	}
	return nil
}
