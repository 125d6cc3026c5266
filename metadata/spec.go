package metadata

import "github.com/fxamacker/cbor/v2"

// ---------------------------------------------------------------------------
// Type-Signature Table
// ---------------------------------------------------------------------------

// Attribute kinds carried by the Spec section.
const (
	AttrSpec     = "spec"     // declared function signature
	AttrCallback = "callback" // behaviour contract signature
)

// SpecRecord is one entry of an artifact's Spec section: every type
// signature declared for one (name, arity). A function may declare several
// clauses (overloads); all are preserved in declaration order.
type SpecRecord struct {
	Kind    string      `cbor:"1,keyasint"` // AttrSpec or AttrCallback
	Name    string      `cbor:"2,keyasint"`
	Arity   int         `cbor:"3,keyasint"`
	Clauses []*TypeExpr `cbor:"4,keyasint,omitempty"`
}

// LookupMode selects which attribute kinds FindSpecs matches.
type LookupMode int

const (
	// SpecsOnly matches declared function signatures. This is the default.
	SpecsOnly LookupMode = iota

	// SpecsAndCallbacks widens the match to behaviour callback signatures.
	SpecsAndCallbacks
)

// DecodeSpecs decodes a Spec section payload. Like DecodeDocs it degrades
// to nil on absent or malformed input; type signatures are best-effort.
func DecodeSpecs(chunk []byte) []SpecRecord {
	if len(chunk) == 0 {
		return nil
	}
	var records []SpecRecord
	if err := cbor.Unmarshal(chunk, &records); err != nil {
		log.Debugf("discarding malformed Spec section: %s", err.Error())
		return nil
	}
	return records
}

// EncodeSpecs serializes spec records for a Spec section.
func EncodeSpecs(records []SpecRecord) ([]byte, error) {
	return cborEncMode.Marshal(records)
}

// FindSpecs returns all type-signature clauses declared for (name, arity),
// flattened across matching records in declaration order. An empty result
// is the normal zero-overloads state, not an error. Callback records are
// included only under SpecsAndCallbacks.
func FindSpecs(records []SpecRecord, name string, arity int, mode LookupMode) []*TypeExpr {
	var clauses []*TypeExpr
	for _, r := range records {
		if r.Name != name || r.Arity != arity {
			continue
		}
		switch r.Kind {
		case AttrSpec:
		case AttrCallback:
			if mode != SpecsAndCallbacks {
				continue
			}
		default:
			continue
		}
		clauses = append(clauses, r.Clauses...)
	}
	return clauses
}
