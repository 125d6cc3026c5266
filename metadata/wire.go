// Package metadata decodes the documentation and type-signature sections of
// compiled module artifacts and resolves (name, arity) lookups against them.
// All record payloads are CBOR; canonical encoding keeps re-encoding
// deterministic so that repeated lookups over the same artifact bytes are
// bit-for-bit reproducible.
package metadata

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("facade.metadata")

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("metadata: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}
