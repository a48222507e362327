package vaultmark

import "fmt"

// IntegrityMismatchError reports that the visible text of a document no
// longer matches the content hash stored in its watermark: the document
// was modified after sealing.
type IntegrityMismatchError struct {
	Expected string
	Actual   string
}

func (e *IntegrityMismatchError) Error() string {
	return fmt.Sprintf("content hash mismatch: document was modified (stored %s, computed %s)",
		e.Expected, e.Actual)
}

// IdentityMismatchError reports that the supplied fingerprint does not
// hash to the identity stored in the watermark: wrong owner.
type IdentityMismatchError struct {
	Expected string
	Actual   string
}

func (e *IdentityMismatchError) Error() string {
	return fmt.Sprintf("identity hash mismatch: fingerprint does not belong to the document owner (stored %s, computed %s)",
		e.Expected, e.Actual)
}
