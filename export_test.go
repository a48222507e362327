package vaultmark

// VerifyCause exposes the typed verification result to tests; the
// public Verify collapses every failure to false.
func (p *Pipeline) VerifyCause(fingerprintImage []byte, doc *Document) error {
	return p.verify(fingerprintImage, doc)
}
