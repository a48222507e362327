// Package randsrc provides the randomness sources used by the vault and
// payload distribution code. Production callers use the process CSPRNG;
// tests inject a seeded ChaCha20 stream so that vault generation, chaff
// placement and slot selection are reproducible.
package randsrc

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20"
)

// Crypto returns the process cryptographically secure random source.
func Crypto() io.Reader {
	return rand.Reader
}

type seededReader struct {
	cipher *chacha20.Cipher
}

func (s *seededReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	s.cipher.XORKeyStream(p, p)
	return len(p), nil
}

// Seeded returns a deterministic random stream derived from seed.
// The stream is a ChaCha20 keystream, so it is uniform but fully
// reproducible. Intended for tests only.
func Seeded(seed uint64) io.Reader {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[0:], seed)
	binary.LittleEndian.PutUint64(key[8:], seed^0x9e3779b97f4a7c15)
	binary.LittleEndian.PutUint64(key[16:], seed*0x2545f4914f6cdd1d)
	binary.LittleEndian.PutUint64(key[24:], ^seed)

	var nonce [chacha20.NonceSize]byte
	c, err := chacha20.NewUnauthenticatedCipher(key[:], nonce[:])
	if err != nil {
		// Key and nonce sizes are fixed above, so this cannot happen.
		panic(err)
	}
	return &seededReader{cipher: c}
}

// IntN returns a uniform int in [0, n) drawn from src.
func IntN(src io.Reader, n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("randsrc: invalid bound %d", n)
	}
	max := uint32(n)
	// Rejection sampling to avoid modulo bias.
	limit := max * (^uint32(0) / max)
	var buf [4]byte
	for {
		if _, err := io.ReadFull(src, buf[:]); err != nil {
			return 0, fmt.Errorf("randsrc: read random bytes: %w", err)
		}
		v := binary.BigEndian.Uint32(buf[:])
		if v < limit {
			return int(v % max), nil
		}
	}
}

// Bytes fills b from src.
func Bytes(src io.Reader, b []byte) error {
	if _, err := io.ReadFull(src, b); err != nil {
		return fmt.Errorf("randsrc: read random bytes: %w", err)
	}
	return nil
}

// Shuffle performs a Fisher-Yates shuffle of n elements using swap.
func Shuffle(src io.Reader, n int, swap func(i, j int)) error {
	for i := n - 1; i > 0; i-- {
		j, err := IntN(src, i+1)
		if err != nil {
			return err
		}
		swap(i, j)
	}
	return nil
}

// Sample returns k distinct values from [0, n) in ascending order.
func Sample(src io.Reader, n, k int) ([]int, error) {
	if k > n {
		k = n
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	if err := Shuffle(src, n, func(i, j int) { idx[i], idx[j] = idx[j], idx[i] }); err != nil {
		return nil, err
	}
	picked := idx[:k]
	// Ascending order so callers can walk the document once.
	for i := 1; i < len(picked); i++ {
		for j := i; j > 0 && picked[j] < picked[j-1]; j-- {
			picked[j], picked[j-1] = picked[j-1], picked[j]
		}
	}
	return picked, nil
}
