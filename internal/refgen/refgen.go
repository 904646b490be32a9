// Package refgen generates transaction reference numbers.
package refgen

import (
	"crypto/rand"
	"fmt"
	"time"
)

// Generator produces reference numbers of the form TXN<unix-millis><8 hex>.
//
// The time prefix plus the random suffix makes collisions negligible, but
// uniqueness is still verified against the journal before use.
type Generator struct{}

// New returns a reference number Generator.
func New() Generator {
	return Generator{}
}

// Next returns a fresh candidate reference number.
func (Generator) Next() string {
	var suffix [4]byte

	if _, err := rand.Read(suffix[:]); err != nil {
		panic(err) // crypto/rand never fails on supported platforms
	}

	return fmt.Sprintf("TXN%d%X", time.Now().UnixMilli(), suffix)
}
