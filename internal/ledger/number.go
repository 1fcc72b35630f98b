package ledger

import (
	"fmt"
	"math/rand/v2"
)

// NumberGenerator proposes candidate account numbers. Candidates may
// collide; the engine checks and retries.
type NumberGenerator interface {
	Next() string
}

// RandomNumbers produces numbers shaped SHX-NNNNN-NNN
type RandomNumbers struct{}

// Next returns a random candidate
func (RandomNumbers) Next() string {
	return fmt.Sprintf("SHX-%05d-%03d", 10000+rand.IntN(90000), 100+rand.IntN(900))
}

// NumberFunc adapts a function to NumberGenerator
type NumberFunc func() string

func (f NumberFunc) Next() string { return f() }
