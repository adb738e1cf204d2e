package random

import (
	"crypto/rand"
	"math/big"
)

// DieFaces is the number of faces on each of the two dice
const DieFaces = 6

// Random is the source of every chance element in a match: dice, the
// hidden combination, dealing order and game IDs
type Random interface {
	// Intn returns a random int in [0, n)
	Intn(n int) int

	// RollDie returns a single die face in [1, DieFaces]
	RollDie() int

	// Shuffle permutes n elements through swap
	Shuffle(n int, swap func(i, j int))

	// String builds an identifier of the given length from alphabet
	String(length int, alphabet string) string
}

// Source draws from crypto/rand so dice and deals cannot be predicted
// from earlier outcomes
type Source struct{}

// New creates a new Source
func New() *Source {
	return &Source{}
}

// Intn returns a random int in [0, n). Non-positive n yields 0.
func (r *Source) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(v.Int64())
}

// RollDie returns a single die face
func (r *Source) RollDie() int {
	return r.Intn(DieFaces) + 1
}

// Shuffle is a Fisher-Yates shuffle
func (r *Source) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		swap(i, r.Intn(i+1))
	}
}

// String builds an identifier from alphabet
func (r *Source) String(length int, alphabet string) string {
	if length <= 0 || alphabet == "" {
		return ""
	}
	b := make([]byte, length)
	for i := range b {
		b[i] = alphabet[r.Intn(len(alphabet))]
	}
	return string(b)
}
