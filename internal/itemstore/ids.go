package itemstore

import (
	"math/rand/v2"
	"strconv"

	"github.com/google/uuid"
)

type IDGenerator interface {
	Next() (string, error)
}

const numericIDSpace = 1_000_000

// NumericIDs draws small random integers; the store retries on collision.
type NumericIDs struct {
	IntN func(n int) int
}

func (g NumericIDs) Next() (string, error) {
	intn := g.IntN
	if intn == nil {
		intn = rand.IntN
	}
	return strconv.Itoa(intn(numericIDSpace)), nil
}

type UUIDs struct{}

func (UUIDs) Next() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// GeneratorFor maps a configured strategy name to a generator.
func GeneratorFor(strategy string) IDGenerator {
	if strategy == "uuid" {
		return UUIDs{}
	}
	return NumericIDs{}
}
