package application

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/google/uuid"
)

type IDGenerator interface {
	NewID() string
}

// SequenceIDs hands out "1", "2", ... starting after the given value.
type SequenceIDs struct {
	mu   sync.Mutex
	last int
}

func NewSequenceIDs(after int) *SequenceIDs {
	return &SequenceIDs{last: after}
}

func (g *SequenceIDs) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.last++
	return strconv.Itoa(g.last)
}

type UUIDs struct{}

func (UUIDs) NewID() string { return uuid.NewString() }

// NewIDGenerator picks a strategy by name. seeded is the number of records already in the store.
func NewIDGenerator(strategy string, seeded int) (IDGenerator, error) {
	switch strategy {
	case "", "sequence":
		return NewSequenceIDs(seeded), nil
	case "uuid":
		return UUIDs{}, nil
	default:
		return nil, fmt.Errorf("unknown id strategy %q", strategy)
	}
}
