package excalidraw

import (
	"fmt"

	"github.com/google/uuid"
)

// IDStrategy selects how element identifiers are generated.
type IDStrategy string

const (
	// CounterIDs yields "node-1000", "text-1001", ... from one shared counter.
	CounterIDs IDStrategy = "counter"
	// UUIDIDs yields "node-<uuid>" identifiers.
	UUIDIDs IDStrategy = "uuid"
)

// CounterStart is the first value of the counter strategy.
const CounterStart = 1000

// IDGenerator produces element identifiers that are unique within one
// document. Implementations need not be safe for concurrent use.
type IDGenerator interface {
	Next(prefix string) string
}

// NewIDGenerator returns a fresh generator for the strategy.
// Unknown strategies fall back to CounterIDs.
func NewIDGenerator(s IDStrategy) IDGenerator {
	if s == UUIDIDs {
		return uuidGenerator{}
	}
	return &counterGenerator{next: CounterStart}
}

type counterGenerator struct {
	next int
}

func (c *counterGenerator) Next(prefix string) string {
	id := fmt.Sprintf("%s-%d", prefix, c.next)
	c.next++
	return id
}

type uuidGenerator struct{}

func (uuidGenerator) Next(prefix string) string {
	return prefix + "-" + uuid.NewString()
}
