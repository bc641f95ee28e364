// Package idgen issues the int64 primary keys used by every table.
package idgen

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
)

// Generator returns a new unique int64 ID on every call.
type Generator interface {
	NextID() int64
}

// Snowflake generates time-ordered IDs that are unique across nodes as
// long as each process uses a distinct node number (0..1023).
type Snowflake struct {
	node *snowflake.Node
}

// NewSnowflake creates a generator for the given node number.
func NewSnowflake(nodeID int64) (*Snowflake, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to create snowflake node %d: %w", nodeID, err)
	}
	return &Snowflake{node: node}, nil
}

// NextID returns the next ID.
func (s *Snowflake) NextID() int64 {
	return s.node.Generate().Int64()
}

// Sequence is a deterministic generator for tests: it returns start, start+1, ...
type Sequence struct {
	next int64
}

// NewSequence creates a Sequence starting at start.
func NewSequence(start int64) *Sequence {
	return &Sequence{next: start}
}

// NextID returns the next ID in the sequence.
func (s *Sequence) NextID() int64 {
	id := s.next
	s.next++
	return id
}
