package vm

import "fmt"

// StackCapacity is the maximum nesting depth of subroutine calls.
const StackCapacity = 24

// Stack is the bounded LIFO of subroutine return addresses.
type Stack struct {
	entries [StackCapacity]uint16
	depth   int
}

// Push stores a return address.
func (s *Stack) Push(address uint16) error {
	if s.depth == StackCapacity {
		return fmt.Errorf("pushing address %03X at depth %d: %w", address, s.depth, ErrStackOverflow)
	}
	s.entries[s.depth] = address
	s.depth++
	return nil
}

// Pop removes and returns the most recently pushed return address.
func (s *Stack) Pop() (uint16, error) {
	if s.depth == 0 {
		return 0, ErrStackUnderflow
	}
	s.depth--
	return s.entries[s.depth], nil
}

// Depth returns the number of stored return addresses.
func (s *Stack) Depth() int {
	return s.depth
}

// Entries returns the stored return addresses, oldest first.
func (s *Stack) Entries() []uint16 {
	return s.entries[:s.depth]
}
