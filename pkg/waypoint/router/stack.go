package router

// StackEntry represents a single entry in the back stack.
// It stores the destination and any resume state its page reported.
type StackEntry struct {
	Destination Destination
	Resume      any
}

// Stack manages navigation history for back navigation.
// It is not safe for concurrent use; the controller guards it.
type Stack struct {
	entries []StackEntry
	limit   int
}

// NewStack creates a new empty navigation stack.
func NewStack() *Stack {
	return NewStackWithLimit(0)
}

// NewStackWithLimit creates a stack that keeps at most limit entries,
// dropping the oldest. A limit of zero or less means unbounded.
func NewStackWithLimit(limit int) *Stack {
	return &Stack{
		entries: make([]StackEntry, 0),
		limit:   limit,
	}
}

// Push adds a new entry to the stack.
// Called when navigating forward to a new destination.
func (s *Stack) Push(d Destination, resume any) {
	s.entries = append(s.entries, StackEntry{
		Destination: d,
		Resume:      resume,
	})
	if s.limit > 0 && len(s.entries) > s.limit {
		s.entries = s.entries[len(s.entries)-s.limit:]
	}
}

// Pop removes and returns the top entry from the stack.
// Returns nil if the stack is empty.
func (s *Stack) Pop() *StackEntry {
	if len(s.entries) == 0 {
		return nil
	}
	entry := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return &entry
}

// Peek returns the top entry without removing it.
// Returns nil if the stack is empty.
func (s *Stack) Peek() *StackEntry {
	if len(s.entries) == 0 {
		return nil
	}
	return &s.entries[len(s.entries)-1]
}

// IsEmpty returns true if the stack has no entries.
func (s *Stack) IsEmpty() bool {
	return len(s.entries) == 0
}

// Len returns the number of entries in the stack.
func (s *Stack) Len() int {
	return len(s.entries)
}

// Clear removes all entries from the stack.
func (s *Stack) Clear() {
	s.entries = s.entries[:0]
}

// Entries returns a copy of the entries, oldest first.
func (s *Stack) Entries() []StackEntry {
	out := make([]StackEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Load replaces the stack contents, as done when a session is restored.
func (s *Stack) Load(entries []StackEntry) {
	s.entries = append(s.entries[:0], entries...)
	if s.limit > 0 && len(s.entries) > s.limit {
		s.entries = s.entries[len(s.entries)-s.limit:]
	}
}
