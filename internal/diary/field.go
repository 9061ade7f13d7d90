package diary

// FieldSession tracks unsaved changes to a single value.
//
// Dirty is derived from the two values rather than stored, so
// Dirty() == (Current() != Original()) holds after every mutation.
// FieldSession is not safe for concurrent use; editors guard it.
type FieldSession[T comparable] struct {
	original T
	current  T
}

// Load resets both values to v.
func (s *FieldSession[T]) Load(v T) {
	s.original = v
	s.current = v
}

// Set replaces the working value.
func (s *FieldSession[T]) Set(v T) {
	s.current = v
}

// Current returns the working value.
func (s *FieldSession[T]) Current() T { return s.current }

// Original returns the last committed value.
func (s *FieldSession[T]) Original() T { return s.original }

// Dirty reports whether the working value differs from the committed one.
func (s *FieldSession[T]) Dirty() bool {
	return s.current != s.original
}

// Commit marks the working value as committed. The caller performs the
// remote write first. It reports false, changing nothing, when not dirty.
func (s *FieldSession[T]) Commit() bool {
	return s.CommitValue(s.current)
}

// CommitValue marks v, the value that was actually written, as committed.
// Edits made while the write was in flight stay dirty.
func (s *FieldSession[T]) CommitValue(v T) bool {
	if v == s.original {
		return false
	}
	s.original = v
	return true
}

// Discard drops the working value.
func (s *FieldSession[T]) Discard() {
	s.current = s.original
}
