package util

// Stack is a simple LIFO stack. Of holds the backing slice directly so that
// callers needing to inspect the full stack (trace listeners, error
// reporting) can range over it without a dedicated accessor.
type Stack[T any] struct {
	Of []T
}

// Push adds v to the top of the stack.
func (s *Stack[T]) Push(v T) {
	s.Of = append(s.Of, v)
}

// Pop removes and returns the top of the stack. Panics if the stack is empty;
// callers must check Empty first.
func (s *Stack[T]) Pop() T {
	n := len(s.Of)
	v := s.Of[n-1]
	s.Of = s.Of[:n-1]
	return v
}

// Peek returns the top of the stack without removing it. Panics if the stack
// is empty; callers must check Empty first.
func (s *Stack[T]) Peek() T {
	return s.Of[len(s.Of)-1]
}

// Empty returns whether the stack has no elements.
func (s *Stack[T]) Empty() bool {
	return len(s.Of) == 0
}

// Len returns the number of elements currently on the stack.
func (s *Stack[T]) Len() int {
	return len(s.Of)
}

// ArticleFor returns "a" or "an" as appropriate for the given word, optionally
// capitalized. Used for composing "expected a NUMBER" / "expected an IDENT"
// style messages.
func ArticleFor(word string, capitalize bool) string {
	article := "a"
	if len(word) > 0 {
		switch word[0] {
		case 'a', 'e', 'i', 'o', 'u', 'A', 'E', 'I', 'O', 'U':
			article = "an"
		}
	}
	if capitalize {
		return string(article[0]-32) + article[1:]
	}
	return article
}
