package util

// Stack is a LIFO stack, the zero value is an empty stack ready to use.
type Stack[T any] []T

func (s *Stack[T]) IsEmpty() bool {
	return len(*s) == 0
}

func (s *Stack[T]) Push(item T) {
	*s = append(*s, item)
}

// Pop removes and returns the top item. Panics when the stack is empty.
func (s *Stack[T]) Pop() T {
	index := len(*s) - 1
	item := (*s)[index]
	var zero T
	(*s)[index] = zero // release reference held by the backing array
	*s = (*s)[:index]
	return item
}
