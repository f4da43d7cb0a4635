package containers

// Mailbox hands values from a producer goroutine to a polling consumer.
// It holds at most one value; a newer Post replaces a value that was never taken.
type Mailbox[T any] struct {
	queue *RingQueue[T]
}

func NewMailbox[T any]() *Mailbox[T] {
	return &Mailbox[T]{queue: NewRingQueue[T](1)}
}

// Post never blocks. It reports whether a pending value was replaced.
func (m *Mailbox[T]) Post(value T) bool {
	return m.queue.Overwrite(value)
}

// TryTake returns the pending value, if any, without blocking.
func (m *Mailbox[T]) TryTake() (T, bool) {
	return m.queue.TryDequeue()
}
