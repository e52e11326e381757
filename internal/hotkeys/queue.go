package hotkeys

// NewQueue returns a press channel sized for listeners.
func NewQueue() chan ID {
	return make(chan ID, QueueSize)
}

// Deliver queues id without blocking. A full queue drops the press and
// reports false.
func Deliver(queue chan<- ID, id ID) bool {
	select {
	case queue <- id:
		return true
	default:
		return false
	}
}
