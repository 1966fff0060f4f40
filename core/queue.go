package core

// Queue holds callbacks deferred until the current event has been fully
// applied, including the key's default effect. It is not safe for
// concurrent use; everything runs on the UI goroutine.
type Queue struct {
	tasks []func()
}

// Defer schedules fn to run on the next Flush.
func (q *Queue) Defer(fn func()) {
	q.tasks = append(q.tasks, fn)
}

// Len returns the number of pending callbacks.
func (q *Queue) Len() int {
	return len(q.tasks)
}

// Flush runs pending callbacks in the order they were deferred, including
// any deferred while flushing, and returns how many ran.
func (q *Queue) Flush() int {
	n := 0
	for len(q.tasks) > 0 {
		fn := q.tasks[0]
		q.tasks[0] = nil
		q.tasks = q.tasks[1:]
		fn()
		n++
	}
	return n
}
