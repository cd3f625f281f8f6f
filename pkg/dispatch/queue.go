package dispatch

// An item in the inject queue.
type queued struct {
	unit rune
	// When set, the unit is dispatched as if it were new input when it reaches
	// the head of the queue, instead of being emitted literally.
	redispatch bool
}

// Output units waiting to be delivered, one per callback.
type injectQueue []queued

func literal(s string) injectQueue {
	q := make(injectQueue, 0, len(s))
	for _, r := range s {
		q = append(q, queued{unit: r})
	}
	return q
}

func (q injectQueue) empty() bool { return len(q) == 0 }

func (q *injectQueue) pop() queued {
	head := (*q)[0]
	*q = (*q)[1:]
	if len(*q) == 0 {
		*q = nil
	}
	return head
}

// Puts items ahead of everything already queued.
func (q *injectQueue) prepend(items injectQueue) {
	if len(items) == 0 {
		return
	}
	*q = append(append(make(injectQueue, 0, len(items)+len(*q)), items...), *q...)
}

func (q *injectQueue) push(items ...queued) {
	*q = append(*q, items...)
}

func (q injectQueue) String() string {
	rs := make([]rune, len(q))
	for i, item := range q {
		rs[i] = item.unit
	}
	return string(rs)
}
