package service

import "github.com/MKhiriev/go-offline-sync/models"

// NotifierFunc adapts a function to [Notifier].
type NotifierFunc func(models.Notice)

func (f NotifierFunc) Notify(n models.Notice) {
	f(n)
}

// NoticeQueue is a buffered [Notifier] drained by the UI. When the buffer is
// full the newest notice is dropped; notices are transient.
type NoticeQueue struct {
	ch chan models.Notice
}

func NewNoticeQueue(size int) *NoticeQueue {
	if size <= 0 {
		size = 8
	}
	return &NoticeQueue{ch: make(chan models.Notice, size)}
}

func (q *NoticeQueue) Notify(n models.Notice) {
	select {
	case q.ch <- n:
	default:
	}
}

// C returns the receive side of the queue.
func (q *NoticeQueue) C() <-chan models.Notice {
	return q.ch
}
