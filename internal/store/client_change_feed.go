package store

import (
	"sync"

	"github.com/MKhiriev/go-offline-sync/models"
)

// changeFeed is an in-process broadcaster of [models.ChangeEvent].
//
// Each subscriber gets a channel with a buffer of one. When the buffer is
// full the new event is dropped: an undelivered event already signals the
// subscriber to re-read the store, so coalescing loses nothing.
type changeFeed struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan models.ChangeEvent
}

// NewChangeFeed returns an empty feed.
func NewChangeFeed() ChangeNotifier {
	return &changeFeed{subs: make(map[int]chan models.ChangeEvent)}
}

func (f *changeFeed) Subscribe() (<-chan models.ChangeEvent, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.nextID
	f.nextID++
	ch := make(chan models.ChangeEvent, 1)
	f.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			delete(f.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

func (f *changeFeed) Publish(event models.ChangeEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, ch := range f.subs {
		select {
		case ch <- event:
		default:
		}
	}
}
