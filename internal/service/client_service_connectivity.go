package service

import (
	"sync"

	"github.com/MKhiriev/go-offline-sync/internal/logger"
)

type connectivityMonitor struct {
	mu     sync.Mutex
	online bool
	subs   map[int]chan bool
	nextID int

	logger *logger.Logger
}

// NewConnectivityMonitor returns a monitor that starts online.
func NewConnectivityMonitor(logger *logger.Logger) ConnectivityMonitor {
	return &connectivityMonitor{
		online: true,
		subs:   make(map[int]chan bool),
		logger: logger,
	}
}

func (m *connectivityMonitor) IsOnline() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

func (m *connectivityMonitor) SetOnline(online bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.online == online {
		return
	}
	m.online = online
	m.logger.Info().Str("func", "connectivityMonitor.SetOnline").Bool("online", online).Msg("connectivity changed")

	for _, ch := range m.subs {
		sendLatest(ch, online)
	}
}

func (m *connectivityMonitor) Subscribe() (<-chan bool, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	ch := make(chan bool, 1)
	m.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subs, id)
			m.mu.Unlock()
			close(ch)
		})
	}
}

// sendLatest delivers v to a 1-buffered channel, replacing an undelivered
// older value. Callers must serialize sends to ch.
func sendLatest[T any](ch chan T, v T) {
	select {
	case ch <- v:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- v:
	default:
	}
}
