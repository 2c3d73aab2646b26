package http

import (
	"log/slog"
	"sync"
)

// allMachines is the topic of subscribers that did not filter by machine.
const allMachines = "*"

// StreamManager handles active SSE connections, keyed by machine ID.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan<- string]struct{}
}

func NewStreamManager() *StreamManager {
	return &StreamManager{
		subscribers: make(map[string]map[chan<- string]struct{}),
	}
}

// Subscribe registers a channel for reports of machine, or of every machine when
// machine is empty. The returned func unsubscribes and closes the channel.
func (sm *StreamManager) Subscribe(machine string) (chan string, func()) {
	if machine == "" {
		machine = allMachines
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	if _, ok := sm.subscribers[machine]; !ok {
		sm.subscribers[machine] = make(map[chan<- string]struct{})
	}
	sm.subscribers[machine][ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if subs, ok := sm.subscribers[machine]; ok {
			delete(subs, ch)
			close(ch)
			if len(subs) == 0 {
				delete(sm.subscribers, machine)
			}
		}
	}
}

// Broadcast sends msg to the subscribers of machine and to unfiltered subscribers.
// Each subscriber receives msg once, even for a machine whose ID is "*".
func (sm *StreamManager) Broadcast(machine string, msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	topics := []string{machine, allMachines}
	if machine == allMachines {
		topics = topics[1:]
	}
	for _, topic := range topics {
		for ch := range sm.subscribers[topic] {
			select {
			case ch <- msg:
			default:
				// Drop message if channel is full (slow client)
				slog.Warn("SSE: Client buffer full, dropping message", "machine", machine)
			}
		}
	}
}
