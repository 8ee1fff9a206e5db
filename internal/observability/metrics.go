package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics keeps in-process counters for the signals the helpdesk emits:
// HTTP traffic per route, error codes, and ticket lifecycle events. A
// scrape endpoint can be bolted on later; for now the counters feed logs
// and tests.
type Metrics struct {
	mu           sync.Mutex
	requests     map[string]int64
	latency      map[string]time.Duration
	errors       map[string]int64
	ticketEvents map[string]int64
}

// NewMetrics initializes empty counters.
func NewMetrics() *Metrics {
	return &Metrics{
		requests:     make(map[string]int64),
		latency:      make(map[string]time.Duration),
		errors:       make(map[string]int64),
		ticketEvents: make(map[string]int64),
	}
}

// RecordRequest counts a finished request and accumulates its latency.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := method + " " + path + " " + strconv.Itoa(status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[key]++
	m.latency[key] += duration
}

// RecordError counts a request that ended in a domain error code.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[method+" "+path+" "+code]++
}

// RecordTicketEvent counts a ticket lifecycle event (created, claimed,
// completed, cancelled).
func (m *Metrics) RecordTicketEvent(event string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ticketEvents[event]++
}

// TicketEventCounts returns a copy of the lifecycle counters.
func (m *Metrics) TicketEventCounts() map[string]int64 {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int64, len(m.ticketEvents))
	for event, count := range m.ticketEvents {
		out[event] = count
	}
	return out
}
