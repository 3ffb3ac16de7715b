package queue

import (
	"container/list"
	"strings"
	"sync"

	"github.com/rustyeddy/gwmodule/transport"
)

// Memory is the default in-memory Queue, backed by a doubly linked list so
// Put/Get/Remove are all O(1) or O(n) linear scans bounded by queue depth,
// guarded by a single mutex. It holds no state across process restarts.
type Memory struct {
	mu sync.Mutex
	l  *list.List
}

// NewMemory builds an empty in-memory queue.
func NewMemory() *Memory {
	return &Memory{l: list.New()}
}

func (m *Memory) Put(msg transport.Message) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.l.PushBack(msg)
	return true
}

func (m *Memory) Get() (transport.Message, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	front := m.l.Front()
	if front == nil {
		return transport.Message{}, false
	}
	m.l.Remove(front)
	return front.Value.(transport.Message), true
}

func (m *Memory) Remove(msg transport.Message) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for e := m.l.Front(); e != nil; e = e.Next() {
		if e.Value.(transport.Message).Equal(msg) {
			m.l.Remove(e)
			return true
		}
	}
	return true
}

func (m *Memory) MessagesForDevice(key string) []transport.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []transport.Message
	for e := m.l.Front(); e != nil; e = e.Next() {
		msg := e.Value.(transport.Message)
		if strings.Contains(msg.Topic, key) {
			out = append(out, msg)
		}
	}
	return out
}

func (m *Memory) Size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.l.Len()
}
