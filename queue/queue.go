// Package queue provides the gateway's outbound store-and-forward buffer,
// used whenever the transport is disconnected or a publish fails.
package queue

import "github.com/rustyeddy/gwmodule/transport"

// Queue is an ordered, thread-safe store of messages awaiting publish.
// Implementations must honor FIFO ordering for Get and must make Put,
// Get, Remove, Size and MessagesForDevice individually atomic; no
// composite operation across calls is guaranteed atomic (spec §5).
//
// The default implementation (Memory) is in-memory and non-durable; a
// caller may substitute a durable or bounded implementation without the
// gateway knowing the difference.
type Queue interface {
	// Put appends a message to the back of the queue. Returns false if
	// the message could not be stored.
	Put(msg transport.Message) bool

	// Get pops and returns the message at the front of the queue. The
	// second return is false if the queue is empty.
	Get() (transport.Message, bool)

	// Remove removes the first message equal to msg. Returns true
	// whether or not a matching message was present.
	Remove(msg transport.Message) bool

	// MessagesForDevice returns, without removing them, every queued
	// message whose topic contains key as a substring.
	MessagesForDevice(key string) []transport.Message

	// Size returns the current number of queued messages.
	Size() int
}
