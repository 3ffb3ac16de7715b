// Package transport defines the message envelope and connection contract
// shared by the gateway and the MQTT adapter, plus the default
// eclipse/paho.mqtt.golang-backed implementation in transport/mqtt.
package transport

import "strings"

// Message is an opaque (topic, payload) pair. It is meaningful only to the
// codecs that translate it to and from typed domain values and to the
// Conn that moves it across the broker.
type Message struct {
	Topic   string
	Payload []byte
}

// New builds a Message.
func New(topic string, payload []byte) Message {
	return Message{Topic: topic, Payload: payload}
}

// Equal reports whether two messages carry the same topic and payload,
// used by Queue.Remove to find a specific message.
func (m Message) Equal(o Message) bool {
	return m.Topic == o.Topic && string(m.Payload) == string(o.Payload)
}

// Key returns the last '/'-separated segment of the topic, the device key
// for every device-scoped topic in this protocol.
func (m Message) Key() string {
	idx := strings.LastIndex(m.Topic, "/")
	if idx < 0 {
		return m.Topic
	}
	return m.Topic[idx+1:]
}
