package transport

import "context"

// InboundListener receives every message the broker delivers on a
// subscribed topic.
type InboundListener func(Message)

// Conn is the transport adapter's contract (spec §4.5): connect,
// subscribe, publish and last-will over a publish/subscribe broker. The
// default implementation (transport/mqtt.Paho) wraps
// eclipse/paho.mqtt.golang; a test double can substitute for it without
// the gateway knowing the difference.
type Conn interface {
	SetInboundListener(fn InboundListener)
	SetLastWill(msg Message) error
	AddSubscriptions(topics []string) error
	RemoveTopicsForDevice(key string)

	Connect(ctx context.Context) error
	Reconnect(ctx context.Context) error
	Disconnect()

	Publish(msg Message) error
	Connected() bool
}
