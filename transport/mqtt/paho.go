// Package mqtt implements transport.Conn over an MQTT broker using
// eclipse/paho.mqtt.golang, grounded on
// _examples/rustyeddy-otto/messenger/mqtt/paho.go's client wiring.
package mqtt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/rustyeddy/gwmodule/gwerr"
	"github.com/rustyeddy/gwmodule/transport"
)

const (
	connectTimeout  = 5 * time.Second
	subscribeTimeout = 10 * time.Second
	publishTimeout  = 5 * time.Second
	subscribeQoS    = byte(2)
	willQoS         = byte(1)
)

// Config configures a broker connection.
type Config struct {
	Broker   string // e.g. "tcp://localhost:1883"
	ClientID string // random suffix used if empty
	Username string
	Password string

	CleanSession bool
}

// Paho implements transport.Conn over eclipse/paho.mqtt.golang. A single
// Paho owns one logical connection; Reconnect tears down and rebuilds
// the underlying client so updated options (the last-will message in
// particular) take effect.
type Paho struct {
	log  *slog.Logger
	opts *paho.ClientOptions

	mu       sync.Mutex
	client   paho.Client
	listener transport.InboundListener
	topics   map[string]struct{}
}

// New builds a Paho transport from cfg. It does not connect.
func New(cfg Config, log *slog.Logger) *Paho {
	if log == nil {
		log = slog.Default()
	}
	id := cfg.ClientID
	if id == "" {
		id = "gwmodule-" + randSuffix()
	}

	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(id).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetAutoReconnect(true).
		SetConnectTimeout(connectTimeout).
		SetCleanSession(cfg.CleanSession)

	p := &Paho{opts: opts, log: log, topics: map[string]struct{}{}}

	opts.SetConnectionLostHandler(func(_ paho.Client, err error) {
		p.log.Warn("mqtt disconnected", "err", err)
	})

	return p
}

func randSuffix() string {
	const letters = "abcdefghijklmnopqrstuvwxyz0123456789"
	b := make([]byte, 8)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}

// SetInboundListener registers the callback invoked for every message
// delivered on a subscribed topic.
func (p *Paho) SetInboundListener(fn transport.InboundListener) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listener = fn
}

// SetLastWill stores the broker-registered last-will message. Takes
// effect on the next Connect/Reconnect.
func (p *Paho) SetLastWill(msg transport.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.opts == nil {
		return errors.New("mqtt: client options not initialized")
	}
	p.opts.SetWill(msg.Topic, string(msg.Payload), willQoS, true)
	return nil
}

// AddSubscriptions records topic filters and, if already connected,
// subscribes to the new ones immediately at QoS 2.
func (p *Paho) AddSubscriptions(topics []string) error {
	p.mu.Lock()
	var fresh []string
	for _, t := range topics {
		if _, ok := p.topics[t]; !ok {
			p.topics[t] = struct{}{}
			fresh = append(fresh, t)
		}
	}
	client := p.client
	p.mu.Unlock()

	if client == nil || !client.IsConnected() {
		return nil
	}
	for _, t := range fresh {
		if err := p.subscribeOn(client, t); err != nil {
			return err
		}
	}
	return nil
}

// RemoveTopicsForDevice drops every stored topic filter that names key,
// unsubscribing live if currently connected.
func (p *Paho) RemoveTopicsForDevice(key string) {
	marker := "/d/" + key
	p.mu.Lock()
	var stale []string
	for t := range p.topics {
		if strings.HasSuffix(t, marker) || strings.Contains(t, marker+"/") {
			stale = append(stale, t)
		}
	}
	for _, t := range stale {
		delete(p.topics, t)
	}
	client := p.client
	p.mu.Unlock()

	if client == nil || !client.IsConnected() {
		return
	}
	for _, t := range stale {
		if tok := client.Unsubscribe(t); !tok.WaitTimeout(subscribeTimeout) {
			p.log.Warn("mqtt unsubscribe timeout", "topic", t)
		} else if err := tok.Error(); err != nil {
			p.log.Warn("mqtt unsubscribe failed", "topic", t, "err", err)
		}
	}
}

// Connect blocks until the broker acknowledges the connection or
// connectTimeout elapses, then resubscribes every stored topic.
func (p *Paho) Connect(ctx context.Context) error {
	p.mu.Lock()
	if p.client == nil {
		p.client = paho.NewClient(p.opts)
	}
	client := p.client
	p.mu.Unlock()

	tok := client.Connect()
	if !tok.WaitTimeout(connectTimeout) {
		return gwerr.New(gwerr.Transport, "connect", errors.New("connect timeout"))
	}
	if err := tok.Error(); err != nil {
		return classifyConnectError(err)
	}
	return p.resubscribeAll()
}

// Reconnect tears down any live client and rebuilds one from the
// current options, so an updated last-will takes effect, then connects.
func (p *Paho) Reconnect(ctx context.Context) error {
	p.mu.Lock()
	if p.client != nil && p.client.IsConnected() {
		p.client.Disconnect(250)
	}
	p.client = nil
	p.mu.Unlock()
	return p.Connect(ctx)
}

// Disconnect closes the connection, if open. Idempotent.
func (p *Paho) Disconnect() {
	p.mu.Lock()
	client := p.client
	p.mu.Unlock()
	if client != nil && client.IsConnected() {
		client.Disconnect(250)
	}
}

// Publish sends msg at QoS 1, waiting for the broker's acknowledgement.
func (p *Paho) Publish(msg transport.Message) error {
	p.mu.Lock()
	client := p.client
	p.mu.Unlock()
	if client == nil || !client.IsConnected() {
		return gwerr.New(gwerr.Transport, "publish", errors.New("not connected"))
	}
	tok := client.Publish(msg.Topic, willQoS, false, msg.Payload)
	if !tok.WaitTimeout(publishTimeout) {
		return gwerr.New(gwerr.Transport, "publish", errors.New("publish timeout"))
	}
	if err := tok.Error(); err != nil {
		return gwerr.New(gwerr.Transport, "publish", err)
	}
	return nil
}

// Connected reports whether the underlying client currently holds an
// open connection.
func (p *Paho) Connected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.client != nil && p.client.IsConnected()
}

func (p *Paho) resubscribeAll() error {
	p.mu.Lock()
	topics := make([]string, 0, len(p.topics))
	for t := range p.topics {
		topics = append(topics, t)
	}
	client := p.client
	p.mu.Unlock()

	for _, t := range topics {
		if err := p.subscribeOn(client, t); err != nil {
			return err
		}
	}
	return nil
}

func (p *Paho) subscribeOn(client paho.Client, topic string) error {
	tok := client.Subscribe(topic, subscribeQoS, p.onMessage)
	if !tok.WaitTimeout(subscribeTimeout) {
		return gwerr.New(gwerr.Transport, "subscribe", fmt.Errorf("subscribe timeout: %s", topic))
	}
	if err := tok.Error(); err != nil {
		return gwerr.New(gwerr.Transport, "subscribe", err)
	}
	return nil
}

func (p *Paho) onMessage(_ paho.Client, m paho.Message) {
	p.mu.Lock()
	listener := p.listener
	p.mu.Unlock()
	if listener != nil {
		listener(transport.New(m.Topic(), m.Payload()))
	}
}

// refusalReasons maps substrings of the CONNACK refusal text paho
// surfaces in its connect error to the five distinct refusal kinds the
// MQTT spec defines (codes 1-5).
var refusalReasons = []struct {
	substr string
	reason string
}{
	{"unacceptable protocol version", "wrong protocol version"},
	{"identifier rejected", "invalid client id"},
	{"server unavailable", "server unavailable"},
	{"bad user name or password", "bad credentials"},
	{"not authorized", "not authorised"},
}

func classifyConnectError(err error) error {
	msg := strings.ToLower(err.Error())
	for _, r := range refusalReasons {
		if strings.Contains(msg, r.substr) {
			return gwerr.New(gwerr.Transport, "connect", fmt.Errorf("%s: %w", r.reason, err))
		}
	}
	return gwerr.New(gwerr.Transport, "connect", err)
}
