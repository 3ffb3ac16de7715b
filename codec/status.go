package codec

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rustyeddy/gwmodule/model"
	"github.com/rustyeddy/gwmodule/transport"
)

// Status encodes device status update/response messages and the gateway's
// last-will, and classifies inbound status-request polls. Grounded on
// json_status_protocol.py.
type Status struct{}

type statusDTO struct {
	State int `json:"state"`
}

// InboundTopicsForDevice lists the topic filters the gateway must
// subscribe to so the broker can poll a device's status.
func (Status) InboundTopicsForDevice(key string) []string {
	return []string{deviceTopic(deviceStatusRequestRoot, key)}
}

// IsStatusRequest reports whether msg is a broker-initiated status poll.
func (Status) IsStatusRequest(msg transport.Message) bool {
	return strings.HasPrefix(msg.Topic, deviceStatusRequestRoot)
}

// EncodeUpdate builds the message the gateway sends whenever a device's
// status changes on its own (connect, sleep, go into service mode, ...).
func (Status) EncodeUpdate(key string, status model.DeviceStatus) (transport.Message, error) {
	payload, err := json.Marshal(statusDTO{State: int(status)})
	if err != nil {
		return transport.Message{}, fmt.Errorf("encode device status update: %w", err)
	}
	return transport.New(deviceTopic(deviceStatusUpdateRoot, key), payload), nil
}

// EncodeResponse builds the message the gateway sends in reply to a
// status-request poll.
func (Status) EncodeResponse(key string, status model.DeviceStatus) (transport.Message, error) {
	payload, err := json.Marshal(statusDTO{State: int(status)})
	if err != nil {
		return transport.Message{}, fmt.Errorf("encode device status response: %w", err)
	}
	return transport.New(deviceTopic(deviceStatusResponseRoot, key), payload), nil
}

// EncodeLastWill builds the broker-registered last-will message, a JSON
// array of every device key the gateway currently fronts. The broker
// publishes this verbatim if the gateway disconnects uncleanly.
func (Status) EncodeLastWill(keys []string) (transport.Message, error) {
	payload, err := json.Marshal(keys)
	if err != nil {
		return transport.Message{}, fmt.Errorf("encode last will: %w", err)
	}
	return transport.New(lastWillTopic, payload), nil
}
