package codec

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/rustyeddy/gwmodule/model"
	"github.com/rustyeddy/gwmodule/transport"
)

// Data encodes outbound sensor readings, alarms, actuator statuses and
// configuration snapshots, and classifies/decodes inbound actuation and
// configuration commands. Grounded on the reference implementation's
// sensor_reading / events / actuator_status / configuration_get topic
// handling; it holds no state of its own.
type Data struct{}

type sensorReadingDTO struct {
	Timestamp *int64 `json:"utc,omitempty"`
	Data      string `json:"data"`
}

type alarmDTO struct {
	Timestamp *int64 `json:"utc,omitempty"`
	Active    bool   `json:"data"`
}

type actuatorStatusDTO struct {
	Status string `json:"status"`
	Value  string `json:"value"`
}

type configurationDTO struct {
	Values map[string]string `json:"values"`
}

// EncodeSensorReading builds the outbound message for a single reading.
// The data field always renders as a string: booleans lowercase
// ("true"/"false"), tuples comma-joined, the same rendering configuration
// values use (actuator status values capitalize booleans instead).
func (Data) EncodeSensorReading(key string, r model.SensorReading) (transport.Message, error) {
	payload, err := json.Marshal(sensorReadingDTO{
		Timestamp: r.Timestamp,
		Data:      r.Value.Repr(true),
	})
	if err != nil {
		return transport.Message{}, fmt.Errorf("encode sensor reading: %w", err)
	}
	return transport.New(referenceTopic(sensorReadingRoot, key, r.Reference), payload), nil
}

// EncodeAlarm builds the outbound message for an alarm event.
func (Data) EncodeAlarm(key string, a model.Alarm) (transport.Message, error) {
	payload, err := json.Marshal(alarmDTO{Timestamp: a.Timestamp, Active: a.Active})
	if err != nil {
		return transport.Message{}, fmt.Errorf("encode alarm: %w", err)
	}
	return transport.New(referenceTopic(alarmRoot, key, a.Reference), payload), nil
}

// EncodeActuatorStatus builds the outbound message reporting actuator
// state. The value field renders capitalized booleans ("True"/"False"),
// matching the reference SDK's plain str() conversion for this one field.
func (Data) EncodeActuatorStatus(key string, s model.ActuatorStatus) (transport.Message, error) {
	payload, err := json.Marshal(actuatorStatusDTO{
		Status: s.State.String(),
		Value:  s.Value.Repr(false),
	})
	if err != nil {
		return transport.Message{}, fmt.Errorf("encode actuator status: %w", err)
	}
	return transport.New(referenceTopic(actuatorStatusRoot, key, s.Reference), payload), nil
}

// EncodeConfiguration builds the outbound message reporting the device's
// current configuration values, keyed by configuration reference and
// wrapped under a "values" object.
func (Data) EncodeConfiguration(key string, values map[string]model.Value) (transport.Message, error) {
	out := make(map[string]string, len(values))
	for ref, v := range values {
		out[ref] = v.Repr(true)
	}
	payload, err := json.Marshal(configurationDTO{Values: out})
	if err != nil {
		return transport.Message{}, fmt.Errorf("encode configuration: %w", err)
	}
	return transport.New(deviceTopic(configurationStatusRoot, key), payload), nil
}

// InboundTopicsForDevice lists the topic filters the gateway must
// subscribe to on behalf of a single registered device.
func (Data) InboundTopicsForDevice(key string) []string {
	return []string{
		actuatorSetRoot + devicePrefix + key + referencePrefix + wildcard,
		actuatorGetRoot + devicePrefix + key + referencePrefix + wildcard,
		configurationSetRoot + devicePrefix + key,
		configurationGetRoot + devicePrefix + key,
	}
}

// IsActuatorSet reports whether msg is an actuation command.
func (Data) IsActuatorSet(msg transport.Message) bool {
	return strings.HasPrefix(msg.Topic, actuatorSetRoot)
}

// IsActuatorGet reports whether msg is an actuator state poll.
func (Data) IsActuatorGet(msg transport.Message) bool {
	return strings.HasPrefix(msg.Topic, actuatorGetRoot)
}

// IsConfigurationSet reports whether msg sets configuration values.
func (Data) IsConfigurationSet(msg transport.Message) bool {
	return strings.HasPrefix(msg.Topic, configurationSetRoot)
}

// IsConfigurationGet reports whether msg polls configuration values.
func (Data) IsConfigurationGet(msg transport.Message) bool {
	return strings.HasPrefix(msg.Topic, configurationGetRoot)
}

// ActuatorReference extracts the reference segment ("r/<ref>") from an
// actuator set/get topic.
func ActuatorReference(topic string) string {
	idx := strings.LastIndex(topic, referencePrefix)
	if idx < 0 {
		return ""
	}
	return topic[idx+len(referencePrefix):]
}

type actuatorSetPayload struct {
	Value json.RawMessage `json:"value"`
}

// DecodeActuatorSetValue extracts the commanded value from an actuator
// set message payload.
func (Data) DecodeActuatorSetValue(msg transport.Message) (model.Value, error) {
	var p actuatorSetPayload
	if err := json.Unmarshal(msg.Payload, &p); err != nil {
		return model.Value{}, fmt.Errorf("decode actuator command: %w", err)
	}
	return decodeRawValue(p.Value)
}

// DecodeConfigurationSet parses the inbound configuration_set payload
// into reference -> Value. Each field is one of: a JSON bool, a JSON
// number (int when it has no '.', otherwise float), or a wire string that
// is either a scalar or a 2-/3-element comma-joined tuple whose elements
// are uniformly int, float, or string (reference implementation's
// set_configuration decode rule). A string without a comma stays a
// string, and a comma-bearing string that doesn't split into exactly 2
// or 3 elements is kept as a single opaque string rather than rejected.
func (Data) DecodeConfigurationSet(msg transport.Message) (map[string]model.Value, error) {
	var envelope struct {
		Values map[string]json.RawMessage `json:"values"`
	}
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		return nil, fmt.Errorf("decode configuration set: %w", err)
	}
	out := make(map[string]model.Value, len(envelope.Values))
	for ref, v := range envelope.Values {
		val, err := decodeRawValue(v)
		if err != nil {
			return nil, fmt.Errorf("configuration field %q: %w", ref, err)
		}
		out[ref] = val
	}
	return out, nil
}

func decodeRawValue(raw json.RawMessage) (model.Value, error) {
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return model.BoolValue(b), nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		var num json.Number
		if err2 := json.Unmarshal(raw, &num); err2 == nil {
			return numberToValue(string(num)), nil
		}
		return model.Value{}, fmt.Errorf("unsupported value shape: %s", raw)
	}
	return stringToValue(s), nil
}

func stringToValue(s string) model.Value {
	parts := strings.Split(s, ",")
	if len(parts) != 2 && len(parts) != 3 {
		return model.StringValue(s)
	}
	allInt, allFloat := true, true
	for _, p := range parts {
		if _, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64); err != nil {
			allInt = false
		}
		if _, err := strconv.ParseFloat(strings.TrimSpace(p), 64); err != nil {
			allFloat = false
		}
	}
	elems := make([]model.Value, len(parts))
	switch {
	case allInt:
		for i, p := range parts {
			n, _ := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
			elems[i] = model.IntValue(n)
		}
	case allFloat:
		for i, p := range parts {
			n, _ := strconv.ParseFloat(strings.TrimSpace(p), 64)
			elems[i] = model.FloatValue(n)
		}
	default:
		for i, p := range parts {
			elems[i] = model.StringValue(p)
		}
	}
	tuple, err := model.NewTuple(elems...)
	if err != nil {
		return model.StringValue(s)
	}
	return tuple
}

func numberToValue(s string) model.Value {
	if !strings.Contains(s, ".") {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return model.IntValue(n)
		}
	}
	n, _ := strconv.ParseFloat(s, 64)
	return model.FloatValue(n)
}
