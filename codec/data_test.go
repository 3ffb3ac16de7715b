package codec

import (
	"encoding/json"
	"testing"

	"github.com/rustyeddy/gwmodule/model"
	"github.com/rustyeddy/gwmodule/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeSensorReadingBool(t *testing.T) {
	var d Data
	r := model.NewSensorReading("T", model.BoolValue(true), nil)
	msg, err := d.EncodeSensorReading("device_1", r)
	require.NoError(t, err)
	assert.Equal(t, "d2p/sensor_reading/d/device_1/r/T", msg.Topic)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.Payload, &decoded))
	assert.Equal(t, "true", decoded["data"])
}

func TestEncodeSensorReadingTuple(t *testing.T) {
	var d Data
	tuple, err := model.NewTuple(model.FloatValue(1.5), model.FloatValue(2.5))
	require.NoError(t, err)
	r := model.NewSensorReading("LOC", tuple, nil)
	msg, err := d.EncodeSensorReading("device_1", r)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.Payload, &decoded))
	assert.Equal(t, "1.5,2.5", decoded["data"])
}

func TestEncodeActuatorStatusCapitalizedBool(t *testing.T) {
	var d Data
	status, err := model.NewActuatorStatus("SW", model.ActuatorReady, model.BoolValue(true))
	require.NoError(t, err)
	msg, err := d.EncodeActuatorStatus("device_1", status)
	require.NoError(t, err)
	assert.Contains(t, string(msg.Payload), `"value":"True"`)
}

func TestIsActuatorSetGet(t *testing.T) {
	var d Data
	set := transport.New("p2d/actuator_set/d/device_1/r/SW", nil)
	get := transport.New("p2d/actuator_get/d/device_1/r/SW", nil)
	assert.True(t, d.IsActuatorSet(set))
	assert.False(t, d.IsActuatorSet(get))
	assert.True(t, d.IsActuatorGet(get))
	assert.False(t, d.IsActuatorGet(set))
}

func TestDecodeActuatorSetValueBool(t *testing.T) {
	var d Data
	msg := transport.New("p2d/actuator_set/d/device_1/r/SW", []byte(`{"value":true}`))
	v, err := d.DecodeActuatorSetValue(msg)
	require.NoError(t, err)
	b, ok := v.Bool()
	require.True(t, ok)
	assert.True(t, b)
}

func TestDecodeConfigurationSetScalarAndTuple(t *testing.T) {
	var d Data
	msg := transport.New("p2d/configuration_set/d/device_1",
		[]byte(`{"values":{"interval":"30","bounds":"1,2","mode":true}}`))
	values, err := d.DecodeConfigurationSet(msg)
	require.NoError(t, err)

	interval, ok := values["interval"].String2()
	require.True(t, ok)
	assert.Equal(t, "30", interval)

	bounds := values["bounds"]
	require.True(t, bounds.IsTuple())
	assert.Equal(t, 2, bounds.Arity())

	mode, ok := values["mode"].Bool()
	require.True(t, ok)
	assert.True(t, mode)
}

func TestDecodeConfigurationSetNonTupleCommaString(t *testing.T) {
	var d Data
	msg := transport.New("p2d/configuration_set/d/device_1", []byte(`{"values":{"note":"a,b,c,d"}}`))
	values, err := d.DecodeConfigurationSet(msg)
	require.NoError(t, err)
	s, ok := values["note"].String2()
	require.True(t, ok)
	assert.Equal(t, "a,b,c,d", s)
}

func TestActuatorReference(t *testing.T) {
	assert.Equal(t, "SW", ActuatorReference("p2d/actuator_set/d/device_1/r/SW"))
}

func TestInboundTopicsForDevice(t *testing.T) {
	var d Data
	topics := d.InboundTopicsForDevice("device_1")
	assert.Len(t, topics, 4)
}
