package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSensorTemplateFromDataType(t *testing.T) {
	dt := Numeric
	st, err := NewSensorTemplate("Temperature", "T", &dt, "", "℃")
	require.NoError(t, err)
	assert.Equal(t, "COUNT", st.Unit.Name())
	assert.Equal(t, "℃", st.Unit.Symbol())
}

func TestSensorTemplateNamed(t *testing.T) {
	st, err := NewSensorTemplate("Temperature", "T", nil, "TEMPERATURE", "℃")
	require.NoError(t, err)
	assert.Equal(t, "TEMPERATURE", st.Unit.Name())
	assert.False(t, st.Unit.IsGeneric())
}

func TestSensorTemplateRejectsMixing(t *testing.T) {
	dt := Numeric
	_, err := NewSensorTemplate("T", "T", &dt, "TEMPERATURE", "℃")
	assert.Error(t, err)
}

func TestSensorTemplateRejectsNeither(t *testing.T) {
	_, err := NewSensorTemplate("T", "T", nil, "", "")
	assert.Error(t, err)
}

func TestSensorTemplateRejectsPartialNamed(t *testing.T) {
	_, err := NewSensorTemplate("T", "T", nil, "TEMPERATURE", "")
	assert.Error(t, err)
}

func TestActuatorTemplateGenericName(t *testing.T) {
	dt := Boolean
	at, err := NewActuatorTemplate("Switch", "SW", &dt, "", "")
	require.NoError(t, err)
	assert.Equal(t, "SWITCH(ACTUATOR)", at.Unit.Name())
}

func TestConfigurationTemplateSizeOneForbidsLabels(t *testing.T) {
	_, err := NewConfigurationTemplate("c", "c", String, "", 1, []string{"a"})
	assert.Error(t, err)
}

func TestConfigurationTemplateSizeTwoRequiresLabels(t *testing.T) {
	_, err := NewConfigurationTemplate("c", "c", Numeric, "", 2, nil)
	assert.Error(t, err)

	ct, err := NewConfigurationTemplate("c", "c", Numeric, "0,0", 2, []string{"x", "y"})
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, ct.Labels)
}

func TestConfigurationTemplateRejectsBadSize(t *testing.T) {
	_, err := NewConfigurationTemplate("c", "c", Numeric, "", 4, []string{"a", "b", "c", "d"})
	assert.Error(t, err)
}

func TestConfigurationTemplateRejectsInvalidDataType(t *testing.T) {
	_, err := NewConfigurationTemplate("c", "c", DataType(99), "", 1, nil)
	assert.Error(t, err)
}
