package model

// DeviceTemplate aggregates a device's sensors, actuators, alarms and
// configuration options, plus firmware-update support and free-form
// attribute maps passed through to registration unchanged. It is
// immutable once a Device is constructed from it.
type DeviceTemplate struct {
	Sensors        []SensorTemplate
	Actuators      []ActuatorTemplate
	Alarms         []AlarmTemplate
	Configurations []ConfigurationTemplate

	SupportsFirmwareUpdate bool
	FirmwareUpdateType     string

	TypeParameters           map[string]string
	ConnectivityParameters   map[string]string
	FirmwareUpdateParameters map[string]string
}

// NewDeviceTemplate builds an empty template ready to be populated via
// AddSensor/AddActuator/AddAlarm/AddConfiguration.
func NewDeviceTemplate() *DeviceTemplate {
	return &DeviceTemplate{
		TypeParameters:           map[string]string{},
		ConnectivityParameters:   map[string]string{},
		FirmwareUpdateParameters: map[string]string{},
	}
}

func (t *DeviceTemplate) AddSensor(s SensorTemplate) *DeviceTemplate {
	t.Sensors = append(t.Sensors, s)
	return t
}

func (t *DeviceTemplate) AddActuator(a ActuatorTemplate) *DeviceTemplate {
	t.Actuators = append(t.Actuators, a)
	return t
}

func (t *DeviceTemplate) AddAlarm(a AlarmTemplate) *DeviceTemplate {
	t.Alarms = append(t.Alarms, a)
	return t
}

func (t *DeviceTemplate) AddConfiguration(c ConfigurationTemplate) *DeviceTemplate {
	t.Configurations = append(t.Configurations, c)
	return t
}

// WithFirmwareUpdate marks the template as supporting firmware updates of
// the given installer type (e.g. "FILE_DOWNLOAD").
func (t *DeviceTemplate) WithFirmwareUpdate(updateType string) *DeviceTemplate {
	t.SupportsFirmwareUpdate = true
	t.FirmwareUpdateType = updateType
	return t
}

// HasActuators reports whether the template declares any actuators.
func (t *DeviceTemplate) HasActuators() bool { return len(t.Actuators) > 0 }

// HasConfigurations reports whether the template declares any
// configuration options.
func (t *DeviceTemplate) HasConfigurations() bool { return len(t.Configurations) > 0 }
