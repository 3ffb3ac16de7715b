package codec

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rustyeddy/gwmodule/model"
	"github.com/rustyeddy/gwmodule/transport"
)

// Registration builds outbound device registration requests and parses
// inbound registration responses. Grounded on json_registration_protocol.py.
type Registration struct{}

type unitDTO struct {
	ReadingTypeName string `json:"readingTypeName"`
	Symbol          string `json:"symbol"`
}

type sensorDTO struct {
	Name        string   `json:"name"`
	Reference   string   `json:"reference"`
	Unit        unitDTO  `json:"unit"`
	Description string   `json:"description"`
	Minimum     *float64 `json:"minimum"`
	Maximum     *float64 `json:"maximum"`
}

type actuatorDTO struct {
	Name        string   `json:"name"`
	Reference   string   `json:"reference"`
	Unit        unitDTO  `json:"unit"`
	Description string   `json:"description"`
	Minimum     *float64 `json:"minimum"`
	Maximum     *float64 `json:"maximum"`
}

type alarmDefDTO struct {
	Name        string `json:"name"`
	Reference   string `json:"reference"`
	Description string `json:"description"`
}

type configurationDefDTO struct {
	Name         string   `json:"name"`
	Reference    string   `json:"reference"`
	Description  string   `json:"description"`
	DefaultValue string   `json:"defaultValue"`
	Size         int      `json:"size"`
	Labels       []string `json:"labels"`
	Minimum      *float64 `json:"minimum"`
	Maximum      *float64 `json:"maximum"`
	DataType     string   `json:"dataType"`
}

type registrationRequestDTO struct {
	Name                     string                `json:"name"`
	DeviceKey                string                `json:"deviceKey"`
	DefaultBinding           bool                  `json:"defaultBinding"`
	Sensors                  []sensorDTO           `json:"sensors"`
	Actuators                []actuatorDTO         `json:"actuators"`
	Alarms                   []alarmDefDTO         `json:"alarms"`
	Configurations           []configurationDefDTO `json:"configurations"`
	TypeParameters           map[string]string     `json:"typeParameters"`
	ConnectivityParameters   map[string]string     `json:"connectivityParameters"`
	FirmwareUpdateParameters map[string]string     `json:"firmwareUpdateParameters"`
}

type registrationResponsePayloadDTO struct {
	DeviceKey string `json:"deviceKey"`
}

type registrationResponseDTO struct {
	Result      string                         `json:"result"`
	Description string                         `json:"description"`
	Payload     registrationResponsePayloadDTO `json:"payload"`
}

func unitOf(u model.ReadingType) unitDTO {
	return unitDTO{ReadingTypeName: u.Name(), Symbol: u.Symbol()}
}

// EncodeRequest builds the outbound registration request message for a
// device. The topic carries no device key; the device key travels inside
// the payload.
func (Registration) EncodeRequest(req model.DeviceRegistrationRequest) (transport.Message, error) {
	t := req.Template
	dto := registrationRequestDTO{
		Name:                     req.Name,
		DeviceKey:                req.Key,
		DefaultBinding:           req.DefaultBinding,
		Sensors:                  make([]sensorDTO, 0, len(t.Sensors)),
		Actuators:                make([]actuatorDTO, 0, len(t.Actuators)),
		Alarms:                   make([]alarmDefDTO, 0, len(t.Alarms)),
		Configurations:           make([]configurationDefDTO, 0, len(t.Configurations)),
		TypeParameters:           t.TypeParameters,
		ConnectivityParameters:   t.ConnectivityParameters,
		FirmwareUpdateParameters: copyStringMap(t.FirmwareUpdateParameters),
	}
	for _, s := range t.Sensors {
		dto.Sensors = append(dto.Sensors, sensorDTO{
			Name: s.Name, Reference: s.Reference, Unit: unitOf(s.Unit),
			Description: s.Description, Minimum: s.Minimum, Maximum: s.Maximum,
		})
	}
	for _, a := range t.Actuators {
		dto.Actuators = append(dto.Actuators, actuatorDTO{
			Name: a.Name, Reference: a.Reference, Unit: unitOf(a.Unit),
			Description: a.Description, Minimum: a.Minimum, Maximum: a.Maximum,
		})
	}
	for _, a := range t.Alarms {
		dto.Alarms = append(dto.Alarms, alarmDefDTO{
			Name: a.Name, Reference: a.Reference, Description: a.Description,
		})
	}
	for _, c := range t.Configurations {
		dto.Configurations = append(dto.Configurations, configurationDefDTO{
			Name: c.Name, Reference: c.Reference, Description: c.Description,
			DefaultValue: c.DefaultValue, Size: c.Size, Labels: c.Labels,
			Minimum: c.Minimum, Maximum: c.Maximum, DataType: c.DataType.String(),
		})
	}
	if _, ok := dto.FirmwareUpdateParameters["supportsFirmwareUpdate"]; !ok {
		dto.FirmwareUpdateParameters["supportsFirmwareUpdate"] = fmt.Sprintf("%t", t.SupportsFirmwareUpdate)
	}

	payload, err := json.Marshal(dto)
	if err != nil {
		return transport.Message{}, fmt.Errorf("encode registration request: %w", err)
	}
	return transport.New(registrationRequestRoot, payload), nil
}

// copyStringMap returns a shallow copy so callers never mutate a
// caller-owned template map.
func copyStringMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}

// InboundTopicsForDevice lists the topic filters the gateway must
// subscribe to in order to receive a device's registration response.
func (Registration) InboundTopicsForDevice(key string) []string {
	return []string{deviceTopic(registrationResponseRoot, key)}
}

// IsResponse reports whether msg is a registration response.
func (Registration) IsResponse(msg transport.Message) bool {
	return strings.HasPrefix(msg.Topic, registrationResponseRoot)
}

// DecodeResponse parses an inbound registration response, collapsing any
// unrecognized result string to model.ResultErrorUnknown.
func (Registration) DecodeResponse(msg transport.Message) (model.DeviceRegistrationResponse, error) {
	var dto registrationResponseDTO
	if err := json.Unmarshal(msg.Payload, &dto); err != nil {
		return model.DeviceRegistrationResponse{}, fmt.Errorf("decode registration response: %w", err)
	}
	return model.DeviceRegistrationResponse{
		Key:         dto.Payload.DeviceKey,
		Result:      model.ParseRegistrationResult(dto.Result),
		Description: dto.Description,
	}, nil
}
