package model

// RegistrationResult is the outcome of a device registration request, as
// reported by the broker's registration response. Any wire value outside
// this set collapses to ResultUnknown.
type RegistrationResult string

const (
	ResultOK                                RegistrationResult = "OK"
	ResultErrorGatewayNotFound               RegistrationResult = "ERROR_GATEWAY_NOT_FOUND"
	ResultErrorNotAGateway                   RegistrationResult = "ERROR_NOT_A_GATEWAY"
	ResultErrorKeyConflict                   RegistrationResult = "ERROR_KEY_CONFLICT"
	ResultErrorMaximumNumberOfDevicesExceeded RegistrationResult = "ERROR_MAXIMUM_NUMBER_OF_DEVICES_EXCEEDED"
	ResultErrorValidationError               RegistrationResult = "ERROR_VALIDATION_ERROR"
	ResultErrorInvalidDTO                    RegistrationResult = "ERROR_INVALID_DTO"
	ResultErrorKeyMissing                    RegistrationResult = "ERROR_KEY_MISSING"
	ResultErrorSubdeviceManagementForbidden  RegistrationResult = "ERROR_SUBDEVICE_MANAGEMENT_FORBIDDEN"
	ResultErrorUnknown                       RegistrationResult = "ERROR_UNKNOWN"
)

// ParseRegistrationResult maps a wire result string to its variant,
// collapsing anything unrecognized to ResultErrorUnknown.
func ParseRegistrationResult(s string) RegistrationResult {
	switch RegistrationResult(s) {
	case ResultOK, ResultErrorGatewayNotFound, ResultErrorNotAGateway,
		ResultErrorKeyConflict, ResultErrorMaximumNumberOfDevicesExceeded,
		ResultErrorValidationError, ResultErrorInvalidDTO, ResultErrorKeyMissing,
		ResultErrorSubdeviceManagementForbidden, ResultErrorUnknown:
		return RegistrationResult(s)
	default:
		return ResultErrorUnknown
	}
}

// DeviceRegistrationRequest bundles a device's identity and template for
// the outbound registration request. DefaultBinding is always true.
type DeviceRegistrationRequest struct {
	Name           string
	Key            string
	Template       *DeviceTemplate
	DefaultBinding bool
}

func NewDeviceRegistrationRequest(name, key string, template *DeviceTemplate) DeviceRegistrationRequest {
	return DeviceRegistrationRequest{Name: name, Key: key, Template: template, DefaultBinding: true}
}

// DeviceRegistrationResponse is the parsed inbound registration response.
type DeviceRegistrationResponse struct {
	Key         string
	Result      RegistrationResult
	Description string
}
