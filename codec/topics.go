// Package codec translates between the domain types in model and the
// JSON wire messages exchanged with the broker: topic grammar, payload
// shape, and the handful of decode rules (boolean capitalization, tuple
// splitting) that aren't otherwise derivable from the types themselves.
package codec

import "strings"

// Topic roots and path fragments, bit-exact to the existing wire protocol
// (spec §4.3). Every codec builds its topics from these constants so the
// grammar lives in exactly one place.
const (
	devicePrefix    = "d/"
	referencePrefix = "r/"
	wildcard        = "#"

	sensorReadingRoot      = "d2p/sensor_reading/"
	alarmRoot              = "d2p/events/"
	actuatorSetRoot        = "p2d/actuator_set/"
	actuatorGetRoot        = "p2d/actuator_get/"
	actuatorStatusRoot     = "d2p/actuator_status/"
	configurationSetRoot   = "p2d/configuration_set/"
	configurationGetRoot   = "p2d/configuration_get/"
	configurationStatusRoot = "d2p/configuration_get/"

	deviceStatusUpdateRoot   = "d2p/subdevice_status_update/"
	deviceStatusResponseRoot = "d2p/subdevice_status_response/"
	deviceStatusRequestRoot  = "p2d/subdevice_status_request/"
	lastWillTopic            = "lastwill"

	registrationRequestRoot  = "d2p/register_subdevice_request/"
	registrationResponseRoot = "p2d/register_subdevice_response/"

	firmwareInstallRoot = "p2d/firmware_update_install/"
	firmwareAbortRoot   = "p2d/firmware_update_abort/"
	firmwareStatusRoot  = "d2p/firmware_update_status/"
	firmwareVersionRoot = "d2p/firmware_version_update/"
)

// deviceTopic builds "<root>d/<key>".
func deviceTopic(root, key string) string {
	return root + devicePrefix + key
}

// referenceTopic builds "<root>d/<key>/r/<ref>".
func referenceTopic(root, key, ref string) string {
	return root + devicePrefix + key + referencePrefix + ref
}

// ExtractDeviceKey returns the device key embedded in a device-scoped
// topic: the last '/'-separated segment. It is one package-level function
// that applies to the device-scoped topics of all four codecs. The
// gateway's router takes the key from transport.Message.Key, which
// applies the same rule.
func ExtractDeviceKey(topic string) string {
	idx := strings.LastIndex(topic, "/")
	if idx < 0 {
		return topic
	}
	return topic[idx+1:]
}
