package codec

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rustyeddy/gwmodule/model"
	"github.com/rustyeddy/gwmodule/transport"
)

// Firmware encodes outbound firmware status/version messages and
// classifies/decodes inbound install and abort commands. Grounded on
// json_firmware_update_protocol.py.
type Firmware struct{}

type firmwareStatusDTO struct {
	Status string `json:"status"`
	Error  *int   `json:"error,omitempty"`
}

type firmwareInstallDTO struct {
	FileName string `json:"fileName"`
}

// InboundTopicsForDevice lists the topic filters the gateway must
// subscribe to so a device can receive install/abort commands.
func (Firmware) InboundTopicsForDevice(key string) []string {
	return []string{
		deviceTopic(firmwareInstallRoot, key),
		deviceTopic(firmwareAbortRoot, key),
	}
}

// IsInstallCommand reports whether msg commands a firmware install.
func (Firmware) IsInstallCommand(msg transport.Message) bool {
	return strings.HasPrefix(msg.Topic, firmwareInstallRoot)
}

// IsAbortCommand reports whether msg commands a firmware install abort.
func (Firmware) IsAbortCommand(msg transport.Message) bool {
	return strings.HasPrefix(msg.Topic, firmwareAbortRoot)
}

// DecodeFileName extracts the firmware file name from an install command.
func (Firmware) DecodeFileName(msg transport.Message) (string, error) {
	var dto firmwareInstallDTO
	if err := json.Unmarshal(msg.Payload, &dto); err != nil {
		return "", fmt.Errorf("decode firmware install command: %w", err)
	}
	return dto.FileName, nil
}

// EncodeStatus builds the outbound firmware update status message. The
// error field is present only when status carries an error code.
func (Firmware) EncodeStatus(key string, status model.FirmwareUpdateStatus) (transport.Message, error) {
	dto := firmwareStatusDTO{Status: string(status.State())}
	if code, ok := status.ErrorCode(); ok {
		v := int(code)
		dto.Error = &v
	}
	payload, err := json.Marshal(dto)
	if err != nil {
		return transport.Message{}, fmt.Errorf("encode firmware status: %w", err)
	}
	return transport.New(deviceTopic(firmwareStatusRoot, key), payload), nil
}

// EncodeVersion builds the outbound firmware version report message. The
// payload is the bare version string, not JSON, matching the reference
// implementation's plain str() payload for this one message.
func (Firmware) EncodeVersion(key, version string) transport.Message {
	return transport.New(deviceTopic(firmwareVersionRoot, key), []byte(version))
}
