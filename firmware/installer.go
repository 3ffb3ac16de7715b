// Package firmware implements the per-device firmware-update state
// machine (spec §4.4): Idle -> Installing -> {Completed, Error, Aborted}
// -> Idle, driven by a caller-supplied Installer whose install/abort
// calls resolve asynchronously through callbacks bound once at
// construction.
package firmware

import "github.com/rustyeddy/gwmodule/model"

// Installer is the caller-supplied hook that actually drives a
// firmware install on the host device. The outcome of an install arrives
// later through the callbacks registered via SetCallbacks; the return
// values of InstallFirmware and AbortInstallation only report whether the
// request was accepted or honored.
//
// Grounded on spec §6's firmware handler table: install_firmware(key,
// path), abort_installation(key), get_firmware_version(key) -> string,
// calling back into on_install_success(key) / on_install_fail(key,
// status).
type Installer interface {
	// InstallFirmware begins installing the firmware image at path for
	// the named device.
	InstallFirmware(key, path string) error

	// AbortInstallation best-effort cancels an in-progress install. If
	// the installer cannot honor the request, it returns false and no
	// status message is published.
	AbortInstallation(key string) bool

	// GetFirmwareVersion returns the device's currently installed
	// firmware version, used after a successful install and at
	// connect-time republication.
	GetFirmwareVersion(key string) (string, error)

	// SetCallbacks binds the coordinator's success/fail handlers. The
	// installer must invoke exactly one of these per InstallFirmware
	// call, exactly once, from any goroutine.
	SetCallbacks(onSuccess func(key string), onFail func(key string, status model.FirmwareUpdateStatus))
}
