package firmware

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/rustyeddy/gwmodule/model"
)

// State is the per-device position in the install state machine.
type State int

const (
	Idle State = iota
	Installing
	Completed
	Errored
	Aborted
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Installing:
		return "installing"
	case Completed:
		return "completed"
	case Errored:
		return "errored"
	case Aborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// PublishStatus sends a firmware update status message for a device.
type PublishStatus func(key string, status model.FirmwareUpdateStatus) error

// PublishVersion sends the device's current firmware version.
type PublishVersion func(key, version string) error

// Coordinator drives the firmware state machine: INSTALLATION is
// published before the installer is invoked, and the installer's
// success/fail callback drives the terminal publication. It tracks
// state per device key purely for observability; per spec §4.4 it does
// not guard against a second install command arriving before the first
// resolves — that is a caller-visible contract on the installer.
type Coordinator struct {
	log *slog.Logger

	installer      Installer
	publishStatus  PublishStatus
	publishVersion PublishVersion

	mu    sync.Mutex
	state map[string]State
}

// NewCoordinator builds a Coordinator and binds its internal
// success/fail handlers to installer via SetCallbacks.
func NewCoordinator(installer Installer, publishStatus PublishStatus, publishVersion PublishVersion, log *slog.Logger) *Coordinator {
	if log == nil {
		log = slog.Default()
	}
	c := &Coordinator{
		installer:      installer,
		publishStatus:  publishStatus,
		publishVersion: publishVersion,
		state:          make(map[string]State),
		log:            log,
	}
	installer.SetCallbacks(c.onInstallSuccess, c.onInstallFail)
	return c
}

// BeginInstall publishes an INSTALLATION status and then hands the
// install off to the installer.
func (c *Coordinator) BeginInstall(key, path string) error {
	status, err := model.NewFirmwareUpdateStatus(model.FirmwareInstallation)
	if err != nil {
		return fmt.Errorf("firmware coordinator: %w", err)
	}
	if err := c.publishStatus(key, status); err != nil {
		return fmt.Errorf("firmware coordinator: publish installation status: %w", err)
	}
	c.setState(key, Installing)
	if err := c.installer.InstallFirmware(key, path); err != nil {
		return fmt.Errorf("firmware coordinator: install firmware: %w", err)
	}
	return nil
}

// AbortInstall best-effort cancels an in-progress install. If the
// installer can't honor it, no status is published.
func (c *Coordinator) AbortInstall(key string) error {
	if !c.installer.AbortInstallation(key) {
		c.log.Warn("firmware abort not honored", "device", key)
		return nil
	}
	status, err := model.NewFirmwareUpdateStatus(model.FirmwareAborted)
	if err != nil {
		return fmt.Errorf("firmware coordinator: %w", err)
	}
	c.setState(key, Aborted)
	if err := c.publishStatus(key, status); err != nil {
		return fmt.Errorf("firmware coordinator: publish aborted status: %w", err)
	}
	c.setState(key, Idle)
	return nil
}

// onInstallSuccess is bound to the installer's success callback:
// publish COMPLETED, then fetch and publish the new firmware version.
func (c *Coordinator) onInstallSuccess(key string) {
	status, err := model.NewFirmwareUpdateStatus(model.FirmwareCompleted)
	if err != nil {
		c.log.Error("firmware coordinator: build completed status", "device", key, "err", err)
		return
	}
	c.setState(key, Completed)
	if err := c.publishStatus(key, status); err != nil {
		c.log.Error("firmware coordinator: publish completed status", "device", key, "err", err)
		return
	}
	version, err := c.installer.GetFirmwareVersion(key)
	if err != nil {
		c.log.Error("firmware coordinator: get firmware version", "device", key, "err", err)
		c.setState(key, Idle)
		return
	}
	if err := c.publishVersion(key, version); err != nil {
		c.log.Error("firmware coordinator: publish firmware version", "device", key, "err", err)
	}
	c.setState(key, Idle)
}

// onInstallFail is bound to the installer's fail callback: publish the
// given status verbatim.
func (c *Coordinator) onInstallFail(key string, status model.FirmwareUpdateStatus) {
	c.setState(key, Errored)
	if err := c.publishStatus(key, status); err != nil {
		c.log.Error("firmware coordinator: publish error status", "device", key, "err", err)
	}
	c.setState(key, Idle)
}

func (c *Coordinator) setState(key string, s State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state[key] = s
}

// State returns the coordinator's last known state for a device.
func (c *Coordinator) State(key string) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state[key]
}
