// Package gateway implements the orchestrator (spec §4.1): the device
// registry, the inbound message router, outbound publication, and the
// binding between the firmware coordinator and the installer it drives.
// It owns every other package in this module and is the only one a
// caller needs to construct directly.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rustyeddy/gwmodule/codec"
	"github.com/rustyeddy/gwmodule/firmware"
	"github.com/rustyeddy/gwmodule/gwerr"
	"github.com/rustyeddy/gwmodule/model"
	"github.com/rustyeddy/gwmodule/queue"
	"github.com/rustyeddy/gwmodule/transport"
	"github.com/rustyeddy/gwmodule/transport/mqtt"
)

// Config bundles everything needed to construct a Gateway. StatusProvider
// is mandatory; ActuationHandler/ActuatorStatusProvider and
// ConfigurationHandler/ConfigurationProvider must each be supplied
// together or not at all. Queue and Conn default to an in-memory queue
// and an MQTT transport built from Host/Port/ModuleName when left nil.
type Config struct {
	ModuleName string
	Host       string
	Port       int

	StatusProvider         DeviceStatusProvider
	ActuationHandler       ActuationHandler
	ActuatorStatusProvider ActuatorStatusProvider
	ConfigurationHandler   ConfigurationHandler
	ConfigurationProvider  ConfigurationProvider
	FirmwareHandler        firmware.Installer

	Queue queue.Queue
	Conn  transport.Conn
	Log   *slog.Logger
}

// Gateway is the orchestrator: it owns the device registry, the codecs,
// the outbound queue, the transport connection and the firmware
// coordinator, and is the single entry point for inbound broker messages.
type Gateway struct {
	log        *slog.Logger
	moduleName string

	reg *registry

	statusProvider         DeviceStatusProvider
	actuationHandler       ActuationHandler
	actuatorStatusProvider ActuatorStatusProvider
	configurationHandler   ConfigurationHandler
	configurationProvider  ConfigurationProvider

	firmwareInstaller firmware.Installer
	firmwareCoord     *firmware.Coordinator

	data              codec.Data
	status            codec.Status
	registrationCodec codec.Registration
	firmwareCodec     codec.Firmware

	queue queue.Queue
	conn  transport.Conn

	bus *eventBus
}

// New validates cfg's callback pairing rules, instantiates default
// components for any left nil (in-memory queue, MQTT transport), binds
// the firmware coordinator to its installer if one was supplied, and
// registers the router as the transport's inbound listener. It does not
// connect.
func New(cfg Config) (*Gateway, error) {
	if cfg.StatusProvider == nil {
		return nil, gwerr.New(gwerr.Configuration, "new_gateway", errors.New("status provider is mandatory"))
	}
	if (cfg.ActuationHandler == nil) != (cfg.ActuatorStatusProvider == nil) {
		return nil, gwerr.New(gwerr.Configuration, "new_gateway", errors.New("actuation handler and actuator status provider must be supplied together"))
	}
	if (cfg.ConfigurationHandler == nil) != (cfg.ConfigurationProvider == nil) {
		return nil, gwerr.New(gwerr.Configuration, "new_gateway", errors.New("configuration handler and configuration provider must be supplied together"))
	}

	log := cfg.Log
	if log == nil {
		log = slog.Default()
	}

	q := cfg.Queue
	if q == nil {
		q = queue.NewMemory()
	}

	conn := cfg.Conn
	if conn == nil {
		conn = mqtt.New(mqtt.Config{
			Broker:   fmt.Sprintf("tcp://%s:%d", cfg.Host, cfg.Port),
			ClientID: cfg.ModuleName,
		}, log)
	}

	g := &Gateway{
		log:                    log,
		moduleName:             cfg.ModuleName,
		reg:                    newRegistry(),
		statusProvider:         cfg.StatusProvider,
		actuationHandler:       cfg.ActuationHandler,
		actuatorStatusProvider: cfg.ActuatorStatusProvider,
		configurationHandler:   cfg.ConfigurationHandler,
		configurationProvider:  cfg.ConfigurationProvider,
		queue:                  q,
		conn:                   conn,
		bus:                    newEventBus(),
	}

	if cfg.FirmwareHandler != nil {
		g.firmwareInstaller = cfg.FirmwareHandler
		g.firmwareCoord = firmware.NewCoordinator(cfg.FirmwareHandler, g.firmwarePublishStatus, g.firmwarePublishVersion, log)
	}

	conn.SetInboundListener(g.onMessage)
	return g, nil
}

// Devices returns a snapshot of every currently registered device.
func (g *Gateway) Devices() []model.Device { return g.reg.all() }

// Stats reports a point-in-time summary of the gateway's operational
// state, consumed by debugserver's /api/stats endpoint.
type Stats struct {
	DeviceCount int
	QueueSize   int
	Connected   bool
}

// BeginFirmwareInstall starts a firmware install for key against path,
// the same action an inbound firmware-install command triggers.
func (g *Gateway) BeginFirmwareInstall(key, path string) error {
	if g.firmwareCoord == nil {
		return gwerr.New(gwerr.Configuration, "begin_firmware_install", errors.New("no firmware handler configured"))
	}
	return g.firmwareCoord.BeginInstall(key, path)
}

// AbortFirmwareInstall aborts an in-progress firmware install for key.
func (g *Gateway) AbortFirmwareInstall(key string) error {
	if g.firmwareCoord == nil {
		return gwerr.New(gwerr.Configuration, "abort_firmware_install", errors.New("no firmware handler configured"))
	}
	return g.firmwareCoord.AbortInstall(key)
}

func (g *Gateway) Stats() Stats {
	return Stats{
		DeviceCount: len(g.reg.keys()),
		QueueSize:   g.queue.Size(),
		Connected:   g.conn.Connected(),
	}
}

// LastRegistrationResult returns the outcome of the most recent
// registration response seen for key, so a caller can inspect why a
// registration was rejected instead of only reading the log.
func (g *Gateway) LastRegistrationResult(key string) (model.RegistrationResult, string, bool) {
	return g.reg.lastRegistrationResult(key)
}

// AddDevice registers dev: it is rejected if its key is a duplicate, or
// if it declares a capability (actuators, configuration, firmware) with
// no matching caller callback configured. On success its inbound topics
// are subscribed, the last-will is rebuilt, the connection is rebuilt if
// already connected (so the new last-will and subscriptions take effect),
// and a registration request is published or queued.
func (g *Gateway) AddDevice(ctx context.Context, dev *model.Device) error {
	tmpl := dev.Template()
	if len(tmpl.Actuators) > 0 && (g.actuationHandler == nil || g.actuatorStatusProvider == nil) {
		g.log.Error("add device refused: actuators declared with no actuation/status callbacks", "device", dev.Key())
		return gwerr.New(gwerr.Configuration, "add_device", fmt.Errorf("device %q declares actuators but no actuation handler is configured", dev.Key()))
	}
	if tmpl.HasConfigurations() && (g.configurationHandler == nil || g.configurationProvider == nil) {
		g.log.Error("add device refused: configuration declared with no configuration callbacks", "device", dev.Key())
		return gwerr.New(gwerr.Configuration, "add_device", fmt.Errorf("device %q declares configuration but no configuration handler is configured", dev.Key()))
	}
	if tmpl.SupportsFirmwareUpdate && g.firmwareCoord == nil {
		g.log.Error("add device refused: firmware update declared with no firmware handler", "device", dev.Key())
		return gwerr.New(gwerr.Configuration, "add_device", fmt.Errorf("device %q declares firmware update support but no firmware handler is configured", dev.Key()))
	}

	if !g.reg.add(dev) {
		g.log.Error("add device refused: duplicate key", "device", dev.Key())
		return gwerr.New(gwerr.Configuration, "add_device", fmt.Errorf("device key %q already registered", dev.Key()))
	}

	if err := g.conn.AddSubscriptions(g.topicsForDevice(dev.Key())); err != nil {
		return fmt.Errorf("add device %q: subscribe: %w", dev.Key(), err)
	}
	if err := g.rebuildLastWill(); err != nil {
		return fmt.Errorf("add device %q: %w", dev.Key(), err)
	}
	if g.conn.Connected() {
		if err := g.conn.Reconnect(ctx); err != nil {
			return fmt.Errorf("add device %q: reconnect: %w", dev.Key(), err)
		}
	}

	req := model.NewDeviceRegistrationRequest(dev.Name(), dev.Key(), tmpl)
	msg, err := g.registrationCodec.EncodeRequest(req)
	if err != nil {
		return fmt.Errorf("add device %q: %w", dev.Key(), err)
	}
	return g.publishOrQueue(msg)
}

// RemoveDevice unregisters key, unsubscribes its topics, rebuilds the
// last-will, and reconnects if currently connected. A no-op if key was
// not registered.
func (g *Gateway) RemoveDevice(ctx context.Context, key string) error {
	if !g.reg.remove(key) {
		g.log.Warn("remove device: key not registered", "device", key)
		return nil
	}
	g.conn.RemoveTopicsForDevice(key)
	if err := g.rebuildLastWill(); err != nil {
		return fmt.Errorf("remove device %q: %w", key, err)
	}
	if g.conn.Connected() {
		if err := g.conn.Reconnect(ctx); err != nil {
			return fmt.Errorf("remove device %q: reconnect: %w", key, err)
		}
	}
	return nil
}

// Connect is idempotent. On a fresh connection it republishes, for every
// registered device, its current status, every actuator's status,
// configuration (if supported) and firmware version (if supported).
func (g *Gateway) Connect(ctx context.Context) error {
	if g.conn.Connected() {
		return nil
	}
	if err := g.conn.Connect(ctx); err != nil {
		return err
	}
	g.log.Info("gateway connected")
	for _, key := range g.reg.keys() {
		if err := g.publishConnectState(key); err != nil {
			return fmt.Errorf("connect: republish device %q: %w", key, err)
		}
	}
	return nil
}

// Disconnect closes the transport connection. Idempotent; messages left
// in the queue remain for the next connect.
func (g *Gateway) Disconnect() { g.conn.Disconnect() }

// AddSensorReading encodes and enqueues a reading. It never publishes
// synchronously, even if connected.
func (g *Gateway) AddSensorReading(key, reference string, value model.Value, timestamp *int64) error {
	msg, err := g.data.EncodeSensorReading(key, model.NewSensorReading(reference, value, timestamp))
	if err != nil {
		return fmt.Errorf("add sensor reading: %w", err)
	}
	return g.enqueueOnly(msg)
}

// AddAlarm encodes and enqueues an alarm event. Same contract as
// AddSensorReading.
func (g *Gateway) AddAlarm(key, reference string, active bool, timestamp *int64) error {
	msg, err := g.data.EncodeAlarm(key, model.NewAlarm(reference, active, timestamp))
	if err != nil {
		return fmt.Errorf("add alarm: %w", err)
	}
	return g.enqueueOnly(msg)
}

// PublishActuatorStatus asks the actuator-status provider for reference's
// current state and value, validates the result, and publishes or
// enqueues the encoded status.
func (g *Gateway) PublishActuatorStatus(key, reference string) error {
	if g.actuatorStatusProvider == nil {
		return gwerr.New(gwerr.Configuration, "publish_actuator_status", errors.New("no actuator status provider configured"))
	}
	state, value, err := g.callActuatorStatusProvider(key, reference)
	if err != nil {
		return err
	}
	status, err := model.NewActuatorStatus(reference, state, value)
	if err != nil {
		return gwerr.New(gwerr.Validation, "publish_actuator_status", err)
	}
	msg, err := g.data.EncodeActuatorStatus(key, status)
	if err != nil {
		return fmt.Errorf("publish actuator status: %w", err)
	}
	return g.publishOrQueue(msg)
}

// PublishConfiguration asks the configuration provider for key's current
// values and publishes or enqueues the encoded snapshot.
func (g *Gateway) PublishConfiguration(key string) error {
	if g.configurationProvider == nil {
		return gwerr.New(gwerr.Configuration, "publish_configuration", errors.New("no configuration provider configured"))
	}
	values, err := g.callConfigurationProvider(key)
	if err != nil {
		return err
	}
	msg, err := g.data.EncodeConfiguration(key, values)
	if err != nil {
		return fmt.Errorf("publish configuration: %w", err)
	}
	return g.publishOrQueue(msg)
}

// PublishDeviceStatus asks the status provider for key's current status
// and publishes or enqueues a device-status update.
func (g *Gateway) PublishDeviceStatus(key string) error {
	return g.publishDeviceStatus(key, true)
}

// Publish drains the outbound queue. With an empty key it drains
// globally in FIFO order; with a key it drains only messages whose topic
// contains it, preserving their relative order. It stops at the first
// publish failure, leaving the unpublished message queued.
func (g *Gateway) Publish(key string) error {
	for _, msg := range g.queue.MessagesForDevice(key) {
		if err := g.conn.Publish(msg); err != nil {
			return fmt.Errorf("publish %q: %w", key, err)
		}
		g.queue.Remove(msg)
		g.bus.publish(Event{Direction: Outbound, Message: msg, At: time.Now()})
	}
	return nil
}

func (g *Gateway) publishDeviceStatus(key string, update bool) error {
	status, err := g.callStatusProvider(key)
	if err != nil {
		return err
	}
	if !status.Valid() {
		return gwerr.New(gwerr.Validation, "publish_device_status", fmt.Errorf("device %q: invalid device status %d", key, status))
	}
	var msg transport.Message
	if update {
		msg, err = g.status.EncodeUpdate(key, status)
	} else {
		msg, err = g.status.EncodeResponse(key, status)
	}
	if err != nil {
		return fmt.Errorf("publish device status: %w", err)
	}
	return g.publishOrQueue(msg)
}

func (g *Gateway) publishFirmwareVersion(key string) error {
	if g.firmwareInstaller == nil {
		return nil
	}
	version, err := g.firmwareInstaller.GetFirmwareVersion(key)
	if err != nil {
		return fmt.Errorf("get firmware version: %w", err)
	}
	return g.publishOrQueue(g.firmwareCodec.EncodeVersion(key, version))
}

func (g *Gateway) publishConnectState(key string) error {
	dev, ok := g.reg.get(key)
	if !ok {
		return nil
	}
	if err := g.publishDeviceStatus(key, true); err != nil {
		return err
	}
	for _, a := range dev.Template().Actuators {
		if err := g.PublishActuatorStatus(key, a.Reference); err != nil {
			return err
		}
	}
	if dev.Template().HasConfigurations() {
		if err := g.PublishConfiguration(key); err != nil {
			return err
		}
	}
	if dev.Template().SupportsFirmwareUpdate {
		if err := g.publishFirmwareVersion(key); err != nil {
			return err
		}
	}
	return nil
}

// publishOrQueue implements the publish-path fallback policy (spec §7):
// publish immediately when connected; on a publish failure, or when not
// connected, fall back to the queue; only if the queue also rejects the
// message is an error surfaced.
func (g *Gateway) publishOrQueue(msg transport.Message) error {
	if g.conn.Connected() {
		if err := g.conn.Publish(msg); err == nil {
			g.bus.publish(Event{Direction: Outbound, Message: msg, At: time.Now()})
			return nil
		}
	}
	if !g.queue.Put(msg) {
		return gwerr.New(gwerr.Storage, "publish", errors.New("queue rejected message"))
	}
	return nil
}

func (g *Gateway) enqueueOnly(msg transport.Message) error {
	if !g.queue.Put(msg) {
		return gwerr.New(gwerr.Storage, "enqueue", errors.New("queue rejected message"))
	}
	return nil
}

func (g *Gateway) rebuildLastWill() error {
	msg, err := g.status.EncodeLastWill(g.reg.keys())
	if err != nil {
		return fmt.Errorf("rebuild last will: %w", err)
	}
	return g.conn.SetLastWill(msg)
}

func (g *Gateway) topicsForDevice(key string) []string {
	var topics []string
	topics = append(topics, g.data.InboundTopicsForDevice(key)...)
	topics = append(topics, g.status.InboundTopicsForDevice(key)...)
	topics = append(topics, g.registrationCodec.InboundTopicsForDevice(key)...)
	topics = append(topics, g.firmwareCodec.InboundTopicsForDevice(key)...)
	return topics
}

func (g *Gateway) firmwarePublishStatus(key string, status model.FirmwareUpdateStatus) error {
	msg, err := g.firmwareCodec.EncodeStatus(key, status)
	if err != nil {
		return fmt.Errorf("encode firmware status: %w", err)
	}
	return g.publishOrQueue(msg)
}

func (g *Gateway) firmwarePublishVersion(key, version string) error {
	return g.publishOrQueue(g.firmwareCodec.EncodeVersion(key, version))
}
