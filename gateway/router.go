package gateway

import (
	"fmt"
	"time"

	"github.com/rustyeddy/gwmodule/codec"
	"github.com/rustyeddy/gwmodule/model"
	"github.com/rustyeddy/gwmodule/transport"
)

// onMessage is the single entry point the transport delivers every
// inbound message to. It classifies msg by trying each codec predicate
// in the order spec §4.1 prescribes and dispatches to the first match.
// Every error below is logged and swallowed: a misbehaving handler or
// provider must not tear down the gateway.
func (g *Gateway) onMessage(msg transport.Message) {
	g.bus.publish(Event{Direction: Inbound, Message: msg, At: time.Now()})
	key := msg.Key()
	switch {
	case g.data.IsActuatorSet(msg):
		g.handleActuatorSet(key, msg)
	case g.data.IsActuatorGet(msg):
		g.handleActuatorGet(key, msg)
	case g.data.IsConfigurationSet(msg):
		g.handleConfigurationSet(key, msg)
	case g.data.IsConfigurationGet(msg):
		g.handleConfigurationGet(key)
	case g.registrationCodec.IsResponse(msg):
		g.handleRegistrationResponse(msg)
	case g.status.IsStatusRequest(msg):
		g.handleStatusRequest(key)
	case g.firmwareCodec.IsInstallCommand(msg):
		g.handleFirmwareInstall(key, msg)
	case g.firmwareCodec.IsAbortCommand(msg):
		g.handleFirmwareAbort(key)
	default:
		g.log.Debug("unrouted inbound message", "topic", msg.Topic)
	}
}

func (g *Gateway) handleActuatorSet(key string, msg transport.Message) {
	ref := codec.ActuatorReference(msg.Topic)
	value, err := g.data.DecodeActuatorSetValue(msg)
	if err != nil {
		g.log.Error("decode actuator set command", "device", key, "reference", ref, "err", err)
		return
	}
	if g.actuationHandler == nil {
		g.log.Warn("actuator set received with no actuation handler configured", "device", key, "reference", ref)
		return
	}
	if err := g.callActuationHandler(key, ref, value); err != nil {
		g.log.Error("actuation handler", "device", key, "reference", ref, "err", err)
	}
	if err := g.PublishActuatorStatus(key, ref); err != nil {
		g.log.Error("publish actuator status after set", "device", key, "reference", ref, "err", err)
	}
}

func (g *Gateway) handleActuatorGet(key string, msg transport.Message) {
	ref := codec.ActuatorReference(msg.Topic)
	if err := g.PublishActuatorStatus(key, ref); err != nil {
		g.log.Error("publish actuator status for get", "device", key, "reference", ref, "err", err)
	}
}

func (g *Gateway) handleConfigurationSet(key string, msg transport.Message) {
	values, err := g.data.DecodeConfigurationSet(msg)
	if err != nil {
		g.log.Error("decode configuration set", "device", key, "err", err)
		return
	}
	if g.configurationHandler == nil {
		g.log.Warn("configuration set received with no configuration handler configured", "device", key)
		return
	}
	if err := g.callConfigurationHandler(key, values); err != nil {
		g.log.Error("configuration handler", "device", key, "err", err)
	}
	if err := g.PublishConfiguration(key); err != nil {
		g.log.Error("publish configuration after set", "device", key, "err", err)
	}
}

func (g *Gateway) handleConfigurationGet(key string) {
	if err := g.PublishConfiguration(key); err != nil {
		g.log.Error("publish configuration for get", "device", key, "err", err)
	}
}

func (g *Gateway) handleRegistrationResponse(msg transport.Message) {
	resp, err := g.registrationCodec.DecodeResponse(msg)
	if err != nil {
		g.log.Error("decode registration response", "err", err)
		return
	}
	g.reg.setLastResult(resp.Key, resp.Result, resp.Description)
	if resp.Result != model.ResultOK {
		g.log.Error("device registration rejected", "device", resp.Key, "result", resp.Result, "description", resp.Description)
		return
	}

	dev, ok := g.reg.get(resp.Key)
	if !ok {
		return
	}
	tmpl := dev.Template()
	for _, a := range tmpl.Actuators {
		if err := g.PublishActuatorStatus(resp.Key, a.Reference); err != nil {
			g.log.Error("publish actuator status after registration", "device", resp.Key, "reference", a.Reference, "err", err)
		}
	}
	if tmpl.HasConfigurations() {
		if err := g.PublishConfiguration(resp.Key); err != nil {
			g.log.Error("publish configuration after registration", "device", resp.Key, "err", err)
		}
	}
	if tmpl.SupportsFirmwareUpdate {
		if err := g.publishFirmwareVersion(resp.Key); err != nil {
			g.log.Error("publish firmware version after registration", "device", resp.Key, "err", err)
		}
	}
}

func (g *Gateway) handleStatusRequest(key string) {
	if err := g.publishDeviceStatus(key, false); err != nil {
		g.log.Error("publish device status response", "device", key, "err", err)
	}
}

func (g *Gateway) handleFirmwareInstall(key string, msg transport.Message) {
	path, err := g.firmwareCodec.DecodeFileName(msg)
	if err != nil {
		g.log.Error("decode firmware install command", "device", key, "err", err)
		return
	}
	if g.firmwareCoord == nil {
		g.log.Warn("firmware install received with no firmware handler configured", "device", key)
		return
	}
	if err := g.firmwareCoord.BeginInstall(key, path); err != nil {
		g.log.Error("begin firmware install", "device", key, "err", err)
	}
}

func (g *Gateway) handleFirmwareAbort(key string) {
	if g.firmwareCoord == nil {
		g.log.Warn("firmware abort received with no firmware handler configured", "device", key)
		return
	}
	if err := g.firmwareCoord.AbortInstall(key); err != nil {
		g.log.Error("abort firmware install", "device", key, "err", err)
	}
}

// callActuationHandler, and the four wrappers below it, recover a panic
// from a caller-supplied callback and turn it into an error instead of
// taking down the gateway's goroutine (spec §4.1: "any exception from a
// user callback is logged and swallowed").

func (g *Gateway) callActuationHandler(key, ref string, value model.Value) (err error) {
	defer g.recoverInto(&err, "actuation_handler")
	return g.actuationHandler(key, ref, value)
}

func (g *Gateway) callConfigurationHandler(key string, values map[string]model.Value) (err error) {
	defer g.recoverInto(&err, "configuration_handler")
	return g.configurationHandler(key, values)
}

func (g *Gateway) callStatusProvider(key string) (status model.DeviceStatus, err error) {
	defer g.recoverInto(&err, "status_provider")
	return g.statusProvider(key)
}

func (g *Gateway) callConfigurationProvider(key string) (values map[string]model.Value, err error) {
	defer g.recoverInto(&err, "configuration_provider")
	return g.configurationProvider(key)
}

func (g *Gateway) callActuatorStatusProvider(key, ref string) (state model.ActuatorState, value model.Value, err error) {
	defer g.recoverInto(&err, "actuator_status_provider")
	return g.actuatorStatusProvider(key, ref)
}

func (g *Gateway) recoverInto(err *error, op string) {
	if r := recover(); r != nil {
		g.log.Error("user callback panicked", "op", op, "panic", r)
		*err = fmt.Errorf("%s: panicked: %v", op, r)
	}
}
