package gateway

import "github.com/rustyeddy/gwmodule/model"

// The caller-supplied hooks the orchestrator invokes (spec §6). Replacing
// duck-typed/arity-checked callables with explicit Go function types moves
// the "mandatory/optional pairing" and "arity" validation rules from
// runtime introspection to compile-time signatures; only the pairing
// rule itself (capability present implies both hooks non-nil) is still
// checked at New.

// DeviceStatusProvider reports a device's current liveness/operational
// state. Mandatory for every Gateway.
type DeviceStatusProvider func(key string) (model.DeviceStatus, error)

// ActuationHandler sets hardware state in response to an actuator-set
// command.
type ActuationHandler func(key, reference string, value model.Value) error

// ActuatorStatusProvider reports the current state and value of one
// actuator.
type ActuatorStatusProvider func(key, reference string) (model.ActuatorState, model.Value, error)

// ConfigurationHandler applies a batch of configuration values, atomically
// from the device's perspective.
type ConfigurationHandler func(key string, values map[string]model.Value) error

// ConfigurationProvider returns a device's current configuration values.
type ConfigurationProvider func(key string) (map[string]model.Value, error)
