package gateway

import (
	"sync"

	"github.com/rustyeddy/gwmodule/model"
)

// registry owns the map of registered devices, split out of Gateway so it
// can be tested on its own, mirroring messenger.Registry's separation of
// device bookkeeping from the transport it rides on.
type registry struct {
	mu      sync.RWMutex
	devices map[string]*model.Device
	// lastResult records the outcome of the most recent registration
	// response seen for a device key, so a caller can ask why a
	// registration was rejected instead of only reading the log.
	lastResult map[string]registrationOutcome
}

type registrationOutcome struct {
	result      model.RegistrationResult
	description string
}

func newRegistry() *registry {
	return &registry{
		devices:    make(map[string]*model.Device),
		lastResult: make(map[string]registrationOutcome),
	}
}

// add inserts dev, returning false if the key is already registered.
func (r *registry) add(dev *model.Device) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.devices[dev.Key()]; ok {
		return false
	}
	r.devices[dev.Key()] = dev
	return true
}

// remove deletes key, returning false if it was not present.
func (r *registry) remove(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.devices[key]; !ok {
		return false
	}
	delete(r.devices, key)
	delete(r.lastResult, key)
	return true
}

func (r *registry) get(key string) (*model.Device, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.devices[key]
	return d, ok
}

// keys returns every registered device key, in no particular order.
func (r *registry) keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.devices))
	for k := range r.devices {
		out = append(out, k)
	}
	return out
}

// all returns a snapshot of every registered device.
func (r *registry) all() []model.Device {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Device, 0, len(r.devices))
	for _, d := range r.devices {
		out = append(out, *d)
	}
	return out
}

func (r *registry) setLastResult(key string, result model.RegistrationResult, description string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastResult[key] = registrationOutcome{result: result, description: description}
}

func (r *registry) lastRegistrationResult(key string) (model.RegistrationResult, string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.lastResult[key]
	return o.result, o.description, ok
}
