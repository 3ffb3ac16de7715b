package main

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rustyeddy/gwmodule/gateway"
	"github.com/rustyeddy/gwmodule/model"
)

// simulator backs one demo sub-device with an in-memory actuator and
// configuration store, so the daemon has something to register and drive
// end to end without any real hardware attached.
type simulator struct {
	mu       sync.Mutex
	switchOn bool
	interval model.Value
}

func newSimulator() *simulator {
	return &simulator{interval: model.IntValue(30)}
}

func (s *simulator) deviceTemplate() (*model.Device, error) {
	tmpl := model.NewDeviceTemplate()

	numeric := model.Numeric
	sensor, err := model.NewSensorTemplate("Temperature", "T", &numeric, "", "")
	if err != nil {
		return nil, err
	}
	tmpl.AddSensor(*sensor)

	boolean := model.Boolean
	actuator, err := model.NewActuatorTemplate("Switch", "SW", &boolean, "", "")
	if err != nil {
		return nil, err
	}
	tmpl.AddActuator(*actuator)

	cfg, err := model.NewConfigurationTemplate("Reading Interval", "interval", model.Numeric, "30", 1, nil)
	if err != nil {
		return nil, err
	}
	tmpl.AddConfiguration(*cfg)

	return model.NewDevice("sim1", "Simulated Device", tmpl)
}

func (s *simulator) status(key string) (model.DeviceStatus, error) {
	return model.Connected, nil
}

func (s *simulator) actuate(key, reference string, value model.Value) error {
	if reference != "SW" {
		return fmt.Errorf("simulator: unknown actuator %q", reference)
	}
	b, ok := value.Bool()
	if !ok {
		return fmt.Errorf("simulator: actuator %q expects a bool value", reference)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.switchOn = b
	return nil
}

func (s *simulator) actuatorStatus(key, reference string) (model.ActuatorState, model.Value, error) {
	if reference != "SW" {
		return 0, model.Value{}, fmt.Errorf("simulator: unknown actuator %q", reference)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.ActuatorReady, model.BoolValue(s.switchOn), nil
}

func (s *simulator) setConfiguration(key string, values map[string]model.Value) error {
	v, ok := values["interval"]
	if !ok {
		return fmt.Errorf("simulator: configuration missing %q", "interval")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interval = v
	return nil
}

func (s *simulator) configuration(key string) (map[string]model.Value, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return map[string]model.Value{"interval": s.interval}, nil
}

// runReadings publishes a synthetic temperature reading every 5 seconds
// until stop is closed. The stored "interval" configuration value does
// not change this period.
func (s *simulator) runReadings(gw *gateway.Gateway, stop <-chan struct{}) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			reading := model.FloatValue(18 + rand.Float64()*10)
			if err := gw.AddSensorReading("sim1", "T", reading, nil); err != nil {
				continue
			}
			gw.Publish("")
		}
	}
}
