package model

import (
	"encoding/json"
	"errors"
)

// Device is a sub-device proxied to the broker under a distinct key.
// Its template is immutable after construction.
type Device struct {
	key      string
	name     string
	template *DeviceTemplate
}

// NewDevice builds a Device. key must be non-empty and template non-nil.
func NewDevice(key, name string, template *DeviceTemplate) (*Device, error) {
	if key == "" {
		return nil, errors.New("device: key cannot be empty")
	}
	if template == nil {
		return nil, errors.New("device: template cannot be nil")
	}
	return &Device{key: key, name: name, template: template}, nil
}

func (d *Device) Key() string              { return d.key }
func (d *Device) Name() string             { return d.name }
func (d *Device) Template() *DeviceTemplate { return d.template }

// MarshalJSON exposes Key/Name/Template for the registry snapshot served
// by debugserver's /api/devices; Device's fields stay unexported so
// nothing outside this package can mutate a registered device in place.
func (d Device) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key      string          `json:"key"`
		Name     string          `json:"name"`
		Template *DeviceTemplate `json:"template"`
	}{Key: d.key, Name: d.name, Template: d.template})
}
