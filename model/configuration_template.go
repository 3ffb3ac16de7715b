package model

import (
	"errors"
	"fmt"
)

// ConfigurationTemplate describes one configuration option a device
// exposes. Size must be 1, 2 or 3; Labels is required (and comma-joined on
// the wire) when Size > 1, and forbidden when Size == 1.
type ConfigurationTemplate struct {
	Name         string
	Reference    string
	Description  string
	DataType     DataType
	DefaultValue string
	Size         int
	Labels       []string
	Minimum      *float64
	Maximum      *float64
}

// NewConfigurationTemplate builds a ConfigurationTemplate, validating the
// size/labels coupling and that dataType is one of the defined variants.
func NewConfigurationTemplate(name, reference string, dataType DataType, defaultValue string, size int, labels []string) (*ConfigurationTemplate, error) {
	if !dataType.Valid() {
		return nil, fmt.Errorf("configuration template %q: invalid data type", reference)
	}
	switch size {
	case 1:
		if len(labels) > 0 {
			return nil, errors.New("configuration template: labels are forbidden when size is 1")
		}
	case 2, 3:
		if len(labels) == 0 {
			return nil, fmt.Errorf("configuration template: labels are required when size is %d", size)
		}
		if len(labels) != size {
			return nil, fmt.Errorf("configuration template: expected %d labels, got %d", size, len(labels))
		}
	default:
		return nil, fmt.Errorf("configuration template: size must be 1, 2 or 3, got %d", size)
	}

	return &ConfigurationTemplate{
		Name:         name,
		Reference:    reference,
		DataType:     dataType,
		DefaultValue: defaultValue,
		Size:         size,
		Labels:       append([]string(nil), labels...),
	}, nil
}

func (c *ConfigurationTemplate) WithDescription(d string) *ConfigurationTemplate {
	c.Description = d
	return c
}

func (c *ConfigurationTemplate) WithBounds(min, max float64) *ConfigurationTemplate {
	c.Minimum = &min
	c.Maximum = &max
	return c
}
