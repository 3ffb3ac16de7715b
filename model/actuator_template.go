package model

import "errors"

// ActuatorTemplate describes one actuator a device exposes.
type ActuatorTemplate struct {
	Name        string
	Reference   string
	Description string
	Minimum     *float64
	Maximum     *float64
	Unit        ReadingType
}

// NewActuatorTemplate builds an ActuatorTemplate with the same
// data-type/reading-type mutual-exclusion invariant as NewSensorTemplate.
func NewActuatorTemplate(name, reference string, dataType *DataType, readingTypeName, unit string) (*ActuatorTemplate, error) {
	at := &ActuatorTemplate{Name: name, Reference: reference}

	hasNamed := readingTypeName != ""
	switch {
	case dataType != nil && hasNamed:
		return nil, errors.New("actuator template: cannot mix data_type with reading_type_name")
	case dataType != nil:
		if !dataType.Valid() {
			return nil, errors.New("actuator template: invalid data type")
		}
		at.Unit = ReadingTypeFromDataType(*dataType, true, unit)
	case readingTypeName != "" && unit != "":
		at.Unit = ReadingTypeNamed(readingTypeName, unit)
	case readingTypeName != "" || unit != "":
		return nil, errors.New("actuator template: both reading_type_name and unit must be provided together")
	default:
		return nil, errors.New("actuator template: must supply data_type or (reading_type_name, unit)")
	}
	return at, nil
}

func (a *ActuatorTemplate) WithBounds(min, max float64) *ActuatorTemplate {
	a.Minimum = &min
	a.Maximum = &max
	return a
}

func (a *ActuatorTemplate) WithDescription(d string) *ActuatorTemplate {
	a.Description = d
	return a
}
