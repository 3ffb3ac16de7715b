package model

import "errors"

// SensorTemplate describes one sensor a device exposes: its identity,
// optional bounds, and the reading type used to render its wire unit.
type SensorTemplate struct {
	Name        string
	Reference   string
	Description string
	Minimum     *float64
	Maximum     *float64
	Unit        ReadingType
}

// NewSensorTemplate builds a SensorTemplate. Exactly one of dataType or
// (readingTypeName, unit) must be supplied: passing a dataType alongside a
// non-empty readingTypeName is rejected as mixing, and passing neither is
// rejected as underspecified. With a dataType, a non-empty unit replaces
// the generic default symbol.
func NewSensorTemplate(name, reference string, dataType *DataType, readingTypeName, unit string) (*SensorTemplate, error) {
	st := &SensorTemplate{Name: name, Reference: reference}

	hasNamed := readingTypeName != ""
	switch {
	case dataType != nil && hasNamed:
		return nil, errors.New("sensor template: cannot mix data_type with reading_type_name")
	case dataType != nil:
		if !dataType.Valid() {
			return nil, errors.New("sensor template: invalid data type")
		}
		st.Unit = ReadingTypeFromDataType(*dataType, false, unit)
	case readingTypeName != "" && unit != "":
		st.Unit = ReadingTypeNamed(readingTypeName, unit)
	case readingTypeName != "" || unit != "":
		return nil, errors.New("sensor template: both reading_type_name and unit must be provided together")
	default:
		return nil, errors.New("sensor template: must supply data_type or (reading_type_name, unit)")
	}
	return st, nil
}

// WithBounds sets the sensor's minimum and maximum value.
func (s *SensorTemplate) WithBounds(min, max float64) *SensorTemplate {
	s.Minimum = &min
	s.Maximum = &max
	return s
}

// WithDescription sets the sensor's human-readable description.
func (s *SensorTemplate) WithDescription(d string) *SensorTemplate {
	s.Description = d
	return s
}
