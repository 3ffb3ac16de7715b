package model

// ReadingType describes the semantic name and measurement-unit symbol of a
// sensor or actuator's data, either derived from a generic DataType or
// supplied explicitly as a (name, unit) pair already defined on the
// platform.
type ReadingType struct {
	name     string
	symbol   string
	generic  bool
	dataType DataType
	actuator bool
}

// ReadingTypeFromDataType derives a generic reading type from d. unit
// overrides the generic default symbol when non-empty (e.g. "℃" for a
// NUMERIC temperature sensor).
func ReadingTypeFromDataType(d DataType, actuator bool, unit string) ReadingType {
	sym := unit
	if sym == "" {
		sym = genericSymbol(d)
	}
	return ReadingType{
		name:     genericReadingTypeName(d, actuator),
		symbol:   sym,
		generic:  true,
		dataType: d,
		actuator: actuator,
	}
}

// ReadingTypeNamed builds an explicit (name, unit) reading type, passed
// through to the wire unchanged.
func ReadingTypeNamed(name, unit string) ReadingType {
	return ReadingType{name: name, symbol: unit}
}

func (r ReadingType) Name() string     { return r.name }
func (r ReadingType) Symbol() string   { return r.symbol }
func (r ReadingType) IsGeneric() bool  { return r.generic }
func (r ReadingType) DataType() DataType { return r.dataType }
