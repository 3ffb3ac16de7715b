package model

// Alarm is one alarm-state event.
type Alarm struct {
	Reference string
	Active    bool
	Timestamp *int64
}

func NewAlarm(reference string, active bool, timestamp *int64) Alarm {
	return Alarm{Reference: reference, Active: active, Timestamp: timestamp}
}
