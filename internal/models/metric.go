package models

import (
	"encoding/json"
	"math"
)

// Metric is a numeric value that may be unavailable. It exists so that
// "no data" is representable without overloading zero: a player with no
// timeline frames has no territorial metrics, not metrics of 0.
//
// An unavailable Metric marshals to JSON null.
type Metric struct {
	Value     float64
	Available bool
}

// MetricOf returns an available metric. Non-finite inputs yield an
// unavailable metric rather than leaking NaN/Inf downstream.
func MetricOf(v float64) Metric {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Metric{}
	}
	return Metric{Value: v, Available: true}
}

// Unavailable returns the explicit "no data" sentinel.
func Unavailable() Metric {
	return Metric{}
}

// Or returns the metric value, or def when unavailable.
func (m Metric) Or(def float64) float64 {
	if !m.Available {
		return def
	}
	return m.Value
}

// MarshalJSON emits the value, or null when the metric is unavailable.
func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.Available {
		return []byte("null"), nil
	}
	return json.Marshal(m.Value)
}

// UnmarshalJSON accepts a number or null.
func (m *Metric) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = Metric{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = MetricOf(v)
	return nil
}
