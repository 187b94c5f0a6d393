package settings

import (
	"fmt"
	"math"
	"strconv"
)

// InvalidError reports a persisted value that could not be used. The field it
// names keeps its compiled-in default.
type InvalidError struct {
	Section string
	Key     string
	Value   string
	Err     error
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("invalid setting [%s] %s = %q: %v", e.Section, e.Key, e.Value, e.Err)
}

func (e *InvalidError) Unwrap() error { return e.Err }

var errOutOfRange = fmt.Errorf("out of range")

// Float loads section.key into dst when present and valid. Missing keys leave
// dst alone and return nil.
func Float(src Source, section, key string, dst *float64, lo, hi float64) error {
	raw, ok := src.Value(section, key)
	if !ok {
		return nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return &InvalidError{Section: section, Key: key, Value: raw, Err: err}
	}
	if math.IsNaN(v) || v < lo || v > hi {
		return &InvalidError{Section: section, Key: key, Value: raw, Err: errOutOfRange}
	}
	*dst = v
	return nil
}

// Int is Float for integer settings.
func Int(src Source, section, key string, dst *int, lo, hi int) error {
	raw, ok := src.Value(section, key)
	if !ok {
		return nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return &InvalidError{Section: section, Key: key, Value: raw, Err: err}
	}
	if v < lo || v > hi {
		return &InvalidError{Section: section, Key: key, Value: raw, Err: errOutOfRange}
	}
	*dst = v
	return nil
}

func SetFloat(src Source, section, key string, v float64) {
	src.SetValue(section, key, strconv.FormatFloat(v, 'f', -1, 64))
}

func SetInt(src Source, section, key string, v int) {
	src.SetValue(section, key, strconv.Itoa(v))
}
