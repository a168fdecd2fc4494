package eplanning

import (
	"strconv"
	"strings"
)

// Record is one intersection result for one map layer. The portal does
// not publish a schema for these, so fields are accessed by name with
// typed absence instead of panicking on shape changes.
type Record map[string]any

// GetString returns the named field rendered as a display string.
// Absent keys, nulls, empty strings, and non-scalar values all report
// ok=false.
func (r Record) GetString(key string) (string, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return "", false
	}
	s, ok := scalarString(v)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// GetStringDefault returns the named field or def when absent.
func (r Record) GetStringDefault(key, def string) string {
	if s, ok := r.GetString(key); ok {
		return s
	}
	return def
}

// scalarString renders a decoded JSON scalar as a string.
func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}

// Layer is one overlay layer block from the layerintersect endpoint:
// a human-readable layer name plus the intersection results, in the
// order the portal returned them.
type Layer struct {
	LayerName string   `json:"layerName"`
	Results   []Record `json:"results"`
}
