package field

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/anyshake/prisma/internal/notify"
)

// Port bounds shared by every host/port pair.
const (
	MinPort = 0
	MaxPort = 65535
)

// Range bounds a numeric field. A bound is only checked when its Has flag is set.
type Range struct {
	Min, Max       float64
	HasMin, HasMax bool
}

// Between returns a closed range [lo, hi].
func Between(lo, hi float64) Range {
	return Range{Min: lo, Max: hi, HasMin: true, HasMax: true}
}

// AtLeast returns a range with only a lower bound.
func AtLeast(lo float64) Range {
	return Range{Min: lo, HasMin: true}
}

// Unbounded accepts any finite number.
var Unbounded = Range{}

// Contains reports whether v lies within the range.
func (r Range) Contains(v float64) bool {
	if r.HasMin && v < r.Min {
		return false
	}
	if r.HasMax && v > r.Max {
		return false
	}
	return true
}

func (r Range) violation(label string) string {
	switch {
	case r.HasMin && r.HasMax:
		return fmt.Sprintf("%s must be between %g and %g", label, r.Min, r.Max)
	case r.HasMin && r.Min == 0:
		return fmt.Sprintf("%s must not be negative", label)
	case r.HasMin:
		return fmt.Sprintf("%s must be at least %g", label, r.Min)
	default:
		return fmt.Sprintf("%s must be at most %g", label, r.Max)
	}
}

// Number parses raw as a finite number within r.
func Number(n notify.Notifier, label, raw string, r Range) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		n.Notify(fmt.Sprintf("%s must be a number", label), true)
		return 0, false
	}
	if !r.Contains(v) {
		n.Notify(r.violation(label), true)
		return 0, false
	}
	return v, true
}

// Port parses a TCP/UDP port. An empty value is accepted and means the port
// is left out of the composed endpoint.
func Port(n notify.Notifier, raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", true
	}
	p, err := strconv.Atoi(raw)
	if err != nil || p < MinPort || p > MaxPort {
		n.Notify(fmt.Sprintf("Port must be between %d and %d", MinPort, MaxPort), true)
		return "", false
	}
	return strconv.Itoa(p), true
}

// Rule checks a candidate string and returns a rejection message, or "" to accept.
type Rule func(v string) string

// NonEmpty rejects the empty string.
func NonEmpty(label string) Rule {
	return func(v string) string {
		if v == "" {
			return label + " cannot be empty"
		}
		return ""
	}
}

// Suffix rejects values that do not end with suffix.
func Suffix(label, suffix string) Rule {
	return func(v string) string {
		if !strings.HasSuffix(v, suffix) {
			return fmt.Sprintf("%s must end with %q", label, suffix)
		}
		return ""
	}
}

// String applies rules in order and stops at the first rejection.
func String(n notify.Notifier, raw string, rules ...Rule) (string, bool) {
	for _, rule := range rules {
		if msg := rule(raw); msg != "" {
			n.Notify(msg, true)
			return "", false
		}
	}
	return raw, true
}

// Choice accepts raw only if it is one of options.
func Choice(n notify.Notifier, label, raw string, options []string) (string, bool) {
	raw = strings.TrimSpace(raw)
	for _, o := range options {
		if raw == o {
			return raw, true
		}
	}
	n.Notify(fmt.Sprintf("%s must be one of %s", label, strings.Join(options, ", ")), true)
	return "", false
}

var boolWords = map[string]bool{
	"true": true, "yes": true, "on": true, "enable": true, "enabled": true, "1": true,
	"false": false, "no": false, "off": false, "disable": false, "disabled": false, "0": false,
}

// Bool parses the usual spellings of a switch.
func Bool(n notify.Notifier, label, raw string) (bool, bool) {
	v, ok := boolWords[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		n.Notify(fmt.Sprintf("%s must be true or false", label), true)
		return false, false
	}
	return v, true
}
