// Package antispam holds the silent filters that run before validation.
// A discarded submission is answered exactly like a delivered one so a bot
// cannot tell it was caught.
package antispam

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// maxEpochMillis bounds timestamps to the range a browser Date can hold
const maxEpochMillis = 8.64e15

// Discard reasons, for server-side logs only
const (
	ReasonHoneypot = "honeypot"
	ReasonTooFast  = "too_fast"
)

// Input is the subset of a submission the gate looks at.
type Input struct {
	// Honeypot is the raw JSON value of the hidden form field
	Honeypot json.RawMessage
	// FormLoadedAt is when the browser rendered the form; zero if unknown
	FormLoadedAt time.Time
}

// Verdict tells the caller whether to drop the submission silently
type Verdict struct {
	Discard bool
	Reason  string
	// Elapsed is the fill time observed by the timing check
	Elapsed time.Duration
}

// Gate applies the honeypot and minimum-fill-time checks.
type Gate struct {
	minFillTime time.Duration
}

func NewGate(minFillTime time.Duration) *Gate {
	return &Gate{minFillTime: minFillTime}
}

// Inspect runs the honeypot check, then the timing check.
func (g *Gate) Inspect(in Input, now time.Time) Verdict {
	if HoneypotTriggered(in.Honeypot) {
		return Verdict{Discard: true, Reason: ReasonHoneypot}
	}

	if !in.FormLoadedAt.IsZero() {
		elapsed := now.Sub(in.FormLoadedAt)
		if elapsed < g.minFillTime {
			return Verdict{Discard: true, Reason: ReasonTooFast, Elapsed: elapsed}
		}
		return Verdict{Elapsed: elapsed}
	}

	return Verdict{}
}

// HoneypotTriggered reports whether a field hidden from humans was filled
// in. Any value except null, "", false and 0 counts, whatever its type.
func HoneypotTriggered(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return false
	}

	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return true
	}

	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0
	default:
		return true
	}
}

// ParseFormLoadedAt reads a Date.now() value sent either as a number or a
// numeric string. Anything else is treated as unset.
func ParseFormLoadedAt(raw json.RawMessage) time.Time {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return time.Time{}
	}

	var ms float64
	switch x := v.(type) {
	case float64:
		ms = x
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return time.Time{}
		}
		ms = f
	default:
		return time.Time{}
	}

	if math.IsNaN(ms) || math.Abs(ms) > maxEpochMillis {
		return time.Time{}
	}
	return FromUnixMilli(int64(ms))
}

// FromUnixMilli converts a browser Date.now() value, treating 0 as unset.
func FromUnixMilli(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}
