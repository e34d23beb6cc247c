// Package protocol defines the wire format spoken between the desktop
// client and the remote assistant over the chat channel: sentinel-delimited
// JSON payloads embedded inside free-text replies.
package protocol

import (
	"strings"
	"unicode"
)

// Marker is a pair of sentinels that delimit a structured payload inside
// an otherwise natural-language message.
type Marker struct {
	Start string
	End   string
}

var (
	// MarkerSync delimits a discrete sync event (add/update/delete/full_sync).
	MarkerSync = Marker{Start: "[SCHEDULE_SYNC]", End: "[/SCHEDULE_SYNC]"}

	// MarkerData delimits the legacy bulk form: a plain JSON array of
	// schedules. Kept because older assistant prompts still emit it.
	MarkerData = Marker{Start: "[SCHEDULE_DATA]", End: "[/SCHEDULE_DATA]"}
)

// Markers lists every marker pair the client understands, in the order
// they are checked.
var Markers = []Marker{MarkerSync, MarkerData}

// Detect reports whether text contains a well-formed occurrence of the
// marker pair: both sentinels present, start strictly before end.
func Detect(text string, m Marker) bool {
	start := strings.Index(text, m.Start)
	if start < 0 {
		return false
	}
	end := strings.Index(text[start+len(m.Start):], m.End)
	return end >= 0
}

// Extract returns the raw payload enclosed by the first well-formed
// occurrence of the marker pair. The second return value is false when
// the markers are absent or malformed. Extract never validates the
// payload; it is the caller's job to decode it.
func Extract(text string, m Marker) ([]byte, bool) {
	start := strings.Index(text, m.Start)
	if start < 0 {
		return nil, false
	}
	rest := text[start+len(m.Start):]
	end := strings.Index(rest, m.End)
	if end < 0 {
		return nil, false
	}
	return []byte(strings.TrimSpace(rest[:end])), true
}

// Strip removes the first well-formed occurrence of the marker pair,
// sentinels included, and collapses the whitespace left at the junction
// so the remaining natural-language text reads cleanly. Text without a
// well-formed occurrence is returned unchanged, which makes Strip
// idempotent and, across distinct marker pairs, commutative.
func Strip(text string, m Marker) string {
	start := strings.Index(text, m.Start)
	if start < 0 {
		return text
	}
	rest := text[start+len(m.Start):]
	end := strings.Index(rest, m.End)
	if end < 0 {
		return text
	}

	before := strings.TrimRightFunc(text[:start], unicode.IsSpace)
	after := strings.TrimLeftFunc(rest[end+len(m.End):], unicode.IsSpace)

	switch {
	case before == "":
		return after
	case after == "":
		return before
	default:
		return before + "\n" + after
	}
}

// StripAll removes every well-formed occurrence of every known marker
// pair from text.
func StripAll(text string) string {
	for _, m := range Markers {
		for Detect(text, m) {
			text = Strip(text, m)
		}
	}
	return text
}
