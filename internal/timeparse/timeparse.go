// Package timeparse turns informal natural-language reminder phrases into
// absolute timestamps. It is intentionally small: it covers the quick forms
// people actually type or say, not full calendar grammar.
package timeparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	inHoursRe  = regexp.MustCompile(`in\s+(\d+)\s+hour`)
	inMinsRe   = regexp.MustCompile(`in\s+(\d+)\s+min`)
	tomorrowRe = regexp.MustCompile(`tomorrow(?:\s+at)?\s+(\d{1,2})(?::(\d{2}))?\s*(am|pm)?`)
	clockRe    = regexp.MustCompile(`(\d{1,2})(?::(\d{2}))?\s*(am|pm)?`)
	weekdayRe  = regexp.MustCompile(`next\s+(monday|tuesday|wednesday|thursday|friday|saturday|sunday)(?:\s+at\s+(\d{1,2})(?::(\d{2}))?\s*(am|pm)?)?`)
)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Layouts tried by the generic fallback, most specific first.
var fallbackLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02",
	"Jan 2, 2006 3:04 PM",
	"Jan 2, 2006",
	"01/02/2006 15:04",
	"01/02/2006",
}

// Parse interprets a reminder phrase relative to now. It reports false when
// no pattern applies and generic parsing fails too.
//
// A bare hour without am/pm is taken literally as a 24-hour value when it is
// 23 or less ("at 20" means 20:00). That conflicts with the "8 pm" style
// accepted elsewhere but matches how people dictate times to the app.
func Parse(text string, now time.Time) (time.Time, bool) {
	if text == "" {
		return time.Time{}, false
	}
	t := strings.ToLower(strings.TrimSpace(text))

	if m := inHoursRe.FindStringSubmatch(t); m != nil {
		n, _ := strconv.Atoi(m[1])
		return now.Add(time.Duration(n) * time.Hour), true
	}
	if m := inMinsRe.FindStringSubmatch(t); m != nil {
		n, _ := strconv.Atoi(m[1])
		return now.Add(time.Duration(n) * time.Minute), true
	}

	if m := tomorrowRe.FindStringSubmatch(t); m != nil {
		h, minute := clockParts(m[1], m[2], m[3])
		d := now.AddDate(0, 0, 1)
		return time.Date(d.Year(), d.Month(), d.Day(), h, minute, 0, 0, now.Location()), true
	}

	// Bare time like "8 pm" or "8:30 am". A "next <weekday> at 9" phrase
	// must fall through to the weekday branch, so it is excluded here.
	if !weekdayRe.MatchString(t) {
		if m := clockRe.FindStringSubmatch(t); m != nil {
			h, minute := clockParts(m[1], m[2], m[3])
			d := time.Date(now.Year(), now.Month(), now.Day(), h, minute, 0, 0, now.Location())
			if !d.After(now) {
				d = d.AddDate(0, 0, 1)
			}
			return d, true
		}
	}

	if m := weekdayRe.FindStringSubmatch(t); m != nil {
		target := weekdays[m[1]]
		delta := (int(target) - int(now.Weekday()) + 7) % 7
		if delta == 0 {
			// "next monday" said on a Monday means a week out, never today.
			delta = 7
		}
		d := now.AddDate(0, 0, delta)
		h, minute := 9, 0
		if m[2] != "" {
			h, minute = clockParts(m[2], m[3], m[4])
		}
		return time.Date(d.Year(), d.Month(), d.Day(), h, minute, 0, 0, now.Location()), true
	}

	for _, layout := range fallbackLayouts {
		if d, err := time.ParseInLocation(layout, strings.TrimSpace(text), now.Location()); err == nil {
			return d, true
		}
	}

	return time.Time{}, false
}

// clockParts converts matched hour/minute/meridiem strings into a 24-hour
// pair. The meridiem applies standard 12-hour conversion; without it the
// hour is taken literally.
func clockParts(hour, minute, meridiem string) (int, int) {
	h, _ := strconv.Atoi(hour)
	m := 0
	if minute != "" {
		m, _ = strconv.Atoi(minute)
	}
	switch meridiem {
	case "pm":
		if h < 12 {
			h += 12
		}
	case "am":
		if h == 12 {
			h = 0
		}
	}
	return h, m
}

// Format renders a timestamp for display. The output is never parsed back.
func Format(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Mon, Jan 2 2006 at 3:04 PM")
}
