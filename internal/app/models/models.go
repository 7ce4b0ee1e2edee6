package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Collection names in the document store
const (
	CollectionUsers         = "users"
	CollectionCourses       = "courses"
	CollectionLectures      = "lectures" // sub-collection of a course
	CollectionAnnouncements = "post"
)

// NotAvailable is the placeholder shown for absent user fields.
const NotAvailable = "N/A"

// Draft is an editable copy of one record. RecordID is empty for a record
// that has not been created yet.
type Draft[D any] interface {
	RecordID() string
	Validate() error
	// Clone returns a copy that shares no mutable state with the receiver.
	Clone() D
}

// The helpers below read one field of a stored document, substituting the
// documented default for a missing or mistyped value. They never fail.

func stringOr(data map[string]any, key, def string) string {
	switch v := data[key].(type) {
	case string:
		if v == "" {
			return def
		}
		return v
	case nil:
		return def
	case fmt.Stringer:
		return v.String()
	case bool, int, int32, int64, float32, float64:
		return fmt.Sprint(v)
	default:
		return def
	}
}

func boolOr(data map[string]any, key string, def bool) bool {
	switch v := data[key].(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
	}
	return def
}

// intOr accepts numbers or numeric strings; a string is read up to its
// first non-digit, so "0244 123" yields 244.
func intOr(data map[string]any, key string, def int64) int64 {
	switch v := data[key].(type) {
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case int64:
		return v
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return def
		}
		return int64(v)
	case float32:
		return int64(v)
	case string:
		return leadingInt(v, def)
	}
	return def
}

func leadingInt(s string, def int64) int64 {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return def
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return def
	}
	return n
}

func timeOr(data map[string]any, key string) *time.Time {
	switch v := data[key].(type) {
	case time.Time:
		if v.IsZero() {
			return nil
		}
		t := v.UTC()
		return &t
	case *time.Time:
		if v == nil || v.IsZero() {
			return nil
		}
		t := v.UTC()
		return &t
	case string:
		if t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(v)); err == nil {
			t = t.UTC()
			return &t
		}
	case int64:
		t := time.UnixMilli(v).UTC()
		return &t
	}
	return nil
}

// stringsOf reads an array field, dropping blank entries.
func stringsOf(data map[string]any, key string) []string {
	out := []string{}
	switch v := data[key].(type) {
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
	case []string:
		for _, s := range v {
			if strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
	case string:
		return ParseTags(v)
	}
	return out
}

// ParseTags splits comma separated text into trimmed, non-empty tags.
func ParseTags(text string) []string {
	out := []string{}
	for _, part := range strings.Split(text, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// FormatDate renders a timestamp as a date, or N/A when absent.
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return NotAvailable
	}
	return t.Local().Format("2006-01-02")
}
