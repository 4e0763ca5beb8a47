package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

const wordsPerMinute = 200

// ReadTime is the estimated reading time in minutes. Older records stored it
// as text such as "5" or "5 min read", so decoding accepts both forms.
type ReadTime int

func (r *ReadTime) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*r = 0
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := ParseReadTime(s)
		if err != nil {
			return err
		}
		*r = v
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("readTime: %w", err)
	}
	if f < 0 {
		return fmt.Errorf("readTime must not be negative")
	}
	*r = ReadTime(math.Round(f))
	return nil
}

// ParseReadTime reads the leading number from a legacy read time string.
func ParseReadTime(s string) (ReadTime, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	end := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
	if end == -1 {
		end = len(s)
	}
	if end == 0 {
		return 0, fmt.Errorf("readTime %q has no leading number", s)
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, fmt.Errorf("readTime %q: %w", s, err)
	}
	return ReadTime(n), nil
}

// EstimateReadTime rounds up at 200 words per minute; empty text is 0.
func EstimateReadTime(text string) ReadTime {
	words := len(strings.Fields(text))
	if words == 0 {
		return 0
	}
	return ReadTime((words + wordsPerMinute - 1) / wordsPerMinute)
}
