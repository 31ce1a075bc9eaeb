package agent

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// extractJSON pulls the first complete JSON object out of model text, which
// may wrap it in prose or markdown code fences.
func extractJSON(text string) ([]byte, error) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return nil, fmt.Errorf("no JSON object in output")
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return []byte(text[start : i+1]), nil
			}
		}
	}

	return nil, fmt.Errorf("unterminated JSON object in output")
}

// flexInt tolerates models emitting numbers as strings or with decimals
// ("92", 92.5, 92)
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(bytes.TrimSpace(data), `"`)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}

	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("not a number: %q", data)
	}
	*f = flexInt(math.Round(v))
	return nil
}

// flexBool tolerates "true"/"false" strings and "yes"/"no"
type flexBool bool

func (f *flexBool) UnmarshalJSON(data []byte) error {
	s := strings.ToLower(string(bytes.Trim(bytes.TrimSpace(data), `"`)))
	switch s {
	case "true", "yes", "1":
		*f = true
	case "false", "no", "0", "", "null":
		*f = false
	default:
		return fmt.Errorf("not a boolean: %q", data)
	}
	return nil
}

// cleanStrings trims entries and drops empties, preserving order
func cleanStrings(in []string) []string {
	out := in[:0:0]
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
