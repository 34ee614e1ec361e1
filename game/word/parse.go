package word

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// hintKeys are probed in priority order when extracting a hint from a
// structured payload.
var hintKeys = []string{"hint", "hints", "sentence"}

// quotedValue rescues a value from text that looks like JSON but failed to
// parse, e.g. `{hint: "it is round"}`.
var quotedValue = regexp.MustCompile(`:\s*"([^"]+)"`)

// Content is the normalized form of a backend payload. The backend is an LLM
// whose output format is a soft contract: Content either carries the parsed
// JSON object or falls back to the raw text, and extraction degrades
// gracefully instead of failing the round.
type Content struct {
	fields map[string]any // set when the payload parsed to a JSON object
	raw    string
}

// ParseContent parses the raw backend text. Scalars and arrays are valid JSON
// but have no usable shape, so they are kept as raw text.
func ParseContent(raw string) Content {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return Content{raw: raw}
	}
	if m, ok := v.(map[string]any); ok {
		return Content{fields: m, raw: raw}
	}
	return Content{raw: raw}
}

// Structured returns the parsed JSON object, if there was one.
func (c Content) Structured() (map[string]any, bool) {
	return c.fields, c.fields != nil
}

// Raw returns the original backend text untouched.
func (c Content) Raw() string {
	return c.raw
}

// Hint extracts a hint string, trying in order:
// the known hint keys, the value of a single-entry object, the raw text.
// Unparseable text is scanned for a colon-quoted value before giving up
// and returning the trimmed text verbatim.
func (c Content) Hint() string {
	if c.fields != nil {
		for _, key := range hintKeys {
			if v, ok := c.fields[key]; ok {
				return stringify(v)
			}
		}
		if len(c.fields) == 1 {
			for _, v := range c.fields {
				return stringify(v)
			}
		}
		return c.raw
	}
	trimmed := strings.TrimSpace(c.raw)
	if m := quotedValue.FindStringSubmatch(trimmed); m != nil {
		return m[1]
	}
	return trimmed
}

// stringify renders a backend value as a displayable string. Hints are
// usually strings already; anything else keeps its JSON form.
func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
