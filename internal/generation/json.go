package generation

import (
	"encoding/json"
	"fmt"
	"strings"
)

// decodeModelJSON decodes a model response into v, tolerating the framing
// and small syntax mistakes models commonly add around JSON. It tries the
// raw text first, then extracts the outermost JSON value (which also
// handles markdown code fences and leading or trailing prose), and as a
// last step repairs raw control characters and trailing commas before
// giving up.
func decodeModelJSON(text string, v any) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return fmt.Errorf("%w: empty response", ErrInvalidResponse)
	}

	if err := json.Unmarshal([]byte(trimmed), v); err == nil {
		return nil
	}

	fragment, ok := extractJSONValue(trimmed)
	if !ok {
		return fmt.Errorf("%w: no JSON value found in response", ErrInvalidResponse)
	}
	if err := json.Unmarshal([]byte(fragment), v); err == nil {
		return nil
	}

	if err := json.Unmarshal([]byte(repairJSON(fragment)), v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

// extractJSONValue returns the span from the first opening brace or bracket
// to the matching last closer. Models that wrap JSON in prose or fences
// still keep the value itself contiguous, so a bracket slice is enough.
func extractJSONValue(text string) (string, bool) {
	objStart := strings.IndexByte(text, '{')
	arrStart := strings.IndexByte(text, '[')

	start, closer := objStart, byte('}')
	if start == -1 || (arrStart != -1 && arrStart < start) {
		start, closer = arrStart, ']'
	}
	if start == -1 {
		return "", false
	}

	end := strings.LastIndexByte(text, closer)
	if end <= start {
		return "", false
	}
	return text[start : end+1], true
}

// repairJSON fixes the two malformations models produce most often: raw
// control characters inside string literals (a literal newline or tab where
// an escape belongs) and trailing commas before a closing brace or bracket.
// Anything else is left untouched for the final unmarshal to reject.
func repairJSON(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))

	inString := false
	escaped := false
	for i := 0; i < len(text); i++ {
		c := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
				sb.WriteByte(c)
			case c == '\\':
				escaped = true
				sb.WriteByte(c)
			case c == '"':
				inString = false
				sb.WriteByte(c)
			case c < 0x20:
				sb.WriteString(escapeControl(c))
			default:
				sb.WriteByte(c)
			}
			continue
		}

		switch c {
		case '"':
			inString = true
			sb.WriteByte(c)
		case ',':
			if next, ok := nextNonSpace(text, i+1); ok && (next == '}' || next == ']') {
				continue // trailing comma, drop it
			}
			sb.WriteByte(c)
		default:
			sb.WriteByte(c)
		}
	}

	return sb.String()
}

// escapeControl returns the JSON escape sequence for a control character.
func escapeControl(c byte) string {
	switch c {
	case '\n':
		return `\n`
	case '\r':
		return `\r`
	case '\t':
		return `\t`
	default:
		return fmt.Sprintf(`\u%04x`, c)
	}
}

// nextNonSpace returns the first byte at or after position i that is not
// JSON whitespace.
func nextNonSpace(text string, i int) (byte, bool) {
	for ; i < len(text); i++ {
		switch text[i] {
		case ' ', '\t', '\n', '\r':
		default:
			return text[i], true
		}
	}
	return 0, false
}
