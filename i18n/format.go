package i18n

import (
	"fmt"
	"strconv"
	"strings"
)

// Format substitutes {name} placeholders and {name, plural, ...} blocks in
// text. Unknown parameter names and malformed blocks are left verbatim, so a
// half-translated template still renders something inspectable.
func Format(text string, params Params) string {
	return formatWith(text, newParamReader(params))
}

func formatWith(text string, pr *paramReader) string {
	if !strings.ContainsRune(text, '{') {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); {
		if text[i] != '{' {
			b.WriteByte(text[i])
			i++
			continue
		}
		end := matchingBrace(text, i)
		if end < 0 {
			b.WriteString(text[i:])
			break
		}
		b.WriteString(expandBlock(text[i+1:end], text[i:end+1], pr))
		i = end + 1
	}
	return b.String()
}

// matchingBrace returns the index of the brace closing text[open], or -1
// when the block never closes.
func matchingBrace(text string, open int) int {
	depth := 0
	for i := open; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// expandBlock resolves one {...} block. body is the block content, raw the
// block including braces; raw comes back verbatim when the block cannot be
// resolved.
func expandBlock(body, raw string, pr *paramReader) string {
	comma := strings.IndexByte(body, ',')
	if comma < 0 {
		v, ok := pr.get(strings.TrimSpace(body))
		if !ok {
			return raw
		}
		return formatValue(v)
	}

	name := strings.TrimSpace(body[:comma])
	rest := body[comma+1:]
	comma = strings.IndexByte(rest, ',')
	if comma < 0 || strings.TrimSpace(rest[:comma]) != "plural" {
		return raw
	}
	v, ok := pr.get(name)
	if !ok {
		return raw
	}
	n, ok := toNumber(v)
	if !ok {
		return raw
	}
	branch, ok := selectPlural(rest[comma+1:], n)
	if !ok {
		return raw
	}
	return formatWith(strings.ReplaceAll(branch, "#", formatNumber(n)), pr)
}

// selectPlural parses `=0 {...} one {...} other {...}` and picks the branch
// for n: exact =N selectors first, then one for n==1, then other.
func selectPlural(spec string, n float64) (string, bool) {
	var oneBranch, otherBranch string
	var hasOne, hasOther bool

	i := 0
	for i < len(spec) {
		for i < len(spec) && isSpace(spec[i]) {
			i++
		}
		if i >= len(spec) {
			break
		}
		start := i
		for i < len(spec) && spec[i] != '{' && !isSpace(spec[i]) {
			i++
		}
		selector := spec[start:i]
		for i < len(spec) && spec[i] != '{' {
			i++
		}
		if i >= len(spec) {
			return "", false
		}
		end := matchingBrace(spec, i)
		if end < 0 {
			return "", false
		}
		branch := spec[i+1 : end]
		i = end + 1

		switch {
		case strings.HasPrefix(selector, "="):
			if exact, err := strconv.ParseFloat(selector[1:], 64); err == nil && exact == n {
				return branch, true
			}
		case selector == "one":
			oneBranch, hasOne = branch, true
		case selector == "other":
			otherBranch, hasOther = branch, true
		}
	}
	if n == 1 && hasOne {
		return oneBranch, true
	}
	if hasOther {
		return otherBranch, true
	}
	return "", false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// formatValue renders a parameter value for substitution. Floats print
// without trailing zeros, so 70 stays "70" and 73.5 stays "73.5".
func formatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case Rendered:
		return val.Text
	case float64:
		return formatNumber(val)
	case float32:
		return formatNumber(float64(val))
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint:
		return strconv.FormatUint(uint64(val), 10)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

func toNumber(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint:
		return float64(val), true
	case uint64:
		return float64(val), true
	case float32:
		return float64(val), true
	case float64:
		return val, true
	case string:
		n, err := strconv.ParseFloat(val, 64)
		return n, err == nil
	}
	return 0, false
}
