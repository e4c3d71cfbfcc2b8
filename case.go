package whatsapp

import (
	"regexp"
	"strings"
)

var (
	camelRE = regexp.MustCompile(`_([a-z0-9])`)
	snakeRE = regexp.MustCompile(`([a-z0-9])([A-Z])`)
)

// ToCamel converts a snake_case key to camelCase. Already-camel input is
// returned unchanged.
func ToCamel(s string) string {
	return camelRE.ReplaceAllStringFunc(s, func(m string) string {
		return strings.ToUpper(m[1:])
	})
}

// ToSnake converts a camelCase key to snake_case. Consecutive capitals are
// kept as a single token ("URL" becomes "url"). Already-snake input is
// returned unchanged.
func ToSnake(s string) string {
	return strings.ToLower(snakeRE.ReplaceAllString(s, "${1}_${2}"))
}

// ToCamelDeep recursively converts all map keys in a decoded JSON value to
// camelCase. Slices are converted element-wise; scalars pass through.
func ToCamelDeep(v any) any {
	switch t := v.(type) {
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = ToCamelDeep(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[ToCamel(k)] = ToCamelDeep(val)
		}
		return out
	default:
		return v
	}
}

// ToSnakeDeep recursively converts all map keys in a decoded JSON value to
// snake_case. Slices are converted element-wise; scalars pass through.
func ToSnakeDeep(v any) any {
	switch t := v.(type) {
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = ToSnakeDeep(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[ToSnake(k)] = ToSnakeDeep(val)
		}
		return out
	default:
		return v
	}
}
