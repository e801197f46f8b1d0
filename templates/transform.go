package templates

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/iancoleman/strcase"
)

// ApplyTransform formats an interpolated value through a named transform.
// Names are case-insensitive and most have aliases. An unknown name
// returns the plain string cast unchanged; a template never fails over a
// typo in a transform.
func ApplyTransform(value any, name string) string {
	s := Stringify(value)
	items, isArray := stringSlice(value)

	switch strings.ToLower(strings.TrimSpace(name)) {
	case "lowercase", "lower":
		return strings.ToLower(s)
	case "uppercase", "upper":
		return strings.ToUpper(s)
	case "capitalize":
		return capitalize(s)
	case "title", "titlecase":
		words := strings.Fields(s)
		for i, w := range words {
			words[i] = capitalize(w)
		}
		return strings.Join(words, " ")
	case "kebab", "kebabcase", "kebab-case":
		return strcase.ToKebab(s)
	case "snake", "snakecase", "snake_case":
		return strcase.ToSnake(s)
	case "camel", "camelcase":
		return strcase.ToLowerCamel(s)
	case "pascal", "pascalcase":
		return strcase.ToCamel(s)
	case "json":
		b, err := json.Marshal(value)
		if err != nil {
			return s
		}
		return string(b)
	case "count":
		if isArray {
			return strconv.Itoa(len(items))
		}
		return strconv.Itoa(len(s))
	case "first":
		if isArray {
			if len(items) == 0 {
				return ""
			}
			return items[0]
		}
		return s
	case "last":
		if isArray {
			if len(items) == 0 {
				return ""
			}
			return items[len(items)-1]
		}
		return s
	case "join":
		if isArray {
			return strings.Join(items, ", ")
		}
		return s
	case "joinlines":
		if isArray {
			return strings.Join(items, "\n")
		}
		return s
	case "bullet":
		if !isArray {
			items = []string{s}
		}
		lines := make([]string, len(items))
		for i, item := range items {
			lines[i] = "- " + item
		}
		return strings.Join(lines, "\n")
	case "numbered":
		if !isArray {
			items = []string{s}
		}
		lines := make([]string, len(items))
		for i, item := range items {
			lines[i] = fmt.Sprintf("%d. %s", i+1, item)
		}
		return strings.Join(lines, "\n")
	default:
		return s
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
