package templates

import (
	"regexp"
	"strings"
)

var (
	includesRe = regexp.MustCompile(`^([\w.]+)\.includes\(\s*["']([^"']*)["']\s*\)$`)
	hasRe      = regexp.MustCompile(`^has\s+([\w.]+)\s+["']([^"']*)["']$`)
)

// comparison operators, two-character ones first so they win the scan.
var compareOps = []string{">=", "<=", "==", "!=", ">", "<"}

// EvaluateCondition resolves a directive condition against the context.
// Supported forms: && / || clause lists, ! negation, the six comparison
// operators, array membership as either path.includes("x") or
// has path "x", and a bare path checked for truthiness. Evaluation never
// errors; anything unresolvable just comes out false.
func EvaluateCondition(expression string, ctx Context) bool {
	expr := strings.TrimSpace(expression)
	if expr == "" {
		return false
	}

	if strings.Contains(expr, "&&") {
		for _, clause := range strings.Split(expr, "&&") {
			if !EvaluateCondition(clause, ctx) {
				return false
			}
		}
		return true
	}
	if strings.Contains(expr, "||") {
		for _, clause := range strings.Split(expr, "||") {
			if EvaluateCondition(clause, ctx) {
				return true
			}
		}
		return false
	}

	if strings.HasPrefix(expr, "!") {
		return !EvaluateCondition(expr[1:], ctx)
	}

	for _, op := range compareOps {
		if i := strings.Index(expr, op); i > 0 {
			left := strings.TrimSpace(expr[:i])
			right := strings.TrimSpace(expr[i+len(op):])
			return evaluateComparison(left, op, right, ctx)
		}
	}

	if m := includesRe.FindStringSubmatch(expr); m != nil {
		return arrayContains(m[1], m[2], ctx)
	}
	if m := hasRe.FindStringSubmatch(expr); m != nil {
		return arrayContains(m[1], m[2], ctx)
	}

	v, _ := ctx.Value(expr)
	return Truthy(v)
}

// evaluateComparison applies one binary operator. Equality compares the
// string casts of both sides. Ordering casts both sides to numbers, and
// keeps the loose-cast semantics of the template language: when either
// side does not parse as a number the comparison is false, full stop.
func evaluateComparison(left, op, right string, ctx Context) bool {
	// The left side is always a context path; an absent path compares as
	// the empty value. The right side may be a literal or another path.
	lv, _ := ctx.Value(left)
	rv := resolveOperand(right, ctx)

	switch op {
	case "==":
		return Stringify(lv) == Stringify(rv)
	case "!=":
		return Stringify(lv) != Stringify(rv)
	}

	ln, lok := toNumber(lv)
	rn, rok := toNumber(rv)
	if !lok || !rok {
		return false
	}
	switch op {
	case ">":
		return ln > rn
	case ">=":
		return ln >= rn
	case "<":
		return ln < rn
	case "<=":
		return ln <= rn
	}
	return false
}

// resolveOperand turns one side of a comparison into a value: a quoted
// string is a literal, a path that resolves wins over a bare literal,
// and anything else is taken verbatim.
func resolveOperand(s string, ctx Context) any {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	if v, ok := ctx.Value(s); ok {
		return v
	}
	return s
}

func arrayContains(path, needle string, ctx Context) bool {
	v, ok := ctx.Value(path)
	if !ok {
		return false
	}
	items, isArray := stringSlice(v)
	if !isArray {
		return false
	}
	for _, item := range items {
		if item == needle {
			return true
		}
	}
	return false
}
