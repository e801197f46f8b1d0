package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testContext() Context {
	return Context{
		"flag":  true,
		"off":   false,
		"name":  "demo",
		"empty": "",
		"count": 3,
		"zero":  0,
		"tags":  []any{"go", "cli"},
		"none":  []any{},
		"project": map[string]any{
			"name": "demo",
			"meta": map[string]any{"owner": "alice"},
		},
	}
}

func TestEvaluateConditionTruthiness(t *testing.T) {
	ctx := testContext()

	tests := []struct {
		expr string
		want bool
	}{
		{"flag", true},
		{"off", false},
		{"name", true},
		{"empty", false},
		{"count", true},
		{"zero", false},
		{"tags", true},
		{"none", false},
		{"project", true},
		{"missing", false},
		{"project.meta.owner", true},
		{"project.meta.missing", false},
	}
	for _, tc := range tests {
		t.Run(tc.expr, func(t *testing.T) {
			assert.Equal(t, tc.want, EvaluateCondition(tc.expr, ctx))
		})
	}
}

func TestEvaluateConditionOperators(t *testing.T) {
	ctx := testContext()

	tests := []struct {
		expr string
		want bool
	}{
		{"!off", true},
		{"!flag", false},
		{"flag && name", true},
		{"flag && off", false},
		{"off || name", true},
		{"off || empty", false},
		{`name == "demo"`, true},
		{`name == "other"`, false},
		{`name != "other"`, true},
		{"count > 2", true},
		{"count > 3", false},
		{"count >= 3", true},
		{"count < 10", true},
		{"count <= 2", false},
	}
	for _, tc := range tests {
		t.Run(tc.expr, func(t *testing.T) {
			assert.Equal(t, tc.want, EvaluateCondition(tc.expr, ctx))
		})
	}
}

// Ordering comparisons cast both sides numerically; a side that does
// not parse makes the comparison false rather than erroring.
func TestEvaluateConditionNonNumericComparison(t *testing.T) {
	ctx := Context{"count": "abc"}

	assert.False(t, EvaluateCondition("count > 5", ctx))
	assert.False(t, EvaluateCondition("count < 5", ctx))
	assert.False(t, EvaluateCondition("count >= 5", ctx))
}

func TestEvaluateConditionMembership(t *testing.T) {
	ctx := testContext()

	assert.True(t, EvaluateCondition(`tags.includes("go")`, ctx))
	assert.False(t, EvaluateCondition(`tags.includes("rust")`, ctx))
	assert.True(t, EvaluateCondition(`has tags "cli"`, ctx))
	assert.False(t, EvaluateCondition(`has tags "web"`, ctx))
	// membership on anything that is not an array is false
	assert.False(t, EvaluateCondition(`name.includes("d")`, ctx))
	assert.False(t, EvaluateCondition(`has missing "x"`, ctx))
}

func TestContextValueWalk(t *testing.T) {
	ctx := testContext()

	v, ok := ctx.Value("project.meta.owner")
	assert.True(t, ok)
	assert.Equal(t, "alice", v)

	_, ok = ctx.Value("project.absent.owner")
	assert.False(t, ok)

	_, ok = ctx.Value("name.deeper")
	assert.False(t, ok)
}

func TestIterable(t *testing.T) {
	ctx := Context{
		"list": []any{"a", "b"},
		"obj":  map[string]any{"b": 2, "a": 1},
		"str":  "nope",
	}

	items := Iterable("list", ctx)
	assert.Len(t, items, 2)
	assert.Equal(t, "a", items[0].Item)
	assert.Equal(t, 1, items[1].Index)
	assert.False(t, items[0].HasKey)

	entries := Iterable("obj", ctx)
	assert.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].Key)
	assert.Equal(t, "b", entries[1].Key)
	assert.True(t, entries[0].HasKey)

	assert.Empty(t, Iterable("str", ctx))
	assert.Empty(t, Iterable("missing", ctx))
}
