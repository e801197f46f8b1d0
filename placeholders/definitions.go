// Package placeholders implements the flat token pipeline: scanning
// files for {{UPPER_SNAKE}} markers and substituting them directly from
// a flattened configuration map. It is the simpler sibling of the
// templates package and knows nothing about directives or loops.
package placeholders

import "strings"

// Definition maps one literal token to a config value. Definitions are
// fixed at build time and never mutated.
type Definition struct {
	Pattern   string // the bare token name, without braces
	ConfigKey string // dotted key into the flattened config
	Transform string // optional transform applied to the value
	Required  bool
	Category  string
}

// Builtin is the token set the generated .claude tree uses.
var Builtin = []Definition{
	{Pattern: "PROJECT_NAME", ConfigKey: "projectName", Required: true, Category: "project"},
	{Pattern: "PROJECT_SLUG", ConfigKey: "projectName", Transform: "kebab", Category: "project"},
	{Pattern: "PROJECT_TYPE", ConfigKey: "projectType", Category: "project"},
	{Pattern: "PROJECT_DESCRIPTION", ConfigKey: "projectDescription", Category: "project"},
	{Pattern: "PACKAGE_MANAGER", ConfigKey: "packageManager", Category: "tooling"},
	{Pattern: "TEST_FRAMEWORK", ConfigKey: "testFramework", Category: "tooling"},
	{Pattern: "CI_PROVIDER", ConfigKey: "ciProvider", Category: "tooling"},
	{Pattern: "INDENT_STYLE", ConfigKey: "indentStyle", Category: "style"},
	{Pattern: "INDENT_SIZE", ConfigKey: "indentSize", Category: "style"},
	{Pattern: "QUOTE_STYLE", ConfigKey: "quoteStyle", Category: "style"},
	{Pattern: "LINE_LENGTH", ConfigKey: "lineLength", Category: "style"},
	{Pattern: "DEFAULT_BRANCH", ConfigKey: "defaultBranch", Category: "git"},
	{Pattern: "COMMIT_CONVENTION", ConfigKey: "commitConvention", Category: "git"},
}

// byPattern indexes the builtin definitions for classification.
var byPattern = func() map[string]Definition {
	m := make(map[string]Definition, len(Builtin))
	for _, d := range Builtin {
		m[d.Pattern] = d
	}
	return m
}()

// Lookup returns the definition for a token name. Tokens without an
// explicit definition get one derived on the fly: the config key is the
// lower-camel form of the token and the category is "unknown".
func Lookup(token string) Definition {
	if d, ok := byPattern[token]; ok {
		return d
	}
	return Definition{Pattern: token, ConfigKey: deriveKey(token), Category: "unknown"}
}

// deriveKey turns UPPER_SNAKE into lowerCamel, e.g. INDENT_STYLE into
// indentStyle.
func deriveKey(token string) string {
	parts := strings.Split(strings.ToLower(token), "_")
	for i := 1; i < len(parts); i++ {
		if parts[i] == "" {
			continue
		}
		parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
	}
	return strings.Join(parts, "")
}
