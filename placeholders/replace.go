package placeholders

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/quintans/faults"
	"github.com/spf13/afero"

	"github.com/qazuor/claude-code-config/templates"
)

// Flatten lowers a nested config map into dotted string keys with
// string-cast leaf values, the shape the replacer looks tokens up in.
// Top-level scalars keep their plain key.
func Flatten(config map[string]any) map[string]string {
	flat := map[string]string{}
	flattenInto(flat, "", config)
	return flat
}

func flattenInto(flat map[string]string, prefix string, m map[string]any) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := v.(map[string]any); ok {
			flattenInto(flat, key, nested)
			continue
		}
		flat[key] = templates.Stringify(v)
	}
}

// ReplaceResult reports one string's substitution: which tokens got a
// value and which had no matching config key (those stay literal).
type ReplaceResult struct {
	Content  string
	Replaced []string
	Missing  []string
}

// Replacer performs direct string substitution of flat tokens from a
// flattened config. No conditionals, no loops.
type Replacer struct {
	config map[string]string
}

func NewReplacer(config map[string]any) *Replacer {
	return &Replacer{config: Flatten(config)}
}

// ReplaceString substitutes every known token in content. Tokens whose
// config key is absent are left untouched and reported as missing.
func (r *Replacer) ReplaceString(content string) ReplaceResult {
	res := ReplaceResult{Content: content}
	seen := map[string]bool{}
	for _, token := range Tokens(content) {
		if seen[token] {
			continue
		}
		seen[token] = true
		def := Lookup(token)
		value, ok := r.config[def.ConfigKey]
		if !ok {
			res.Missing = append(res.Missing, token)
			continue
		}
		if def.Transform != "" {
			value = applyTransform(value, def.Transform)
		}
		res.Content = strings.ReplaceAll(res.Content, "{{"+token+"}}", value)
		res.Replaced = append(res.Replaced, token)
	}
	return res
}

// applyTransform covers the small transform set flat definitions use:
// case conversions and naive pluralization.
func applyTransform(value, name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "upper":
		return strings.ToUpper(value)
	case "lower":
		return strings.ToLower(value)
	case "kebab":
		return strcase.ToKebab(value)
	case "snake":
		return strcase.ToSnake(value)
	case "camel":
		return strcase.ToLowerCamel(value)
	case "pascal":
		return strcase.ToCamel(value)
	case "plural":
		if strings.HasSuffix(value, "s") || strings.HasSuffix(value, "x") || strings.HasSuffix(value, "ch") {
			return value + "es"
		}
		if strings.HasSuffix(value, "y") && len(value) > 1 {
			return value[:len(value)-1] + "ies"
		}
		return value + "s"
	default:
		return value
	}
}

// TreeReport aggregates a tree-wide replacement run.
type TreeReport struct {
	FilesScanned    int
	FilesModified   int
	Replaced        []string
	Missing         []string
	FilesWithErrors []templates.FileError
}

// ReplaceTree runs the replacer over every eligible file under root.
// Per-file failures are recorded and the batch keeps going.
func (r *Replacer) ReplaceTree(fsys afero.Fs, root string, dryRun bool) (*TreeReport, error) {
	if _, err := fsys.Stat(root); err != nil {
		return nil, faults.Wrap(err)
	}

	report := &TreeReport{}
	replaced := map[string]bool{}
	missing := map[string]bool{}

	err := afero.Walk(fsys, root, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			report.FilesWithErrors = append(report.FilesWithErrors, templates.FileError{Path: path, Err: walkErr.Error()})
			return nil
		}
		if info.IsDir() {
			if path != root && templates.SkipDir(info.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !templates.Processable(path) {
			return nil
		}
		data, err := afero.ReadFile(fsys, path)
		if err != nil {
			report.FilesWithErrors = append(report.FilesWithErrors, templates.FileError{Path: path, Err: err.Error()})
			return nil
		}
		report.FilesScanned++
		res := r.ReplaceString(string(data))
		for _, t := range res.Replaced {
			replaced[t] = true
		}
		for _, t := range res.Missing {
			missing[t] = true
		}
		if res.Content == string(data) {
			return nil
		}
		if !dryRun {
			if err := afero.WriteFile(fsys, path, []byte(res.Content), 0o644); err != nil {
				report.FilesWithErrors = append(report.FilesWithErrors, templates.FileError{Path: path, Err: err.Error()})
				return nil
			}
		}
		report.FilesModified++
		return nil
	})
	if err != nil {
		return report, faults.Wrap(err)
	}

	report.Replaced = sortedKeys(replaced)
	report.Missing = sortedKeys(missing)
	return report, nil
}

func sortedKeys(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
