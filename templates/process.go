package templates

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/quintans/faults"
	"github.com/spf13/afero"

	"github.com/qazuor/claude-code-config/logging"
)

// Result is the outcome of processing one template string.
// DirectivesProcessed counts resolved blocks plus substituted variables;
// it feeds reporting, not control flow.
type Result struct {
	Content             string
	Modified            bool
	DirectivesProcessed int
	Warnings            []string
	Errors              []string
}

type nodeKind int

const (
	nodeText nodeKind = iota
	nodeBlock
	nodeInclude
)

// node is one element of the parsed template tree. A block node keeps
// its children pre-parsed so rendering is a plain depth-first walk with
// no offset bookkeeping.
type node struct {
	kind      nodeKind
	text      string
	directive Directive
	children  []node
}

func parseTree(content string) []node {
	dirs := ParseDirectives(content)
	var nodes []node
	cursor := 0
	for _, d := range dirs {
		if d.StartIndex > cursor {
			nodes = append(nodes, node{kind: nodeText, text: content[cursor:d.StartIndex]})
		}
		if d.Type == DirectiveInclude {
			nodes = append(nodes, node{kind: nodeInclude, directive: d})
		} else {
			nodes = append(nodes, node{kind: nodeBlock, directive: d, children: parseTree(d.Content)})
		}
		cursor = d.EndIndex
	}
	if cursor < len(content) {
		nodes = append(nodes, node{kind: nodeText, text: content[cursor:]})
	}
	return nodes
}

type renderState struct {
	count    int
	warnings []string
}

// renderLevel renders one nesting level: block nodes expand depth-first
// against their own scope, then the concatenated text gets its variable
// interpolations substituted against this level's context.
func renderLevel(nodes []node, ctx Context, st *renderState) string {
	var b strings.Builder
	for _, n := range nodes {
		switch n.kind {
		case nodeText:
			b.WriteString(n.text)
		case nodeInclude:
			st.warnings = append(st.warnings, "Unsupported include directive: "+n.directive.Expression)
			b.WriteString(n.directive.Match)
		case nodeBlock:
			b.WriteString(renderBlock(n, ctx, st))
			st.count++
		}
	}
	return substituteVariables(b.String(), ctx, st)
}

func renderBlock(n node, ctx Context, st *renderState) string {
	d := n.directive
	switch d.Type {
	case DirectiveIf:
		if EvaluateCondition(d.Expression, ctx) {
			return renderLevel(n.children, ctx, st)
		}
		return ""
	case DirectiveUnless:
		if !EvaluateCondition(d.Expression, ctx) {
			return renderLevel(n.children, ctx, st)
		}
		return ""
	case DirectiveEach:
		var b strings.Builder
		for _, it := range Iterable(d.Expression, ctx) {
			scope := map[string]any{"item": it.Item, "index": it.Index}
			if it.HasKey {
				scope["key"] = it.Key
			}
			b.WriteString(renderLevel(n.children, ctx.Fork(scope), st))
		}
		return b.String()
	case DirectiveSection:
		// Named anchor only, renders transparently.
		return renderLevel(n.children, ctx, st)
	}
	return d.Match
}

func substituteVariables(content string, ctx Context, st *renderState) string {
	refs := FindVariables(content)
	if len(refs) == 0 {
		return content
	}
	var b strings.Builder
	cursor := 0
	for _, ref := range refs {
		b.WriteString(content[cursor:ref.Index])
		v, ok := ctx.Value(ref.Variable)
		if !ok {
			st.warnings = append(st.warnings, "Variable not found: "+ref.Variable)
			b.WriteString(ref.Match)
		} else if ref.Transform != "" {
			b.WriteString(ApplyTransform(v, ref.Transform))
			st.count++
		} else {
			b.WriteString(Stringify(v))
			st.count++
		}
		cursor = ref.Index + len(ref.Match)
	}
	b.WriteString(content[cursor:])
	return b.String()
}

var excessNewlinesRe = regexp.MustCompile(`\n{3,}`)

// ProcessTemplate validates, renders block directives depth-first,
// substitutes variable interpolations, and normalizes whitespace left
// behind by removed blocks. Invalid templates come back untouched with
// the validation errors; unknown variables stay literal with a warning.
func ProcessTemplate(content string, ctx Context) Result {
	if v := ValidateTemplate(content); !v.Valid {
		return Result{Content: content, Errors: v.Errors}
	}
	if !HasDirectives(content) {
		return Result{Content: content}
	}

	st := &renderState{}
	out := renderLevel(parseTree(content), ctx, st)
	out = strings.TrimSpace(excessNewlinesRe.ReplaceAllString(out, "\n\n"))

	return Result{
		Content:             out,
		Modified:            out != content,
		DirectivesProcessed: st.count,
		Warnings:            st.warnings,
	}
}

// FileError records one file that failed during a batch run.
type FileError struct {
	Path string
	Err  string
}

// DirectoryReport aggregates a directory-wide processing run. Warnings
// are file-prefixed; FilesWithErrors never aborts the batch.
type DirectoryReport struct {
	FilesScanned        int
	FilesModified       int
	DirectivesProcessed int
	FilesWithErrors     []FileError
	Warnings            []string
}

// processableExts are the only files the processor and the placeholder
// scanner ever touch.
var processableExts = map[string]bool{
	".md":   true,
	".json": true,
	".yaml": true,
	".yml":  true,
	".txt":  true,
}

var skippedDirs = map[string]bool{
	"node_modules": true,
	"dist":         true,
	"build":        true,
}

// SkipDir reports whether a directory name is excluded from any tree
// walk. Dot-directories are always excluded, which covers .git, .next
// and .turbo among everything else.
func SkipDir(name string) bool {
	return skippedDirs[name] || strings.HasPrefix(name, ".")
}

// Processable reports whether a file is eligible for template or
// placeholder processing by extension.
func Processable(path string) bool {
	return processableExts[filepath.Ext(path)]
}

// ProcessDirectory applies ProcessTemplate to every eligible file under
// root, sequentially. One file's failure is recorded and the rest of the
// batch continues; in dry-run mode nothing is written.
func ProcessDirectory(fsys afero.Fs, root string, ctx Context, dryRun bool) (*DirectoryReport, error) {
	if _, err := fsys.Stat(root); err != nil {
		return nil, faults.Wrap(err)
	}

	logger := logging.GetLogger("templates")
	report := &DirectoryReport{}

	err := afero.Walk(fsys, root, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			report.FilesWithErrors = append(report.FilesWithErrors, FileError{Path: path, Err: walkErr.Error()})
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() {
			if path != root && SkipDir(info.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !Processable(path) {
			return nil
		}

		data, err := afero.ReadFile(fsys, path)
		if err != nil {
			report.FilesWithErrors = append(report.FilesWithErrors, FileError{Path: path, Err: err.Error()})
			return nil
		}
		content := string(data)
		if !HasDirectives(content) {
			return nil
		}

		report.FilesScanned++
		res := ProcessTemplate(content, ctx)
		for _, w := range res.Warnings {
			report.Warnings = append(report.Warnings, fmt.Sprintf("%s: %s", path, w))
		}
		if len(res.Errors) > 0 {
			report.FilesWithErrors = append(report.FilesWithErrors, FileError{Path: path, Err: strings.Join(res.Errors, "; ")})
			return nil
		}
		report.DirectivesProcessed += res.DirectivesProcessed
		if !res.Modified {
			return nil
		}
		if !dryRun {
			if err := afero.WriteFile(fsys, path, []byte(res.Content), 0o644); err != nil {
				report.FilesWithErrors = append(report.FilesWithErrors, FileError{Path: path, Err: err.Error()})
				return nil
			}
		}
		report.FilesModified++
		logger.Debug().Str("file", path).Int("directives", res.DirectivesProcessed).Bool("dryRun", dryRun).Msg("processed template")
		return nil
	})
	if err != nil {
		return report, faults.Wrap(err)
	}
	return report, nil
}
