package templates

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// DirectiveType identifies a block construct in template text.
type DirectiveType string

const (
	DirectiveIf      DirectiveType = "if"
	DirectiveUnless  DirectiveType = "unless"
	DirectiveEach    DirectiveType = "each"
	DirectiveSection DirectiveType = "section"
	DirectiveInclude DirectiveType = "include"
)

// blockTypes are the directives that come with a matching close tag.
// include is a standalone marker with no body.
var blockTypes = []DirectiveType{DirectiveIf, DirectiveUnless, DirectiveEach, DirectiveSection}

// Directive is a balanced block span in the source text. Content is the
// raw text between the open and close tags; Match is the full span
// including both tags. Nested directives stay inside Content and are
// surfaced when that content is parsed in its own right.
type Directive struct {
	Type       DirectiveType
	Expression string
	Content    string
	StartIndex int
	EndIndex   int
	Match      string
}

// VariableRef is a {{path}} or {{path|transform}} interpolation found in
// top-level text, outside any block directive.
type VariableRef struct {
	Match     string
	Variable  string
	Transform string
	Index     int
}

var (
	openTagRe    = regexp.MustCompile(`\{\{#(if|unless|each|section)\s+([^{}]+?)\s*\}\}`)
	closeTagRe   = regexp.MustCompile(`\{\{/(if|unless|each|section)\}\}`)
	includeTagRe = regexp.MustCompile(`\{\{#include\s+([^{}]+?)\s*\}\}`)
	variableRe   = regexp.MustCompile(`\{\{\s*([A-Za-z_][\w.]*)\s*(?:\|\s*([\w-]+)\s*)?\}\}`)

	// Flat {{UPPER_SNAKE}} tokens belong to the placeholder pipeline,
	// not the directive language; the two grammars are never conflated.
	flatTokenRe = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)
)

// tagEvent is one open/close/include occurrence during a scan, in source order.
type tagEvent struct {
	start, end int
	kind       DirectiveType
	close      bool
	include    bool
	expr       string
}

func scanTags(content string) []tagEvent {
	var events []tagEvent
	for _, m := range openTagRe.FindAllStringSubmatchIndex(content, -1) {
		events = append(events, tagEvent{
			start: m[0],
			end:   m[1],
			kind:  DirectiveType(content[m[2]:m[3]]),
			expr:  strings.TrimSpace(content[m[4]:m[5]]),
		})
	}
	for _, m := range closeTagRe.FindAllStringSubmatchIndex(content, -1) {
		events = append(events, tagEvent{
			start: m[0],
			end:   m[1],
			kind:  DirectiveType(content[m[2]:m[3]]),
			close: true,
		})
	}
	for _, m := range includeTagRe.FindAllStringSubmatchIndex(content, -1) {
		events = append(events, tagEvent{
			start:   m[0],
			end:     m[1],
			kind:    DirectiveInclude,
			include: true,
			expr:    strings.TrimSpace(content[m[2]:m[3]]),
		})
	}
	sort.Slice(events, func(i, j int) bool { return events[i].start < events[j].start })
	return events
}

// ParseDirectives tokenizes content into its top-level directive spans.
// Same-type nesting is matched with a per-type depth counter, so
// {{#each a}}...{{#each b}}...{{/each}}...{{/each}} resolves to one outer
// span whose Content holds the inner block intact. Unbalanced tags are
// skipped here; ValidateTemplate reports them.
func ParseDirectives(content string) []Directive {
	events := scanTags(content)
	var dirs []Directive
	cursor := 0
	for i := 0; i < len(events); i++ {
		ev := events[i]
		if ev.start < cursor || ev.close {
			continue
		}
		if ev.include {
			dirs = append(dirs, Directive{
				Type:       DirectiveInclude,
				Expression: ev.expr,
				StartIndex: ev.start,
				EndIndex:   ev.end,
				Match:      content[ev.start:ev.end],
			})
			cursor = ev.end
			continue
		}
		depth := 1
		closed := false
		for j := i + 1; j < len(events); j++ {
			next := events[j]
			if next.kind != ev.kind || next.include {
				continue
			}
			if next.close {
				depth--
			} else {
				depth++
			}
			if depth == 0 {
				dirs = append(dirs, Directive{
					Type:       ev.kind,
					Expression: ev.expr,
					Content:    content[ev.end:next.start],
					StartIndex: ev.start,
					EndIndex:   next.end,
					Match:      content[ev.start:next.end],
				})
				cursor = next.end
				closed = true
				break
			}
		}
		if !closed {
			// Dangling open tag, nothing to pair it with.
			cursor = ev.end
		}
	}
	return dirs
}

// FindVariables returns the interpolation spans living in top-level text.
// References inside a block directive's content are not included; they
// surface when that content is processed recursively.
func FindVariables(content string) []VariableRef {
	dirs := ParseDirectives(content)
	var refs []VariableRef
	for _, m := range variableRe.FindAllStringSubmatchIndex(content, -1) {
		if flatTokenRe.MatchString(content[m[2]:m[3]]) {
			continue
		}
		inside := false
		for _, d := range dirs {
			if m[0] >= d.StartIndex && m[1] <= d.EndIndex {
				inside = true
				break
			}
		}
		if inside {
			continue
		}
		ref := VariableRef{
			Match:    content[m[0]:m[1]],
			Variable: content[m[2]:m[3]],
			Index:    m[0],
		}
		if m[4] >= 0 {
			ref.Transform = content[m[4]:m[5]]
		}
		refs = append(refs, ref)
	}
	return refs
}

// HasDirectives reports whether content carries any template syntax at
// all, block directives or plain interpolations. Batch processing uses
// this as a cheap reject before parsing.
func HasDirectives(content string) bool {
	return openTagRe.MatchString(content) ||
		includeTagRe.MatchString(content) ||
		variableRe.MatchString(content)
}

// Validation is the outcome of a pre-flight template check.
type Validation struct {
	Valid  bool
	Errors []string
}

// ValidateTemplate checks for unbalanced directives and unterminated
// interpolations without raising. The processor runs this before any
// substitution and short-circuits on failure.
func ValidateTemplate(content string) Validation {
	var errs []string
	for _, bt := range blockTypes {
		opens := 0
		closes := 0
		for _, m := range openTagRe.FindAllStringSubmatch(content, -1) {
			if DirectiveType(m[1]) == bt {
				opens++
			}
		}
		for _, m := range closeTagRe.FindAllStringSubmatch(content, -1) {
			if DirectiveType(m[1]) == bt {
				closes++
			}
		}
		if opens != closes {
			errs = append(errs, fmt.Sprintf("unbalanced {{#%s}} directives: %d open, %d close", bt, opens, closes))
		}
	}
	for pos := 0; ; {
		i := strings.Index(content[pos:], "{{")
		if i < 0 {
			break
		}
		i += pos
		rest := content[i+2:]
		closeAt := strings.Index(rest, "}}")
		nextOpen := strings.Index(rest, "{{")
		if closeAt < 0 || (nextOpen >= 0 && nextOpen < closeAt) {
			errs = append(errs, fmt.Sprintf("unterminated placeholder starting at offset %d", i))
			pos = i + 2
			continue
		}
		pos = i + 2 + closeAt + 2
	}
	return Validation{Valid: len(errs) == 0, Errors: errs}
}
