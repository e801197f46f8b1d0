package scaffold

import (
	"path/filepath"

	"github.com/quintans/faults"
	"github.com/spf13/afero"
)

// defaultTree is the built-in .claude template set used when the caller
// does not point at a template directory of their own. Contents use both
// token grammars: directive syntax for structure, flat tokens for values
// the replacer fills in.
var defaultTree = map[string]string{
	"CLAUDE.md": `# {{PROJECT_NAME}}

{{#if project.description}}{{project.description}}{{/if}}

## Project

- Type: {{PROJECT_TYPE}}
- Indentation: {{INDENT_STYLE}} ({{INDENT_SIZE}})

{{#if modules}}
## Modules

{{modules|bullet}}
{{/if}}
`,
	"settings.json.tmpl": `{
  "project": "{{PROJECT_NAME}}",
  "indent_style": "{{INDENT_STYLE}}",
  "indent_size": "{{INDENT_SIZE}}"
}
`,
	"agents/README.md": `# Agents

{{#each modules}}{{#if item == "agents"}}Agent definitions for {{project.name}}.{{/if}}{{/each}}

{{#unless modules.includes("agents")}}
This project generates no agent modules.
{{/unless}}
`,
	"commands/README.md": `# Commands

Custom commands for {{project.name|title}}.
`,
	"docs/conventions.md": `# Conventions

- Default branch: {{DEFAULT_BRANCH}}
- Commits: {{COMMIT_CONVENTION}}

{{#section style}}
Indent with {{style.indentStyle}}, width {{style.indentSize}}.
{{/section}}
`,
}

// DefaultTemplateFS returns an in-memory filesystem holding the built-in
// template tree rooted at dir.
func DefaultTemplateFS(dir string) (afero.Fs, error) {
	fsys := afero.NewMemMapFs()
	for path, content := range defaultTree {
		full := filepath.Join(dir, path)
		if err := fsys.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			return nil, faults.Wrap(err)
		}
		if err := afero.WriteFile(fsys, full, []byte(content), 0o644); err != nil {
			return nil, faults.Wrap(err)
		}
	}
	return fsys, nil
}
