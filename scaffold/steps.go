package scaffold

import (
	"errors"
	"fmt"
	"strings"

	"github.com/qazuor/claude-code-config/wizard"
)

// ModuleOptions are the .claude tree modules the wizard offers.
var ModuleOptions = []string{"agents", "skills", "commands", "docs"}

var projectTypes = []string{"node", "go", "python", "rust", "unknown"}

// BuiltinSteps returns the interview the init command runs. Steps gather
// input through the injected prompter; the engine never sees it.
func BuiltinSteps(p wizard.Prompter) []wizard.Step {
	return []wizard.Step{
		projectNameStep(p),
		projectTypeStep(p),
		moduleStep(p),
		codeStyleStep(p),
		confirmStep(p),
	}
}

// projectValue reads a key out of the nested project map.
func projectValue(ctx wizard.Context, key string) string {
	project, _ := ctx["project"].(map[string]any)
	v, _ := project[key].(string)
	return v
}

// mergeProject returns a delta that layers updates onto the existing
// project map without clobbering sibling keys.
func mergeProject(ctx wizard.Context, updates map[string]any) map[string]any {
	project, _ := ctx["project"].(map[string]any)
	next := make(map[string]any, len(project)+len(updates))
	for k, v := range project {
		next[k] = v
	}
	for k, v := range updates {
		next[k] = v
	}
	return map[string]any{"project": next}
}

func projectNameStep(p wizard.Prompter) wizard.Step {
	return wizard.Step{
		Meta: wizard.Meta{
			ID:          "project-name",
			Name:        "Project name",
			Description: "Name used across the generated configuration",
			Required:    true,
		},
		Defaults: func(ctx wizard.Context) any {
			return projectValue(ctx, "name")
		},
		Execute: func(ctx wizard.Context, in wizard.Input) (wizard.Outcome, error) {
			if in.Rejection != "" {
				p.Notify(in.Rejection)
			}
			def, _ := in.Defaults.(string)
			name, err := p.Input("Project name", def)
			if err != nil {
				return wizard.Outcome{}, err
			}
			return wizard.Outcome{
				Value:       name,
				Delta:       mergeProject(ctx, map[string]any{"name": name}),
				Navigation:  wizard.Next,
				WasModified: name != def,
			}, nil
		},
		Validate: func(value any, _ wizard.Context) error {
			name, _ := value.(string)
			if strings.TrimSpace(name) == "" {
				return errors.New("project name must not be empty")
			}
			return nil
		},
	}
}

func projectTypeStep(p wizard.Prompter) wizard.Step {
	return wizard.Step{
		Meta: wizard.Meta{
			ID:          "project-type",
			Name:        "Project type",
			Description: "Primary language or runtime of the project",
		},
		Defaults: func(ctx wizard.Context) any {
			return projectValue(ctx, "type")
		},
		// Unambiguous detection makes the question pointless.
		Skip: func(ctx wizard.Context) bool {
			t := projectValue(ctx, "type")
			return t != "" && t != "unknown"
		},
		Execute: func(ctx wizard.Context, in wizard.Input) (wizard.Outcome, error) {
			def, _ := in.Defaults.(string)
			t, err := p.Select("Project type", projectTypes, def)
			if err != nil {
				return wizard.Outcome{}, err
			}
			return wizard.Outcome{
				Value:       t,
				Delta:       mergeProject(ctx, map[string]any{"type": t}),
				Navigation:  wizard.Next,
				WasModified: t != def,
			}, nil
		},
	}
}

func moduleStep(p wizard.Prompter) wizard.Step {
	return wizard.Step{
		Meta: wizard.Meta{
			ID:          "modules",
			Name:        "Modules",
			Description: "Which module trees to generate under .claude/",
		},
		Defaults: func(_ wizard.Context) any {
			return []string{"agents", "commands"}
		},
		Execute: func(_ wizard.Context, in wizard.Input) (wizard.Outcome, error) {
			def, _ := in.Defaults.([]string)
			selected, err := p.MultiSelect("Modules to generate", ModuleOptions, def)
			if err != nil {
				return wizard.Outcome{}, err
			}
			return wizard.Outcome{
				Value:      selected,
				Delta:      map[string]any{"modules": selected},
				Navigation: wizard.Next,
			}, nil
		},
	}
}

func codeStyleStep(p wizard.Prompter) wizard.Step {
	return wizard.Step{
		Meta: wizard.Meta{
			ID:          "code-style",
			Name:        "Code style",
			Description: "Indentation written into the style configs",
		},
		Defaults: func(_ wizard.Context) any {
			return "space"
		},
		Execute: func(_ wizard.Context, in wizard.Input) (wizard.Outcome, error) {
			def, _ := in.Defaults.(string)
			style, err := p.Select("Indent style", []string{"space", "tab"}, def)
			if err != nil {
				return wizard.Outcome{}, err
			}
			size := "2"
			if style == "tab" {
				size = "4"
			}
			size, err = p.Input("Indent size", size)
			if err != nil {
				return wizard.Outcome{}, err
			}
			return wizard.Outcome{
				Value: style,
				Delta: map[string]any{
					"style": map[string]any{
						"indentStyle": style,
						"indentSize":  size,
					},
				},
				Navigation: wizard.Next,
			}, nil
		},
	}
}

func confirmStep(p wizard.Prompter) wizard.Step {
	return wizard.Step{
		Meta: wizard.Meta{
			ID:          "confirm",
			Name:        "Confirm",
			Description: "Review the collected values before writing",
		},
		Execute: func(ctx wizard.Context, _ wizard.Input) (wizard.Outcome, error) {
			modules, _ := ctx["modules"].([]string)
			p.Notify(fmt.Sprintf("Project %q (%s), modules: %s",
				projectValue(ctx, "name"),
				projectValue(ctx, "type"),
				strings.Join(modules, ", ")))
			ok, err := p.Confirm("Write configuration", true)
			if err != nil {
				return wizard.Outcome{}, err
			}
			if !ok {
				// Rejection walks the user back to adjust answers.
				return wizard.Outcome{Value: false, Navigation: wizard.Back}, nil
			}
			return wizard.Outcome{Value: true, Navigation: wizard.Next}, nil
		},
	}
}
