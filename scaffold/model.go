// Package scaffold ties the core engines together: it loads context
// models, detects project facts, runs the built-in wizard steps and
// materializes the .claude tree into a target directory.
package scaffold

import (
	"encoding/json"

	"github.com/quintans/faults"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/qazuor/claude-code-config/templates"
	"github.com/qazuor/claude-code-config/wizard"
)

// LoadModel reads a YAML file into a context map.
func LoadModel(fsys afero.Fs, filename string) (map[string]any, error) {
	data, err := afero.ReadFile(fsys, filename)
	if err != nil {
		return nil, faults.Wrap(err)
	}

	var model map[string]any
	if err := yaml.Unmarshal(data, &model); err != nil {
		return nil, faults.Wrap(err)
	}
	return model, nil
}

// WriteSettings persists the collected wizard values as flat JSON, the
// only persistence format the tool uses.
func WriteSettings(fsys afero.Fs, path string, values map[string]any) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return faults.Wrap(err)
	}
	if err := afero.WriteFile(fsys, path, append(data, '\n'), 0o644); err != nil {
		return faults.Wrap(err)
	}
	return nil
}

// TemplateContext adapts accumulated wizard answers to the context shape
// the template processor renders against. Both are plain nested maps.
func TemplateContext(c wizard.Context) templates.Context {
	return templates.Context(c)
}
