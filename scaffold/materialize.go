package scaffold

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/quintans/faults"
	"github.com/spf13/afero"

	"github.com/qazuor/claude-code-config/logging"
	"github.com/qazuor/claude-code-config/placeholders"
	"github.com/qazuor/claude-code-config/templates"
)

// Materializer copies a template tree into a target directory, running
// the directive processor over file contents and the flat placeholder
// replacer over contents and names. Reruns overwrite; recovery from a
// partial run is rerunning, not rollback.
type Materializer struct {
	TemplateFS afero.Fs
	OutputFS   afero.Fs
	Context    templates.Context
	Replacer   *placeholders.Replacer
}

// MaterializeReport summarizes one materialization run.
type MaterializeReport struct {
	DirsCreated  int
	FilesWritten int
	FilesSkipped int
	Warnings     []string
}

// Run processes templateDir into outDir. In dry-run mode it prints the
// plan without touching the output filesystem.
func (m *Materializer) Run(templateDir, outDir string, dryRun bool) (*MaterializeReport, error) {
	report := &MaterializeReport{}
	if err := m.processDir(templateDir, outDir, dryRun, report); err != nil {
		return report, err
	}
	return report, nil
}

func (m *Materializer) processDir(currentTemplatePath, currentOutPath string, dryRun bool, report *MaterializeReport) error {
	logger := logging.GetLogger("scaffold")

	entries, err := afero.ReadDir(m.TemplateFS, currentTemplatePath)
	if err != nil {
		return faults.Wrap(err)
	}

	for _, entry := range entries {
		name := m.expandName(entry.Name())
		outPath := filepath.Join(currentOutPath, name)

		if entry.IsDir() {
			if dryRun {
				fmt.Printf("[DIR]  %s\n", outPath)
			} else {
				if err := m.OutputFS.MkdirAll(outPath, 0o755); err != nil {
					return faults.Wrap(err)
				}
			}
			report.DirsCreated++
			if err := m.processDir(filepath.Join(currentTemplatePath, entry.Name()), outPath, dryRun, report); err != nil {
				return err
			}
			continue
		}

		data, err := afero.ReadFile(m.TemplateFS, filepath.Join(currentTemplatePath, entry.Name()))
		if err != nil {
			return faults.Wrap(err)
		}

		content, warnings := m.renderFile(string(data))
		for _, w := range warnings {
			report.Warnings = append(report.Warnings, fmt.Sprintf("%s: %s", outPath, w))
		}

		if content == "" {
			// A file rendered down to nothing is not written, and a copy
			// left behind by a previous run is cleaned up.
			report.FilesSkipped++
			if dryRun {
				fmt.Printf("[SKIP] %s (empty after rendering)\n", outPath)
				continue
			}
			if exists, err := afero.Exists(m.OutputFS, outPath); err != nil {
				return faults.Wrap(err)
			} else if exists {
				if err := m.OutputFS.Remove(outPath); err != nil {
					return faults.Wrap(err)
				}
			}
			continue
		}

		outPath = strings.TrimSuffix(outPath, ".tmpl")
		if dryRun {
			fmt.Printf("[FILE] %s (%d bytes)\n", outPath, len(content))
			report.FilesWritten++
			continue
		}
		if err := afero.WriteFile(m.OutputFS, outPath, []byte(content), 0o644); err != nil {
			return faults.Wrap(err)
		}
		report.FilesWritten++
		logger.Debug().Str("file", outPath).Msg("wrote file")
	}
	return nil
}

// renderFile runs the directive processor when the file carries template
// syntax, then the flat replacer. Validation failures leave the content
// untouched and surface as warnings; a bad template never aborts the run.
func (m *Materializer) renderFile(content string) (string, []string) {
	var warnings []string
	if templates.HasDirectives(content) {
		res := templates.ProcessTemplate(content, m.Context)
		warnings = append(warnings, res.Warnings...)
		warnings = append(warnings, res.Errors...)
		if len(res.Errors) == 0 {
			content = res.Content
		}
	}
	if m.Replacer != nil {
		res := m.Replacer.ReplaceString(content)
		content = res.Content
	}
	return content, warnings
}

// expandName substitutes flat tokens appearing in file and directory
// names, e.g. {{PROJECT_SLUG}}.md.
func (m *Materializer) expandName(name string) string {
	if m.Replacer == nil {
		return name
	}
	return m.Replacer.ReplaceString(name).Content
}
