package main

import (
	"errors"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/quintans/faults"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/qazuor/claude-code-config/placeholders"
	"github.com/qazuor/claude-code-config/scaffold"
	"github.com/qazuor/claude-code-config/wizard"
)

var templateDirFlag string

var initCmd = &cobra.Command{
	Use:   "init [target-dir]",
	Short: "Run the setup wizard and write the .claude tree",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := "."
		if len(args) == 1 {
			target = args[0]
		}
		target, err := filepath.Abs(target)
		if err != nil {
			return faults.Wrap(err)
		}
		osFS := afero.NewOsFs()

		det := scaffold.Detect(osFS, target)
		engine := wizard.NewEngine(scaffold.BuiltinSteps(wizard.NewPtermPrompter()))

		result, err := engine.Run(wizard.Context(det.Context()))
		if err != nil {
			if errors.Is(err, wizard.ErrCanceled) {
				pterm.Info.Println("Canceled, nothing written.")
				return nil
			}
			return err
		}

		templateFS := osFS
		templateDir := templateDirFlag
		if templateDir == "" {
			templateDir = "templates"
			templateFS, err = scaffold.DefaultTemplateFS(templateDir)
			if err != nil {
				return err
			}
		}

		m := &scaffold.Materializer{
			TemplateFS: templateFS,
			OutputFS:   osFS,
			Context:    scaffold.TemplateContext(result.Context),
			Replacer:   placeholders.NewReplacer(replacerConfig(result.Context)),
		}

		outDir := filepath.Join(target, ".claude")
		report, err := m.Run(templateDir, outDir, dryRun)
		if err != nil {
			return faults.Wrap(err)
		}
		for _, w := range report.Warnings {
			pterm.Warning.Println(w)
		}

		if !dryRun {
			settings := filepath.Join(outDir, "settings.json")
			if err := scaffold.WriteSettings(osFS, settings, result.Context); err != nil {
				return err
			}
		}

		pterm.Success.Printfln("Wrote %d files (%d skipped) under %s", report.FilesWritten, report.FilesSkipped, outDir)
		return nil
	},
}

// replacerConfig flattens the wizard answers into the keys the flat
// token definitions expect.
func replacerConfig(ctx wizard.Context) map[string]any {
	project, _ := ctx["project"].(map[string]any)
	style, _ := ctx["style"].(map[string]any)
	cfg := map[string]any{
		"defaultBranch":    "main",
		"commitConvention": "conventional",
	}
	if v, ok := project["name"]; ok {
		cfg["projectName"] = v
	}
	if v, ok := project["type"]; ok {
		cfg["projectType"] = v
	}
	if v, ok := project["packageManager"]; ok {
		cfg["packageManager"] = v
	}
	if v, ok := style["indentStyle"]; ok {
		cfg["indentStyle"] = v
	}
	if v, ok := style["indentSize"]; ok {
		cfg["indentSize"] = v
	}
	return cfg
}

func init() {
	initCmd.Flags().StringVarP(&templateDirFlag, "templates", "t", "", "Template directory (default: built-in tree)")
}
