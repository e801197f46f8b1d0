package main

import (
	"github.com/pterm/pterm"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/qazuor/claude-code-config/scaffold"
	"github.com/qazuor/claude-code-config/templates"
)

var modelFileFlag string

var renderCmd = &cobra.Command{
	Use:   "render <dir>",
	Short: "Process template directives in a directory against a model",
	Long: `render applies the template processor to every eligible file under the
given directory, in place, using the YAML model as context. Files with
invalid template syntax are reported and left untouched; the rest of the
batch still runs.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		osFS := afero.NewOsFs()

		model, err := scaffold.LoadModel(osFS, modelFileFlag)
		if err != nil {
			return err
		}

		report, err := templates.ProcessDirectory(osFS, args[0], templates.Context(model), dryRun)
		if err != nil {
			return err
		}

		for _, w := range report.Warnings {
			pterm.Warning.Println(w)
		}
		for _, fe := range report.FilesWithErrors {
			pterm.Error.Printfln("%s: %s", fe.Path, fe.Err)
		}
		pterm.Success.Printfln("Scanned %d files, modified %d, resolved %d directives",
			report.FilesScanned, report.FilesModified, report.DirectivesProcessed)
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVarP(&modelFileFlag, "model", "m", "claude-config.yaml", "YAML model file")
	_ = renderCmd.MarkFlagRequired("model")
}
