package main

import (
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/qazuor/claude-code-config/placeholders"
	"github.com/qazuor/claude-code-config/templates"
)

var checkCmd = &cobra.Command{
	Use:   "check <dir>",
	Short: "Validate template syntax and list placeholder tokens",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		osFS := afero.NewOsFs()
		root := args[0]

		invalid := 0
		err := afero.Walk(osFS, root, func(path string, info os.FileInfo, walkErr error) error {
			if walkErr != nil {
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
			data, err := afero.ReadFile(osFS, path)
			if err != nil {
				pterm.Error.Printfln("%s: %v", path, err)
				return nil
			}
			if v := templates.ValidateTemplate(string(data)); !v.Valid {
				invalid++
				for _, e := range v.Errors {
					pterm.Error.Printfln("%s: %s", path, e)
				}
			}
			return nil
		})
		if err != nil {
			return err
		}

		scan, err := placeholders.Scan(osFS, root)
		if err != nil {
			return err
		}
		if len(scan.Occurrences) > 0 {
			rows := pterm.TableData{{"Token", "Category", "File", "Count"}}
			for _, occ := range scan.Occurrences {
				rows = append(rows, []string{occ.Token, occ.Category, occ.File, pterm.Sprintf("%d", occ.Count)})
			}
			if err := pterm.DefaultTable.WithHasHeader().WithData(rows).Render(); err != nil {
				return err
			}
		}

		if invalid > 0 {
			pterm.Warning.Printfln("%d files with invalid template syntax", invalid)
		} else {
			pterm.Success.Println("All templates valid")
		}
		return nil
	},
}
