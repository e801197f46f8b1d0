package scaffold

import (
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/qazuor/claude-code-config/logging"
)

// Detection holds the facts read off a target directory before the
// wizard starts. Everything here is a suggestion; steps may override.
type Detection struct {
	Name           string
	Type           string
	PackageManager string
	HasGit         bool
}

// markers map a manifest file to a project type, checked in order.
var markers = []struct {
	file string
	typ  string
}{
	{"package.json", "node"},
	{"go.mod", "go"},
	{"pyproject.toml", "python"},
	{"Cargo.toml", "rust"},
}

// lockfiles map to the package manager that wrote them.
var lockfiles = []struct {
	file    string
	manager string
}{
	{"pnpm-lock.yaml", "pnpm"},
	{"yarn.lock", "yarn"},
	{"bun.lockb", "bun"},
	{"package-lock.json", "npm"},
}

// Detect inspects dir read-only and derives defaults for the wizard.
func Detect(fsys afero.Fs, dir string) Detection {
	logger := logging.GetLogger("detect")

	det := Detection{
		Name: filepath.Base(dir),
		Type: "unknown",
	}

	for _, m := range markers {
		if ok, _ := afero.Exists(fsys, filepath.Join(dir, m.file)); ok {
			det.Type = m.typ
			break
		}
	}

	if det.Type == "node" {
		det.PackageManager = "npm"
		for _, lf := range lockfiles {
			if ok, _ := afero.Exists(fsys, filepath.Join(dir, lf.file)); ok {
				det.PackageManager = lf.manager
				break
			}
		}
	}

	if ok, _ := afero.DirExists(fsys, filepath.Join(dir, ".git")); ok {
		det.HasGit = true
	}

	logger.Debug().
		Str("name", det.Name).
		Str("type", det.Type).
		Str("packageManager", det.PackageManager).
		Bool("hasGit", det.HasGit).
		Msg("project detection finished")
	return det
}

// Context converts the detection into the initial wizard context.
func (d Detection) Context() map[string]any {
	project := map[string]any{
		"name":   d.Name,
		"type":   d.Type,
		"hasGit": d.HasGit,
	}
	if d.PackageManager != "" {
		project["packageManager"] = d.PackageManager
	}
	return map[string]any{"project": project}
}
