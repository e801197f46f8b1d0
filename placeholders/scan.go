package placeholders

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/quintans/faults"
	"github.com/spf13/afero"

	"github.com/qazuor/claude-code-config/templates"
)

var tokenRe = regexp.MustCompile(`\{\{([A-Z][A-Z0-9_]*)\}\}`)

// Occurrence is one token found in one file.
type Occurrence struct {
	Token    string
	File     string
	Count    int
	Category string
}

// ScanReport is the outcome of scanning a tree for flat tokens.
type ScanReport struct {
	FilesScanned int
	Occurrences  []Occurrence
}

// Tokens extracts the flat placeholder tokens present in content, in
// first-appearance order, without duplicates.
func Tokens(content string) []string {
	seen := map[string]bool{}
	var out []string
	for _, m := range tokenRe.FindAllStringSubmatch(content, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			out = append(out, m[1])
		}
	}
	return out
}

// Scan walks a tree and classifies every flat token it finds. File
// eligibility and directory skipping follow the same rules as template
// processing.
func Scan(fsys afero.Fs, root string) (*ScanReport, error) {
	if _, err := fsys.Stat(root); err != nil {
		return nil, faults.Wrap(err)
	}

	report := &ScanReport{}
	counts := map[string]map[string]int{} // file -> token -> count

	err := afero.Walk(fsys, root, func(path string, info os.FileInfo, walkErr error) error {
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
		data, err := afero.ReadFile(fsys, path)
		if err != nil {
			return nil
		}
		report.FilesScanned++
		for _, m := range tokenRe.FindAllStringSubmatch(string(data), -1) {
			if counts[path] == nil {
				counts[path] = map[string]int{}
			}
			counts[path][m[1]]++
		}
		return nil
	})
	if err != nil {
		return report, faults.Wrap(err)
	}

	files := make([]string, 0, len(counts))
	for f := range counts {
		files = append(files, f)
	}
	sort.Strings(files)
	for _, f := range files {
		tokens := make([]string, 0, len(counts[f]))
		for t := range counts[f] {
			tokens = append(tokens, t)
		}
		sort.Strings(tokens)
		for _, t := range tokens {
			report.Occurrences = append(report.Occurrences, Occurrence{
				Token:    t,
				File:     f,
				Count:    counts[f][t],
				Category: Lookup(t).Category,
			})
		}
	}
	return report, nil
}
