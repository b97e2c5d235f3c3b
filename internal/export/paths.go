package export

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/linuxmatters/isfconv/internal/config"
)

// FindFiles returns the regular files in dir whose extension matches ext,
// case-insensitively, as absolute paths in lexical order.
func FindFiles(dir, ext string) ([]string, error) {
	abs, err := filepath.Abs(strings.TrimSpace(dir))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory %q: %w", dir, err)
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if !hasExt(e.Name(), ext) {
			continue
		}
		files = append(files, filepath.Join(abs, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// OutputPaths returns the CSV path of each input.
//
// Without saveAs, each input's ".isf" extension is replaced by ".csv" (or
// ".csv" is appended when there is none to replace); the result
// goes into outDir if set, next to the input otherwise. With saveAs, there
// must be one name per input; relative names are placed in outDir if set.
func OutputPaths(inputs, saveAs []string, outDir string) ([]string, error) {
	if len(saveAs) > 0 && len(saveAs) != len(inputs) {
		return nil, fmt.Errorf(
			"the number of output file names (%d) must equal the number of input files (%d)",
			len(saveAs), len(inputs),
		)
	}

	outs := make([]string, len(inputs))
	for i, in := range inputs {
		var name string
		switch {
		case len(saveAs) > 0:
			name = WithCSVExt(saveAs[i])
			if outDir != "" && !filepath.IsAbs(name) {
				name = filepath.Join(outDir, name)
			}
		default:
			name = in
			if hasExt(name, config.ISFExt) {
				name = name[:len(name)-len(config.ISFExt)]
			}
			name = WithCSVExt(name)
			if outDir != "" {
				name = filepath.Join(outDir, filepath.Base(name))
			}
		}

		abs, err := filepath.Abs(name)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve output path %q: %w", name, err)
		}
		outs[i] = abs
	}
	return outs, nil
}

// WithCSVExt appends ".csv" unless fname already ends with it.
func WithCSVExt(fname string) string {
	if hasExt(fname, config.CSVExt) {
		return fname
	}
	return fname + config.CSVExt
}

func hasExt(name, ext string) bool {
	return len(name) > len(ext) && strings.EqualFold(name[len(name)-len(ext):], ext)
}
