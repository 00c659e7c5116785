package source

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ScanDir walks an import directory and discovers all JSONL transaction
// files. Files directly under dir belong to the default account; files in a
// subdirectory are attributed to that subdirectory's account. Hidden
// entries are skipped. A missing directory yields no files and no error.
func ScanDir(dir string) ([]DiscoveredFile, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, nil
	}

	var files []DiscoveredFile

	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // intentionally skip unreadable entries
		}
		name := d.Name()
		if path != dir && strings.HasPrefix(name, ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || filepath.Ext(name) != ".jsonl" {
			return nil
		}

		rel, _ := filepath.Rel(dir, path)
		parts := strings.Split(rel, string(filepath.Separator))

		df := DiscoveredFile{
			Path: path,
			Name: strings.TrimSuffix(name, ".jsonl"),
		}
		if len(parts) >= 2 {
			df.Account = parts[0]
		}

		files = append(files, df)
		return nil
	})

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, err
}

// CountAccounts returns the number of unique accounts in a set of discovered files.
func CountAccounts(files []DiscoveredFile) int {
	seen := make(map[string]struct{})
	for _, f := range files {
		seen[f.Account] = struct{}{}
	}
	return len(seen)
}
