package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/theirongolddev/budgetring/internal/logger"
	"github.com/theirongolddev/budgetring/internal/source"
	"github.com/theirongolddev/budgetring/internal/store"
)

// LedgerImportResult extends ImportResult with file tracking metadata.
type LedgerImportResult struct {
	ImportResult
	Unchanged  int
	Reimported int
}

// ImportIntoLedger discovers files under dir, diffs them against the
// ledger's file tracker, and re-imports only new or changed files. A changed
// file replaces every row it previously contributed.
func ImportIntoLedger(dir string, ledger *store.Ledger, progressFn ProgressFunc) (*LedgerImportResult, error) {
	files, err := source.ScanDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}

	result := &LedgerImportResult{
		ImportResult: ImportResult{
			TotalFiles:   len(files),
			AccountCount: source.CountAccounts(files),
		},
	}
	if len(files) == 0 {
		return result, nil
	}

	tracked, err := ledger.GetTrackedFiles()
	if err != nil {
		return nil, fmt.Errorf("reading file tracker: %w", err)
	}

	// Diff: partition into changed and unchanged
	var changed []source.DiscoveredFile
	var infos []store.FileInfo
	for _, f := range files {
		info, err := os.Stat(f.Path)
		if err != nil {
			continue
		}
		fi := store.FileInfo{MtimeNs: info.ModTime().UnixNano(), SizeBytes: info.Size()}
		if prev, ok := tracked[f.Path]; ok && prev == fi {
			result.Unchanged++
			continue
		}
		changed = append(changed, f)
		infos = append(infos, fi)
	}
	result.Reimported = len(changed)
	result.ParsedFiles = result.Unchanged

	if progressFn != nil && result.Unchanged > 0 {
		progressFn(result.Unchanged, result.TotalFiles)
	}
	if len(changed) == 0 {
		return result, nil
	}

	for i, pr := range parseFiles(changed, result.Unchanged, result.TotalFiles, progressFn) {
		path := changed[i].Path
		if pr.Err != nil {
			logger.Warn("skipping unreadable file", zap.String("path", path), zap.Error(pr.Err))
			result.FileErrors++
			continue
		}
		result.ParsedFiles++
		result.ParseErrors += pr.ParseErrors

		if err := ledger.DeleteFileTransactions(path); err != nil {
			return nil, err
		}
		if err := ledger.SaveTransactions(pr.Transactions); err != nil {
			return nil, err
		}
		if err := ledger.TrackFile(path, infos[i]); err != nil {
			return nil, err
		}
		result.Transactions = append(result.Transactions, pr.Transactions...)
		logger.Debug("imported file",
			zap.String("path", path),
			zap.Int("transactions", len(pr.Transactions)),
			zap.Int("parse_errors", pr.ParseErrors))
	}
	return result, nil
}

// DataDir returns the platform-appropriate data directory.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "budgetring")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "budgetring")
}

// LedgerPath returns the full path to the default ledger database.
func LedgerPath() string {
	return filepath.Join(DataDir(), "ledger.db")
}
