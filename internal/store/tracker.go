package store

import "github.com/pkg/errors"

// FileInfo holds the tracked mtime and size for an imported file.
type FileInfo struct {
	MtimeNs   int64
	SizeBytes int64
}

// GetTrackedFiles returns a map of file_path -> FileInfo for all imported files.
func (l *Ledger) GetTrackedFiles() (map[string]FileInfo, error) {
	rows, err := l.db.Query("SELECT file_path, mtime_ns, size_bytes FROM file_tracker")
	if err != nil {
		return nil, errors.Wrap(err, "querying file tracker")
	}
	defer func() { _ = rows.Close() }()

	result := make(map[string]FileInfo)
	for rows.Next() {
		var path string
		var fi FileInfo
		if err := rows.Scan(&path, &fi.MtimeNs, &fi.SizeBytes); err != nil {
			return nil, errors.Wrap(err, "scanning file tracker")
		}
		result[path] = fi
	}
	return result, errors.Wrap(rows.Err(), "reading file tracker")
}

// TrackFile records the state of an imported file.
func (l *Ledger) TrackFile(filePath string, fi FileInfo) error {
	_, err := l.db.Exec(`INSERT OR REPLACE INTO file_tracker (file_path, mtime_ns, size_bytes)
		VALUES (?, ?, ?)`, filePath, fi.MtimeNs, fi.SizeBytes)
	return errors.Wrapf(err, "tracking %s", filePath)
}

// DeleteFileTracker removes a file tracking entry.
func (l *Ledger) DeleteFileTracker(filePath string) error {
	_, err := l.db.Exec("DELETE FROM file_tracker WHERE file_path = ?", filePath)
	return errors.Wrapf(err, "untracking %s", filePath)
}
