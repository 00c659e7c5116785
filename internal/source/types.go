package source

// RawTransaction is a single line of a JSONL transaction export.
type RawTransaction struct {
	ID          string  `json:"id,omitempty"`
	Date        string  `json:"date"`
	Category    string  `json:"category"`
	Description string  `json:"description,omitempty"`
	Amount      float64 `json:"amount"`
	// Type is "expense" (default) or "refund". Refunds are stored negated.
	Type string `json:"type,omitempty"`
}

// DiscoveredFile represents a JSONL file found during directory scanning.
type DiscoveredFile struct {
	Path    string
	Account string // first directory under the import root, "" at the root
	Name    string // file name without extension
}
