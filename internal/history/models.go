package history

import (
	"time"
)

// Operation identifies what kind of action produced a history entry.
type Operation string

const (
	OpImport     Operation = "import"
	OpConvert    Operation = "convert"
	OpReplace    Operation = "replace"
	OpVarsImport Operation = "vars-import"
	OpVarsExport Operation = "vars-export"
)

// Entry records a single import, conversion, or bulk operation.
type Entry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Operation Operation `json:"operation"`

	SourceFormat string `json:"source_format,omitempty"`
	TargetFormat string `json:"target_format,omitempty"`
	SourcePath   string `json:"source_path,omitempty"`

	CollectionID   string `json:"collection_id,omitempty"`
	CollectionName string `json:"collection_name,omitempty"`

	RequestCount  int `json:"request_count"`
	FolderCount   int `json:"folder_count"`
	VariableCount int `json:"variable_count"`

	// Detail carries operation-specific context, e.g. the find term and
	// replacement count of a bulk replace.
	Detail string `json:"detail,omitempty"`
}

// QueryOptions specifies filters and pagination for history queries.
type QueryOptions struct {
	Operation    Operation // Filter by operation kind
	CollectionID string    // Filter by collection
	After        time.Time // Only entries after this time
	Before       time.Time // Only entries before this time

	Limit  int // Maximum number of results (0 = no limit)
	Offset int // Number of results to skip
}

// PruneOptions specifies criteria for pruning old history entries.
type PruneOptions struct {
	OlderThan time.Duration // Delete entries older than this duration
	Before    time.Time     // Delete entries before this time
	KeepLast  int           // Keep only the last N entries
}

// PruneResult contains the result of a prune operation.
type PruneResult struct {
	DeletedCount int64 `json:"deleted_count"`
}
