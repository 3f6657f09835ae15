package dto

// MigrationStatusResponse current state of the legacy import.
type MigrationStatusResponse struct {
	Status        string `json:"status"` // not_started, in_progress, completed, failed
	MigratedCount int    `json:"migrated_count"`
	FileExists    bool   `json:"file_exists"`
	TotalItems    int    `json:"total_items"`
}

// ImportResultResponse summary of one import run.
type ImportResultResponse struct {
	MigratedCount int      `json:"migrated_count"`
	ErrorCount    int      `json:"error_count"`
	ErrorMessages []string `json:"error_messages,omitempty"`
	Message       string   `json:"message"`
}

// RollbackResultResponse summary of a rollback.
type RollbackResultResponse struct {
	DeletedCount int    `json:"deleted_count"`
	Message      string `json:"message"`
}

// SweepPreviewRow one item that a sweep would delete.
type SweepPreviewRow struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Owner     string `json:"owner"`
	Condition string `json:"condition"`
	Location  string `json:"location"`
	Origin    string `json:"origin"` // migrated or manual
}

// SweepPreviewResponse read-only listing shown before a sweep.
type SweepPreviewResponse struct {
	Items   []SweepPreviewRow `json:"items"`
	Count   int               `json:"count"`
	Message string            `json:"message"`
}

// SweepResultResponse summary of a sweep.
type SweepResultResponse struct {
	DeletedCount int    `json:"deleted_count"`
	ErrorCount   int    `json:"error_count"`
	Message      string `json:"message"`
}
