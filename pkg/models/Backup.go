package models

// BackupRecord is everything needed to rebuild an album after it is deleted.
type BackupRecord struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	PhotoIDs    []string `json:"photo_ids" yaml:"photo_ids"`
}
