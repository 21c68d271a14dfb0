package models

// ManifestEntry maps an album title to the photos that belong in it.
type ManifestEntry struct {
	Title  string   `json:"title" yaml:"title"`
	Photos []string `json:"photos" yaml:"photos"`
}
