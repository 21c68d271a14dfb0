package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adampresley/flickralbums/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadJSONManifest(t *testing.T) {
	path := writeManifest(t, "albums.json", `[{"title": "Trip", "photos": ["p1", "p2"]}, {"title": "Empty", "photos": []}]`)

	got, err := NewManifestService().Load(path)

	require.NoError(t, err)
	assert.Equal(t, []models.ManifestEntry{
		{Title: "Trip", Photos: []string{"p1", "p2"}},
		{Title: "Empty", Photos: []string{}},
	}, got)
}

func TestLoadYAMLManifest(t *testing.T) {
	path := writeManifest(t, "albums.yml", "- title: Trip\n  photos:\n    - p1\n")

	got, err := NewManifestService().Load(path)

	require.NoError(t, err)
	assert.Equal(t, []models.ManifestEntry{{Title: "Trip", Photos: []string{"p1"}}}, got)
}

func TestLoadManifestErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{name: "malformed", file: "bad.json", content: `{"title":`},
		{name: "untitled entry", file: "untitled.json", content: `[{"photos": ["p1"]}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewManifestService().Load(writeManifest(t, tt.file, tt.content))
			assert.True(t, models.IsKind(err, models.KindSetup))
		})
	}

	_, err := NewManifestService().Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.True(t, models.IsKind(err, models.KindSetup))
}
