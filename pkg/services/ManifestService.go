package services

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/adampresley/flickralbums/pkg/models"
	"gopkg.in/yaml.v3"
)

type ManifestServicer interface {
	Load(path string) ([]models.ManifestEntry, error)
}

type ManifestService struct{}

func NewManifestService() ManifestService {
	return ManifestService{}
}

/*
Load reads an album manifest, a list of {title, photos} entries, as YAML
when the file ends in .yaml or .yml and as JSON otherwise. Entries without
a title are rejected.
*/
func (s ManifestService) Load(path string) ([]models.ManifestEntry, error) {
	var (
		err  error
		data []byte
	)

	if data, err = os.ReadFile(path); err != nil {
		return nil, models.NewServiceError(models.KindSetup, path, fmt.Errorf("error reading manifest: %w", err))
	}

	result := []models.ManifestEntry{}

	if isYAML(path) {
		err = yaml.Unmarshal(data, &result)
	} else {
		err = json.Unmarshal(data, &result)
	}

	if err != nil {
		return nil, models.NewServiceError(models.KindSetup, path, fmt.Errorf("error decoding manifest: %w", err))
	}

	for index, entry := range result {
		if entry.Title == "" {
			return nil, models.NewServiceError(models.KindSetup, path, fmt.Errorf("manifest entry %d has no title", index))
		}
	}

	return result, nil
}
