package store

import (
	"os"
	"path/filepath"
	"strings"

	"pareidolia/internal/logging"
	"pareidolia/internal/services"
)

var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

// ListDatasets returns the dataset projects in directory-read order. A missing
// datasets/ directory yields an empty list, not an error.
func (s *Store) ListDatasets() ([]Project, error) {
	return s.listProjects(s.cfg.DatasetsDir())
}

// ListModels returns the model projects in directory-read order. A missing
// models/ directory yields an empty list, not an error.
func (s *Store) ListModels() ([]Project, error) {
	return s.listProjects(s.cfg.ModelsDir())
}

func (s *Store) listProjects(categoryDir string) ([]Project, error) {
	entries, err := os.ReadDir(categoryDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Project{}, nil
		}
		return nil, services.Wrap(services.ErrFilesystem, "store", "list projects", categoryDir, err)
	}

	projects := make([]Project, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		projects = append(projects, Project{
			Name: entry.Name(),
			Path: filepath.Join(categoryDir, entry.Name()),
		})
	}
	return projects, nil
}

// ListImages returns the image files directly under path as name/URL pairs,
// matching the .jpg/.jpeg/.png extensions case-insensitively. Read failures
// are a soft contract: the result is an empty list and the failure is logged,
// never propagated. Callers depend on this never failing.
func (s *Store) ListImages(path string) []Image {
	entries, err := os.ReadDir(path)
	if err != nil {
		s.logger.Warn("image listing failed",
			logging.String("path", path),
			logging.Error(err))
		return []Image{}
	}

	images := make([]Image, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if _, ok := imageExtensions[ext]; !ok {
			continue
		}
		images = append(images, Image{
			Name: entry.Name(),
			URL:  "file://" + filepath.Join(path, entry.Name()),
		})
	}
	return images
}
