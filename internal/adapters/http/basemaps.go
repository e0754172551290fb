package http

import (
	"embed"
	"encoding/json"
	"net/http"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed basemaps.yaml
var basemapsYAML embed.FS

var (
	basemapsJSON     []byte
	basemapsJSONOnce sync.Once
	basemapsJSONErr  error
)

// basemapCatalog mirrors the embedded basemaps.yaml structure.
type basemapCatalog struct {
	Basemaps []basemapEntry `yaml:"basemaps" json:"basemaps"`
}

// basemapEntry describes one tile layer the frontend can render.
type basemapEntry struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	URL         string `yaml:"url" json:"url"`
	Attribution string `yaml:"attribution" json:"attribution"`
	MaxZoom     int    `yaml:"max_zoom" json:"max_zoom"`
	Default     bool   `yaml:"default" json:"default"`
}

// getBasemapsJSON returns the basemap catalog as JSON.
// The YAML is converted to JSON on first access and cached.
func getBasemapsJSON() ([]byte, error) {
	basemapsJSONOnce.Do(func() {
		basemapsJSON, basemapsJSONErr = convertBasemapsToJSON()
	})
	return basemapsJSON, basemapsJSONErr
}

// convertBasemapsToJSON reads the embedded YAML and converts it to JSON.
func convertBasemapsToJSON() ([]byte, error) {
	yamlData, err := basemapsYAML.ReadFile("basemaps.yaml")
	if err != nil {
		return nil, err
	}

	var catalog basemapCatalog
	if err := yaml.Unmarshal(yamlData, &catalog); err != nil {
		return nil, err
	}

	return json.MarshalIndent(catalog, "", "  ")
}

// handleBasemaps returns the basemap catalog.
func (s *Server) handleBasemaps(w http.ResponseWriter, _ *http.Request) {
	catalog, err := getBasemapsJSON()
	if err != nil {
		s.logger.Error("failed to load basemap catalog", "error", err)
		s.writeError(w, http.StatusInternalServerError, "Failed to load basemap catalog")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(catalog)
}
