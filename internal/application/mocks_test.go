package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/laminamaps/lamina/internal/domain"
	"github.com/laminamaps/lamina/internal/ports/output"
)

// mockExtractor implements output.ArchiveExtractor for testing. Payloads are
// keyed by archive content; unknown content reports absence, the content
// "corrupt" reports an error.
type mockExtractor struct {
	payloads map[string]string
}

func (m *mockExtractor) ExtractMarkup(data []byte) ([]byte, bool, error) {
	if string(data) == "corrupt" {
		return nil, false, fmt.Errorf("zip: not a valid archive")
	}
	if m.payloads != nil {
		if p, ok := m.payloads[string(data)]; ok {
			return []byte(p), true, nil
		}
	}
	return nil, false, nil
}

// mockDecoder implements output.GeometryDecoder for testing. Collections are
// keyed by payload content; the content "malformed" reports a parse error.
type mockDecoder struct {
	ext string
	fcs map[string]*geojson.FeatureCollection
}

func (m *mockDecoder) Supports(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), m.ext)
}

func (m *mockDecoder) Decode(name string, data []byte) (*geojson.FeatureCollection, error) {
	if string(data) == "malformed" {
		return nil, fmt.Errorf("parsing %s: unexpected EOF", name)
	}
	if m.fcs != nil {
		if fc, ok := m.fcs[string(data)]; ok {
			return fc, nil
		}
	}
	return geojson.NewFeatureCollection(), nil
}

// mockGeotagReader implements output.GeotagReader for testing. Geotags are
// keyed by image content; unknown content has no geotag.
type mockGeotagReader struct {
	tags map[string]output.Geotag
}

func (m *mockGeotagReader) ReadGeotag(data []byte) (output.Geotag, error) {
	if m.tags != nil {
		if tag, ok := m.tags[string(data)]; ok {
			return tag, nil
		}
	}
	return output.Geotag{}, domain.ErrNoGeotag
}

// mockImageStore implements output.ImageStore for testing.
type mockImageStore struct {
	objects         map[string]output.ImageObject
	nextID          int
	releaseAllCalls int
}

func newMockImageStore() *mockImageStore {
	return &mockImageStore{objects: make(map[string]output.ImageObject)}
}

func (m *mockImageStore) Put(_ context.Context, name, contentType string, data []byte) (string, error) {
	m.nextID++
	id := fmt.Sprintf("img-%d", m.nextID)
	m.objects[id] = output.ImageObject{ID: id, Name: name, ContentType: contentType, Data: data}
	return id, nil
}

func (m *mockImageStore) Get(_ context.Context, id string) (output.ImageObject, error) {
	obj, ok := m.objects[id]
	if !ok {
		return output.ImageObject{}, domain.ErrPhotoNotFound
	}
	return obj, nil
}

func (m *mockImageStore) Release(_ context.Context, id string) error {
	delete(m.objects, id)
	return nil
}

func (m *mockImageStore) ReleaseAll(_ context.Context) error {
	m.releaseAllCalls++
	m.objects = make(map[string]output.ImageObject)
	return nil
}

func (m *mockImageStore) Count(_ context.Context) int {
	return len(m.objects)
}

// mockStorage implements output.ObjectStorage for testing.
type mockStorage struct {
	objects map[string]string // key -> content
	listErr error
}

func (m *mockStorage) List(_ context.Context) ([]output.StorageObject, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var objects []output.StorageObject
	for key, content := range m.objects {
		objects = append(objects, output.StorageObject{Key: key, Size: int64(len(content))})
	}
	return objects, nil
}

func (m *mockStorage) Download(_ context.Context, _, _ string) error {
	return nil
}

func (m *mockStorage) GetReader(_ context.Context, key string) (io.ReadCloser, error) {
	content, ok := m.objects[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

func (m *mockStorage) Exists(_ context.Context, key string) (bool, error) {
	_, ok := m.objects[key]
	return ok, nil
}

// Test fixtures.

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// squareFC returns a single square polygon spanning the given corners; its
// bound center equals its centroid.
func squareFC(minLon, minLat, maxLon, maxLat float64) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	fc.Append(geojson.NewFeature(orb.Polygon{{
		{minLon, minLat}, {maxLon, minLat}, {maxLon, maxLat}, {minLon, maxLat}, {minLon, minLat},
	}}))
	return fc
}

func lineFC(pts ...orb.Point) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	fc.Append(geojson.NewFeature(orb.LineString(pts)))
	return fc
}
