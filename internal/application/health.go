package application

import (
	"context"

	"github.com/laminamaps/lamina/internal/ports/input"
)

// HealthService provides health check functionality.
type HealthService struct {
	service *OverlayService
}

// NewHealthService creates a new health service.
func NewHealthService(service *OverlayService) *HealthService {
	return &HealthService{
		service: service,
	}
}

// IsHealthy returns true if the service is healthy.
func (s *HealthService) IsHealthy(_ context.Context) bool {
	return true // Basic health check
}

// IsReady returns true if the service is ready to accept requests. The
// pipeline has no warm-up phase; an empty state is a valid ready state.
func (s *HealthService) IsReady(_ context.Context) bool {
	return s.service != nil
}

// GetHealthDetails returns detailed health information.
func (s *HealthService) GetHealthDetails(ctx context.Context) input.HealthDetails {
	boundaries, tracks, photos := s.service.Counts()

	return input.HealthDetails{
		Healthy:    s.IsHealthy(ctx),
		Ready:      s.IsReady(ctx),
		Boundaries: boundaries,
		Tracks:     tracks,
		Photos:     photos,
		Components: map[string]string{
			"pipeline": "ok",
		},
	}
}
