package reciprocity

import (
	"follow-check/core/history"
	"follow-check/core/remote"
	"follow-check/core/snapshot"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the reciprocity feature. source, store, and recorder
// follow the same optionality rules as NewService.
func NewFeature(source remote.Source, store snapshot.Store, recorder *history.Recorder, defaultTarget string, logger *zap.Logger) *Feature {
	svc := NewService(source, store, recorder, logger)
	h := NewHandler(svc, defaultTarget)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "reciprocity"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
