package service

import (
	"context"
	"golf-coach/internal/logger"
	"golf-coach/internal/model"
	"os"
)

type RoundExtractor interface {
	ExtractRound(ctx context.Context, image []byte, mime string) (*model.ExtractedRound, error)
}

// ScreenshotService reads round fields off an uploaded scorecard image.
type ScreenshotService struct{ extractor RoundExtractor }

func NewScreenshotService(ex RoundExtractor) *ScreenshotService {
	return &ScreenshotService{extractor: ex}
}

// Extract owns the file at path and removes it before returning. It yields
// nil when nothing could be read; extraction problems are logged, not
// returned.
func (s *ScreenshotService) Extract(ctx context.Context, path, mime string) *model.ExtractedRound {
	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			logger.Ctx(ctx).Warn("screenshot.cleanup", "path", path, "err", err)
		}
	}()

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Ctx(ctx).Warn("screenshot.read", "path", path, "err", err)
		return nil
	}
	if s.extractor == nil {
		return nil
	}
	out, err := s.extractor.ExtractRound(ctx, data, mime)
	if err != nil {
		logger.Ctx(ctx).Warn("screenshot.extract", "err", err)
		return nil
	}
	if out == nil || out.Empty() {
		return nil
	}
	logger.Ctx(ctx).Info("screenshot.extract.ok", "size", len(data))
	return out
}
