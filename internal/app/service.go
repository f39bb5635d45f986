// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"time"

	"github.com/okian/multimodal/internal/domain/media"
	"github.com/okian/multimodal/pkg/logger"
	"github.com/okian/multimodal/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

const defaultMaxParallel = 3

// Service extracts metadata for every modality and records metrics about
// what it saw. It holds no per-request state and is safe for concurrent use.
type Service struct {
	maxParallel int
	logger      logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMaxParallel bounds how many uploads of one multimodal request are
// inspected at the same time.
func WithMaxParallel(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxParallel = n
		}
	}
}

// New constructs a new Service. Without WithLogger the global logger is
// used, so logger.Init must have been called.
func New(opts ...Option) *Service {
	s := &Service{
		maxParallel: defaultMaxParallel,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Named("service")
	}
	return s
}

// ProcessText returns the character and word counts of text.
func (s *Service) ProcessText(ctx context.Context, text string) media.TextStats {
	stats := media.AnalyzeText(text)
	metrics.RecordInputProcessed(string(media.Text))
	s.logger.Debug(ctx, "text processed",
		logger.Int("length", stats.Length),
		logger.Int("wordCount", stats.WordCount),
	)
	return stats
}

// ProcessImage parses the image header of u.
func (s *Service) ProcessImage(ctx context.Context, u media.Upload) (media.ImageInfo, error) {
	if err := ctx.Err(); err != nil {
		return media.ImageInfo{}, err
	}
	metrics.RecordUploadSize(string(media.Image), u.Size())

	start := time.Now()
	info, err := media.InspectImage(u)
	if err != nil {
		metrics.RecordInputError(string(media.Image))
		metrics.RecordErrorLatency("media", "decode_failed", float64(time.Since(start).Milliseconds()))
		s.logger.Warn(ctx, "image decode failed",
			logger.String("filename", u.Filename),
			logger.Int("sizeBytes", u.Size()),
			logger.Error(err),
		)
		return media.ImageInfo{}, err
	}

	metrics.RecordInputProcessed(string(media.Image))
	metrics.RecordImageFormat(info.Format)
	s.logger.Debug(ctx, "image processed",
		logger.String("filename", info.Filename),
		logger.String("format", info.Format),
		logger.String("mode", info.Mode),
		logger.Int("width", info.Width),
		logger.Int("height", info.Height),
	)
	return info, nil
}

// ProcessAudio reports the shallow metadata of an audio upload.
func (s *Service) ProcessAudio(ctx context.Context, u media.Upload) media.FileInfo {
	return s.processFile(ctx, media.Audio, u)
}

// ProcessVideo reports the shallow metadata of a video upload.
func (s *Service) ProcessVideo(ctx context.Context, u media.Upload) media.FileInfo {
	return s.processFile(ctx, media.Video, u)
}

func (s *Service) processFile(ctx context.Context, modality media.Modality, u media.Upload) media.FileInfo {
	info := media.InspectFile(u)
	metrics.RecordUploadSize(string(modality), info.SizeBytes)
	metrics.RecordInputProcessed(string(modality))
	s.logger.Debug(ctx, string(modality)+" processed",
		logger.String("filename", info.Filename),
		logger.String("contentType", info.ContentType),
		logger.String("detectedContentType", info.DetectedContentType),
		logger.Int("sizeBytes", info.SizeBytes),
	)
	return info
}

// ProcessMultimodal extracts every modality present in in. Uploads are
// inspected concurrently; the first failure cancels the others and is
// returned.
func (s *Service) ProcessMultimodal(ctx context.Context, in media.MultimodalInput) (media.Summary, error) {
	sum := media.Summary{Received: in.Present()}

	if in.Text != "" {
		stats := s.ProcessText(ctx, in.Text)
		sum.Text = &stats
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxParallel)

	// Each goroutine owns exactly one Summary field.
	if in.Image != nil {
		g.Go(func() error {
			info, err := s.ProcessImage(gctx, *in.Image)
			if err != nil {
				return err
			}
			sum.Image = &info
			return nil
		})
	}
	if in.Audio != nil {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			info := s.ProcessAudio(gctx, *in.Audio)
			sum.Audio = &info
			return nil
		})
	}
	if in.Video != nil {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			info := s.ProcessVideo(gctx, *in.Video)
			sum.Video = &info
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return media.Summary{}, err
	}

	metrics.RecordModalitiesPerRequest(len(sum.Received))
	s.logger.Debug(ctx, "multimodal processed", logger.Int("inputs", len(sum.Received)))
	return sum, nil
}
