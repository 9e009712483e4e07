package convert

import (
	"context"
	"fmt"
	"log"

	"github.com/mmcli/mmcli/internal/batch"
	"github.com/mmcli/mmcli/internal/encode"
	"github.com/mmcli/mmcli/internal/format"
	"github.com/mmcli/mmcli/internal/model"
	"github.com/mmcli/mmcli/internal/platform"
)

// Service converts media files via an external encoder.
type Service struct {
	encoder      encode.Encoder
	orchestrator *batch.Orchestrator
	logger       *log.Logger
}

// NewService creates a conversion service.
func NewService(encoder encode.Encoder, orchestrator *batch.Orchestrator, logger *log.Logger) *Service {
	return &Service{
		encoder:      encoder,
		orchestrator: orchestrator,
		logger:       logger,
	}
}

// ConvertFile is the single-item executor: it converts one file and returns
// an outcome. Every failure, including an unsupported target format, is
// captured into the outcome; this method never returns an error to its
// caller and never deletes the input file.
func (s *Service) ConvertFile(ctx context.Context, job model.Job) model.Outcome {
	entry, ok := format.Lookup(job.TargetFormat)
	if !ok {
		return model.Failed(job, fmt.Errorf("%w: %s", format.ErrUnsupported, job.TargetFormat))
	}

	outputPath := encode.OutputPath(job.Input, entry.Alias, job.OutputDir)
	if err := s.encoder.Encode(ctx, job.Input, entry.Format, outputPath); err != nil {
		return model.Failed(job, err)
	}
	return model.Succeeded(job, outputPath)
}

// ConvertBatch converts the given files to the target format, bounding
// concurrency via the orchestrator. The result holds one outcome per input
// path, in input order.
func (s *Service) ConvertBatch(ctx context.Context, paths []string, targetFormat, outputDir string) (model.BatchResult, error) {
	if err := platform.EnsureDir(outputDir); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	jobs := make([]model.Job, 0, len(paths))
	for i, path := range paths {
		job := model.NewJob(i, path)
		job.TargetFormat = targetFormat
		job.OutputDir = outputDir
		jobs = append(jobs, job)
	}

	if s.logger != nil {
		s.logger.Printf("Converting %d file(s) to %s with up to %d concurrent conversions...",
			len(jobs), targetFormat, s.orchestrator.MaxWorkers())
	}

	return s.orchestrator.Run(ctx, jobs, s.ConvertFile), nil
}

// Run handles one convert invocation: resolve the input pattern, validate the
// target format, convert the batch. Input resolution and an unknown target
// format are fatal; per-file failures are not.
func (s *Service) Run(ctx context.Context, pattern, targetFormat, outputDir string) (model.BatchResult, error) {
	if !format.IsSupported(targetFormat) {
		return nil, fmt.Errorf("%w: %s", format.ErrUnsupported, targetFormat)
	}

	paths, err := platform.ResolveInputs(pattern)
	if err != nil {
		return nil, err
	}

	return s.ConvertBatch(ctx, paths, targetFormat, outputDir)
}
