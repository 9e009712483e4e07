package download

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"

	"github.com/mmcli/mmcli/internal/batch"
	"github.com/mmcli/mmcli/internal/convert"
	"github.com/mmcli/mmcli/internal/format"
	"github.com/mmcli/mmcli/internal/model"
	"github.com/mmcli/mmcli/internal/platform"
)

// Output directory layout
const (
	VideosSubdir   = "videos"
	AudiosSubdir   = "audios"
	PlaylistSubdir = "playlist"
)

// ErrUnsupportedURL reports a URL that does not belong to a supported
// platform. It is fatal to the invocation: there is no batch to run.
var ErrUnsupportedURL = errors.New("unsupported URL, currently only YouTube URLs are supported")

// Request describes one download invocation.
type Request struct {
	URL              string
	MediaType        model.MediaType
	Resolution       string // video only; empty means highest available
	TargetFormat     string // format alias; empty keeps the downloaded container
	OutputDir        string // base output directory
	CreateSubfolders bool   // playlist: group files under a title subfolder
	BatchConvert     bool   // playlist: defer conversion until all downloads finish
}

// Service downloads media and post-processes the results.
type Service struct {
	fetcher      Fetcher
	converter    *convert.Service
	playlists    platform.PlaylistLister
	orchestrator *batch.Orchestrator
	logger       *log.Logger
}

// NewService creates a download service.
func NewService(fetcher Fetcher, converter *convert.Service, playlists platform.PlaylistLister, orchestrator *batch.Orchestrator, logger *log.Logger) *Service {
	return &Service{
		fetcher:      fetcher,
		converter:    converter,
		playlists:    playlists,
		orchestrator: orchestrator,
		logger:       logger,
	}
}

// Run routes the request to the single or playlist path. The returned batch
// result holds one outcome per item; the directory files were saved to comes
// back for the summary. Only input resolution errors are returned as errors.
func (s *Service) Run(ctx context.Context, req Request) (model.BatchResult, string, error) {
	if !platform.IsYouTubeURL(req.URL) {
		return nil, "", fmt.Errorf("%w: %s", ErrUnsupportedURL, req.URL)
	}
	if err := validateTarget(req); err != nil {
		return nil, "", err
	}

	if platform.IsPlaylistURL(req.URL) {
		return s.runPlaylist(ctx, req)
	}
	return s.runSingle(ctx, req)
}

// validateTarget checks a non-empty target format against the table for the
// requested media category.
func validateTarget(req Request) error {
	if req.TargetFormat == "" {
		return nil
	}
	table := format.Video
	if req.MediaType == model.MediaAudio {
		table = format.Audio
	}
	if _, ok := format.LookupIn(req.TargetFormat, table); !ok {
		return fmt.Errorf("%w: %s", format.ErrUnsupported, req.TargetFormat)
	}
	return nil
}

func (s *Service) runSingle(ctx context.Context, req Request) (model.BatchResult, string, error) {
	dir := filepath.Join(req.OutputDir, mediaSubdir(req.MediaType))
	if err := platform.EnsureDir(dir); err != nil {
		return nil, "", fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	s.logf("Downloading %s from: %s", req.MediaType, req.URL)

	job := model.NewJob(0, req.URL)
	job.OutputDir = dir

	outcome := s.orchestrator.Run(ctx, []model.Job{job}, s.fetchExecutor(req))[0]
	outcome = s.convertIfNeeded(ctx, outcome, req.TargetFormat)

	return model.BatchResult{outcome}, dir, nil
}

func (s *Service) runPlaylist(ctx context.Context, req Request) (model.BatchResult, string, error) {
	title, items, err := s.playlists.Items(ctx, req.URL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve playlist: %w", err)
	}

	dir := filepath.Join(req.OutputDir, PlaylistSubdir, mediaSubdir(req.MediaType))
	if req.CreateSubfolders {
		dir = filepath.Join(dir, platform.SanitizeFilename(title))
	}
	if err := platform.EnsureDir(dir); err != nil {
		return nil, "", fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	s.logf("Downloading playlist %q (%d items)...", title, len(items))

	jobs := make([]model.Job, 0, len(items))
	for i, item := range items {
		job := model.NewJob(i, item.URL)
		job.Title = item.Title
		job.OutputDir = dir
		jobs = append(jobs, job)
	}

	results := s.orchestrator.Run(ctx, jobs, s.fetchExecutor(req))

	if req.TargetFormat != "" {
		if req.BatchConvert {
			results = s.batchConvertDownloads(ctx, results, req.TargetFormat, dir)
		} else {
			for i, outcome := range results {
				results[i] = s.convertIfNeeded(ctx, outcome, req.TargetFormat)
			}
		}
	}

	return results, dir, nil
}

// fetchExecutor is the single-item executor for downloads: it performs one
// opaque fetch and converts any failure into a failed outcome.
func (s *Service) fetchExecutor(req Request) batch.Func {
	return func(ctx context.Context, job model.Job) model.Outcome {
		res, err := s.fetcher.Fetch(ctx, job.Input, FetchOptions{
			MediaType:  req.MediaType,
			Resolution: req.Resolution,
			OutputDir:  job.OutputDir,
		})
		if err != nil {
			return model.Failed(job, err)
		}
		outcome := model.Succeeded(job, res.FilePath)
		if outcome.Title == "" {
			outcome.Title = res.Title
		}
		return outcome
	}
}

func mediaSubdir(mt model.MediaType) string {
	if mt == model.MediaAudio {
		return AudiosSubdir
	}
	return VideosSubdir
}

func (s *Service) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
