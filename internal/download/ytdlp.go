package download

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lrstanley/go-ytdlp"

	"github.com/mmcli/mmcli/internal/model"
)

// Output template for yt-dlp
const (
	OutputTemplate = "%(title)s.%(ext)s"
)

// Format selectors
const (
	SelectorBestVideo = "bestvideo+bestaudio/best"
	SelectorBestAudio = "bestaudio/best"

	// ResolutionHighest selects the best available stream instead of an
	// exact height.
	ResolutionHighest = "highest"
)

// YTDLPFetcher fetches media through the yt-dlp tool.
type YTDLPFetcher struct{}

// NewYTDLPFetcher creates a yt-dlp backed fetcher.
func NewYTDLPFetcher() *YTDLPFetcher {
	return &YTDLPFetcher{}
}

// Fetch downloads one media item and reports the written file path and title.
func (f *YTDLPFetcher) Fetch(ctx context.Context, url string, opts FetchOptions) (FetchResult, error) {
	dl := ytdlp.New().
		ForceOverwrites().
		RestrictFilenames().
		Format(formatSelector(opts)).
		Output(filepath.Join(opts.OutputDir, OutputTemplate))

	result, err := dl.Run(ctx, url)
	if err != nil {
		return FetchResult{}, fmt.Errorf("yt-dlp failed: %w", err)
	}

	info, err := result.GetExtractedInfo()
	if err != nil || len(info) == 0 {
		return FetchResult{}, fmt.Errorf("yt-dlp produced no download info for %s", url)
	}

	res := FetchResult{}
	if info[0].Filename != nil {
		res.FilePath = *info[0].Filename
	}
	if info[0].Title != nil {
		res.Title = *info[0].Title
	}
	if res.FilePath == "" {
		return FetchResult{}, fmt.Errorf("yt-dlp reported no output file for %s", url)
	}
	return res, nil
}

// formatSelector builds the yt-dlp format expression for the requested
// stream: exact height when a resolution is given, otherwise the highest
// available for video and best-audio for audio.
func formatSelector(opts FetchOptions) string {
	if opts.MediaType == model.MediaAudio {
		return SelectorBestAudio
	}
	if opts.Resolution == "" || opts.Resolution == ResolutionHighest {
		return SelectorBestVideo
	}
	height := strings.TrimSuffix(opts.Resolution, "p")
	return fmt.Sprintf("bestvideo[height=%s]+bestaudio/best[height=%s]", height, height)
}
