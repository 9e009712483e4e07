package download

import (
	"context"

	"github.com/mmcli/mmcli/internal/model"
)

// FetchOptions select the stream to download.
type FetchOptions struct {
	MediaType  model.MediaType
	Resolution string // exact resolution like "720p"; empty means highest available
	OutputDir  string
}

// FetchResult describes one fetched media file.
type FetchResult struct {
	FilePath string
	Title    string
}

// Fetcher grabs one remote media item into a directory.
type Fetcher interface {
	Fetch(ctx context.Context, url string, opts FetchOptions) (FetchResult, error)
}
