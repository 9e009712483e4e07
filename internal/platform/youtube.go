package platform

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ytget/ytdlp/v2"
)

// Timeout constants
const (
	DefaultPlaylistTimeout = 60 * time.Second
)

// URL parameters and separators
const (
	PlaylistParam  = "list="
	ParamSeparator = "&"
)

// URL templates
const (
	WatchURLTemplate = "https://www.youtube.com/watch?v=%s"
)

// Playlist title constants
const (
	MinPrefixLength     = 10
	PlaylistTitleSuffix = " Playlist"
	DefaultPlaylistName = "unknown_playlist"
)

// IsYouTubeURL reports whether the URL points at YouTube.
func IsYouTubeURL(url string) bool {
	return strings.Contains(url, "youtube.com") || strings.Contains(url, "youtu.be")
}

// IsPlaylistURL reports whether the URL addresses a playlist.
func IsPlaylistURL(url string) bool {
	return strings.Contains(url, PlaylistParam)
}

// ExtractPlaylistID extracts the playlist ID from various URL formats.
func ExtractPlaylistID(url string) string {
	if !strings.Contains(url, PlaylistParam) {
		return ""
	}
	parts := strings.Split(url, PlaylistParam)
	if len(parts) < 2 {
		return ""
	}
	id := parts[1]
	if strings.Contains(id, ParamSeparator) {
		id = strings.Split(id, ParamSeparator)[0]
	}
	return id
}

// PlaylistItem is one video within a resolved playlist.
type PlaylistItem struct {
	VideoID string
	Title   string
	URL     string
}

// PlaylistLister enumerates the videos of a playlist URL.
type PlaylistLister interface {
	Items(ctx context.Context, url string) (title string, items []PlaylistItem, err error)
}

// PlaylistResolver resolves playlists through the ytdlp library.
type PlaylistResolver struct {
	timeout time.Duration
}

// NewPlaylistResolver creates a resolver with the default timeout.
func NewPlaylistResolver() *PlaylistResolver {
	return &PlaylistResolver{timeout: DefaultPlaylistTimeout}
}

// SetTimeout sets the timeout for playlist resolution.
func (r *PlaylistResolver) SetTimeout(timeout time.Duration) {
	r.timeout = timeout
}

// Items enumerates all videos in the playlist, in playlist order.
func (r *PlaylistResolver) Items(ctx context.Context, url string) (string, []PlaylistItem, error) {
	if !IsPlaylistURL(url) {
		return "", nil, fmt.Errorf("invalid playlist URL: %s", url)
	}
	playlistID := ExtractPlaylistID(url)
	if playlistID == "" {
		return "", nil, fmt.Errorf("could not extract playlist ID from URL: %s", url)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	d := ytdlp.New()
	raw, err := d.GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return "", nil, fmt.Errorf("failed to get playlist items: %w", err)
	}

	items := make([]PlaylistItem, 0, len(raw))
	for _, it := range raw {
		items = append(items, PlaylistItem{
			VideoID: it.VideoID,
			Title:   it.Title,
			URL:     fmt.Sprintf(WatchURLTemplate, it.VideoID),
		})
	}
	return PlaylistTitle(items), items, nil
}

// PlaylistTitle derives a display title for a playlist from its video titles.
func PlaylistTitle(items []PlaylistItem) string {
	if len(items) == 0 {
		return DefaultPlaylistName
	}
	if len(items) > 1 {
		prefix := commonPrefix(items[0].Title, items[1].Title)
		if len(prefix) > MinPrefixLength {
			return strings.TrimSpace(prefix) + PlaylistTitleSuffix
		}
	}
	return items[0].Title + PlaylistTitleSuffix
}

func commonPrefix(s1, s2 string) string {
	n := min(len(s1), len(s2))
	for i := 0; i < n; i++ {
		if s1[i] != s2[i] {
			return s1[:i]
		}
	}
	return s1[:n]
}
