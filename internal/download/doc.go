package download

// Package download implements the download pipeline: single videos, audio
// tracks, and whole playlists fetched through yt-dlp (via
// github.com/lrstanley/go-ytdlp), with post-processing that re-encodes a
// downloaded file when its container differs from the requested target
// format. Per-item failures become outcomes; only input resolution aborts a
// run.
