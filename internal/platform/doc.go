package platform

// Package platform contains filesystem helpers and external platform glue:
// glob input resolution, directory creation, and YouTube URL/playlist
// handling via the ytdlp library.
