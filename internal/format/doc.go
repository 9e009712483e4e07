package format

// Package format is the static registry of media container formats: alias to
// ffmpeg muxer name, partitioned by category. Lookup is a case-sensitive exact
// match with no side effects.
