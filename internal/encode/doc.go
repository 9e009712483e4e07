package encode

// Package encode wraps the external ffmpeg binary behind the Encoder
// interface. It owns output naming: converted files get a timestamped,
// collision-free name so repeated runs never overwrite prior outputs.
