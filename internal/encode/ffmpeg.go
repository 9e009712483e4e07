package encode

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// FFmpeg executable and argument constants
const (
	FFmpegCommand  = "ffmpeg"
	FFmpegLogLevel = "error"

	// Output naming
	TimestampLayout = "20060102_150405"
)

// Encoder converts one media file into a target container format.
type Encoder interface {
	Encode(ctx context.Context, inputPath, formatName, outputPath string) error
}

// FFmpeg shells out to the ffmpeg binary.
type FFmpeg struct{}

// NewFFmpeg creates an ffmpeg-backed encoder.
func NewFFmpeg() *FFmpeg {
	return &FFmpeg{}
}

// Encode runs one blocking ffmpeg invocation. A failed run removes the
// partial output file and returns the tail of ffmpeg's stderr in the error.
func (f *FFmpeg) Encode(ctx context.Context, inputPath, formatName, outputPath string) error {
	args := BuildFFmpegArgs(inputPath, formatName, outputPath)
	cmd := exec.CommandContext(ctx, FFmpegCommand, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		// Remove partial output file
		os.Remove(outputPath)
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("ffmpeg failed: %s: %w", lastLine(msg), err)
		}
		return fmt.Errorf("ffmpeg failed: %w", err)
	}
	return nil
}

// BuildFFmpegArgs builds the ffmpeg command arguments for a container
// conversion.
func BuildFFmpegArgs(inputPath, formatName, outputPath string) []string {
	return []string{
		"-y", // never prompt on stale leftovers
		"-v", FFmpegLogLevel,
		"-i", inputPath,
		"-f", formatName,
		outputPath,
	}
}

// OutputPath returns a collision-free destination for converting inputPath to
// the given alias inside outputDir: stem plus a microsecond timestamp plus the
// target extension. If the generated name somehow already exists, a numeric
// suffix is appended until it does not.
func OutputPath(inputPath, alias, outputDir string) string {
	name := outputName(inputPath, alias, time.Now())
	path := filepath.Join(outputDir, name)
	for seq := 1; ; seq++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path
		}
		ext := filepath.Ext(name)
		path = filepath.Join(outputDir, fmt.Sprintf("%s_%d%s", strings.TrimSuffix(name, ext), seq, ext))
	}
}

func outputName(inputPath, alias string, now time.Time) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	micro := now.Nanosecond() / 1000
	return fmt.Sprintf("%s_%s_%06d.%s", stem, now.Format(TimestampLayout), micro, alias)
}

func lastLine(s string) string {
	lines := strings.Split(s, "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
