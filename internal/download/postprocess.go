package download

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/mmcli/mmcli/internal/model"
	"github.com/mmcli/mmcli/internal/platform"
)

// needsConversion reports whether a downloaded file's container differs from
// the requested target format.
func needsConversion(filePath, targetFormat string) bool {
	if targetFormat == "" {
		return false
	}
	return platform.FileExt(filePath) != strings.ToLower(targetFormat)
}

// convertIfNeeded feeds a successfully downloaded file into the conversion
// path when its container differs from the target format. The original file
// is deleted only after a successful conversion; a failed conversion keeps
// the original and leaves the download outcome successful with
// Converted=false.
func (s *Service) convertIfNeeded(ctx context.Context, outcome model.Outcome, targetFormat string) model.Outcome {
	if !outcome.Success || !needsConversion(outcome.OutputPath, targetFormat) {
		return outcome
	}

	s.logf("Converting %s to %s format...", outcome.DisplayName(), targetFormat)

	job := model.NewJob(0, outcome.OutputPath)
	job.Title = outcome.Title
	job.TargetFormat = targetFormat
	job.OutputDir = filepath.Dir(outcome.OutputPath)

	conv := s.converter.ConvertFile(ctx, job)
	if !conv.Success {
		s.logf("Failed to convert %s: %s", outcome.OutputPath, conv.Err)
		return outcome
	}

	os.Remove(outcome.OutputPath)
	return outcome.WithOutput(conv.OutputPath, true)
}

// batchConvertDownloads is the deferred playlist variant: after all downloads
// finish, the successfully downloaded files whose container differs from the
// target format are converted as one sub-batch, and converted outputs are
// mapped back onto the original per-item outcomes by source path.
func (s *Service) batchConvertDownloads(ctx context.Context, results model.BatchResult, targetFormat, outputDir string) model.BatchResult {
	var toConvert []string
	for _, outcome := range results {
		if outcome.Success && needsConversion(outcome.OutputPath, targetFormat) {
			toConvert = append(toConvert, outcome.OutputPath)
		}
	}
	if len(toConvert) == 0 {
		return results
	}

	s.logf("Batch converting %d file(s) to %s format...", len(toConvert), targetFormat)

	conversions, err := s.converter.ConvertBatch(ctx, toConvert, targetFormat, outputDir)
	if err != nil {
		s.logf("Batch conversion skipped: %v", err)
		return results
	}

	converted := make(map[string]model.Outcome, len(conversions))
	for _, conv := range conversions {
		converted[conv.Input] = conv
	}

	for i, outcome := range results {
		conv, ok := converted[outcome.OutputPath]
		if !ok || !conv.Success {
			continue
		}
		os.Remove(outcome.OutputPath)
		results[i] = outcome.WithOutput(conv.OutputPath, true)
	}
	return results
}
