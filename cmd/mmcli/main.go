package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/mmcli/mmcli/internal/batch"
	"github.com/mmcli/mmcli/internal/config"
	"github.com/mmcli/mmcli/internal/convert"
	"github.com/mmcli/mmcli/internal/download"
	"github.com/mmcli/mmcli/internal/encode"
	"github.com/mmcli/mmcli/internal/model"
	"github.com/mmcli/mmcli/internal/platform"
	"github.com/mmcli/mmcli/internal/report"
)

const version = "1.0.0"

const usage = `mmcli - download and convert media files

Usage:
  mmcli download video -u <url> [-r <resolution>] [-f <format>] [-o <dir>]
  mmcli download audio -u <url> [-f <format>] [-o <dir>]
  mmcli convert -p <path-or-glob> -t <format> [-o <dir>] [-w <workers>]
  mmcli --version

Examples:
  mmcli download video -u https://www.youtube.com/watch?v=dQw4w9WgXcQ -r 720p
  mmcli download audio -u https://www.youtube.com/watch?v=dQw4w9WgXcQ -f mp3
  mmcli convert -p "clips/*.mkv" -t mp4 -w 4
`

func main() {
	// Environment variables may be set manually; a missing .env is fine.
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}
	if os.Args[1] == "--version" || os.Args[1] == "version" {
		fmt.Printf("mmcli version %s\n", version)
		return
	}

	cfg, err := config.Load(os.Getenv("MMCLI_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if dir := os.Getenv("MMCLI_OUTPUT_DIR"); dir != "" {
		cfg.Downloads.OutputDir = dir
		cfg.Conversion.OutputDir = dir
	}

	logger := log.New(os.Stdout, "", 0)
	if cfg.General.Verbose {
		logger.SetFlags(log.LstdFlags)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Println("Received interrupt signal, cancelling...")
		cancel()
	}()

	switch os.Args[1] {
	case "download":
		err = runDownload(ctx, cfg, logger, os.Args[2:])
	case "convert":
		err = runConvert(ctx, cfg, logger, os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command %q\n\n", os.Args[1])
		fmt.Print(usage)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runDownload(ctx context.Context, cfg config.Config, logger *log.Logger, args []string) error {
	if len(args) < 1 || (args[0] != "video" && args[0] != "audio") {
		return fmt.Errorf("download requires a media type: video or audio")
	}
	mediaType := model.MediaVideo
	if args[0] == "audio" {
		mediaType = model.MediaAudio
	}

	fs := flag.NewFlagSet("download "+args[0], flag.ExitOnError)
	var url, resolution, targetFormat, outputDir string
	fs.StringVar(&url, "url", "", "video or playlist URL")
	fs.StringVar(&url, "u", "", "shorthand for -url")
	fs.StringVar(&targetFormat, "format", "", "target container format")
	fs.StringVar(&targetFormat, "f", "", "shorthand for -format")
	fs.StringVar(&outputDir, "output-dir", cfg.Downloads.OutputDir, "base output directory")
	fs.StringVar(&outputDir, "o", cfg.Downloads.OutputDir, "shorthand for -output-dir")
	if mediaType == model.MediaVideo {
		fs.StringVar(&resolution, "resolution", cfg.Downloads.Video.Resolution, "video resolution (e.g. 720p, or highest)")
		fs.StringVar(&resolution, "r", cfg.Downloads.Video.Resolution, "shorthand for -resolution")
	}
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	if url == "" {
		return fmt.Errorf("the -url flag is required")
	}
	if targetFormat == "" {
		if mediaType == model.MediaVideo {
			targetFormat = cfg.Downloads.Video.Format
		} else {
			targetFormat = cfg.Downloads.Audio.Format
		}
	}

	orchestrator := batch.New(config.WorkerCount(0, cfg.Downloads.Playlist.MaxWorkers), logger)
	converter := convert.NewService(encode.NewFFmpeg(), orchestrator, logger)
	svc := download.NewService(download.NewYTDLPFetcher(), converter, platform.NewPlaylistResolver(), orchestrator, logger)

	results, dir, err := svc.Run(ctx, download.Request{
		URL:              url,
		MediaType:        mediaType,
		Resolution:       resolution,
		TargetFormat:     targetFormat,
		OutputDir:        outputDir,
		CreateSubfolders: cfg.Downloads.Playlist.CreateSubfolders,
		BatchConvert:     cfg.Downloads.Playlist.BatchConvert,
	})
	if err != nil {
		return err
	}

	fmt.Println(report.RenderDownload(results, dir))
	return nil
}

func runConvert(ctx context.Context, cfg config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	var pattern, targetFormat, outputDir string
	var maxWorkers int
	fs.StringVar(&pattern, "path", "", "file path or glob pattern to convert")
	fs.StringVar(&pattern, "p", "", "shorthand for -path")
	fs.StringVar(&targetFormat, "to", "", "target format")
	fs.StringVar(&targetFormat, "t", "", "shorthand for -to")
	fs.StringVar(&outputDir, "output-dir", cfg.Conversion.OutputDir, "output directory")
	fs.StringVar(&outputDir, "o", cfg.Conversion.OutputDir, "shorthand for -output-dir")
	fs.IntVar(&maxWorkers, "max-workers", 0, "number of concurrent conversions (0 = auto)")
	fs.IntVar(&maxWorkers, "w", 0, "shorthand for -max-workers")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if pattern == "" || targetFormat == "" {
		return fmt.Errorf("the -path and -to flags are required")
	}

	orchestrator := batch.New(config.WorkerCount(maxWorkers, cfg.Conversion.MaxWorkers), logger)
	svc := convert.NewService(encode.NewFFmpeg(), orchestrator, logger)

	results, err := svc.Run(ctx, pattern, targetFormat, outputDir)
	if err != nil {
		return err
	}

	fmt.Println(report.RenderConversion(results, targetFormat, outputDir))
	return nil
}
