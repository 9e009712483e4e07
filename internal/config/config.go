// Package config loads tool configuration from a TOML file discovered in the
// working directory, merged over compiled-in defaults. The loaded Config is
// an explicit value passed into services; there is no global state.
package config

import (
	"fmt"
	"os"
	"runtime"

	"github.com/BurntSushi/toml"
	"github.com/shirou/gopsutil/v3/cpu"
)

// Config file names, checked in order.
var configFileNames = []string{"config.toml", "mmcli.toml"}

// Worker limits
const (
	MinWorkers = 1
	MaxWorkers = 10
)

// Default values
const (
	DefaultDownloadDir     = "downloads"
	DefaultConversionDir   = "converter"
	DefaultVideoFormat     = "mp4"
	DefaultVideoResolution = "highest"
	DefaultAudioFormat     = "m4a"
	DefaultPlaylistWorkers = 3
)

// Config is the root configuration document.
type Config struct {
	Downloads  Downloads  `toml:"downloads"`
	Conversion Conversion `toml:"conversion"`
	General    General    `toml:"general"`
}

// Downloads configures the download command.
type Downloads struct {
	OutputDir string        `toml:"output_dir"`
	Video     VideoDefaults `toml:"video"`
	Audio     AudioDefaults `toml:"audio"`
	Playlist  Playlist      `toml:"playlist"`
}

// VideoDefaults are the video download defaults.
type VideoDefaults struct {
	Format     string `toml:"format"`
	Resolution string `toml:"resolution"`
}

// AudioDefaults are the audio download defaults.
type AudioDefaults struct {
	Format string `toml:"format"`
}

// Playlist configures playlist downloads.
type Playlist struct {
	MaxWorkers       int  `toml:"max_workers"`
	CreateSubfolders bool `toml:"create_subfolders"`
	BatchConvert     bool `toml:"batch_convert"`
}

// Conversion configures the convert command.
type Conversion struct {
	OutputDir  string `toml:"output_dir"`
	MaxWorkers int    `toml:"max_workers"`
}

// General holds cross-cutting options.
type General struct {
	Verbose bool `toml:"verbose"`
}

// Default returns the compiled-in configuration.
func Default() Config {
	return Config{
		Downloads: Downloads{
			OutputDir: DefaultDownloadDir,
			Video: VideoDefaults{
				Format:     DefaultVideoFormat,
				Resolution: DefaultVideoResolution,
			},
			Audio: AudioDefaults{
				Format: DefaultAudioFormat,
			},
			Playlist: Playlist{
				MaxWorkers:       DefaultPlaylistWorkers,
				CreateSubfolders: true,
				BatchConvert:     true,
			},
		},
		Conversion: Conversion{
			OutputDir:  DefaultConversionDir,
			MaxWorkers: DefaultPlaylistWorkers,
		},
	}
}

// Load reads configuration from the given path, or discovers a config file in
// the working directory when path is empty. Missing files yield the defaults;
// a file that exists but does not decode is an error. Decoding on top of the
// default value merges user keys over defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = discover()
		if path == "" {
			return cfg, nil
		}
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load config from %s: %w", path, err)
	}
	return cfg, nil
}

func discover() string {
	for _, name := range configFileNames {
		if info, err := os.Stat(name); err == nil && !info.IsDir() {
			return name
		}
	}
	return ""
}

// WorkerCount resolves the effective concurrency cap: a positive CLI override
// wins, then the configured value; zero means auto-size from the logical CPU
// count. The result is clamped to [MinWorkers, MaxWorkers].
func WorkerCount(override, configured int) int {
	workers := configured
	if override > 0 {
		workers = override
	}
	if workers == 0 {
		workers = autoWorkers()
	}
	return clampWorkers(workers)
}

func autoWorkers() int {
	count, err := cpu.Counts(true)
	if err != nil || count < 1 {
		count = runtime.NumCPU()
	}
	return count
}

func clampWorkers(n int) int {
	if n < MinWorkers {
		return MinWorkers
	}
	if n > MaxWorkers {
		return MaxWorkers
	}
	return n
}
