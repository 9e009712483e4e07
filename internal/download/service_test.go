package download

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mmcli/mmcli/internal/batch"
	"github.com/mmcli/mmcli/internal/convert"
	"github.com/mmcli/mmcli/internal/format"
	"github.com/mmcli/mmcli/internal/model"
	"github.com/mmcli/mmcli/internal/platform"
)

// stubEncoder pretends to transcode by writing the output file. URLs listed
// in failFor fail instead.
type stubEncoder struct {
	failFor map[string]error
	calls   int
}

func (e *stubEncoder) Encode(ctx context.Context, inputPath, formatName, outputPath string) error {
	e.calls++
	if err, ok := e.failFor[inputPath]; ok {
		return err
	}
	return os.WriteFile(outputPath, []byte("encoded"), 0o644)
}

// stubFetcher writes a file per URL according to the ext table, or fails.
type stubFetcher struct {
	exts    map[string]string // url -> extension of the "downloaded" file
	failFor map[string]error
}

func (f *stubFetcher) Fetch(ctx context.Context, url string, opts FetchOptions) (FetchResult, error) {
	if err, ok := f.failFor[url]; ok {
		return FetchResult{}, err
	}
	ext, ok := f.exts[url]
	if !ok {
		return FetchResult{}, fmt.Errorf("no stream for %s", url)
	}
	title := url[strings.LastIndexByte(url, '=')+1:]
	file := filepath.Join(opts.OutputDir, title+"."+ext)
	if err := os.WriteFile(file, []byte("media"), 0o644); err != nil {
		return FetchResult{}, err
	}
	return FetchResult{FilePath: file, Title: title}, nil
}

// stubLister returns a fixed playlist.
type stubLister struct {
	title string
	items []platform.PlaylistItem
	err   error
}

func (l *stubLister) Items(ctx context.Context, url string) (string, []platform.PlaylistItem, error) {
	return l.title, l.items, l.err
}

func newService(fetcher Fetcher, lister platform.PlaylistLister, enc *stubEncoder, workers int) *Service {
	orch := batch.New(workers, nil)
	converter := convert.NewService(enc, orch, nil)
	return NewService(fetcher, converter, lister, orch, nil)
}

func TestRun_RejectsNonYouTubeURL(t *testing.T) {
	svc := newService(&stubFetcher{}, &stubLister{}, &stubEncoder{}, 1)

	_, _, err := svc.Run(context.Background(), Request{
		URL:       "https://vimeo.com/12345",
		MediaType: model.MediaVideo,
		OutputDir: t.TempDir(),
	})

	if !errors.Is(err, ErrUnsupportedURL) {
		t.Errorf("Expected ErrUnsupportedURL, got %v", err)
	}
}

func TestRun_RejectsTargetOutsideCategory(t *testing.T) {
	svc := newService(&stubFetcher{}, &stubLister{}, &stubEncoder{}, 1)

	// mp4 is a video alias, not an audio one.
	_, _, err := svc.Run(context.Background(), Request{
		URL:          "https://www.youtube.com/watch?v=abc",
		MediaType:    model.MediaAudio,
		TargetFormat: "mp4",
		OutputDir:    t.TempDir(),
	})

	if !errors.Is(err, format.ErrUnsupported) {
		t.Errorf("Expected ErrUnsupported, got %v", err)
	}
}

func TestRun_SingleVideo_NoConversionNeeded(t *testing.T) {
	url := "https://www.youtube.com/watch?v=abc"
	enc := &stubEncoder{}
	svc := newService(&stubFetcher{exts: map[string]string{url: "mp4"}}, &stubLister{}, enc, 1)
	base := t.TempDir()

	results, dir, err := svc.Run(context.Background(), Request{
		URL:          url,
		MediaType:    model.MediaVideo,
		TargetFormat: "mp4",
		OutputDir:    base,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if dir != filepath.Join(base, VideosSubdir) {
		t.Errorf("Expected videos subdir, got %s", dir)
	}
	if len(results) != 1 {
		t.Fatalf("Expected 1 outcome, got %d", len(results))
	}
	outcome := results[0]
	if !outcome.Success || outcome.Converted {
		t.Errorf("Expected unconverted success, got %+v", outcome)
	}
	if platform.FileExt(outcome.OutputPath) != "mp4" {
		t.Errorf("Expected mp4 output, got %s", outcome.OutputPath)
	}
	if enc.calls != 0 {
		t.Errorf("Expected no encoder invocation, got %d", enc.calls)
	}
}

func TestRun_SingleVideo_ConvertsMismatchedContainer(t *testing.T) {
	url := "https://www.youtube.com/watch?v=abc"
	svc := newService(&stubFetcher{exts: map[string]string{url: "webm"}}, &stubLister{}, &stubEncoder{}, 1)

	results, _, err := svc.Run(context.Background(), Request{
		URL:          url,
		MediaType:    model.MediaVideo,
		TargetFormat: "mp4",
		OutputDir:    t.TempDir(),
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	outcome := results[0]
	if !outcome.Success || !outcome.Converted {
		t.Fatalf("Expected converted success, got %+v", outcome)
	}
	if platform.FileExt(outcome.OutputPath) != "mp4" {
		t.Errorf("Expected .mp4 output, got %s", outcome.OutputPath)
	}
	if _, err := os.Stat(outcome.OutputPath); err != nil {
		t.Errorf("Expected converted file to exist: %v", err)
	}
	// The pre-conversion file is cleaned up after a successful conversion.
	webms, _ := filepath.Glob(filepath.Join(filepath.Dir(outcome.OutputPath), "*.webm"))
	if len(webms) != 0 {
		t.Errorf("Expected original .webm to be deleted, found %v", webms)
	}
}

func TestRun_SingleVideo_FailedConversionKeepsOriginal(t *testing.T) {
	url := "https://www.youtube.com/watch?v=abc"
	fetcher := &stubFetcher{exts: map[string]string{url: "webm"}}
	base := t.TempDir()

	// The encoder fails for the exact file the fetcher will produce.
	enc := &stubEncoder{failFor: map[string]error{
		filepath.Join(base, VideosSubdir, "abc.webm"): errors.New("encoder error"),
	}}
	svc := newService(fetcher, &stubLister{}, enc, 1)

	results, _, err := svc.Run(context.Background(), Request{
		URL:          url,
		MediaType:    model.MediaVideo,
		TargetFormat: "mp4",
		OutputDir:    base,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	outcome := results[0]
	if !outcome.Success {
		t.Fatal("Download itself succeeded; outcome must stay successful")
	}
	if outcome.Converted {
		t.Error("Expected converted=false after failed conversion")
	}
	if platform.FileExt(outcome.OutputPath) != "webm" {
		t.Errorf("Expected the original .webm path to surface, got %s", outcome.OutputPath)
	}
	if _, err := os.Stat(outcome.OutputPath); err != nil {
		t.Errorf("Expected the original file to be retained: %v", err)
	}
}

func TestRun_SingleAudio_NoTargetSkipsConversion(t *testing.T) {
	url := "https://www.youtube.com/watch?v=abc"
	enc := &stubEncoder{}
	svc := newService(&stubFetcher{exts: map[string]string{url: "m4a"}}, &stubLister{}, enc, 1)
	base := t.TempDir()

	results, dir, err := svc.Run(context.Background(), Request{
		URL:       url,
		MediaType: model.MediaAudio,
		OutputDir: base,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if dir != filepath.Join(base, AudiosSubdir) {
		t.Errorf("Expected audios subdir, got %s", dir)
	}
	if enc.calls != 0 {
		t.Error("Expected no conversion without a target format")
	}
	if !results[0].Success || results[0].Converted {
		t.Errorf("Expected plain success, got %+v", results[0])
	}
}

func playlistURL() string {
	return "https://www.youtube.com/playlist?list=PLtest"
}

func playlistItems(n int) []platform.PlaylistItem {
	items := make([]platform.PlaylistItem, 0, n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("vid%d", i)
		items = append(items, platform.PlaylistItem{
			VideoID: id,
			Title:   "Video " + id,
			URL:     fmt.Sprintf(platform.WatchURLTemplate, id),
		})
	}
	return items
}

func TestRun_Playlist_BatchConvertsOnlyMismatched(t *testing.T) {
	items := playlistItems(3)
	exts := map[string]string{
		items[0].URL: "webm",
		items[1].URL: "mp4", // already in the target container
		items[2].URL: "mkv",
	}
	lister := &stubLister{title: "Test List", items: items}
	svc := newService(&stubFetcher{exts: exts}, lister, &stubEncoder{}, 2)

	results, dir, err := svc.Run(context.Background(), Request{
		URL:              playlistURL(),
		MediaType:        model.MediaVideo,
		TargetFormat:     "mp4",
		OutputDir:        t.TempDir(),
		CreateSubfolders: true,
		BatchConvert:     true,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if filepath.Base(dir) != "Test List" {
		t.Errorf("Expected playlist title subfolder, got %s", dir)
	}
	if len(results) != 3 {
		t.Fatalf("Expected 3 outcomes, got %d", len(results))
	}

	// Input order preserved
	for i, outcome := range results {
		if outcome.Input != items[i].URL {
			t.Errorf("results[%d].Input = %s, expected %s", i, outcome.Input, items[i].URL)
		}
		if !outcome.Success {
			t.Errorf("results[%d] failed: %s", i, outcome.Err)
		}
	}

	// Exactly the two mismatched containers were converted.
	if !results[0].Converted || !results[2].Converted {
		t.Error("Expected webm and mkv downloads to be converted")
	}
	if results[1].Converted {
		t.Error("Expected the mp4 download to stay unconverted")
	}
	if platform.FileExt(results[1].OutputPath) != "mp4" {
		t.Errorf("Expected original mp4 path unchanged, got %s", results[1].OutputPath)
	}
	for _, i := range []int{0, 2} {
		if platform.FileExt(results[i].OutputPath) != "mp4" {
			t.Errorf("results[%d]: expected .mp4 output, got %s", i, results[i].OutputPath)
		}
	}

	// Pre-conversion files were cleaned up.
	for _, pattern := range []string{"*.webm", "*.mkv"} {
		leftovers, _ := filepath.Glob(filepath.Join(dir, pattern))
		if len(leftovers) != 0 {
			t.Errorf("Expected no %s leftovers, found %v", pattern, leftovers)
		}
	}
}

func TestRun_Playlist_FailedDownloadIsIsolated(t *testing.T) {
	items := playlistItems(3)
	exts := map[string]string{
		items[0].URL: "mp4",
		items[2].URL: "mp4",
	}
	fetcher := &stubFetcher{
		exts:    exts,
		failFor: map[string]error{items[1].URL: errors.New("stream selection failed")},
	}
	lister := &stubLister{title: "Test List", items: items}
	svc := newService(fetcher, lister, &stubEncoder{}, 2)

	results, _, err := svc.Run(context.Background(), Request{
		URL:          playlistURL(),
		MediaType:    model.MediaVideo,
		TargetFormat: "mp4",
		OutputDir:    t.TempDir(),
		BatchConvert: true,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("Expected 3 outcomes, got %d", len(results))
	}
	if !results[0].Success || !results[2].Success {
		t.Error("Expected sibling downloads to succeed")
	}
	if results[1].Success {
		t.Error("Expected the failing download to be recorded as failed")
	}
	if results[1].Err != "stream selection failed" {
		t.Errorf("Expected fetch error to be captured, got '%s'", results[1].Err)
	}
}

func TestRun_Playlist_ResolutionFailureIsFatal(t *testing.T) {
	lister := &stubLister{err: errors.New("playlist lookup failed")}
	svc := newService(&stubFetcher{}, lister, &stubEncoder{}, 1)

	_, _, err := svc.Run(context.Background(), Request{
		URL:       playlistURL(),
		MediaType: model.MediaVideo,
		OutputDir: t.TempDir(),
	})

	if err == nil || !strings.Contains(err.Error(), "playlist lookup failed") {
		t.Errorf("Expected playlist resolution error, got %v", err)
	}
}

func TestFormatSelector(t *testing.T) {
	tests := []struct {
		name     string
		opts     FetchOptions
		expected string
	}{
		{"audio", FetchOptions{MediaType: model.MediaAudio}, SelectorBestAudio},
		{"video highest", FetchOptions{MediaType: model.MediaVideo}, SelectorBestVideo},
		{
			"explicit highest",
			FetchOptions{MediaType: model.MediaVideo, Resolution: ResolutionHighest},
			SelectorBestVideo,
		},
		{
			"video exact resolution",
			FetchOptions{MediaType: model.MediaVideo, Resolution: "720p"},
			"bestvideo[height=720]+bestaudio/best[height=720]",
		},
		{
			"resolution without suffix",
			FetchOptions{MediaType: model.MediaVideo, Resolution: "480"},
			"bestvideo[height=480]+bestaudio/best[height=480]",
		},
	}

	for _, test := range tests {
		if got := formatSelector(test.opts); got != test.expected {
			t.Errorf("%s: formatSelector() = %q, expected %q", test.name, got, test.expected)
		}
	}
}
