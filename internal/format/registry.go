package format

import "errors"

// ErrUnsupported reports a target format alias that is not in the registry.
var ErrUnsupported = errors.New("unsupported format")

// Entry maps a user-facing alias to an ffmpeg muxer name.
type Entry struct {
	Alias  string
	Format string
	Desc   string
}

// Video formats
var Video = []Entry{
	{Alias: "mp4", Format: "mp4", Desc: "MPEG-4 Part 14"},
	{Alias: "mkv", Format: "matroska", Desc: "Matroska Multimedia Container"},
	{Alias: "avi", Format: "avi", Desc: "Audio Video Interleaved"},
	{Alias: "mov", Format: "mov", Desc: "QuickTime Movie"},
	{Alias: "flv", Format: "flv", Desc: "Flash Video"},
	{Alias: "webm", Format: "webm", Desc: "WebM Video"},
	{Alias: "mpeg", Format: "mpeg", Desc: "MPEG Program Stream"},
	{Alias: "mpg", Format: "mpeg", Desc: "MPEG Program Stream"},
	{Alias: "ts", Format: "mpegts", Desc: "MPEG Transport Stream"},
	{Alias: "m2ts", Format: "mpegts", Desc: "MPEG-2 Transport Stream"},
	{Alias: "ogv", Format: "ogg", Desc: "Ogg Video"},
	{Alias: "3gp", Format: "3gp", Desc: "3GPP Multimedia Container"},
	{Alias: "3g2", Format: "3g2", Desc: "3GPP2 Multimedia Container"},
	{Alias: "vob", Format: "vob", Desc: "DVD Video Object"},
	{Alias: "f4v", Format: "f4v", Desc: "Flash Video F4V"},
	{Alias: "wmv", Format: "asf", Desc: "Windows Media Video"},
	{Alias: "rm", Format: "rm", Desc: "RealMedia"},
	{Alias: "rmvb", Format: "rm", Desc: "RealMedia Variable Bitrate"},
}

// Audio formats
var Audio = []Entry{
	{Alias: "mp3", Format: "mp3", Desc: "MPEG Audio Layer III"},
	{Alias: "wav", Format: "wav", Desc: "Waveform Audio File Format"},
	{Alias: "flac", Format: "flac", Desc: "Free Lossless Audio Codec"},
	{Alias: "aac", Format: "aac", Desc: "Advanced Audio Coding"},
	{Alias: "m4a", Format: "ipod", Desc: "MPEG-4 Audio"},
	{Alias: "ogg", Format: "ogg", Desc: "Ogg Vorbis/Opus"},
	{Alias: "oga", Format: "ogg", Desc: "Ogg Audio"},
	{Alias: "opus", Format: "ogg", Desc: "Opus in Ogg"},
	{Alias: "wma", Format: "asf", Desc: "Windows Media Audio"},
	{Alias: "alac", Format: "ipod", Desc: "Apple Lossless Audio Codec"},
	{Alias: "amr", Format: "amr", Desc: "Adaptive Multi-Rate Audio"},
	{Alias: "ac3", Format: "ac3", Desc: "Dolby Digital AC-3"},
	{Alias: "dts", Format: "dts", Desc: "Digital Theater Systems"},
	{Alias: "eac3", Format: "eac3", Desc: "Enhanced AC-3"},
}

// Image formats
var Image = []Entry{
	{Alias: "jpg", Format: "mjpeg", Desc: "JPEG Image"},
	{Alias: "jpeg", Format: "mjpeg", Desc: "JPEG Image"},
	{Alias: "png", Format: "png", Desc: "Portable Network Graphics"},
	{Alias: "webp", Format: "webp", Desc: "WebP Image"},
	{Alias: "gif", Format: "gif", Desc: "Graphics Interchange Format"},
	{Alias: "bmp", Format: "bmp", Desc: "Bitmap Image"},
	{Alias: "tif", Format: "tiff", Desc: "Tagged Image File Format"},
	{Alias: "tiff", Format: "tiff", Desc: "Tagged Image File Format"},
	{Alias: "ico", Format: "ico", Desc: "Windows Icon"},
	{Alias: "svg", Format: "svg", Desc: "Scalable Vector Graphics"},
	{Alias: "heif", Format: "heif", Desc: "High Efficiency Image Format"},
	{Alias: "heic", Format: "hevc", Desc: "High Efficiency Image Coding"},
	{Alias: "jp2", Format: "jpeg2000", Desc: "JPEG 2000"},
	{Alias: "j2k", Format: "jpeg2000", Desc: "JPEG 2000"},
	{Alias: "jxl", Format: "jpegxl", Desc: "JPEG XL"},
}

// Subtitle formats
var Subtitle = []Entry{
	{Alias: "srt", Format: "srt", Desc: "SubRip Subtitle"},
	{Alias: "ass", Format: "ass", Desc: "Advanced SubStation Alpha"},
	{Alias: "ssa", Format: "ass", Desc: "SubStation Alpha"},
	{Alias: "vtt", Format: "webvtt", Desc: "WebVTT Subtitle"},
	{Alias: "sub", Format: "microdvd", Desc: "MicroDVD Subtitle"},
	{Alias: "idx", Format: "microdvd", Desc: "MicroDVD Index"},
	{Alias: "mks", Format: "matroska", Desc: "Matroska Subtitles"},
}

// All returns the union of every category table.
func All() []Entry {
	all := make([]Entry, 0, len(Video)+len(Audio)+len(Image)+len(Subtitle))
	all = append(all, Video...)
	all = append(all, Audio...)
	all = append(all, Image...)
	all = append(all, Subtitle...)
	return all
}

// Lookup finds the first entry whose alias or ffmpeg format name matches the
// given string exactly. Absence is a normal not-found result, not an error.
func Lookup(name string) (Entry, bool) {
	return LookupIn(name, All())
}

// LookupIn finds the first matching entry within a single category table.
func LookupIn(name string, table []Entry) (Entry, bool) {
	for _, e := range table {
		if e.Alias == name || e.Format == name {
			return e, true
		}
	}
	return Entry{}, false
}

// IsSupported reports whether the name resolves to any registry entry.
func IsSupported(name string) bool {
	_, ok := Lookup(name)
	return ok
}

// Aliases returns the alias column of a table, preserving order.
func Aliases(table []Entry) []string {
	aliases := make([]string, 0, len(table))
	for _, e := range table {
		aliases = append(aliases, e.Alias)
	}
	return aliases
}
