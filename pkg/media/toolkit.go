package media

import (
	"context"
	"time"
)

// Toolkit is the decode/encode facility extraction runs on.
type Toolkit interface {
	// Probe lists the audio tracks of src and its overall duration.
	Probe(ctx context.Context, src string) (Asset, error)
	// Export renders comp into dst. It may leave a partial dst behind on error.
	Export(ctx context.Context, comp Composition, dst string) error
}

type Asset struct {
	AudioTracks []Track
	// Duration is negative when the container does not declare one.
	Duration time.Duration
}

type Track struct {
	Index      int
	Codec      string
	Channels   int
	SampleRate int
}

// TimeRange with a negative Duration runs to the end of the source.
type TimeRange struct {
	Start    time.Duration
	Duration time.Duration
}

// Composition is a single audio track cut out of Source.
type Composition struct {
	Source string
	Track  Track
	Range  TimeRange
	Preset Preset
}

type Preset struct {
	Name           string
	Codec          string
	Bitrate        string
	Container      string
	Extension      string
	OptimizeForWeb bool
}

// PresetStreamingM4A is a compact AAC/M4A preset meant for re-upload, not archival.
var PresetStreamingM4A = Preset{
	Name:           "streaming-m4a",
	Codec:          "aac",
	Bitrate:        "96k",
	Container:      "ipod",
	Extension:      ".m4a",
	OptimizeForWeb: true,
}
