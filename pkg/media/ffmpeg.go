package media

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/Nephrolytics-ai/speechall-go/pkg/logging"
	"github.com/Nephrolytics-ai/speechall-go/pkg/utils"
)

const (
	defaultFFmpegBinary  = "ffmpeg"
	defaultFFprobeBinary = "ffprobe"
)

// FFmpeg runs the ffprobe and ffmpeg binaries found on PATH unless overridden.
type FFmpeg struct {
	FFmpegPath  string
	FFprobePath string
}

func NewFFmpeg() *FFmpeg {
	return &FFmpeg{
		FFmpegPath:  defaultFFmpegBinary,
		FFprobePath: defaultFFprobeBinary,
	}
}

// Available reports whether both binaries can be resolved.
func (f *FFmpeg) Available() bool {
	if _, err := exec.LookPath(f.ffprobe()); err != nil {
		return false
	}
	_, err := exec.LookPath(f.ffmpeg())
	return err == nil
}

type ffprobeOutput struct {
	Streams []struct {
		Index      int    `json:"index"`
		CodecName  string `json:"codec_name"`
		CodecType  string `json:"codec_type"`
		Channels   int    `json:"channels"`
		SampleRate string `json:"sample_rate"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

func (f *FFmpeg) Probe(ctx context.Context, src string) (Asset, error) {
	log := logging.NewLogger(ctx)
	cmd := exec.CommandContext(ctx, f.ffprobe(), probeArgs(src)...)
	out, err := cmd.Output()
	if err != nil {
		err = commandError("ffprobe", err)
		log.Errorf("error: %v", err)
		return Asset{}, utils.WrapIfNotNil(err)
	}

	asset, err := parseProbeOutput(out)
	if err != nil {
		log.Errorf("error: %v", err)
		return Asset{}, utils.WrapIfNotNil(err)
	}
	return asset, nil
}

func (f *FFmpeg) Export(ctx context.Context, comp Composition, dst string) error {
	log := logging.NewLogger(ctx)
	args := exportArgs(comp, dst)
	log.Debugf("ffmpeg %s", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, f.ffmpeg(), args...)
	if _, err := cmd.Output(); err != nil {
		err = commandError("ffmpeg", err)
		log.Errorf("error: %v", err)
		return utils.WrapIfNotNil(err)
	}
	return nil
}

func (f *FFmpeg) ffmpeg() string {
	if strings.TrimSpace(f.FFmpegPath) == "" {
		return defaultFFmpegBinary
	}
	return f.FFmpegPath
}

func (f *FFmpeg) ffprobe() string {
	if strings.TrimSpace(f.FFprobePath) == "" {
		return defaultFFprobeBinary
	}
	return f.FFprobePath
}

func probeArgs(src string) []string {
	return []string{
		"-v", "error",
		"-select_streams", "a",
		"-show_entries", "stream=index,codec_name,codec_type,channels,sample_rate:format=duration",
		"-of", "json",
		src,
	}
}

func parseProbeOutput(out []byte) (Asset, error) {
	var parsed ffprobeOutput
	if err := json.Unmarshal(out, &parsed); err != nil {
		return Asset{}, fmt.Errorf("parse ffprobe output: %w", err)
	}

	asset := Asset{Duration: -1}
	if seconds, err := strconv.ParseFloat(strings.TrimSpace(parsed.Format.Duration), 64); err == nil && seconds >= 0 {
		asset.Duration = time.Duration(seconds * float64(time.Second))
	}

	for _, stream := range parsed.Streams {
		if stream.CodecType != "" && stream.CodecType != "audio" {
			continue
		}
		sampleRate, _ := strconv.Atoi(stream.SampleRate)
		asset.AudioTracks = append(asset.AudioTracks, Track{
			Index:      stream.Index,
			Codec:      stream.CodecName,
			Channels:   stream.Channels,
			SampleRate: sampleRate,
		})
	}
	return asset, nil
}

// exportArgs builds: ffmpeg -nostdin -y -v error -i src [-ss s] [-t d] -map 0:N -vn -sn -dn -c:a codec -b:a rate [-movflags +faststart] -f container dst
func exportArgs(comp Composition, dst string) []string {
	args := []string{"-nostdin", "-y", "-v", "error", "-i", comp.Source}
	if comp.Range.Start > 0 {
		args = append(args, "-ss", formatSeconds(comp.Range.Start))
	}
	if comp.Range.Duration >= 0 {
		args = append(args, "-t", formatSeconds(comp.Range.Duration))
	}
	args = append(args,
		"-map", "0:"+strconv.Itoa(comp.Track.Index),
		"-vn", "-sn", "-dn",
	)

	preset := comp.Preset
	if preset.Codec != "" {
		args = append(args, "-c:a", preset.Codec)
	}
	if preset.Bitrate != "" {
		args = append(args, "-b:a", preset.Bitrate)
	}
	if preset.OptimizeForWeb {
		args = append(args, "-movflags", "+faststart")
	}
	if preset.Container != "" {
		args = append(args, "-f", preset.Container)
	}
	return append(args, dst)
}

func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', 3, 64)
}

func commandError(name string, err error) error {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		if stderr != "" {
			return fmt.Errorf("%s failed: %s: %w", name, stderr, err)
		}
	}
	return fmt.Errorf("%s: %w", name, err)
}
