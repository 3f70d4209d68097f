package media

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Nephrolytics-ai/speechall-go/pkg/logging"
	"github.com/Nephrolytics-ai/speechall-go/pkg/model"
	"github.com/Nephrolytics-ai/speechall-go/pkg/utils"
	"github.com/google/uuid"
)

// Extractor pulls the first audio track out of a video into a fresh temporary file.
type Extractor struct {
	toolkit Toolkit
	tempDir string
	preset  Preset
}

// NewExtractor uses ffmpeg when toolkit is nil and os.TempDir() when tempDir is blank.
func NewExtractor(toolkit Toolkit, tempDir string) *Extractor {
	if toolkit == nil {
		toolkit = NewFFmpeg()
	}
	return &Extractor{
		toolkit: toolkit,
		tempDir: tempDir,
		preset:  PresetStreamingM4A,
	}
}

// ExtractAudio returns the path of the extracted audio. The caller owns it and
// must delete it. On failure nothing is left behind.
func (e *Extractor) ExtractAudio(ctx context.Context, src string) (string, error) {
	log := logging.NewLogger(ctx).WithField("source", src)

	if strings.TrimSpace(src) == "" {
		err := model.WrapKind(model.ErrInvalidFile, errors.New("file path is required"))
		log.Errorf("error: %v", err)
		return "", utils.WrapIfNotNil(err)
	}
	if _, err := os.Stat(src); err != nil {
		log.Errorf("error: %v", err)
		return "", utils.WrapIfNotNil(model.WrapKind(model.ErrFileAccess, err))
	}

	asset, err := e.toolkit.Probe(ctx, src)
	if err != nil {
		log.Errorf("error: %v", err)
		return "", utils.WrapIfNotNil(model.WrapKind(model.ErrExtractionFailed, err))
	}
	if len(asset.AudioTracks) == 0 {
		log.Errorf("error: %v", model.ErrNoAudioTrack)
		return "", utils.WrapIfNotNil(model.ErrNoAudioTrack)
	}

	comp := Composition{
		Source: src,
		Track:  asset.AudioTracks[0],
		Range:  TimeRange{Start: 0, Duration: asset.Duration},
		Preset: e.preset,
	}
	dst := e.tempPath()

	log.Infof("audio_extraction track=%d dst=%q", comp.Track.Index, dst)
	if err := e.toolkit.Export(ctx, comp, dst); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("%w: %w", ctxErr, err)
		}
		if removeErr := os.Remove(dst); removeErr != nil && !errors.Is(removeErr, os.ErrNotExist) {
			log.Warnf("failed to remove partial audio file %q: %v", dst, removeErr)
		}
		log.Errorf("error: %v", err)
		return "", utils.WrapIfNotNil(model.WrapKind(model.ErrExtractionFailed, err))
	}

	return dst, nil
}

func (e *Extractor) tempPath() string {
	dir := e.tempDir
	if strings.TrimSpace(dir) == "" {
		dir = os.TempDir()
	}
	ext := e.preset.Extension
	if ext == "" {
		ext = ".m4a"
	}
	return filepath.Join(dir, uuid.NewString()+ext)
}
