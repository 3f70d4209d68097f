package upload

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/Nephrolytics-ai/speechall-go/pkg/logging"
	"github.com/Nephrolytics-ai/speechall-go/pkg/media"
	"github.com/Nephrolytics-ai/speechall-go/pkg/model"
	"github.com/Nephrolytics-ai/speechall-go/pkg/utils"
	"github.com/gabriel-vasile/mimetype"
)

// DefaultContentType is sent when the audio type cannot be determined.
const DefaultContentType = "audio/*"

type AudioExtractor interface {
	ExtractAudio(ctx context.Context, src string) (string, error)
}

// Builder turns a media path into a Body, extracting audio from video first.
type Builder struct {
	extractor AudioExtractor
	isVideo   func(path string) bool
}

// NewBuilder falls back to an ffmpeg-backed extractor writing to os.TempDir().
func NewBuilder(extractor AudioExtractor) *Builder {
	if extractor == nil {
		extractor = media.NewExtractor(nil, "")
	}
	return &Builder{
		extractor: extractor,
		isVideo:   media.IsVideo,
	}
}

// Prepare opens path for a single streamed upload. When path is a video the
// extracted audio is streamed instead and the returned Body owns (and deletes
// on Close) the temporary file. The file is never read into memory.
func (b *Builder) Prepare(ctx context.Context, path string) (*Body, error) {
	log := logging.NewLogger(ctx)
	if strings.TrimSpace(path) == "" {
		err := model.WrapKind(model.ErrInvalidFile, errors.New("file path is required"))
		log.Errorf("error: %v", err)
		return nil, utils.WrapIfNotNil(err)
	}

	audioPath := path
	var cleanup []func() error
	switch {
	case b.isVideo(path):
		extracted, err := b.extractor.ExtractAudio(ctx, path)
		if err != nil {
			log.Errorf("error: %v", err)
			return nil, utils.WrapIfNotNil(err)
		}
		audioPath = extracted
		cleanup = append(cleanup, removeFile(extracted))
	case !media.IsAudio(path):
		log.Debugf("unrecognised media extension for %q, uploading as-is", path)
	}

	body, err := openBody(audioPath, cleanup)
	if err != nil {
		for _, fn := range cleanup {
			if cleanupErr := fn(); cleanupErr != nil {
				log.Warnf("failed to remove temporary audio %q: %v", audioPath, cleanupErr)
			}
		}
		log.Errorf("error: %v", err)
		return nil, utils.WrapIfNotNil(err)
	}
	return body, nil
}

func openBody(path string, cleanup []func() error) (*Body, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, model.WrapKind(model.ErrFileAccess, err)
	}

	length := UnknownLength()
	info, err := file.Stat()
	if err == nil {
		if info.IsDir() {
			_ = file.Close()
			return nil, model.WrapKind(model.ErrInvalidFile, fmt.Errorf("%s is a directory", path))
		}
		if info.Mode().IsRegular() {
			length = KnownLength(info.Size())
		}
	}

	return newBody(file, length, resolveContentType(path), cleanup...), nil
}

var audioContentTypes = map[string]string{
	".wav":  "audio/wav",
	".mp3":  "audio/mpeg",
	".m4a":  "audio/mp4",
	".aac":  "audio/aac",
	".flac": "audio/flac",
	".ogg":  "audio/ogg",
	".oga":  "audio/ogg",
	".opus": "audio/opus",
	".amr":  "audio/amr",
	".aif":  "audio/aiff",
	".aiff": "audio/aiff",
}

func resolveContentType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if contentType, ok := audioContentTypes[ext]; ok {
		return contentType
	}

	if mtype, err := mimetype.DetectFile(path); err == nil && mtype != nil {
		if contentType := baseMediaType(mtype.String()); strings.HasPrefix(contentType, "audio/") {
			return contentType
		}
	}

	if contentType := baseMediaType(mime.TypeByExtension(ext)); strings.HasPrefix(contentType, "audio/") {
		return contentType
	}
	return DefaultContentType
}

// baseMediaType strips parameters such as "; charset=utf-8".
func baseMediaType(contentType string) string {
	return strings.TrimSpace(strings.Split(contentType, ";")[0])
}
