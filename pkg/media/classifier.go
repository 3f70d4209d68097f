package media

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var videoExtensions = map[string]struct{}{
	".mp4":  {},
	".m4v":  {},
	".mov":  {},
	".qt":   {},
	".mkv":  {},
	".webm": {},
	".avi":  {},
	".wmv":  {},
	".flv":  {},
	".mpg":  {},
	".mpeg": {},
	".3gp":  {},
	".3g2":  {},
	".ts":   {},
	".mts":  {},
	".m2ts": {},
	".ogv":  {},
	".vob":  {},
}

var audioExtensions = map[string]struct{}{
	".wav":  {},
	".mp3":  {},
	".m4a":  {},
	".aac":  {},
	".flac": {},
	".ogg":  {},
	".oga":  {},
	".opus": {},
	".wma":  {},
	".aif":  {},
	".aiff": {},
	".amr":  {},
	".caf":  {},
}

// IsVideo reports whether path names a video container whose audio has to be
// extracted before upload. Unknown extensions are treated as audio; a path
// without an extension is classified by its container signature.
func IsVideo(path string) bool {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(path)))
	if ext == "" {
		return sniffVideo(path)
	}
	if _, ok := videoExtensions[ext]; ok {
		return true
	}
	return false
}

// IsAudio reports whether path carries a known audio extension.
func IsAudio(path string) bool {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(path)))
	_, ok := audioExtensions[ext]
	return ok
}

func sniffVideo(path string) bool {
	mtype, err := mimetype.DetectFile(path)
	if err != nil || mtype == nil {
		return false
	}
	return strings.HasPrefix(mtype.String(), "video/")
}
