package media

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ClassifierSuite struct {
	suite.Suite
}

func TestClassifierSuite(t *testing.T) {
	suite.Run(t, new(ClassifierSuite))
}

func (s *ClassifierSuite) TestVideoExtensions() {
	for _, name := range []string{"clip.mp4", "CLIP.MOV", "talk.mkv", "/tmp/x/lecture.webm", "a.m4v", "b.avi"} {
		s.True(IsVideo(name), name)
	}
}

func (s *ClassifierSuite) TestAudioExtensionsAreNotVideo() {
	for _, name := range []string{"note.wav", "song.mp3", "memo.m4a", "x.flac", "y.ogg", "z.opus"} {
		s.False(IsVideo(name), name)
		s.True(IsAudio(name), name)
	}
}

func (s *ClassifierSuite) TestUnknownExtensionFailsOpen() {
	s.False(IsVideo("recording.xyz"))
	s.False(IsVideo("notes.txt"))
	s.False(IsAudio("recording.xyz"))
}

func (s *ClassifierSuite) TestMissingExtensionlessFileIsNotVideo() {
	s.False(IsVideo(filepath.Join(s.T().TempDir(), "missing")))
}

func (s *ClassifierSuite) TestExtensionlessTextFileIsNotVideo() {
	path := filepath.Join(s.T().TempDir(), "upload")
	s.Require().NoError(os.WriteFile(path, []byte("plain words, no container"), 0o600))

	s.False(IsVideo(path))
}

func (s *ClassifierSuite) TestExtensionlessMP4IsVideo() {
	ftyp := []byte{
		0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p',
		'i', 's', 'o', 'm', 0x00, 0x00, 0x02, 0x00,
		'i', 's', 'o', 'm', 'i', 's', 'o', '2',
		0x00, 0x00, 0x00, 0x08, 'f', 'r', 'e', 'e',
	}
	path := filepath.Join(s.T().TempDir(), "upload")
	s.Require().NoError(os.WriteFile(path, ftyp, 0o600))

	s.True(IsVideo(path))
}
