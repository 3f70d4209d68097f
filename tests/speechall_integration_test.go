package tests

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/Nephrolytics-ai/speechall-go/pkg/model"
	"github.com/Nephrolytics-ai/speechall-go/pkg/speechall"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const defaultAudioFixturePath = "data/sample-audio.wav"

type SpeechallIntegrationSuite struct {
	ExternalDependenciesSuite
	client    *speechall.Client
	audioPath string
	modelID   model.ModelID
}

func TestSpeechallIntegrationSuite(t *testing.T) {
	suite.Run(t, new(SpeechallIntegrationSuite))
}

func (s *SpeechallIntegrationSuite) SetupSuite() {
	s.ExternalDependenciesSuite.SetupSuite()

	if strings.TrimSpace(os.Getenv("SPEECHALL_API_KEY")) == "" {
		s.T().Skip("SPEECHALL_API_KEY is not set; skipping external dependency integration test")
	}

	s.audioPath = strings.TrimSpace(os.Getenv("SPEECHALL_AUDIO_FIXTURE"))
	if s.audioPath == "" {
		s.audioPath = defaultAudioFixturePath
	}
	if _, err := os.Stat(s.audioPath); err != nil {
		s.T().Skipf("%s is not accessible (%v); skipping Speechall integration test", s.audioPath, err)
	}

	s.modelID = model.ModelID(strings.TrimSpace(os.Getenv("SPEECHALL_MODEL")))
	if s.modelID == "" {
		s.modelID = model.ModelCloudflareWhisper
	}

	client, err := speechall.NewClientFromEnv()
	require.NoError(s.T(), err)
	s.client = client
}

func (s *SpeechallIntegrationSuite) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 180*time.Second)
}

func (s *SpeechallIntegrationSuite) TestTranscribe() {
	ctx, cancel := s.context()
	defer cancel()

	transcript, err := s.client.Transcribe(ctx, s.audioPath, s.modelID)
	require.NoError(s.T(), err)
	assert.NotEmpty(s.T(), strings.TrimSpace(transcript))
}

func (s *SpeechallIntegrationSuite) TestSubtitlesSRT() {
	ctx, cancel := s.context()
	defer cancel()

	subtitles, err := s.client.Subtitles(ctx, s.audioPath, model.SubtitleFormatSRT, s.modelID)
	require.NoError(s.T(), err)
	assert.Contains(s.T(), subtitles, "-->")
}

func (s *SpeechallIntegrationSuite) TestSubtitlesVTT() {
	ctx, cancel := s.context()
	defer cancel()

	subtitles, err := s.client.Subtitles(ctx, s.audioPath, model.SubtitleFormatVTT, s.modelID)
	require.NoError(s.T(), err)
	assert.Contains(s.T(), subtitles, "WEBVTT")
}

func (s *SpeechallIntegrationSuite) TestDetailedTranscription() {
	ctx, cancel := s.context()
	defer cancel()

	detailed, err := s.client.DetailedTranscription(ctx, s.audioPath, s.modelID)
	require.NoError(s.T(), err)
	assert.NotEmpty(s.T(), detailed.ID)
	assert.NotEmpty(s.T(), detailed.Text)
}
