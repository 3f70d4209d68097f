package speechall

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type EnvSuite struct {
	suite.Suite
}

func TestEnvSuite(t *testing.T) {
	suite.Run(t, new(EnvSuite))
}

func (s *EnvSuite) SetupTest() {
	s.T().Setenv(envAPIKey, "")
	s.T().Setenv(envBaseURL, "")
	s.T().Setenv(envTimeout, "")
}

func (s *EnvSuite) TestConfigFromEnv() {
	s.T().Setenv(envAPIKey, " sk-env ")
	s.T().Setenv(envBaseURL, "https://staging.example.com/v1")
	s.T().Setenv(envTimeout, "45m")

	cfg, err := ConfigFromEnv()
	s.Require().NoError(err)

	s.Equal("sk-env", cfg.APIKey)
	s.Equal("https://staging.example.com/v1", cfg.BaseURL)
	s.Equal(45*time.Minute, cfg.Timeout)
	s.Equal(int64(DefaultMaxResponseBytes), cfg.MaxResponseBytes)
}

func (s *EnvSuite) TestConfigFromEnvRejectsBadTimeout() {
	s.T().Setenv(envTimeout, "forever")

	_, err := ConfigFromEnv()
	s.Error(err)
}

func (s *EnvSuite) TestNewClientFromEnvFailsWithoutKey() {
	client, err := NewClientFromEnv(filepath.Join(s.T().TempDir(), "missing.env"))

	s.Nil(client)
	s.ErrorIs(err, ErrMissingAPIKey)
}

func (s *EnvSuite) TestNewClientFromEnvLoadsDotenvFile() {
	envFile := filepath.Join(s.T().TempDir(), ".env")
	s.Require().NoError(os.WriteFile(envFile, []byte("SPEECHALL_API_KEY=from-file\nSPEECHALL_BASE_URL=https://dotenv.example.com/v1/\n"), 0o600))
	s.Require().NoError(os.Unsetenv(envAPIKey))
	s.Require().NoError(os.Unsetenv(envBaseURL))

	client, err := NewClientFromEnv(envFile)
	s.Require().NoError(err)

	s.Equal("https://dotenv.example.com/v1", client.baseURL)
	auth, ok := client.httpClient.Transport.(*bearerAuth)
	s.Require().True(ok)
	s.Equal("from-file", auth.apiKey)
}
