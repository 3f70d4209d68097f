package speechall

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

type AuthSuite struct {
	suite.Suite
}

func TestAuthSuite(t *testing.T) {
	suite.Run(t, new(AuthSuite))
}

func (s *AuthSuite) TestBearerAuthSetsHeaderOnClone() {
	var seen *http.Request
	auth := &bearerAuth{
		apiKey: "secret",
		next: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			seen = req
			return &http.Response{StatusCode: http.StatusNoContent, Body: http.NoBody}, nil
		}),
	}
	req, err := http.NewRequest(http.MethodPost, "https://api.example.com/v1/transcribe", nil)
	s.Require().NoError(err)

	resp, err := auth.RoundTrip(req)
	s.Require().NoError(err)
	s.Equal(http.StatusNoContent, resp.StatusCode)

	s.Require().NotNil(seen)
	s.Equal("Bearer secret", seen.Header.Get("Authorization"))
	s.Empty(req.Header.Get("Authorization"))
}
