package model

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ErrorsSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsSuite))
}

func (s *ErrorsSuite) TestWrapKindKeepsKindAndCauseReachable() {
	err := WrapKind(ErrExtractionFailed, fs.ErrPermission)

	s.ErrorIs(err, ErrExtractionFailed)
	s.ErrorIs(err, fs.ErrPermission)
	s.Equal("audio extraction failed: permission denied", err.Error())
}

func (s *ErrorsSuite) TestWrapKindNilCauseReturnsKind() {
	s.Equal(ErrNoAudioTrack, WrapKind(ErrNoAudioTrack, nil))
}

func (s *ErrorsSuite) TestFileAccessIsInvalidFile() {
	err := WrapKind(ErrFileAccess, fs.ErrNotExist)

	s.ErrorIs(err, ErrFileAccess)
	s.ErrorIs(err, ErrInvalidFile)
	s.ErrorIs(err, fs.ErrNotExist)
}

func (s *ErrorsSuite) TestAPIErrorAs() {
	var err error = WrapKind(ErrInvalidResponse, &APIError{Message: "bad model", StatusCode: 400})

	var apiErr *APIError
	s.Require().True(errors.As(err, &apiErr))
	s.Equal(400, apiErr.StatusCode)
	s.Equal("speechall API error (400): bad model", apiErr.Error())
}
