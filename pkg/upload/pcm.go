package upload

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/Nephrolytics-ai/speechall-go/pkg/model"
	"github.com/Nephrolytics-ai/speechall-go/pkg/wav"
)

const wavContentType = "audio/wav"

// NewPCMBody frames interleaved float32 samples as a WAV body. Samples are
// encoded while the transport reads.
func NewPCMBody(samples []float32, sampleRate, channelCount int) (*Body, error) {
	if sampleRate <= 0 || channelCount <= 0 {
		return nil, model.WrapKind(model.ErrInvalidFile, errors.New("sample rate and channel count must be positive"))
	}
	if err := checkPCMSampleCount(len(samples)); err != nil {
		return nil, err
	}

	dataSize := wav.Float32DataSize(samples)
	header := wav.Header(sampleRate, channelCount, 32, dataSize)

	source := io.NopCloser(io.MultiReader(bytes.NewReader(header), wav.NewFloat32Reader(samples)))
	return newBody(source, KnownLength(int64(wav.HeaderSize+dataSize)), wavContentType), nil
}

func checkPCMSampleCount(sampleCount int) error {
	if int64(sampleCount)*4 > wav.MaxDataSize {
		return model.WrapKind(model.ErrInvalidFile, fmt.Errorf("%d samples exceed the %d byte WAV data limit", sampleCount, int64(wav.MaxDataSize)))
	}
	return nil
}
