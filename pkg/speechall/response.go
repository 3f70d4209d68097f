package speechall

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"

	"github.com/Nephrolytics-ai/speechall-go/pkg/model"
	"github.com/tidwall/gjson"
)

// Any of these keys marks a JSON response as the detailed variant.
var detailedResponseKeys = []string{"words", "segments", "language", "duration"}

var apiErrorMessagePaths = []string{"message", "error.message", "error", "detail"}

// readCapped buffers r up to limit bytes. More data is a hard failure, never a
// truncated result. A limit of math.MaxInt64 reads without a cap.
func readCapped(r io.Reader, limit int64) ([]byte, error) {
	readLimit := limit
	if readLimit < math.MaxInt64 {
		readLimit++
	}
	data, err := io.ReadAll(io.LimitReader(r, readLimit))
	if err != nil {
		return nil, model.WrapKind(model.ErrNetwork, err)
	}
	if int64(len(data)) > limit {
		return nil, model.WrapKind(model.ErrResponseTooLarge, fmt.Errorf("response exceeds %d bytes", limit))
	}
	return data, nil
}

func decodeTranscriptionResponse(data []byte) (model.TranscriptionResponse, error) {
	if !gjson.ValidBytes(data) {
		return nil, model.WrapKind(model.ErrInvalidResponse, errors.New("response is not valid JSON"))
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, model.WrapKind(model.ErrInvalidResponse, errors.New("response is not a JSON object"))
	}

	for _, key := range detailedResponseKeys {
		if root.Get(key).Exists() {
			detailed := &model.TranscriptionDetailed{}
			if err := json.Unmarshal(data, detailed); err != nil {
				return nil, model.WrapKind(model.ErrInvalidResponse, err)
			}
			return detailed, nil
		}
	}

	if root.Get("text").Exists() {
		onlyText := model.TranscriptionOnlyText{}
		if err := json.Unmarshal(data, &onlyText); err != nil {
			return nil, model.WrapKind(model.ErrInvalidResponse, err)
		}
		return onlyText, nil
	}

	return nil, model.WrapKind(model.ErrInvalidResponse, errors.New("response carries neither text nor words"))
}

func apiErrorFromResponse(resp *http.Response) *model.APIError {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	return &model.APIError{
		Message:    apiErrorMessage(data, resp.StatusCode),
		StatusCode: resp.StatusCode,
	}
}

func apiErrorMessage(data []byte, statusCode int) string {
	if gjson.ValidBytes(data) {
		root := gjson.ParseBytes(data)
		for _, path := range apiErrorMessagePaths {
			value := root.Get(path)
			if value.Type == gjson.String {
				if message := strings.TrimSpace(value.String()); message != "" {
					return message
				}
			}
		}
	}

	if message := strings.TrimSpace(string(data)); message != "" {
		return message
	}
	if message := http.StatusText(statusCode); message != "" {
		return message
	}
	return "unknown speechall error"
}
