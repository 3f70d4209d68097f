package speechall

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Nephrolytics-ai/speechall-go/pkg/logging"
	"github.com/Nephrolytics-ai/speechall-go/pkg/model"
	"github.com/Nephrolytics-ai/speechall-go/pkg/upload"
	"github.com/Nephrolytics-ai/speechall-go/pkg/utils"
)

// Transcribe returns the plain-text transcript of the audio (or video) at path.
// Use model.WithInitialPrompt to pass a recognition hint.
func (c *Client) Transcribe(
	ctx context.Context,
	path string,
	modelID model.ModelID,
	opts ...model.RequestOption,
) (string, error) {
	result, err := c.Do(ctx, model.TranscriptionRequest{
		FilePath:     path,
		Model:        modelID,
		OutputFormat: model.OutputFormatText,
		Options:      opts,
	})
	if err != nil {
		return "", utils.WrapIfNotNil(err)
	}
	return string(result.(model.PlainText)), nil
}

// Subtitles returns SRT or VTT markup exactly as the service produced it.
func (c *Client) Subtitles(
	ctx context.Context,
	path string,
	format model.SubtitleFormat,
	modelID model.ModelID,
	opts ...model.RequestOption,
) (string, error) {
	outputFormat, err := format.OutputFormat()
	if err != nil {
		logging.NewLogger(ctx).Errorf("error: %v", err)
		return "", utils.WrapIfNotNil(err)
	}

	result, err := c.Do(ctx, model.TranscriptionRequest{
		FilePath:     path,
		Model:        modelID,
		OutputFormat: outputFormat,
		Options:      opts,
	})
	if err != nil {
		return "", utils.WrapIfNotNil(err)
	}
	return result.(model.Subtitles).Text, nil
}

// DetailedTranscription returns the transcript with word-level timestamps. A
// text-only answer from the service is reported as model.ErrInvalidResponse.
func (c *Client) DetailedTranscription(
	ctx context.Context,
	path string,
	modelID model.ModelID,
	opts ...model.RequestOption,
) (*model.TranscriptionDetailed, error) {
	result, err := c.Do(ctx, model.TranscriptionRequest{
		FilePath:     path,
		Model:        modelID,
		OutputFormat: model.OutputFormatJSON,
		Options:      opts,
	})
	if err != nil {
		return nil, utils.WrapIfNotNil(err)
	}
	return result.(*model.TranscriptionDetailed), nil
}

// TranscribeSamples uploads interleaved float32 PCM samples framed as WAV and
// returns the plain-text transcript.
func (c *Client) TranscribeSamples(
	ctx context.Context,
	samples []float32,
	sampleRate int,
	channelCount int,
	modelID model.ModelID,
	opts ...model.RequestOption,
) (string, error) {
	log := logging.NewLogger(ctx)
	if err := validateModel(modelID); err != nil {
		log.Errorf("error: %v", err)
		return "", utils.WrapIfNotNil(err)
	}

	body, err := upload.NewPCMBody(samples, sampleRate, channelCount)
	if err != nil {
		log.Errorf("error: %v", err)
		return "", utils.WrapIfNotNil(err)
	}
	defer body.Close()

	result, err := c.execute(ctx, body, modelID, model.OutputFormatText, opts)
	if err != nil {
		return "", utils.WrapIfNotNil(err)
	}
	return string(result.(model.PlainText)), nil
}

// Do runs the shared pipeline: prepare the body, upload it once, and decode
// the response into the variant matching req.OutputFormat. Any temporary
// audio file is removed before Do returns.
func (c *Client) Do(ctx context.Context, req model.TranscriptionRequest) (model.TranscriptionResult, error) {
	log := logging.NewLogger(ctx)
	if !req.OutputFormat.Valid() {
		err := model.WrapKind(model.ErrInvalidRequest, fmt.Errorf("unsupported output format %q", string(req.OutputFormat)))
		log.Errorf("error: %v", err)
		return nil, utils.WrapIfNotNil(err)
	}
	if err := validateModel(req.Model); err != nil {
		log.Errorf("error: %v", err)
		return nil, utils.WrapIfNotNil(err)
	}

	body, err := c.builder.Prepare(ctx, req.FilePath)
	if err != nil {
		log.Errorf("error: %v", err)
		return nil, utils.WrapIfNotNil(err)
	}
	defer func() {
		if closeErr := body.Close(); closeErr != nil {
			log.Warnf("failed to release upload body: %v", closeErr)
		}
	}()

	result, err := c.execute(ctx, body, req.Model, req.OutputFormat, req.Options)
	if err != nil {
		return nil, utils.WrapIfNotNil(err)
	}
	return result, nil
}

func (c *Client) execute(
	ctx context.Context,
	body *upload.Body,
	modelID model.ModelID,
	format model.OutputFormat,
	opts []model.RequestOption,
) (model.TranscriptionResult, error) {
	log := logging.NewLogger(ctx)
	payload, err := c.send(ctx, body, modelID, format, model.ResolveRequestOptions(opts...))
	if err != nil {
		return nil, utils.WrapIfNotNil(err)
	}

	switch format {
	case model.OutputFormatText:
		return model.PlainText(payload), nil
	case model.OutputFormatSRT, model.OutputFormatVTT:
		return model.Subtitles{Format: model.SubtitleFormat(format), Text: string(payload)}, nil
	case model.OutputFormatJSON:
		response, err := decodeTranscriptionResponse(payload)
		if err != nil {
			log.Errorf("error: %v", err)
			return nil, utils.WrapIfNotNil(err)
		}
		switch r := response.(type) {
		case *model.TranscriptionDetailed:
			return r, nil
		case model.TranscriptionOnlyText:
			err := model.WrapKind(model.ErrInvalidResponse, errors.New("detailed transcription requested but the service returned text only"))
			log.Errorf("error: %v", err)
			return nil, utils.WrapIfNotNil(err)
		}
		return nil, utils.WrapIfNotNil(model.ErrInvalidResponse)
	}
	return nil, utils.WrapIfNotNil(model.WrapKind(model.ErrInvalidRequest, fmt.Errorf("unsupported output format %q", string(format))))
}

func (c *Client) send(
	ctx context.Context,
	body *upload.Body,
	modelID model.ModelID,
	format model.OutputFormat,
	cfg model.RequestConfig,
) ([]byte, error) {
	start := time.Now()
	log := logging.NewLogger(ctx).
		WithField("model", string(modelID)).
		WithField("output_format", string(format))
	log.Infof("transcription_request language=%q", string(cfg.Language))

	reader, err := body.Take()
	if err != nil {
		log.Errorf("error: %v", err)
		return nil, utils.WrapIfNotNil(err)
	}

	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(modelID, format, cfg), reader)
	if err != nil {
		_ = reader.Close()
		log.Errorf("error: %v", err)
		return nil, utils.WrapIfNotNil(model.WrapKind(model.ErrNetwork, err))
	}
	httpRequest.ContentLength = body.Length().ContentLength()
	if httpRequest.ContentLength == 0 {
		_ = reader.Close()
		httpRequest.Body = http.NoBody
	}
	httpRequest.Header.Set("Content-Type", body.ContentType())
	httpRequest.Header.Set("Accept", acceptHeader(format))

	httpResponse, err := c.httpClient.Do(httpRequest)
	if err != nil {
		log.Errorf("error: %v", err)
		return nil, utils.WrapIfNotNil(model.WrapKind(model.ErrNetwork, err))
	}
	defer httpResponse.Body.Close()

	if httpResponse.StatusCode < 200 || httpResponse.StatusCode >= 300 {
		apiErr := apiErrorFromResponse(httpResponse)
		log.Errorf("error: %v", apiErr)
		return nil, utils.WrapIfNotNil(apiErr)
	}

	payload, err := readCapped(httpResponse.Body, c.maxResponseBytes)
	if err != nil {
		log.Errorf("error: %v", err)
		return nil, utils.WrapIfNotNil(err)
	}

	log.Infof("transcription_response status=%d bytes=%d latency_ms=%d",
		httpResponse.StatusCode, len(payload), time.Since(start).Milliseconds())
	return payload, nil
}

func (c *Client) endpoint(modelID model.ModelID, format model.OutputFormat, cfg model.RequestConfig) string {
	query := url.Values{}
	query.Set("model", string(modelID))
	query.Set("language", string(cfg.Language))
	query.Set("output_format", string(format))
	query.Set("punctuation", strconv.FormatBool(cfg.Punctuation))
	if cfg.InitialPrompt != nil {
		query.Set("initial_prompt", *cfg.InitialPrompt)
	}
	return c.baseURL + transcribePath + "?" + query.Encode()
}

func acceptHeader(format model.OutputFormat) string {
	if format == model.OutputFormatJSON {
		return "application/json"
	}
	return "text/plain"
}

func validateModel(modelID model.ModelID) error {
	if strings.TrimSpace(string(modelID)) == "" {
		return model.WrapKind(model.ErrInvalidRequest, errors.New("model identifier is required"))
	}
	return nil
}
