package smoke

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrCheckFailed marks a response that did not match expectations.
var ErrCheckFailed = errors.New("check failed")

// Check is one request/verify step against the service.
type Check struct {
	Name string
	Run  func(ctx context.Context, c *HTTPClient) error
}

func failf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrCheckFailed, fmt.Sprintf(format, args...))
}

// expectSuccess asserts a 200 success envelope with the given message and
// decodes its data into v.
func expectSuccess(status int, body []byte, message string, v any) error {
	if status != StatusOK {
		return failf("status %d, want %d: %s", status, StatusOK, strings.TrimSpace(string(body)))
	}
	env, err := decodeEnvelope(body, v)
	if err != nil {
		return err
	}
	if env.Status != "success" {
		return failf("status field %q, want success", env.Status)
	}
	if env.Message != message {
		return failf("message %q, want %q", env.Message, message)
	}
	return nil
}

// Checks returns the suite in execution order.
func Checks() []Check {
	return []Check{
		{Name: "health", Run: checkHealth},
		{Name: "root", Run: checkRoot},
		{Name: "text", Run: checkText},
		{Name: "image", Run: checkImage},
		{Name: "image_invalid", Run: checkInvalidImage},
		{Name: "audio", Run: checkAudio},
		{Name: "video", Run: checkVideo},
		{Name: "multimodal", Run: checkMultimodal},
	}
}

func checkHealth(ctx context.Context, c *HTTPClient) error {
	status, body, err := c.Get(ctx, "/health")
	if err != nil {
		return err
	}
	var h struct {
		Status string `json:"status"`
	}
	if status != StatusOK {
		return failf("health status %d", status)
	}
	if err := json.Unmarshal(body, &h); err != nil {
		return fmt.Errorf("failed to decode health: %w", err)
	}
	if h.Status != "healthy" {
		return failf("health reported %q", h.Status)
	}
	return nil
}

func checkRoot(ctx context.Context, c *HTTPClient) error {
	status, body, err := c.Get(ctx, "/")
	if err != nil {
		return err
	}
	if status != StatusOK {
		return failf("root status %d", status)
	}
	var info RootInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return fmt.Errorf("failed to decode root: %w", err)
	}
	for _, path := range []string{"/text", "/image", "/audio", "/video", "/multimodal"} {
		if _, ok := info.Endpoints[path]; !ok {
			return failf("root does not list %s", path)
		}
	}
	return nil
}

func checkText(ctx context.Context, c *HTTPClient) error {
	status, body, err := c.PostJSON(ctx, "/text", map[string]any{
		"text":     SampleText,
		"metadata": map[string]any{"source": "smoke"},
	})
	if err != nil {
		return err
	}
	var data TextData
	if err := expectSuccess(status, body, "Text processed successfully", &data); err != nil {
		return err
	}
	if want := utf8.RuneCountInString(SampleText); data.TextLength != want {
		return failf("text_length %d, want %d", data.TextLength, want)
	}
	if want := len(strings.Fields(SampleText)); data.WordCount != want {
		return failf("word_count %d, want %d", data.WordCount, want)
	}
	if data.Metadata["source"] != "smoke" {
		return failf("metadata not echoed: %v", data.Metadata)
	}
	return nil
}

func checkImage(ctx context.Context, c *HTTPClient) error {
	img, err := SamplePNG(sampleImageWidth, sampleImageHeight)
	if err != nil {
		return err
	}
	status, body, err := c.PostMultipart(ctx, "/image",
		map[string]string{"description": "smoke gradient"},
		FilePart{Field: "file", Filename: "smoke.png", ContentType: "image/png", Data: img},
	)
	if err != nil {
		return err
	}
	var data ImageData
	if err := expectSuccess(status, body, "Image processed successfully", &data); err != nil {
		return err
	}
	if data.Format != "PNG" || data.Size != [2]int{sampleImageWidth, sampleImageHeight} {
		return failf("image reported %s %v", data.Format, data.Size)
	}
	if data.Description == nil || *data.Description != "smoke gradient" {
		return failf("description not echoed")
	}
	return nil
}

func checkInvalidImage(ctx context.Context, c *HTTPClient) error {
	status, body, err := c.PostMultipart(ctx, "/image", nil,
		FilePart{Field: "file", Filename: "not-an-image.txt", ContentType: "text/plain", Data: []byte("plain text")},
	)
	if err != nil {
		return err
	}
	if status != StatusInternalServerError {
		return failf("invalid image status %d, want %d", status, StatusInternalServerError)
	}
	env, err := decodeEnvelope(body, nil)
	if err != nil {
		return err
	}
	if env.Status != "error" || env.Message == "" {
		return failf("invalid image envelope %+v", env)
	}
	return nil
}

func checkAudio(ctx context.Context, c *HTTPClient) error {
	wav := SampleWAV(sampleRate / 4)
	status, body, err := c.PostMultipart(ctx, "/audio",
		map[string]string{"transcription": "a short tone"},
		FilePart{Field: "file", Filename: "tone.wav", ContentType: "audio/wav", Data: wav},
	)
	if err != nil {
		return err
	}
	var data FileData
	if err := expectSuccess(status, body, "Audio processed successfully", &data); err != nil {
		return err
	}
	if data.SizeBytes != len(wav) {
		return failf("audio size_bytes %d, want %d", data.SizeBytes, len(wav))
	}
	if data.Transcription == nil || *data.Transcription != "a short tone" {
		return failf("transcription not echoed")
	}
	return nil
}

func checkVideo(ctx context.Context, c *HTTPClient) error {
	mp4 := SampleMP4(2048)
	status, body, err := c.PostMultipart(ctx, "/video",
		map[string]string{"description": "empty movie"},
		FilePart{Field: "file", Filename: "clip.mp4", ContentType: "video/mp4", Data: mp4},
	)
	if err != nil {
		return err
	}
	var data FileData
	if err := expectSuccess(status, body, "Video processed successfully", &data); err != nil {
		return err
	}
	if data.SizeBytes != len(mp4) {
		return failf("video size_bytes %d, want %d", data.SizeBytes, len(mp4))
	}
	if data.ContentType == nil || *data.ContentType != "video/mp4" {
		return failf("video content_type %v", data.ContentType)
	}
	return nil
}

func checkMultimodal(ctx context.Context, c *HTTPClient) error {
	img, err := SamplePNG(sampleImageWidth, sampleImageHeight)
	if err != nil {
		return err
	}
	wav := SampleWAV(sampleRate / 8)
	mp4 := SampleMP4(512)

	status, body, err := c.PostMultipart(ctx, "/multimodal",
		map[string]string{"text": SampleText},
		FilePart{Field: "image", Filename: "smoke.png", ContentType: "image/png", Data: img},
		FilePart{Field: "audio", Filename: "tone.wav", ContentType: "audio/wav", Data: wav},
		FilePart{Field: "video", Filename: "clip.mp4", ContentType: "video/mp4", Data: mp4},
	)
	if err != nil {
		return err
	}
	var data MultimodalData
	if err := expectSuccess(status, body, "Processed 4 input types", &data); err != nil {
		return err
	}
	if strings.Join(data.InputsReceived, ",") != "text,image,audio,video" {
		return failf("inputs_received %v", data.InputsReceived)
	}
	if data.Text == nil || data.Image == nil || data.Audio == nil || data.Video == nil {
		return failf("missing per-modality summary")
	}
	if data.Audio.SizeBytes != len(wav) || data.Video.SizeBytes != len(mp4) {
		return failf("multimodal sizes audio=%d video=%d", data.Audio.SizeBytes, data.Video.SizeBytes)
	}
	return nil
}
