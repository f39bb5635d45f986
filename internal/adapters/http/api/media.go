package api

import (
	"context"
	"net/http"

	"github.com/okian/multimodal/internal/domain/media"
	"github.com/okian/multimodal/pkg/logger"
)

// audioData and videoData encode the optional annotation as null when absent.
type audioData struct {
	InputType           string  `json:"input_type"`
	Filename            string  `json:"filename"`
	ContentType         *string `json:"content_type"`
	SizeBytes           int     `json:"size_bytes"`
	Transcription       *string `json:"transcription"`
	DetectedContentType string  `json:"detected_content_type"`
}

type videoData struct {
	InputType           string  `json:"input_type"`
	Filename            string  `json:"filename"`
	ContentType         *string `json:"content_type"`
	SizeBytes           int     `json:"size_bytes"`
	Description         *string `json:"description"`
	DetectedContentType string  `json:"detected_content_type"`
}

// MediaHandler handles opaque audio or video uploads. The bytes are never
// decoded; only their size and content type are reported.
type MediaHandler struct {
	modality   media.Modality
	annotation string
	message    string
	op         string
	process    func(ctx context.Context, u media.Upload) media.FileInfo
	limits     uploadLimits
	logger     logger.Logger
}

// NewAudioHandler creates the POST /audio handler. The optional form value
// is "transcription".
func NewAudioHandler(deps Dependencies, limits uploadLimits) *MediaHandler {
	return &MediaHandler{
		modality:   media.Audio,
		annotation: "transcription",
		message:    "Audio processed successfully",
		op:         "api.post_audio",
		process:    deps.ProcessAudio,
		limits:     limits,
		logger:     logger.Named("api.audio"),
	}
}

// NewVideoHandler creates the POST /video handler. The optional form value
// is "description".
func NewVideoHandler(deps Dependencies, limits uploadLimits) *MediaHandler {
	return &MediaHandler{
		modality:   media.Video,
		annotation: "description",
		message:    "Video processed successfully",
		op:         "api.post_video",
		process:    deps.ProcessVideo,
		limits:     limits,
		logger:     logger.Named("api.video"),
	}
}

// HandleMedia handles POST /audio and POST /video requests.
func (h *MediaHandler) HandleMedia(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.limits.parseMultipart(h.op, r); err != nil {
		writeError(ctx, w, h.logger, err)
		return
	}
	defer cleanupForm(r)

	upload, err := requiredUpload(r, "file")
	if err != nil {
		writeError(ctx, w, h.logger, WrapKind(h.op, ErrBadRequest, err))
		return
	}

	info := h.process(ctx, upload)
	note := optionalValue(r, h.annotation)

	var data any
	if h.modality == media.Audio {
		data = audioData{
			InputType:           string(h.modality),
			Filename:            info.Filename,
			ContentType:         declaredType(info.ContentType),
			SizeBytes:           info.SizeBytes,
			Transcription:       note,
			DetectedContentType: info.DetectedContentType,
		}
	} else {
		data = videoData{
			InputType:           string(h.modality),
			Filename:            info.Filename,
			ContentType:         declaredType(info.ContentType),
			SizeBytes:           info.SizeBytes,
			Description:         note,
			DetectedContentType: info.DetectedContentType,
		}
	}
	writeSuccess(w, h.message, data)
}

// declaredType encodes a missing part Content-Type as null.
func declaredType(ct string) *string {
	if ct == "" {
		return nil
	}
	return &ct
}
