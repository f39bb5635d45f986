package api

import (
	"fmt"
	"net/http"

	"github.com/okian/multimodal/internal/domain/media"
	"github.com/okian/multimodal/pkg/logger"
)

type textSummary struct {
	Length    int `json:"length"`
	WordCount int `json:"word_count"`
}

type imageSummary struct {
	Filename string `json:"filename"`
	Size     [2]int `json:"size"`
}

type fileSummary struct {
	Filename  string `json:"filename"`
	SizeBytes int    `json:"size_bytes"`
}

type multimodalData struct {
	InputsReceived []media.Modality `json:"inputs_received"`
	Text           *textSummary     `json:"text,omitempty"`
	Image          *imageSummary    `json:"image,omitempty"`
	Audio          *fileSummary     `json:"audio,omitempty"`
	Video          *fileSummary     `json:"video,omitempty"`
}

func newMultimodalData(sum media.Summary) multimodalData {
	data := multimodalData{InputsReceived: sum.Received}
	if data.InputsReceived == nil {
		data.InputsReceived = []media.Modality{}
	}
	if sum.Text != nil {
		data.Text = &textSummary{Length: sum.Text.Length, WordCount: sum.Text.WordCount}
	}
	if sum.Image != nil {
		data.Image = &imageSummary{Filename: sum.Image.Filename, Size: sum.Image.Size()}
	}
	if sum.Audio != nil {
		data.Audio = &fileSummary{Filename: sum.Audio.Filename, SizeBytes: sum.Audio.SizeBytes}
	}
	if sum.Video != nil {
		data.Video = &fileSummary{Filename: sum.Video.Filename, SizeBytes: sum.Video.SizeBytes}
	}
	return data
}

// MultimodalHandler handles requests carrying any combination of modalities.
type MultimodalHandler struct {
	deps   Dependencies
	limits uploadLimits
	logger logger.Logger
}

// NewMultimodalHandler creates a new multimodal handler.
func NewMultimodalHandler(deps Dependencies, limits uploadLimits) *MultimodalHandler {
	return &MultimodalHandler{deps: deps, limits: limits, logger: logger.Named("api.multimodal")}
}

// HandleMultimodal handles POST /multimodal requests. Every field is
// optional; an empty text value counts as absent.
func (h *MultimodalHandler) HandleMultimodal(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_multimodal"
	ctx := r.Context()

	if err := h.limits.parseForm(op, r); err != nil {
		writeError(ctx, w, h.logger, err)
		return
	}
	defer cleanupForm(r)

	in := media.MultimodalInput{Text: r.PostForm.Get("text")}
	for _, f := range []struct {
		field string
		dst   **media.Upload
	}{
		{"image", &in.Image},
		{"audio", &in.Audio},
		{"video", &in.Video},
	} {
		u, err := formUpload(r, f.field)
		if err != nil {
			writeError(ctx, w, h.logger, WrapKind(op, ErrBadRequest, err))
			return
		}
		*f.dst = u
	}

	sum, err := h.deps.ProcessMultimodal(ctx, in)
	if err != nil {
		writeError(ctx, w, h.logger, WrapKind(op, ErrProcessing, err))
		return
	}

	data := newMultimodalData(sum)
	writeSuccess(w, fmt.Sprintf("Processed %d input types", len(data.InputsReceived)), data)
}
