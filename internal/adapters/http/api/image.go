package api

import (
	"net/http"

	"github.com/okian/multimodal/pkg/logger"
)

type imageData struct {
	InputType   string  `json:"input_type"`
	Filename    string  `json:"filename"`
	Format      string  `json:"format"`
	Mode        string  `json:"mode"`
	Size        [2]int  `json:"size"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Description *string `json:"description"`
}

// ImageHandler handles image uploads.
type ImageHandler struct {
	deps   Dependencies
	limits uploadLimits
	logger logger.Logger
}

// NewImageHandler creates a new image handler.
func NewImageHandler(deps Dependencies, limits uploadLimits) *ImageHandler {
	return &ImageHandler{deps: deps, limits: limits, logger: logger.Named("api.image")}
}

// HandleImage handles POST /image requests with a multipart "file" part and
// an optional "description" value.
func (h *ImageHandler) HandleImage(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_image"
	ctx := r.Context()

	if err := h.limits.parseMultipart(op, r); err != nil {
		writeError(ctx, w, h.logger, err)
		return
	}
	defer cleanupForm(r)

	upload, err := requiredUpload(r, "file")
	if err != nil {
		writeError(ctx, w, h.logger, WrapKind(op, ErrBadRequest, err))
		return
	}

	info, err := h.deps.ProcessImage(ctx, upload)
	if err != nil {
		writeError(ctx, w, h.logger, WrapKind(op, ErrProcessing, err))
		return
	}

	writeSuccess(w, "Image processed successfully", imageData{
		InputType:   "image",
		Filename:    info.Filename,
		Format:      info.Format,
		Mode:        info.Mode,
		Size:        info.Size(),
		Width:       info.Width,
		Height:      info.Height,
		Description: optionalValue(r, "description"),
	})
}
