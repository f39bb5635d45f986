package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/okian/multimodal/pkg/logger"
)

var validate = newValidator() //nolint:gochecknoglobals // validator caches struct metadata

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// textRequest mirrors the OpenAPI schema for POST /text. Text is a pointer
// so that an absent key can be told apart from an empty string.
type textRequest struct {
	Text     *string        `json:"text" validate:"required"`
	Metadata map[string]any `json:"metadata"`
}

func (t textRequest) validate() error {
	err := validate.Struct(t)
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return fmt.Errorf("field %q is %s", fieldErrs[0].Field(), fieldErrs[0].Tag())
	}
	return err
}

var errTrailingData = errors.New("unexpected data after JSON body")

// decodeJSON decodes exactly one JSON value from body. Anything but
// whitespace after it is an error.
func decodeJSON(body io.Reader, v any) error {
	dec := json.NewDecoder(body)
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			return errTrailingData
		}
		return err
	}
	return nil
}

type textData struct {
	InputType  string         `json:"input_type"`
	TextLength int            `json:"text_length"`
	WordCount  int            `json:"word_count"`
	Metadata   map[string]any `json:"metadata"`
}

// TextHandler handles text requests.
type TextHandler struct {
	deps   Dependencies
	logger logger.Logger
}

// NewTextHandler creates a new text handler.
func NewTextHandler(deps Dependencies) *TextHandler {
	return &TextHandler{deps: deps, logger: logger.Named("api.text")}
}

// HandleText handles POST /text requests.
func (h *TextHandler) HandleText(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_text"
	ctx := r.Context()

	var req textRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeError(ctx, w, h.logger, classifyBodyError(op, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(ctx, w, h.logger, WrapKind(op, ErrBadRequest, err))
		return
	}

	stats := h.deps.ProcessText(ctx, *req.Text)
	writeSuccess(w, "Text processed successfully", textData{
		InputType:  "text",
		TextLength: stats.Length,
		WordCount:  stats.WordCount,
		Metadata:   req.Metadata,
	})
}
