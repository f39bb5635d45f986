package api

import (
	"net/http"
)

// Service identity reported by GET /.
const (
	serviceName    = "Multimodal Input API"
	serviceVersion = "1.0.0"
)

// RootHandler describes the service and its endpoints.
type RootHandler struct {
	body rootResponse
}

type rootResponse struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

// NewRootHandler creates a new root handler.
func NewRootHandler() *RootHandler {
	return &RootHandler{body: rootResponse{
		Message: serviceName,
		Version: serviceVersion,
		Endpoints: map[string]string{
			"/text":       "POST - Process text input",
			"/image":      "POST - Process image input",
			"/audio":      "POST - Process audio input",
			"/video":      "POST - Process video input",
			"/multimodal": "POST - Process multiple input types simultaneously",
		},
	}}
}

// HandleRoot handles GET / requests.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.body)
}
