package smoke

import (
	"encoding/json"
	"time"
)

// Config holds configuration for a smoke run.
type Config struct {
	BaseURL string        // Base URL of the service
	Rounds  int           // Number of times the check suite is run
	Workers int           // Number of concurrent workers
	Timeout time.Duration // HTTP request timeout
	LogFile string        // Log file for test output
	Verbose bool          // Enable verbose logging
}

// Envelope is the response wrapper of the POST endpoints.
type Envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// RootInfo is the body of GET /.
type RootInfo struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

// TextData is the data of a /text response.
type TextData struct {
	InputType  string         `json:"input_type"`
	TextLength int            `json:"text_length"`
	WordCount  int            `json:"word_count"`
	Metadata   map[string]any `json:"metadata"`
}

// ImageData is the data of an /image response.
type ImageData struct {
	InputType   string  `json:"input_type"`
	Filename    string  `json:"filename"`
	Format      string  `json:"format"`
	Mode        string  `json:"mode"`
	Size        [2]int  `json:"size"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Description *string `json:"description"`
}

// FileData is the data of an /audio or /video response.
type FileData struct {
	InputType           string  `json:"input_type"`
	Filename            string  `json:"filename"`
	ContentType         *string `json:"content_type"`
	SizeBytes           int     `json:"size_bytes"`
	Transcription       *string `json:"transcription"`
	Description         *string `json:"description"`
	DetectedContentType string  `json:"detected_content_type"`
}

// MultimodalData is the data of a /multimodal response.
type MultimodalData struct {
	InputsReceived []string `json:"inputs_received"`
	Text           *struct {
		Length    int `json:"length"`
		WordCount int `json:"word_count"`
	} `json:"text"`
	Image *struct {
		Filename string `json:"filename"`
		Size     [2]int `json:"size"`
	} `json:"image"`
	Audio *FileSummary `json:"audio"`
	Video *FileSummary `json:"video"`
}

// FileSummary is the per-file entry of a multimodal response.
type FileSummary struct {
	Filename  string `json:"filename"`
	SizeBytes int    `json:"size_bytes"`
}

// Stats holds run statistics.
type Stats struct {
	ChecksRun    int
	ChecksPassed int
	ChecksFailed int
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
}
