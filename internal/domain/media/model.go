// Package media extracts shallow metadata from text and uploaded files.
//
// Every modality has exactly one extraction function. Callers that handle a
// single modality and callers that handle several at once go through the
// same function so the reported metadata never diverges.
package media

// Modality names one kind of input.
type Modality string

// Supported modalities.
const (
	Text  Modality = "text"
	Image Modality = "image"
	Audio Modality = "audio"
	Video Modality = "video"
)

// Upload is an uploaded file held in memory for the lifetime of a request.
type Upload struct {
	Filename    string
	ContentType string // as declared by the client; may be empty
	Data        []byte
}

// Size returns the byte length of the upload.
func (u Upload) Size() int { return len(u.Data) }

// TextStats describes a text input.
type TextStats struct {
	Length    int // Unicode code points
	WordCount int // whitespace separated tokens
}

// ImageInfo describes an image header.
type ImageInfo struct {
	Filename string
	Format   string // upper-case decoder name, e.g. PNG
	Mode     string // Pillow-style color mode, e.g. RGB
	Width    int
	Height   int
}

// Size returns the dimensions as a [width, height] pair.
func (i ImageInfo) Size() [2]int { return [2]int{i.Width, i.Height} }

// FileInfo describes an opaque media upload (audio or video).
type FileInfo struct {
	Filename            string
	ContentType         string
	DetectedContentType string
	SizeBytes           int
}

// MultimodalInput carries the parts of a combined request. Empty text and
// nil uploads mean the modality was not sent.
type MultimodalInput struct {
	Text  string
	Image *Upload
	Audio *Upload
	Video *Upload
}

// Present lists the modalities carried by in, in reporting order.
func (in MultimodalInput) Present() []Modality {
	out := make([]Modality, 0, 4)
	if in.Text != "" {
		out = append(out, Text)
	}
	if in.Image != nil {
		out = append(out, Image)
	}
	if in.Audio != nil {
		out = append(out, Audio)
	}
	if in.Video != nil {
		out = append(out, Video)
	}
	return out
}

// Summary is the combined result of a multimodal request. Only the fields of
// modalities listed in Received are set.
type Summary struct {
	Received []Modality
	Text     *TextStats
	Image    *ImageInfo
	Audio    *FileInfo
	Video    *FileInfo
}
