package media

import "github.com/gabriel-vasile/mimetype"

// InspectFile reports the shallow metadata of an upload without decoding it.
// ContentType is only what the client declared and may be empty.
func InspectFile(u Upload) FileInfo {
	return FileInfo{
		Filename:            u.Filename,
		ContentType:         u.ContentType,
		DetectedContentType: mimetype.Detect(u.Data).String(),
		SizeBytes:           u.Size(),
	}
}
