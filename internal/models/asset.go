package models

// MimeType classifies banner image payloads.
type MimeType string

const (
	MimeUnknown MimeType = "unknown"
	MimePNG     MimeType = "image/png"
	MimeGIF     MimeType = "image/gif"
)

// Asset is a fetched banner image.
type Asset struct {
	Data []byte `json:"data"`
	Mime string `json:"mime"`
}

func (a *Asset) MimeType() MimeType {
	if a == nil {
		return MimeUnknown
	}
	switch MimeType(a.Mime) {
	case MimePNG:
		return MimePNG
	case MimeGIF:
		return MimeGIF
	default:
		return MimeUnknown
	}
}

func (a *Asset) Renderable() bool {
	return a.MimeType() != MimeUnknown && len(a.Data) > 0
}
