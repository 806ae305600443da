package transport

import "errors"

var (
	ErrTransport        = errors.New("transport failure")
	ErrDecode           = errors.New("decode failure")
	ErrEmptyResponse    = errors.New("empty response")
	ErrUnsupportedAsset = errors.New("unsupported asset type")
)

// Kind returns a stable label for the failure class of err.
func Kind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrTransport):
		return "transport"
	case errors.Is(err, ErrDecode):
		return "decode"
	case errors.Is(err, ErrEmptyResponse):
		return "empty"
	case errors.Is(err, ErrUnsupportedAsset):
		return "unsupported_asset"
	default:
		return "other"
	}
}
