// Package postback recognises payout postbacks among the navigations of the
// embedded content viewer.
package postback

import (
	"net/url"

	"surveysync/internal/providers"
	"surveysync/internal/transport"
)

// Resyncer is told to refresh once a postback has been recognised.
type Resyncer interface {
	ForceResyncFromPostback(secureHash string)
}

type Postback struct {
	MessageID  string
	SecureHash string
}

// Inspect extracts a postback from rawURL. Both the message id and the secure
// hash parameters must be present, even if empty. The hash is forwarded as is
// and checked by the server.
func Inspect(rawURL string) (Postback, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Postback{}, false
	}
	q := u.Query()
	if !q.Has(transport.ParamMessageID) {
		return Postback{}, false
	}
	if !q.Has(transport.ParamSecureHash) {
		return Postback{}, false
	}
	return Postback{MessageID: q.Get(transport.ParamMessageID), SecureHash: q.Get(transport.ParamSecureHash)}, true
}

type ValidatorInterface interface {
	HandleNavigation(rawURL string) bool
}

type Validator struct {
	resyncer Resyncer
	logger   providers.Logger
}

func NewValidator(resyncer Resyncer, logger providers.Logger) ValidatorInterface {
	return &Validator{resyncer: resyncer, logger: logger}
}

// HandleNavigation inspects a navigation and reports whether it may
// proceed. Navigations are never blocked; a recognised postback additionally
// triggers a forced resync.
func (v *Validator) HandleNavigation(rawURL string) bool {
	pb, ok := Inspect(rawURL)
	if !ok {
		return true
	}
	v.logger.Infof(providers.TypeSync, "postback for message %s, forcing resync", pb.MessageID)
	v.resyncer.ForceResyncFromPostback(pb.SecureHash)
	return true
}
