package logging

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

var (
	// mongoCredentialURI matches a connection string carrying user:password.
	mongoCredentialURI = regexp.MustCompile(`^mongodb(\+srv)?://[^/@\s]+:[^/@\s]+@`)

	// authHeaderValue matches Authorization header values a client may send.
	authHeaderValue = regexp.MustCompile(`(?i)^(bearer|basic)\s+\S+`)

	jwtValue = regexp.MustCompile(`^eyJ[A-Za-z0-9_-]*\.eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*$`)
)

// DefaultRedactOptions masks store credentials and anything a client might
// send as a credential. Values are matched wherever they appear, so a URI
// logged under any key is still masked.
func DefaultRedactOptions() []masq.Option {
	return []masq.Option{
		masq.WithRegex(mongoCredentialURI),
		masq.WithRegex(authHeaderValue),
		masq.WithRegex(jwtValue),

		masq.WithFieldName("password"),
		masq.WithFieldName("authorization"),
		masq.WithFieldName("cookie"),
		masq.WithFieldName("token"),
		masq.WithFieldName("api_key"),

		masq.WithFieldPrefix("secret"),
		masq.WithFieldPrefix("private"),
	}
}

// NewReplaceAttr returns a slog ReplaceAttr that applies DefaultRedactOptions
// plus opts.
func NewReplaceAttr(opts ...masq.Option) func(groups []string, a slog.Attr) slog.Attr {
	return masq.New(append(DefaultRedactOptions(), opts...)...)
}
