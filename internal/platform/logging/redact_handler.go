package logging

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

// SensitiveHeaders is the set of HTTP header names (lowercase) redacted
// before logging. Shared with the HTTP middleware so the two lists stay in
// sync.
var SensitiveHeaders = map[string]bool{
	"authorization": true,
	"x-api-key":     true,
	"cookie":        true,
}

// SensitiveEnv is the set of environment variable names whose values never
// reach a log line. The vendor CLI and SDKs read deploy tokens and service
// account paths from these.
var SensitiveEnv = map[string]bool{
	"FIREBASE_TOKEN":                 true,
	"GOOGLE_APPLICATION_CREDENTIALS": true,
	"GOOGLE_API_KEY":                 true,
}

var bearerPattern = regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9\-._~+/]+=*`)

// jwtPattern requires at least 10 characters per segment so version
// strings like "2.24.1" never match.
var jwtPattern = regexp.MustCompile(`[a-zA-Z0-9\-_]{10,}\.[a-zA-Z0-9\-_]{10,}\.[a-zA-Z0-9\-_]{10,}`)

// inlineSecretPattern catches "FIREBASE_TOKEN=..." and "api_key: ..." that
// leak through toolchain stderr.
var inlineSecretPattern = regexp.MustCompile(`(?i)(firebase_token|api[_\-]?key|apikey)\s*[:=]\s*\S+`)

// newRedactAttr returns a masq ReplaceAttr function. It redacts by field
// name for known sensitive fields and by regex for raw values embedded in
// free text such as captured stderr.
func newRedactAttr() func([]string, slog.Attr) slog.Attr {
	opts := make([]masq.Option, 0, len(SensitiveHeaders)+len(SensitiveEnv)+8)

	for name := range SensitiveHeaders {
		opts = append(opts, masq.WithFieldName(name))
	}
	for name := range SensitiveEnv {
		opts = append(opts, masq.WithFieldName(name))
	}

	opts = append(opts,
		masq.WithFieldName("password"),
		masq.WithFieldName("secret"),
		masq.WithFieldName("token"),
		masq.WithFieldPrefix("secret_"),
		masq.WithFieldPrefix("api_key"),
		masq.WithRegex(bearerPattern),
		masq.WithRegex(jwtPattern),
		masq.WithRegex(inlineSecretPattern),
	)

	return masq.New(opts...)
}
