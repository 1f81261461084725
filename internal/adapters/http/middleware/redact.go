package middleware

import (
	"log/slog"
	"net/http"
	"sort"
	"strings"

	"github.com/jsamuelsen11/emuctl/internal/platform/logging"
)

// RedactHeaders converts request headers into slog attributes sorted by
// name. Headers listed in logging.SensitiveHeaders are replaced with
// "[REDACTED]". Multi-value headers are joined with a comma.
func RedactHeaders(headers http.Header) []slog.Attr {
	keys := make([]string, 0, len(headers))
	for key := range headers {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	attrs := make([]slog.Attr, 0, len(keys))
	for _, key := range keys {
		if logging.SensitiveHeaders[strings.ToLower(key)] {
			attrs = append(attrs, slog.String(key, "[REDACTED]"))
			continue
		}
		attrs = append(attrs, slog.String(key, strings.Join(headers[key], ",")))
	}
	return attrs
}
