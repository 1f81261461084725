package middleware_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/emuctl/internal/adapters/http/middleware"
)

func TestRedactHeaders(t *testing.T) {
	t.Parallel()

	headers := http.Header{
		"Authorization": {"Bearer secret-token"},
		"X-Api-Key":     {"key"},
		"Cookie":        {"session=abc"},
		"Accept":        {"application/json", "text/plain"},
		"User-Agent":    {"curl/8.5"},
	}

	attrs := middleware.RedactHeaders(headers)
	require.Len(t, attrs, 5)

	got := make(map[string]string, len(attrs))
	keys := make([]string, 0, len(attrs))
	for _, a := range attrs {
		got[a.Key] = a.Value.String()
		keys = append(keys, a.Key)
	}

	assert.Equal(t, []string{"Accept", "Authorization", "Cookie", "User-Agent", "X-Api-Key"}, keys)
	assert.Equal(t, "[REDACTED]", got["Authorization"])
	assert.Equal(t, "[REDACTED]", got["X-Api-Key"])
	assert.Equal(t, "[REDACTED]", got["Cookie"])
	assert.Equal(t, "application/json,text/plain", got["Accept"])
	assert.Equal(t, "curl/8.5", got["User-Agent"])
}

func TestRedactHeaders_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, middleware.RedactHeaders(http.Header{}))
}
