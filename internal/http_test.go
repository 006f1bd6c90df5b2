package internal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHttpClient_GetDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/hours.yaml":
			w.Header().Set("Content-Type", "application/yaml")
			_, _ = w.Write([]byte("monday: [\"09:00-17:00\"]\n"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	base, err := url.Parse(srv.URL)
	require.NoError(t, err)

	client := NewHttpClient(context.Background(), base)

	doc, err := client.GetDocument("/hours.yaml")
	require.NoError(t, err)
	assert.Equal(t, "application/yaml", doc.ContentType)
	assert.Contains(t, string(doc.Body), "09:00-17:00")

	_, err = client.GetDocument("/missing.yaml")
	assert.Error(t, err)
}
