// http is used to fetch opening hours definitions
// published over HTTP, such as a YAML file served
// next to a venue's website.
package internal

import (
	"context"
	"errors"
	"net/url"
	"time"

	"resty.dev/v3"
)

type HttpClient struct {
	client      *resty.Client
	baseRequest *resty.Request
}

// Document is a fetched configuration document.
type Document struct {
	Body        []byte
	ContentType string
}

func NewHttpClient(ctx context.Context, baseUrl *url.URL) *HttpClient {
	// Create resty client with configuration
	client := resty.New().
		SetBaseURL(baseUrl.String()).
		SetTimeout(30*time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(1*time.Second).
		SetRetryMaxWaitTime(5*time.Second).
		AddRetryConditions(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= 500
		}).
		SetHeader("User-Agent", "go-openinghours/"+currentVersion).
		SetContext(ctx)

	return &HttpClient{
		client: client,
		baseRequest: client.R().
			SetHeader("Accept", "application/yaml, application/toml, text/plain"),
	}
}

// getRequest returns a new request
func (c *HttpClient) getRequest() *resty.Request {
	return c.baseRequest.Clone(c.client.Context())
}

// GetDocument fetches the document at path, relative to the base URL.
func (c *HttpClient) GetDocument(path string) (Document, error) {
	resp, err := c.getRequest().Get(path)

	if err != nil {
		return Document{}, errors.New("Error making HTTP request: " + err.Error())
	}

	if resp.StatusCode() >= 400 {
		return Document{}, errors.New("HTTP error: " + resp.Status() + " - " + string(resp.Bytes()))
	}

	return Document{
		Body:        resp.Bytes(),
		ContentType: resp.Header().Get("Content-Type"),
	}, nil
}
