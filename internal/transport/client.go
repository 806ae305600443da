package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"surveysync/internal/models"
	"surveysync/internal/providers"
	"surveysync/internal/structures"
)

const maxResponseBodySize = 8 << 20 // 8 MB

type ClientInterface interface {
	FetchSurveys(ctx context.Context, rawURL string) (*models.SurveyResponse, error)
	FetchImage(ctx context.Context, rawURL string) (*models.Asset, error)
}

type Client struct {
	http   *http.Client
	logger providers.Logger
}

func NewClient(conf *structures.Config, logger providers.Logger) ClientInterface {
	timeout := conf.Sync.RequestTimeout
	if timeout <= 0 {
		timeout = structures.DefaultRequestTimeout
	}
	return &Client{
		http:   &http.Client{Timeout: timeout},
		logger: logger,
	}
}

func (c *Client) FetchSurveys(ctx context.Context, rawURL string) (*models.SurveyResponse, error) {
	body, _, err := c.get(ctx, rawURL, true)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, ErrEmptyResponse
	}

	var resp models.SurveyResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	switch {
	case resp.Status != models.StatusSuccess:
		return nil, fmt.Errorf("%w: status %q", ErrDecode, resp.Status)
	case resp.Surveys == nil:
		return nil, fmt.Errorf("%w: missing surveys", ErrDecode)
	case resp.Text == nil:
		return nil, fmt.Errorf("%w: missing text", ErrDecode)
	}
	return &resp, nil
}

func (c *Client) FetchImage(ctx context.Context, rawURL string) (*models.Asset, error) {
	body, header, err := c.get(ctx, rawURL, false)
	if err != nil {
		return nil, err
	}
	contentType := header.Get("Content-Type")
	if contentType == "" {
		return nil, fmt.Errorf("%w: missing content type", ErrUnsupportedAsset)
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedAsset, err)
	}
	if len(body) == 0 {
		return nil, ErrEmptyResponse
	}
	return &models.Asset{Data: body, Mime: mediaType}, nil
}

func (c *Client) get(ctx context.Context, rawURL string, noCache bool) ([]byte, http.Header, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	if noCache {
		req.Header.Set("Cache-Control", "no-cache")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	c.logger.Debugf(providers.TypeSync, "GET %s -> %d (%d bytes, %s)", req.URL.Path, resp.StatusCode, len(body), time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, nil, fmt.Errorf("%w: unexpected status %d", ErrTransport, resp.StatusCode)
	}
	return body, resp.Header, nil
}
