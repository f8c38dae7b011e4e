// Package webfetch provides a tool that downloads a web page and converts
// its HTML to Markdown so the model receives readable text instead of markup.
package webfetch

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/vatsavvamsi-hub/autonomous-task-agent/internal/utils"
	"github.com/vatsavvamsi-hub/autonomous-task-agent/providers/tool"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second
	// MaxBodySize is the maximum response body size (10MB).
	MaxBodySize = 10 * 1024 * 1024
	// MaxObservationLen caps the Markdown returned in one observation.
	MaxObservationLen = 8000

	userAgent             = "autonomous-task-agent/1.0"
	dialTimeout           = 10 * time.Second
	tlsHandshakeTimeout   = 10 * time.Second
	responseHeaderTimeout = 10 * time.Second
	maxRedirects          = 10
)

// New returns the web_fetch tool specification. A nil client selects a
// default with conservative transport timeouts.
func New(client *http.Client) tool.Spec {
	if client == nil {
		client = defaultClient()
	}
	return tool.Spec{
		Name: "web_fetch",
		Description: "Fetch a web page and return its content converted to Markdown. " +
			"Partial URLs like 'example.com' are normalized to https://.",
		Params: map[string]string{
			"url": "The URL of the web page to fetch",
		},
		Run: func(ctx context.Context, args tool.Args) (string, error) {
			return run(ctx, client, args)
		},
	}
}

func run(ctx context.Context, client *http.Client, args tool.Args) (string, error) {
	rawURL, err := args.Text("url")
	if err != nil {
		return "", err
	}

	url := strings.TrimSpace(rawURL)
	if url == "" {
		return "", fmt.Errorf("url cannot be empty")
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	request.Header.Set("User-Agent", userAgent)

	response, err := client.Do(request)
	if err != nil {
		return "", fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer utils.CloseWithLog(response.Body)

	if response.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d %s", response.StatusCode, response.Status)
	}

	htmlBytes, err := readBody(ctx, response.Body)
	if err != nil {
		return "", err
	}

	markdown, err := htmltomarkdown.ConvertString(string(htmlBytes))
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to Markdown: %w", err)
	}

	finalURL := response.Request.URL.String()
	content := utils.TruncateString(strings.TrimSpace(markdown), MaxObservationLen)
	return fmt.Sprintf("Fetched %s:\n\n%s", finalURL, content), nil
}

// readBody reads up to MaxBodySize bytes in a goroutine so cancellation is
// honoured even during slow reads.
func readBody(ctx context.Context, body io.Reader) ([]byte, error) {
	type readResult struct {
		data []byte
		err  error
	}

	limited := io.LimitReader(body, MaxBodySize)
	results := make(chan readResult, 1)
	go func() {
		data, err := io.ReadAll(limited)
		results <- readResult{data: data, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("timeout while reading response body: %w", ctx.Err())
	case result := <-results:
		if result.err != nil {
			return nil, fmt.Errorf("failed to read response body: %w", result.err)
		}
		if len(result.data) == MaxBodySize {
			return nil, fmt.Errorf("response body exceeds maximum size of %d bytes", MaxBodySize)
		}
		return result.data, nil
	}
}

func defaultClient() *http.Client {
	return &http.Client{
		Timeout: DefaultTimeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   dialTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   tlsHandshakeTimeout,
			ResponseHeaderTimeout: responseHeaderTimeout,
			IdleConnTimeout:       90 * time.Second,
			MaxIdleConns:          100,
			MaxIdleConnsPerHost:   10,
			ForceAttemptHTTP2:     true,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("too many redirects (>%d)", maxRedirects)
			}
			return nil
		},
	}
}
