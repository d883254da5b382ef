package djp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/wisnuaga/e-faktur/internal/model"
	"github.com/wisnuaga/e-faktur/internal/worker"
)

// maxPayloadBytes bounds the reference payload read. DJP responses are a
// few hundred bytes; anything near this limit is garbage.
const maxPayloadBytes = 1 << 20

// Client fetches the authoritative record over HTTP. The fetch is the only
// network-crossing operation in the pipeline and the only one carrying a
// timeout; cancellation aborts here and nowhere else.
type Client struct {
	httpClient *http.Client
	userAgent  string
	limiter    *worker.Limiter // optional, used by batch runs
}

// NewClient builds a client from the HTTP configuration. limiter may be nil
// for single-document runs.
func NewClient(cfg model.HTTPConfig, limiter *worker.Limiter) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy: newProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		limiter:   limiter,
	}
}

// Fetch retrieves and parses the reference record. Network and HTTP-status
// failures surface as *TransportError, malformed payloads as *ParseError.
func (c *Client) Fetch(ctx context.Context, rawURL string) (model.InvoiceFieldSet, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, rawURL); err != nil {
			return model.InvoiceFieldSet{}, &TransportError{URL: rawURL, Err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return model.InvoiceFieldSet{}, &TransportError{URL: rawURL, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/xml, text/xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.InvoiceFieldSet{}, &TransportError{URL: rawURL, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return model.InvoiceFieldSet{}, &TransportError{
			URL: rawURL,
			Err: fmt.Errorf("unexpected status: %s", resp.Status),
		}
	}

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return model.InvoiceFieldSet{}, &TransportError{URL: rawURL, Err: fmt.Errorf("read body: %w", err)}
	}

	return ParseRecord(payload)
}

// newProxyFunc prefers explicit proxy configuration over the environment.
func newProxyFunc(httpProxy, httpsProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}
	return func(req *http.Request) (*url.URL, error) {
		if req.URL.Scheme == "https" && httpsProxy != "" {
			return url.Parse(httpsProxy)
		}
		if httpProxy != "" {
			return url.Parse(httpProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}
