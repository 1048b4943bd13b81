package gateway

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// forwarded headers, everything else stays at the edge
var passHeaders = []string{"Content-Type", "X-Sharer-User-Id", "X-Request-Id"}

// Client forwards a validated request to the business tier and relays
// the response verbatim, status code included.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

func NewClient(baseURL string, logger *zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     logger.With().Str("component", "gateway_client").Logger(),
	}
}

func (c *Client) Forward(w http.ResponseWriter, r *http.Request) {
	target := c.baseURL + r.URL.Path
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}

	req, err := http.NewRequestWithContext(r.Context(), r.Method, target, r.Body)
	if err != nil {
		c.log.Error().Err(err).Str("target", target).Msg("build upstream request")
		writeError(w, http.StatusInternalServerError, "upstream request failed")
		return
	}
	for _, h := range passHeaders {
		if v := r.Header.Get(h); v != "" {
			req.Header.Set(h, v)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("target", target).Msg("forward request")
		writeError(w, http.StatusBadGateway, "server tier is unavailable")
		return
	}
	defer resp.Body.Close()

	for key, values := range resp.Header {
		for _, v := range values {
			w.Header().Add(key, v)
		}
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		c.log.Warn().Err(err).Str("target", target).Msg("relay response body")
	}
}
