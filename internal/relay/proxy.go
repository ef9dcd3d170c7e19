package relay

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/cinescout/cinescout/internal/httpclient"
)

// maxProxyBodySize limits the proxy request body to 1 MB.
const maxProxyBodySize = 1 << 20

// ProxyRequest describes an ad-hoc request to forward.
type ProxyRequest struct {
	URL     string            `json:"url"`
	Method  string            `json:"method,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
	Body    json.RawMessage   `json:"body,omitempty"`
}

// Proxy forwards arbitrary API requests and returns their parsed JSON body.
// With no allowed hosts configured it is an open relay; deployments that care
// should set server.proxy_allowed_hosts.
type Proxy struct {
	http    *httpclient.Client
	allowed map[string]bool // nil or empty = allow all
	logger  *slog.Logger
}

// NewProxy creates the generic proxy handler.
func NewProxy(client *httpclient.Client, allowedHosts []string, logger *slog.Logger) *Proxy {
	if logger == nil {
		logger = slog.Default()
	}
	allowed := make(map[string]bool, len(allowedHosts))
	for _, h := range allowedHosts {
		allowed[strings.ToLower(h)] = true
	}
	return &Proxy{http: client, allowed: allowed, logger: logger}
}

// ServeHTTP handles POST /api/proxy.
func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var preq ProxyRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxProxyBodySize)
	if err := json.NewDecoder(r.Body).Decode(&preq); err != nil {
		p.logger.Error("failed to decode proxy request", slog.String("error", err.Error()))
		writeError(w)
		return
	}

	target, err := url.Parse(preq.URL)
	if err != nil || target.Scheme == "" || target.Host == "" {
		p.logger.Error("invalid proxy target", slog.String("url", preq.URL))
		writeError(w)
		return
	}
	if !p.hostAllowed(target.Hostname()) {
		p.logger.Warn("proxy target not allowed", slog.String("host", target.Hostname()))
		writeError(w)
		return
	}

	method := strings.ToUpper(preq.Method)
	if method == "" {
		method = http.MethodGet
	}

	// GET requests carry no body.
	var body *bytes.Reader
	if method != http.MethodGet && len(preq.Body) > 0 {
		body = bytes.NewReader(preq.Body)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(r.Context(), method, target.String(), body)
	if err != nil {
		p.logger.Error("failed to build proxy request", slog.String("error", err.Error()))
		writeError(w)
		return
	}
	for k, v := range preq.Headers {
		req.Header.Set(k, v)
	}
	if req.Header.Get("Content-Type") == "" && method != http.MethodGet {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := p.http.Do(req)
	if err != nil {
		p.logger.Error("proxy request failed",
			slog.String("url", target.String()),
			slog.String("error", err.Error()),
		)
		writeError(w)
		return
	}
	defer resp.Body.Close()

	var payload any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		p.logger.Error("proxy response is not JSON",
			slog.String("url", target.String()),
			slog.String("error", err.Error()),
		)
		writeError(w)
		return
	}

	writeJSON(w, http.StatusOK, payload)
}

func (p *Proxy) hostAllowed(host string) bool {
	if len(p.allowed) == 0 {
		return true
	}
	return p.allowed[strings.ToLower(host)]
}
