// Package bundler provides the adapters that compile a route file into a
// server bundle.
package bundler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"go.trai.ch/apiroutes/internal/core/domain"
	"go.trai.ch/zerr"
)

// maxErrorBody caps how much of a failed response is kept in the error.
const maxErrorBody = 64 << 10

// DevServer requests bundles from a running development server over HTTP.
type DevServer struct {
	client *http.Client
}

// NewDevServer creates a DevServer. A nil client means http.DefaultClient.
func NewDevServer(client *http.Client) *DevServer {
	if client == nil {
		client = http.DefaultClient
	}
	return &DevServer{client: client}
}

// Bundle fetches the compiled code for req.FilePath.
func (d *DevServer) Bundle(ctx context.Context, req domain.BundleRequest) (string, error) {
	u, err := BundleURL(req)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrBundlerRequestFailed.Error()), "url", u)
	}

	resp, err := d.client.Do(httpReq)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrBundlerRequestFailed.Error()), "url", u)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		cause := errors.New(errorMessage(resp.StatusCode, body))
		err := zerr.Wrap(cause, domain.ErrBundlerBadStatus.Error())
		err = zerr.With(err, "status", resp.StatusCode)
		return "", zerr.With(err, "url", u)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrBundlerRequestFailed.Error()), "url", u)
	}
	return string(body), nil
}

// BundleURL builds the dev server URL that serves the bundle for req.
// The path is the route file relative to the project root without its extension.
func BundleURL(req domain.BundleRequest) (string, error) {
	rel, err := filepath.Rel(req.ProjectRoot, req.FilePath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", zerr.With(domain.ErrRouteOutsideProjectRoot, "path", req.FilePath)
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))

	segments := strings.Split(filepath.ToSlash(rel), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}

	query := url.Values{}
	query.Set("platform", "web")
	query.Set("dev", strconv.FormatBool(req.Dev))
	query.Set("minify", strconv.FormatBool(req.Minify))
	query.Set("resolver.environment", req.Environment)
	query.Set("transform.environment", req.Environment)

	base := strings.TrimSuffix(req.DevServerURL, "/")
	return base + "/" + strings.Join(segments, "/") + ".bundle?" + query.Encode(), nil
}

// errorMessage extracts a readable message from a failed bundle response.
// Dev servers usually answer with a JSON document carrying a message field.
func errorMessage(status int, body []byte) string {
	var payload struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		if payload.Type != "" {
			return payload.Type + ": " + payload.Message
		}
		return payload.Message
	}

	if msg := strings.TrimSpace(string(body)); msg != "" {
		return msg
	}
	return strconv.Itoa(status) + " " + http.StatusText(status)
}
