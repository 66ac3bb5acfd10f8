package grader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"

	"github.com/arjunmahishi/autograder/report"
)

// ProcessURL fetches rawURL and grades the response body. The extension is
// taken from the URL path and defaults to html.
func (g *Grader) ProcessURL(ctx context.Context, rawURL string) *report.Report {
	u, err := url.Parse(rawURL)
	if err != nil {
		return notice(fmt.Sprintf("Error: %v", err), RuleProcessing)
	}
	ext := normalizeExt(path.Ext(u.Path))
	if ext == "" {
		ext = "html"
	}
	if ByExtension(ext) == nil {
		return notice(fmt.Sprintf("Unsupported file type, no tests run: %s", ext), RuleUnsupported)
	}

	src, err := g.fetch(ctx, u.String())
	if err != nil {
		g.log.Warn().Err(err).Str("url", rawURL).Msg("fetch failed")
		return notice(fmt.Sprintf("Error: %v", err), RuleProcessing)
	}
	return g.ProcessSource(ctx, ext, rawURL, src)
}

// noCacheHeaders ask servers and CDNs for the origin copy of a file.
var noCacheHeaders = map[string]string{
	"Cache-Control":       "no-cache, no-store, must-revalidate, max-age=0",
	"Cache-Tag":           "original-source",
	"Surrogate-Control":   "no-store",
	"X-Original-Source":   "true",
	"Cdn-Original-Source": "true",
	"Expires":             "0",
	"Pragma":              "no-cache",
}

// fetch downloads a source bypassing caches.
func (g *Grader) fetch(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	for k, v := range noCacheHeaders {
		req.Header.Set(k, v)
	}

	resp, err := g.opts.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: unexpected status %s", rawURL, resp.Status)
	}

	var body io.Reader = resp.Body
	if g.opts.MaxBytes > 0 {
		body = io.LimitReader(resp.Body, g.opts.MaxBytes+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", rawURL, err)
	}
	if g.opts.MaxBytes > 0 && int64(len(data)) > g.opts.MaxBytes {
		return "", fmt.Errorf("fetch %s: response larger than %d bytes", rawURL, g.opts.MaxBytes)
	}
	return string(data), nil
}
