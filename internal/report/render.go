package report

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/firewatch-kr/wildfire-report-service/internal/observability"
)

// Placeholder tokens in the chart fragment templates. Each fragment declares
// where its section data lands; the renderer substitutes compact JSON.
const (
	TokenHourly       = "__DATA_HOURLY__"
	TokenCause        = "__DATA_CAUSE__"
	TokenMonthly      = "__DATA_MONTHLY__"
	TokenYearly       = "__DATA_YEARLY__"
	TokenRegion       = "__DATA_REGION__"
	TokenMobilization = "__DATA_MOBILIZATION__"
	TokenCasualty     = "__DATA_CASUALTY__"
)

// Renderer injects section data into pre-built HTML chart fragments. The
// fragments themselves are opaque pass-through assets; the renderer only
// substitutes placeholder tokens and memoizes the result.
type Renderer struct {
	dir     string
	cache   *lruCache
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewRenderer serves fragments from dir, caching up to cacheSize rendered
// results.
func NewRenderer(dir string, cacheSize int, metrics *observability.Metrics, logger *slog.Logger) *Renderer {
	return &Renderer{
		dir:     dir,
		cache:   newLRUCache(cacheSize),
		metrics: metrics,
		logger:  logger,
	}
}

// Render loads the fragment <name>.html and replaces each token with the
// compact JSON encoding of its value. Every requested token must occur in
// the fragment; a token the fragment does not carry is a wiring error, not a
// silent no-op. Results are memoized keyed by fragment name and the data
// fingerprint, so the same section re-renders from cache and a changed year
// range bypasses stale entries.
func (r *Renderer) Render(name string, data map[string]any) (string, error) {
	encoded := make(map[string]string, len(data))
	for token, value := range data {
		raw, err := json.Marshal(value)
		if err != nil {
			return "", fmt.Errorf("encode %s for fragment %s: %w", token, name, err)
		}
		encoded[token] = string(raw)
	}

	key := cacheKey(name, encoded)
	if html, ok := r.cache.get(key); ok {
		r.metrics.RenderCache.WithLabelValues("hit").Inc()
		return html, nil
	}
	r.metrics.RenderCache.WithLabelValues("miss").Inc()

	raw, err := os.ReadFile(filepath.Join(r.dir, name+".html"))
	if err != nil {
		return "", fmt.Errorf("read fragment %s: %w", name, err)
	}
	html := string(raw)

	for token, payload := range encoded {
		if !strings.Contains(html, token) {
			return "", fmt.Errorf("fragment %s has no %s placeholder", name, token)
		}
		html = strings.ReplaceAll(html, token, payload)
	}

	r.cache.put(key, html)
	r.logger.Debug("fragment rendered", "fragment", name, "bytes", len(html))
	return html, nil
}

// TokenBody marks where composed section HTML lands in the page shell.
const TokenBody = "__REPORT_BODY__"

// RenderPage wraps already-rendered section HTML in the page shell fragment.
// Pages are not memoized; the per-section cache does the heavy lifting.
func (r *Renderer) RenderPage(name, body string) (string, error) {
	raw, err := os.ReadFile(filepath.Join(r.dir, name+".html"))
	if err != nil {
		return "", fmt.Errorf("read page shell %s: %w", name, err)
	}
	shell := string(raw)
	if !strings.Contains(shell, TokenBody) {
		return "", fmt.Errorf("page shell %s has no %s placeholder", name, TokenBody)
	}
	return strings.ReplaceAll(shell, TokenBody, body), nil
}

// ReadFragment returns a fragment verbatim, for sections with no data tokens.
func (r *Renderer) ReadFragment(name string) (string, error) {
	raw, err := os.ReadFile(filepath.Join(r.dir, name+".html"))
	if err != nil {
		return "", fmt.Errorf("read fragment %s: %w", name, err)
	}
	return string(raw), nil
}

// InvalidateAll drops every cached fragment. Called after a dataset reload.
func (r *Renderer) InvalidateAll() {
	r.cache.purge()
}

func cacheKey(name string, encoded map[string]string) string {
	tokens := make([]string, 0, len(encoded))
	for t := range encoded {
		tokens = append(tokens, t)
	}
	sort.Strings(tokens)

	h := sha256.New()
	h.Write([]byte(name))
	for _, t := range tokens {
		h.Write([]byte{0})
		h.Write([]byte(t))
		h.Write([]byte{0})
		h.Write([]byte(encoded[t]))
	}
	return name + ":" + hex.EncodeToString(h.Sum(nil)[:16])
}
