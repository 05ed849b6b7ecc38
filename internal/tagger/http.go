package tagger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/dgallion1/linetag/internal/chunker"
	"github.com/dgallion1/linetag/internal/pos"
)

// HTTPTagger calls a remote spaCy-compatible tagging service. The service
// receives {"text": "..."} and answers with a list of
// {"text", "idx", "pos"} objects, either bare or under a "tokens" key.
type HTTPTagger struct {
	url        string
	apiKey     string
	maxChars   int
	httpClient *http.Client
	log        *slog.Logger
	backoff    func(attempt int) time.Duration

	Stats *Stats
}

func NewHTTPTagger(url, apiKey string, timeout time.Duration, maxChars int, log *slog.Logger) *HTTPTagger {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPTagger{
		url:      url,
		apiKey:   apiKey,
		maxChars: maxChars,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log:     log,
		backoff: Backoff,
		Stats:   NewStats(time.Hour),
	}
}

type tagRequest struct {
	Text string `json:"text"`
}

type tagResponse struct {
	Tokens []pos.Token `json:"tokens"`
}

// Tag sends text to the remote service, one segment per request for long
// input, and returns the tokens with offsets relative to the whole text.
func (c *HTTPTagger) Tag(ctx context.Context, text string) ([]pos.Token, error) {
	var tokens []pos.Token
	for _, seg := range chunker.Split(text, c.maxChars) {
		segTokens, err := c.tagWithRetry(ctx, seg.Text)
		if err != nil {
			return nil, err
		}
		for _, tok := range segTokens {
			tok.Offset += seg.Offset
			tokens = append(tokens, tok)
		}
	}
	return tokens, nil
}

func (c *HTTPTagger) tagWithRetry(ctx context.Context, text string) ([]pos.Token, error) {
	var tokens []pos.Token
	var lastErr error
	for attempt := range MaxRetries {
		tokens, lastErr = c.tagOnce(ctx, text)
		if lastErr == nil || !IsRetryable(lastErr) {
			break
		}
		c.log.Warn("retryable tagger error", "attempt", attempt, "error", lastErr)
		if attempt == MaxRetries-1 {
			break
		}
		select {
		case <-time.After(c.backoff(attempt)):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return tokens, lastErr
}

func (c *HTTPTagger) tagOnce(ctx context.Context, text string) (tokens []pos.Token, err error) {
	body, err := json.Marshal(tagRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()
	defer func() {
		c.Stats.Record(time.Since(start), utf8.RuneCountInString(text), err)
	}()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("tagger api: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return nil, &RetryableError{
			StatusCode: resp.StatusCode,
			Message:    string(respBody),
		}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tagger api status %d: %s", resp.StatusCode, truncate(string(respBody), 200))
	}

	return decodeTokens(respBody)
}

func decodeTokens(body []byte) ([]pos.Token, error) {
	body = bytes.TrimSpace(body)
	if len(body) > 0 && body[0] == '[' {
		var tokens []pos.Token
		if err := json.Unmarshal(body, &tokens); err != nil {
			return nil, fmt.Errorf("decode tokens: %w", err)
		}
		return tokens, nil
	}
	var resp tagResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode tokens: %w", err)
	}
	if resp.Tokens == nil {
		return nil, fmt.Errorf("decode tokens: response has no tokens: %s", truncate(string(body), 200))
	}
	return resp.Tokens, nil
}

// Close releases idle connections.
func (c *HTTPTagger) Close() {
	c.httpClient.CloseIdleConnections()
}
