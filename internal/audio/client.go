// internal/audio/client.go
//
// Pronunciation clip fetching for the matching game.
// Responsibilities:
//   - Pronounce(url): fire-and-forget warm-up of a clip (implements game.Pronouncer).
//   - Clip(ctx, url): cached clip bytes, fetched on demand for GET /audio/{cardId}.
//
// Failures are logged and never reach the game state.

package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// maxClipBytes bounds a single clip held in memory.
const maxClipBytes = 2 << 20

// ErrTooLarge is returned for clips above maxClipBytes.
var ErrTooLarge = errors.New("audio: clip too large")

// Clip is a fetched pronunciation clip.
type Clip struct {
	ContentType string
	Data        []byte
}

// Client fetches and caches clips by URL.
type Client struct {
	http    *http.Client
	timeout time.Duration

	mu    sync.RWMutex
	clips map[string]Clip
	wg    sync.WaitGroup
}

// NewClient constructs a Client. timeout bounds every fetch; zero means 5s.
func NewClient(httpClient *http.Client, timeout time.Duration) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{http: httpClient, timeout: timeout, clips: make(map[string]Clip)}
}

// Pronounce fetches url in the background so the clip is ready to play.
func (c *Client) Pronounce(url string) {
	if url == "" {
		return
	}
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()
		if _, err := c.Clip(ctx, url); err != nil {
			log.Warn().Err(err).Str("url", url).Msg("audio playback failed")
		}
	}()
}

// Wait blocks until background fetches started by Pronounce have finished.
func (c *Client) Wait() { c.wg.Wait() }

// Clip returns the cached clip for url, fetching it on a miss.
func (c *Client) Clip(ctx context.Context, url string) (Clip, error) {
	c.mu.RLock()
	clip, ok := c.clips[url]
	c.mu.RUnlock()
	if ok {
		return clip, nil
	}

	clip, err := c.fetch(ctx, url)
	if err != nil {
		return Clip{}, err
	}
	c.mu.Lock()
	c.clips[url] = clip
	c.mu.Unlock()
	return clip, nil
}

func (c *Client) fetch(ctx context.Context, url string) (Clip, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Clip{}, fmt.Errorf("audio: build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return Clip{}, fmt.Errorf("audio: fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Clip{}, fmt.Errorf("audio: fetch: status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxClipBytes+1))
	if err != nil {
		return Clip{}, fmt.Errorf("audio: read body: %w", err)
	}
	if len(data) > maxClipBytes {
		return Clip{}, ErrTooLarge
	}
	ct := resp.Header.Get("Content-Type")
	if ct == "" {
		ct = "audio/mpeg"
	}
	return Clip{ContentType: ct, Data: data}, nil
}
