// Package api is the client for the external analysis backend. It owns all
// network concerns (polling, timeouts, retries-by-poll) so the core pipeline
// stays free of I/O.
package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"

	"reportlens/domain/core"
	"reportlens/domain/snapshot"
	"reportlens/internal/errors"
)

// Run states reported by the backend.
const (
	runStateComplete = "complete"
	runStateFailed   = "failed"
)

// Client fetches run state and snapshots from the analysis backend.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	pollInterval time.Duration
	pollTimeout  time.Duration
}

// NewClient creates a backend client.
func NewClient(baseURL string, pollInterval, pollTimeout time.Duration) *Client {
	return &Client{
		baseURL:      baseURL,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		pollInterval: pollInterval,
		pollTimeout:  pollTimeout,
	}
}

// RunStatus fetches the current state of an analysis run.
func (c *Client) RunStatus(ctx context.Context, runID core.RunID) (string, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/runs/%s/status", c.baseURL, runID))
	if err != nil {
		return "", errors.WithCode(errors.CodeSnapshotFetch, err)
	}
	state := gjson.GetBytes(body, "status").String()
	if state == "" {
		state = gjson.GetBytes(body, "state").String()
	}
	if state == "" {
		return "", errors.New(errors.CodeSnapshotFetch, "backend status response carries no state")
	}
	return state, nil
}

// WaitForSnapshot polls the run until it completes, then fetches the snapshot
// payload and the report sections concurrently and merges them. A failed run
// is an error; the snapshot's own sparseness is not.
func (c *Client) WaitForSnapshot(ctx context.Context, runID core.RunID) (*snapshot.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, c.pollTimeout)
	defer cancel()

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		state, err := c.RunStatus(ctx, runID)
		if err != nil {
			return nil, err
		}
		if state == runStateFailed {
			return nil, errors.New(errors.CodeRunFailed, fmt.Sprintf("analysis run %s failed", runID))
		}
		if state == runStateComplete {
			break
		}
		select {
		case <-ctx.Done():
			return nil, errors.Wrapf(ctx.Err(), "timed out waiting for analysis run %s", runID)
		case <-ticker.C:
		}
	}

	var snapBody, sectionsBody []byte
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snapBody, err = c.get(gctx, fmt.Sprintf("%s/runs/%s/snapshot", c.baseURL, runID))
		return err
	})
	g.Go(func() error {
		var err error
		sectionsBody, err = c.get(gctx, fmt.Sprintf("%s/runs/%s/report", c.baseURL, runID))
		// The sections endpoint is optional on older backends.
		if err != nil {
			sectionsBody = nil
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, errors.WithCode(errors.CodeSnapshotFetch, err)
	}

	return snapshot.Parse(mergeSections(snapBody, sectionsBody)), nil
}

// mergeSections grafts a standalone sections array onto a snapshot payload
// that lacks one. Backends that inline sections win; the merge never
// overwrites.
func mergeSections(snapBody, sectionsBody []byte) []byte {
	if len(sectionsBody) == 0 || !gjson.ValidBytes(sectionsBody) || !gjson.ValidBytes(snapBody) {
		return snapBody
	}
	if gjson.GetBytes(snapBody, "sections").Exists() || gjson.GetBytes(snapBody, "report.sections").Exists() {
		return snapBody
	}
	sections := gjson.GetBytes(sectionsBody, "sections")
	if !sections.Exists() {
		return snapBody
	}
	merged := make([]byte, 0, len(snapBody)+len(sections.Raw)+16)
	trimmed := bytes.TrimSpace(snapBody)
	if len(trimmed) < 2 || trimmed[0] != '{' || trimmed[len(trimmed)-1] != '}' {
		return snapBody
	}
	merged = append(merged, trimmed[:len(trimmed)-1]...)
	if len(trimmed) > 2 {
		merged = append(merged, ',')
	}
	merged = append(merged, []byte(`"sections":`)...)
	merged = append(merged, []byte(sections.Raw)...)
	merged = append(merged, '}')
	return merged
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("backend returned status %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}
