package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reportlens/domain/core"
	"reportlens/internal/errors"
)

func TestRunStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/runs/run-1/status", r.URL.Path)
		fmt.Fprint(w, `{"status": "running"}`)
	}))
	defer srv.Close()

	state, err := NewClient(srv.URL, time.Millisecond, time.Second).RunStatus(context.Background(), "run-1")

	require.NoError(t, err)
	assert.Equal(t, "running", state)
}

func TestRunStatus_StateAlias(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"state": "complete"}`)
	}))
	defer srv.Close()

	state, err := NewClient(srv.URL, time.Millisecond, time.Second).RunStatus(context.Background(), "run-1")

	require.NoError(t, err)
	assert.Equal(t, "complete", state)
}

func TestRunStatus_NoState(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"unrelated": true}`)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Millisecond, time.Second).RunStatus(context.Background(), "run-1")

	require.Error(t, err)
	assert.Equal(t, errors.CodeSnapshotFetch, errors.GetCode(err))
}

func TestWaitForSnapshot_PollsUntilComplete(t *testing.T) {
	var polls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/runs/run-1/status":
			if polls.Add(1) < 3 {
				fmt.Fprint(w, `{"status": "running"}`)
				return
			}
			fmt.Fprint(w, `{"status": "complete"}`)
		case "/runs/run-1/snapshot":
			fmt.Fprint(w, `{"diagnostics": {"data_quality_score": 90}}`)
		case "/runs/run-1/report":
			fmt.Fprint(w, `{"sections": [{"id": "summary", "title": "Summary", "content": "All good."}]}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	snap, err := NewClient(srv.URL, time.Millisecond, time.Second).
		WaitForSnapshot(context.Background(), core.RunID("run-1"))

	require.NoError(t, err)
	assert.GreaterOrEqual(t, polls.Load(), int32(3))

	q, ok := snap.QualityScore()
	require.True(t, ok)
	assert.Equal(t, 90.0, q)

	// Standalone sections are grafted onto the snapshot payload.
	sections := snap.Sections()
	require.Len(t, sections, 1)
	assert.Equal(t, "summary", sections[0].ID)
}

func TestWaitForSnapshot_InlineSectionsWin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/runs/run-1/status":
			fmt.Fprint(w, `{"status": "complete"}`)
		case "/runs/run-1/snapshot":
			fmt.Fprint(w, `{"report": {"sections": [{"id": "inline", "content": "s"}]}}`)
		case "/runs/run-1/report":
			fmt.Fprint(w, `{"sections": [{"id": "external", "content": "x"}]}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	snap, err := NewClient(srv.URL, time.Millisecond, time.Second).
		WaitForSnapshot(context.Background(), core.RunID("run-1"))

	require.NoError(t, err)
	sections := snap.Sections()
	require.Len(t, sections, 1)
	assert.Equal(t, "inline", sections[0].ID)
}

func TestWaitForSnapshot_FailedRun(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status": "failed"}`)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Millisecond, time.Second).
		WaitForSnapshot(context.Background(), core.RunID("run-1"))

	require.Error(t, err)
	assert.Equal(t, errors.CodeRunFailed, errors.GetCode(err))
}

func TestWaitForSnapshot_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status": "running"}`)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Millisecond, 20*time.Millisecond).
		WaitForSnapshot(context.Background(), core.RunID("run-1"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out waiting for analysis run run-1")
}

func TestWaitForSnapshot_MissingSectionsEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/runs/run-1/status":
			fmt.Fprint(w, `{"status": "complete"}`)
		case "/runs/run-1/snapshot":
			fmt.Fprint(w, `{"profile": {"row_count": 10}}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	snap, err := NewClient(srv.URL, time.Millisecond, time.Second).
		WaitForSnapshot(context.Background(), core.RunID("run-1"))

	require.NoError(t, err)
	rows, ok := snap.RecordsProcessed()
	require.True(t, ok)
	assert.Equal(t, 10, rows)
	assert.Nil(t, snap.Sections())
}

func TestMergeSections(t *testing.T) {
	tests := []struct {
		name     string
		snap     string
		sections string
		want     string
	}{
		{
			name:     "grafts onto object",
			snap:     `{"a": 1}`,
			sections: `{"sections": [{"id": "s"}]}`,
			want:     `{"a": 1,"sections":[{"id": "s"}]}`,
		},
		{
			name:     "empty object",
			snap:     `{}`,
			sections: `{"sections": []}`,
			want:     `{"sections":[]}`,
		},
		{
			name:     "invalid sections left alone",
			snap:     `{"a": 1}`,
			sections: `{"truncated":`,
			want:     `{"a": 1}`,
		},
		{
			name:     "non-object snapshot left alone",
			snap:     `[1, 2]`,
			sections: `{"sections": []}`,
			want:     `[1, 2]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mergeSections([]byte(tt.snap), []byte(tt.sections))
			assert.Equal(t, tt.want, string(got))
		})
	}
}
