package collector

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/blackwell-systems/wrapped/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner serves canned stdout keyed by a substring of the command, and
// can simulate an unreachable host.
type fakeRunner struct {
	unreachable map[string]bool
	outputs     map[string]string // command substring -> stdout

	mu       sync.Mutex
	commands []string
}

func (f *fakeRunner) Run(_ context.Context, host config.RemoteHost, command string) ([]byte, error) {
	f.mu.Lock()
	f.commands = append(f.commands, command)
	f.mu.Unlock()
	if f.unreachable[host.Host] {
		return nil, errors.New("connection refused")
	}
	for key, out := range f.outputs {
		if strings.Contains(command, key) {
			return []byte(out), nil
		}
	}
	return nil, nil
}

func TestRemoteCollect_SingleHost(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]string{
		".claude/stats-cache.json": `{"totalSessions":4,"totalMessages":50,"dailyActivity":[{"date":"2026-02-02","messageCount":50,"sessionCount":4,"toolCallCount":9}]}`,
		"history.jsonl":            `{"display":"remote prompt","timestamp":1767349800000,"project":"/srv/api","sessionId":"r1"}`,
		"find":                     `{"type":"user","timestamp":"2025-01-02T08:00:00Z"}`,
	}}
	c := NewRemoteCollector(runner, nil)

	datasets := c.Collect(context.Background(), []config.RemoteHost{
		{Name: "box", Host: "box.example.com", User: "dev"},
	}, 0)

	require.Len(t, datasets, 1)
	ds := datasets[0]
	assert.Equal(t, "box", ds.Host)
	require.NotNil(t, ds.Cache)
	assert.Equal(t, 4, ds.Cache.TotalSessions)
	require.Len(t, ds.History, 1)
	assert.Equal(t, "remote prompt", ds.History[0].Display)
	assert.Equal(t, []string{"api"}, ds.Projects)
	assert.Equal(t, time.Date(2025, 1, 2, 8, 0, 0, 0, time.UTC), ds.OldestTimestamp.UTC())
}

func TestRemoteCollect_ProjectsDerivedWithoutExtraRoundTrip(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]string{
		"history.jsonl": `{"display":"x","timestamp":1767349800000,"project":"/srv/api","sessionId":"r1"}`,
	}}
	c := NewRemoteCollector(runner, nil)

	c.Collect(context.Background(), []config.RemoteHost{{Host: "h"}}, 0)

	for _, cmd := range runner.commands {
		assert.NotContains(t, cmd, "ls ", "project names must come from history, not a listing command")
	}
	// cache x2 roots, history x1, find x1
	assert.Len(t, runner.commands, 4)
}

func TestRemoteCollect_FailedHostSkipped(t *testing.T) {
	runner := &fakeRunner{
		unreachable: map[string]bool{"down.example.com": true},
		outputs: map[string]string{
			"history.jsonl": `{"display":"ok","timestamp":1767349800000,"project":"/p/a","sessionId":"s"}`,
		},
	}

	var events []string
	progress := func(host string, event HostEvent, err error) {
		switch event {
		case HostStarted:
			events = append(events, host+":start")
		case HostDone:
			events = append(events, host+":done")
		case HostFailed:
			require.Error(t, err)
			events = append(events, host+":failed")
		}
	}
	c := NewRemoteCollector(runner, progress)

	datasets := c.Collect(context.Background(), []config.RemoteHost{
		{Name: "down", Host: "down.example.com"},
		{Name: "up", Host: "up.example.com"},
	}, 0)

	require.Len(t, datasets, 1, "failed host must be skipped, not fail the batch")
	assert.Equal(t, "up", datasets[0].Host)
	assert.Equal(t, []string{"down:start", "down:failed", "up:start", "up:done"}, events)
}

func TestRemoteCollect_YearFilterAppliesToHistoryNotProjects(t *testing.T) {
	old := time.Date(2024, 5, 1, 10, 0, 0, 0, time.Local).UnixMilli()
	cur := time.Date(2026, 5, 1, 10, 0, 0, 0, time.Local).UnixMilli()
	runner := &fakeRunner{outputs: map[string]string{
		"history.jsonl": `{"display":"old","timestamp":` + msString(old) + `,"project":"/p/legacy","sessionId":"a"}` + "\n" +
			`{"display":"new","timestamp":` + msString(cur) + `,"project":"/p/current","sessionId":"b"}`,
	}}
	c := NewRemoteCollector(runner, nil)

	datasets := c.Collect(context.Background(), []config.RemoteHost{{Host: "h"}}, 2026)

	require.Len(t, datasets, 1)
	require.Len(t, datasets[0].History, 1)
	assert.Equal(t, "new", datasets[0].History[0].Display)
	assert.ElementsMatch(t, []string{"legacy", "current"}, datasets[0].Projects)
}

func TestRemoteCollect_HostLimitPreservesOrder(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]string{
		"history.jsonl": `{"display":"ok","timestamp":1767349800000,"project":"/p/a","sessionId":"s"}`,
	}}
	c := NewRemoteCollector(runner, nil)
	c.SetHostLimit(3)

	datasets := c.Collect(context.Background(), []config.RemoteHost{
		{Name: "a", Host: "a.example.com"},
		{Name: "b", Host: "b.example.com"},
		{Name: "c", Host: "c.example.com"},
	}, 0)

	require.Len(t, datasets, 3)
	for i, want := range []string{"a", "b", "c"} {
		assert.Equal(t, want, datasets[i].Host)
	}
}

func TestRemoteDataset_Empty(t *testing.T) {
	assert.True(t, RemoteDataset{Host: "h"}.Empty())
	assert.False(t, RemoteDataset{Host: "h", OldestTimestamp: time.Now()}.Empty())
}
