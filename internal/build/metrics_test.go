package build

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ObserveJob_CountsByOutcome(t *testing.T) {
	t.Parallel()
	m := NewMetrics()
	jobs := threeJobs()

	m.ObserveJob(JobOutcome{Job: jobs[0], Kind: Success, Size: 2048, Duration: 3 * time.Second})
	m.ObserveJob(JobOutcome{Job: jobs[1], Kind: NotFound})
	m.ObserveJob(JobOutcome{Job: jobs[2], Kind: ToolFailure, Duration: time.Second})

	assert.InDelta(t, 1, testutil.ToFloat64(m.jobsTotal.WithLabelValues("success")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.jobsTotal.WithLabelValues("not_found")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.jobsTotal.WithLabelValues("tool_failure")), 0)
	assert.InDelta(t, 2048, testutil.ToFloat64(m.artifactSize.WithLabelValues("Overlay")), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(m.artifactSize))
}

func TestMetrics_ObserveRun_RecordsLastRun(t *testing.T) {
	t.Parallel()
	m := NewMetrics()
	now := time.Unix(1_700_000_000, 0)

	m.ObserveRun(RunOutcome{Kind: AllSucceeded}, now)
	assert.InDelta(t, 1, testutil.ToFloat64(m.lastSuccess), 0)
	assert.InDelta(t, 1_700_000_000, testutil.ToFloat64(m.lastRun), 0)

	m.ObserveRun(RunOutcome{Kind: ToolUnavailable}, now)
	assert.InDelta(t, 0, testutil.ToFloat64(m.lastSuccess), 0)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	t.Parallel()
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveJob(JobOutcome{Kind: Success})
		m.ObserveRun(RunOutcome{}, time.Now())
	})
}

func TestMetrics_WriteTextfile_AfterRun(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.source(t, "overlay.py", "ok")
	m := NewMetrics()

	out := f.orchestrator(WithMetrics(m)).Run(context.Background(), threeJobs()[:2], f.root, nil)
	require.Equal(t, PartialFailure, out.Kind)

	path := filepath.Join(t.TempDir(), "packrun.prom")
	require.NoError(t, m.WriteTextfile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, `packrun_jobs_total{outcome="success"} 1`)
	assert.Contains(t, text, `packrun_jobs_total{outcome="not_found"} 1`)
	assert.Contains(t, text, "packrun_last_run_success 0")
	assert.Contains(t, text, `packrun_artifact_size_bytes{output="Overlay"} 6`)
}
