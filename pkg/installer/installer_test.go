package installer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTool records install calls and fails the labels listed in failOn.
type fakeTool struct {
	installed []string
	failOn    map[string]bool
}

func (f *fakeTool) ListUpdates(ctx context.Context) (string, error) {
	return "", nil
}

func (f *fakeTool) Install(ctx context.Context, label string) error {
	f.installed = append(f.installed, label)
	if f.failOn[label] {
		return errors.New("installer returned exit status 1")
	}
	return nil
}

func TestInstallAll(t *testing.T) {
	tool := &fakeTool{}
	plan := []string{"XProtectPlistConfigData-2024.01", "MRTConfigData-1.99"}

	results := InstallAll(context.Background(), tool, plan)

	require.Len(t, results, 2)
	assert.Equal(t, plan, tool.installed)
	for i, r := range results {
		assert.Equal(t, plan[i], r.Label)
		assert.True(t, r.Succeeded())
	}
}

func TestInstallAllFailureDoesNotAbortSiblings(t *testing.T) {
	tool := &fakeTool{failOn: map[string]bool{"MRTConfigData-1.99": true}}
	plan := []string{
		"XProtectPlistConfigData-2024.01",
		"MRTConfigData-1.99",
		"Safari17.0-17.0",
	}

	results := InstallAll(context.Background(), tool, plan)

	require.Len(t, results, 3)
	assert.Equal(t, plan, tool.installed, "every label must be attempted")
	assert.True(t, results[0].Succeeded())
	assert.False(t, results[1].Succeeded())
	assert.True(t, results[2].Succeeded())
}

func TestInstallAllEmptyPlan(t *testing.T) {
	tool := &fakeTool{}
	results := InstallAll(context.Background(), tool, nil)
	assert.Empty(t, results)
	assert.Empty(t, tool.installed)
}

func TestSummarize(t *testing.T) {
	assert.NoError(t, Summarize([]Result{
		{Label: "a-1"},
		{Label: "b-2"},
	}))

	err := Summarize([]Result{
		{Label: "a-1"},
		{Label: "b-2", Err: errors.New("exit status 1")},
		{Label: "c-3", Err: errors.New("exit status 1")},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "b-2")
	assert.Contains(t, err.Error(), "c-3")
}

func TestFailureCount(t *testing.T) {
	results := []Result{
		{Label: "a-1"},
		{Label: "b-2", Err: errors.New("boom")},
	}
	assert.Equal(t, 1, FailureCount(results))
	assert.Equal(t, 0, FailureCount(nil))
}
