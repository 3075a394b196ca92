package processors

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/sitescore/internal/common"
)

func TestProgressSinkClampsPercent(t *testing.T) {
	jobs := newMemJobs()
	sink := NewStorageProgressSink(jobs, common.GetLogger())

	require.NoError(t, sink.UpdateProgress(context.Background(), "job-1", -10, "starting"))
	require.NoError(t, sink.UpdateProgress(context.Background(), "job-1", 42, "working"))
	require.NoError(t, sink.UpdateProgress(context.Background(), "job-1", 140, "done"))

	assert.Equal(t, []int{0, 42, 100}, jobs.progress["job-1"])
}
