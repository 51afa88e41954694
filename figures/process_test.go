package figures

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate(t *testing.T) {
	paths := make([]string, 100)
	for i := range paths {
		paths[i] = fmt.Sprintf("file_%03d.csv", i)
	}

	out, err := Aggregate(context.Background(), paths, 8, func(_ context.Context, path string) (string, bool, error) {
		// skip every tenth file
		if path[7] == '0' {
			return "", false, nil
		}
		return path, true, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 90, len(out))
	sort.Strings(out)
	assert.Equal(t, "file_001.csv", out[0])
}

func TestAggregateError(t *testing.T) {
	paths := []string{"a", "b", "c", "d"}
	_, err := Aggregate(context.Background(), paths, 2, func(_ context.Context, path string) (int, bool, error) {
		if path == "c" {
			return 0, false, errors.New("boom")
		}
		return 1, true, nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestAggregateCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Aggregate(ctx, []string{"a", "b"}, 2, func(ctx context.Context, path string) (int, bool, error) {
		return 0, false, ctx.Err()
	})
	assert.Error(t, err)
}

func TestAggregateDefaultWorkers(t *testing.T) {
	out, err := Aggregate(context.Background(), []string{"a"}, 0, func(_ context.Context, path string) (string, bool, error) {
		return path, true, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, out)
}
