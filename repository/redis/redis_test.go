package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// needs a running redis; set REDIS_URL to enable
func TestWordRepo(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	ctx := context.Background()
	repo, err := New(ctx, url, time.Hour)
	require.NoError(t, err)
	defer repo.Close()

	topic := gofakeit.UUID()
	words, err := repo.Recent(ctx, topic)
	require.NoError(t, err)
	assert.Empty(t, words)

	require.NoError(t, repo.Add(ctx, topic, "soccer"))
	require.NoError(t, repo.Add(ctx, topic, "tennis"))

	words, err = repo.Recent(ctx, topic)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"soccer", "tennis"}, words)
}
