package gemini

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/deepscout/internal/core/domain"
	"github.com/custodia-labs/deepscout/internal/core/ports/driven"
)

func TestNewLLMService_DefaultModel(t *testing.T) {
	svc := NewLLMService(Config{})
	assert.Equal(t, DefaultModel, svc.ModelName())
}

func TestGenerate_MissingKey(t *testing.T) {
	svc := NewLLMService(Config{})
	_, err := svc.Generate(context.Background(), "", "hello", driven.GenerateOptions{})
	assert.ErrorIs(t, err, domain.ErrAPIKeyMissing)
	assert.ErrorIs(t, svc.Ping(context.Background(), ""), domain.ErrAPIKeyMissing)
}

func TestClient_CachedPerKey(t *testing.T) {
	svc := NewLLMService(Config{})
	ctx := context.Background()

	a1, err := svc.client(ctx, "key-a")
	require.NoError(t, err)
	a2, err := svc.client(ctx, "key-a")
	require.NoError(t, err)
	b, err := svc.client(ctx, "key-b")
	require.NoError(t, err)

	assert.Same(t, a1, a2)
	assert.NotSame(t, a1, b)

	require.NoError(t, svc.Close())
	assert.Empty(t, svc.clients)
}

func TestGenerateConfig(t *testing.T) {
	empty := generateConfig(driven.GenerateOptions{})
	assert.Zero(t, empty.MaxOutputTokens)
	assert.Nil(t, empty.Temperature)
	assert.Nil(t, empty.StopSequences)

	full := generateConfig(driven.GenerateOptions{MaxTokens: 256, Temperature: 0.5, StopWords: []string{"##"}})
	assert.Equal(t, int32(256), full.MaxOutputTokens)
	require.NotNil(t, full.Temperature)
	assert.InDelta(t, 0.5, *full.Temperature, 1e-6)
	assert.Equal(t, []string{"##"}, full.StopSequences)
}
