package unitconv_test

import (
	"context"
	"strings"
	"testing"

	"github.com/aretw0/unitconv"
	"github.com/aretw0/unitconv/pkg/adapters/file"
	"github.com/aretw0/unitconv/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, strings.TrimSpace(unitconv.Version))
}

func TestConverter_HooksReachEmbeddedAndHostedSessions(t *testing.T) {
	var results []string
	hooks := domain.LifecycleHooks{
		OnConverted: func(_ context.Context, e *domain.Event) { results = append(results, e.Result) },
	}
	c := unitconv.New(unitconv.WithLifecycleHooks(hooks))

	c.NewSession().OnInputChanged("1")

	ctx := context.Background()
	_, err := c.Start(ctx, "hosted")
	require.NoError(t, err)
	_, err = c.InputChanged(ctx, "hosted", "2")
	require.NoError(t, err)

	assert.Equal(t, []string{"1000.0 Meters", "2000.0 Meters"}, results)
}

func TestConverter_MergesHooks(t *testing.T) {
	var calls int
	count := domain.LifecycleHooks{
		OnConverted: func(context.Context, *domain.Event) { calls++ },
	}
	c := unitconv.New(unitconv.WithLifecycleHooks(count), unitconv.WithLifecycleHooks(count))

	c.NewSession().OnInputChanged("1")
	assert.Equal(t, 2, calls)
}

func TestConverter_WithStore(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first := unitconv.New(unitconv.WithStore(file.New(dir)))
	_, err := first.Start(ctx, "persisted")
	require.NoError(t, err)
	_, err = first.InputChanged(ctx, "persisted", "5")
	require.NoError(t, err)

	// A second process sees the same session.
	second := unitconv.New(unitconv.WithStore(file.New(dir)))
	state, err := second.State(ctx, "persisted")
	require.NoError(t, err)
	assert.Equal(t, "5000.0 Meters", state.Result)
}

func TestConverter_Modes(t *testing.T) {
	pairs := unitconv.New().Modes()
	require.Len(t, pairs, 3)
	assert.Equal(t, "Distance (Kilometers to Meters)", pairs[0].Description())
}
