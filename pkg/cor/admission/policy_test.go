package admission

import (
	"context"
	"testing"

	"github.com/ib-77/cor3/pkg/cor"
	"github.com/ib-77/cor3/pkg/cor/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const positiveAmounts = `package cor

default allow := false

allow if {
	input.class >= 0
	input.class <= 1000000
}
`

func TestPolicy_Allow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	p, err := New(ctx, positiveAmounts, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultQuery, p.Query())

	assert.NoError(t, p.Allow(ctx, 10.0, nil))
	assert.ErrorIs(t, p.Allow(ctx, -1.0, nil), ErrDenied)
	assert.ErrorIs(t, p.Allow(ctx, 2e6, nil), ErrDenied)
}

func TestPolicy_UndefinedDecision(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	p, err := New(ctx, "package cor\n\nallow if input.class == \"basic\"\n", "data.cor.allow")
	require.NoError(t, err)

	assert.NoError(t, p.Allow(ctx, "basic", nil))
	assert.ErrorIs(t, p.Allow(ctx, "other", nil), ErrUndefined)
}

func TestPolicy_NonBooleanDecision(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	p, err := New(ctx, "package cor\n\nallow := \"yes\"\n", "")
	require.NoError(t, err)
	assert.ErrorIs(t, p.Allow(ctx, 1, nil), ErrUndefined)
}

func TestPolicy_PayloadVisible(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	p, err := New(ctx, "package cor\n\ndefault allow := false\n\nallow if input.payload.approved_vendor\n", "")
	require.NoError(t, err)

	assert.NoError(t, p.Allow(ctx, 1, map[string]any{"approved_vendor": true}))
	assert.ErrorIs(t, p.Allow(ctx, 1, map[string]any{"approved_vendor": false}), ErrDenied)
}

func TestNew_CompileError(t *testing.T) {
	t.Parallel()
	_, err := New(context.Background(), "package cor\n\nallow if {", "")
	require.Error(t, err)
	assert.True(t, cor.IsConfigurationError(err))
}

func TestValidator_InPipeline(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	policy, err := New(ctx, positiveAmounts, "")
	require.NoError(t, err)

	p, err := pipeline.New(cor.NewHandler("Director", cor.Always[float64]()),
		pipeline.WithValidator(Validator[float64](policy)))
	require.NoError(t, err)

	out, err := p.Submit(ctx, cor.Of(500.0))
	require.NoError(t, err)
	assert.Equal(t, "Director", out.By())

	_, err = p.Submit(ctx, cor.Of(-500.0))
	assert.True(t, cor.IsInvalidRequest(err))
	assert.ErrorIs(t, err, ErrDenied)
}
