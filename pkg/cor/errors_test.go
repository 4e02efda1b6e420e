package cor

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigurationError(t *testing.T) {
	t.Parallel()
	err := Misconfigured("Manager", ErrCycle)

	require.Error(t, err)
	assert.True(t, IsConfigurationError(err))
	assert.ErrorIs(t, err, ErrCycle)
	assert.Contains(t, err.Error(), `"Manager"`)

	var ce *ConfigurationError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "Manager", ce.Handler)

	assert.Equal(t, "configuration error: chain has no head handler", Misconfigured("", ErrEmptyChain).Error())
}

func TestRequestError(t *testing.T) {
	t.Parallel()
	id := uuid.New()
	cause := errors.New("negative amount")
	err := Invalid(id, cause)

	assert.True(t, IsInvalidRequest(err))
	assert.ErrorIs(t, err, cause)
	assert.False(t, IsConfigurationError(err))
	assert.Len(t, GetErrors(err), 2)

	assert.True(t, IsInvalidRequest(Invalid(id, nil)))
}

func TestGetErrors(t *testing.T) {
	t.Parallel()
	assert.Empty(t, GetErrors(nil))

	var ce *ConfigurationError
	assert.Empty(t, GetErrors(ce))

	a, b := errors.New("a"), errors.New("b")
	assert.Equal(t, []error{a, b}, GetErrors(errors.Join(a, b)))
	assert.Equal(t, []error{a}, GetErrors(a))
}
