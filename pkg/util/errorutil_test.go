package util

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))

	cause := errors.New("boom")
	internal := ToDomainError(cause)
	require.NotNil(t, internal)
	assert.Equal(t, CodeInternal, internal.Code)
	assert.ErrorIs(t, internal, cause)

	wrapped := fmt.Errorf("run: %w", NewIOError("out.csv", cause))
	domainErr := ToDomainError(wrapped)
	assert.Equal(t, CodeIO, domainErr.Code)
	assert.Equal(t, "out.csv", domainErr.Details["path"])
	assert.True(t, IsIOError(wrapped))
	assert.False(t, IsConfigurationError(wrapped))
}
