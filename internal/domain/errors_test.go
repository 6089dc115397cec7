package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsKind(t *testing.T) {
	err := NotFound("lead", 7)
	assert.True(t, IsKind(err, KindNotFound))
	assert.False(t, IsKind(err, KindAlreadyConverted))
}

func TestIsKind_Wrapped(t *testing.T) {
	inner := AlreadyConverted(7)
	wrapped := fmt.Errorf("handling request: %w", inner)
	assert.True(t, IsKind(wrapped, KindAlreadyConverted))
}

func TestIsKind_NestedDomainErrors(t *testing.T) {
	err := ConversionFailed(7, InvariantViolation(42, errors.New("two open entries")))
	assert.True(t, IsKind(err, KindConversionFailed))
	assert.True(t, IsKind(err, KindInvariantViolation))
	assert.False(t, IsKind(err, KindNotFound))
}

func TestError_CarriesOffendingID(t *testing.T) {
	var de *Error
	assert.True(t, errors.As(NotFound("stage", 77), &de))
	assert.Equal(t, "stage", de.Entity)
	assert.Equal(t, int64(77), de.ID)
}
