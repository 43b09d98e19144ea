package guard_test

import (
	"errors"
	"testing"

	"okdelivery/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	t.Run("creates_properly_constructed_guard", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		customError := errors.New("test object not constructed")
		require.NoError(t, g.Validate(customError))
		require.NoError(t, g.Validate(nil))
	})
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expectedError := errors.New("entity not constructed")

		err := g.Validate(expectedError)

		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})

	t.Run("default_error_constant_has_meaningful_message", func(t *testing.T) {
		assert.Equal(t, "object must be created via its constructor", guard.ErrDefaultConstructorGuard.Error())
	})
}

func TestConstructorGuardUsageExample(t *testing.T) {
	type TrackingCode struct {
		value string
		guard guard.ConstructorGuard
	}

	errNotConstructed := errors.New("TrackingCode must be created via NewTrackingCode")

	newTrackingCode := func(v string) (TrackingCode, error) {
		if v == "" {
			return TrackingCode{}, errors.New("tracking code is required")
		}
		return TrackingCode{value: v, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("valid_construction_through_constructor", func(t *testing.T) {
		code, err := newTrackingCode("PKG-0001")

		require.NoError(t, err)
		require.NoError(t, code.guard.Validate(errNotConstructed))
		assert.Equal(t, "PKG-0001", code.value)
	})

	t.Run("zero_value_construction_fails_validation", func(t *testing.T) {
		var code TrackingCode

		err := code.guard.Validate(errNotConstructed)

		require.Error(t, err)
		assert.Equal(t, errNotConstructed, err)
	})
}
