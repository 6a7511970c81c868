package errs_test

import (
	"errors"
	"testing"

	"waterdelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("requestId", "123")

		assert.Equal(t, "requestId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("requestId", "123", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: requestId, ID is: 123 (cause: database connection failed)",
			err.Error())
	})

	t.Run("Error with different ID types", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("ticketId", 456)
		assert.Equal(t, "object not found: %!s(int=456)", err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("category")

		assert.Equal(t, "category", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: category", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("unknown category")
		err := errs.NewValueIsInvalidErrorWithCause("category", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: category (cause: unknown category)", err.Error())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("quantity", 1200, 1, 1000)

		assert.Equal(t, "quantity", err.ParamName)
		assert.Equal(t, 1200, err.Value)
		assert.Equal(t, 1, err.Min)
		assert.Equal(t, 1000, err.Max)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: 1200 is quantity, min value is 1, max value is 1000", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("NewValueIsOutOfRangeErrorWithCause", func(t *testing.T) {
		cause := errors.New("urgent cap")
		err := errs.NewValueIsOutOfRangeErrorWithCause("quantity", 1200, 1, 1000, cause)

		assert.Equal(t,
			"value is invalid: 1200 is quantity, min value is 1, max value is 1000 (cause: urgent cap)",
			err.Error())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("notes", "broken\npipe", 0, 10)
		assert.Contains(t, err.Error(), "broken pipe")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("requesterId")

	assert.Equal(t, "value is required: requesterId", err.Error())
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	withCause := errs.NewValueIsRequiredErrorWithCause("notes", errors.New("cancellation needs a reason"))
	assert.Equal(t, "value is required: notes (cause: cancellation needs a reason)", withCause.Error())
}

func TestInvalidTransitionError(t *testing.T) {
	err := errs.NewInvalidTransitionError("request", "Completed", "cancel")

	assert.Equal(t, "Completed", err.Current)
	assert.Equal(t, "cancel", err.Action)
	assert.Contains(t, err.Error(), "cannot cancel request in status Completed")
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	assert.True(t, errs.IsStateConflict(err))

	var target *errs.InvalidTransitionError
	require.ErrorAs(t, err, &target)
}

func TestTaxonomy(t *testing.T) {
	testCases := []struct {
		name       string
		err        error
		validation bool
		state      bool
		resource   bool
		notFound   bool
	}{
		{name: "not assignable", err: errs.ErrNotAssignable, state: true},
		{name: "already resolved", err: errs.ErrAlreadyResolved, state: true},
		{name: "nothing to undo", err: errs.ErrNothingToUndo, state: true},
		{name: "nothing to redo", err: errs.ErrNothingToRedo, state: true},
		{name: "insufficient capacity", err: errs.ErrInsufficientCapacity, resource: true},
		{name: "capacity overflow", err: errs.ErrCapacityOverflow, resource: true},
		{name: "locality not found", err: errs.ErrLocalityNotFound, notFound: true},
		{name: "unknown strategy", err: errs.ErrUnknownStrategy, validation: true},
		{name: "out of range", err: errs.NewValueIsOutOfRangeError("q", 0, 1, 2), validation: true},
		{name: "object not found", err: errs.NewObjectNotFoundError("ticket", "x"), notFound: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.validation, errs.IsValidation(tc.err))
			assert.Equal(t, tc.state, errs.IsStateConflict(tc.err))
			assert.Equal(t, tc.resource, errs.IsResourceConflict(tc.err))
			assert.Equal(t, tc.notFound, errs.IsNotFound(tc.err))
		})
	}

	t.Run("wrapping keeps classification", func(t *testing.T) {
		wrapped := errors.Join(errors.New("context"), errs.ErrInsufficientCapacity)
		assert.True(t, errs.IsResourceConflict(wrapped))
	})
}
