package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("bad input")))
	assert.Equal(t, KindNotFound, KindOf(NotFound("missing")))
	assert.Equal(t, KindConflict, KindOf(Conflict("taken")))
	assert.Equal(t, KindStorage, KindOf(Storage(errors.New("io"), "write failed")))

	// Untyped errors default to storage.
	assert.Equal(t, KindStorage, KindOf(errors.New("plain")))

	// Wrapped typed errors keep their kind.
	wrapped := fmt.Errorf("context: %w", NotFound("missing"))
	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.True(t, IsKind(wrapped, KindNotFound))
}

func TestStorageUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := Storage(cause, "commit failed")
	assert.True(t, errors.Is(err, cause))
}

func TestWalkInLedgerID(t *testing.T) {
	assert.Equal(t, "WALK-IN:Juan Dela Cruz", WalkInLedgerID("Juan Dela Cruz"))
}

func TestMembershipDurationMonths(t *testing.T) {
	months, ok := Duration1Year.Months()
	assert.True(t, ok)
	assert.Equal(t, 12, months)

	months, ok = DurationLifetime.Months()
	assert.True(t, ok)
	assert.Equal(t, 1200, months)

	_, ok = MembershipDuration("6_weeks").Months()
	assert.False(t, ok)
}
