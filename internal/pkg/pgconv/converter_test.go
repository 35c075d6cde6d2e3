//go:build unit

package pgconv

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecimalRoundTrip(t *testing.T) {
	for _, s := range []string{"10000", "0", "12345.67", "-3.5"} {
		d := decimal.RequireFromString(s)
		got, err := DecimalFromNumeric(DecimalToNumeric(d))
		require.NoError(t, err)
		assert.True(t, d.Equal(got), s)
	}

	p, err := DecimalPtrFromNumeric(pgtype.Numeric{})
	require.NoError(t, err)
	assert.Nil(t, p)

	_, err = DecimalFromNumeric(pgtype.Numeric{Valid: true, NaN: true})
	assert.ErrorIs(t, err, ErrInvalidNumericValue)
}

func TestNullableConversions(t *testing.T) {
	assert.False(t, NullableUUIDToPgtype(uuid.Nil).Valid)
	id := uuid.New()
	assert.Equal(t, id, UUIDFromPgtype(NullableUUIDToPgtype(id)))
	assert.Equal(t, uuid.Nil, UUIDFromPgtype(pgtype.UUID{}))

	assert.False(t, NullableStringToPgtype("").Valid)
	assert.Equal(t, "x", StringFromPgtype(NullableStringToPgtype("x")))

	assert.Nil(t, TimePtrFromPgtype(pgtype.Timestamptz{}))
	now := time.Now()
	assert.Equal(t, now, *TimePtrFromPgtype(TimePtrToPgtype(&now)))
}

func TestErrorClassification(t *testing.T) {
	assert.True(t, IsNoRows(pgx.ErrNoRows))
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: PgErrCodeUniqueViolation}))
	assert.True(t, IsRetryable(&pgconn.PgError{Code: PgErrCodeDeadlockDetected}))
	assert.False(t, IsRetryable(&pgconn.PgError{Code: PgErrCodeUniqueViolation}))
	assert.Empty(t, PgErrorCode(assert.AnError))
}
