//go:build unit

package infra

import (
	"io"
	"log/slog"
	"testing"

	"parkflow/internal/pkg/errs"
	"parkflow/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWrapRepoErr(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	err := WrapRepoErr(logger, KindDBFailure, "select slots", assert.AnError)

	assert.True(t, IsKind(err, KindDBFailure))
	assert.False(t, IsKind(err, KindNotFound))
	assert.True(t, errs.Is(err, errs.ErrDatabaseOperationFailed))
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "DB_FAILURE: select slots")
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(pgx.ErrNoRows))
	assert.Equal(t, KindDuplicateKey, KindOf(&pgconn.PgError{Code: pgconv.PgErrCodeUniqueViolation}))
	assert.Equal(t, KindForeignKeyViolated, KindOf(&pgconn.PgError{Code: pgconv.PgErrCodeForeignKeyViolation}))
	assert.Equal(t, KindDBFailure, KindOf(assert.AnError))
}
