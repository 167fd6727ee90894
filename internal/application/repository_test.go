package application

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepository(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db := sqlx.NewDb(mockDB, "sqlmock")
	return NewPostgresRepository(db), mock
}

func applicationColumns() []string {
	return []string{"id", "opportunity_id", "volunteer_id", "status", "message", "responded_at", "created_at", "updated_at"}
}

func TestRepositoryGetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		now := time.Now()

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM applications WHERE id = $1`)).
			WithArgs("app-1").
			WillReturnRows(sqlmock.NewRows(applicationColumns()).
				AddRow("app-1", "opp-1", "vol-1", StatusPending, nil, nil, now, now))

		app, err := repo.GetByID(ctx, "app-1")
		require.NoError(t, err)
		assert.Equal(t, "app-1", app.ID)
		assert.Equal(t, StatusPending, app.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM applications WHERE id = $1`)).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(applicationColumns()))

		_, err := repo.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, ErrApplicationNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepositoryList(t *testing.T) {
	ctx := context.Background()

	t.Run("filters by volunteer and status", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		now := time.Now()

		mock.ExpectQuery(`SELECT \* FROM applications WHERE 1=1 AND volunteer_id = \$1 AND status = ANY\(\$2\) ORDER BY created_at DESC`).
			WithArgs("vol-1", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows(applicationColumns()).
				AddRow("app-1", "opp-1", "vol-1", StatusPending, nil, nil, now, now).
				AddRow("app-2", "opp-2", "vol-1", StatusAccepted, nil, nil, now, now))

		apps, err := repo.List(ctx, ListFilter{
			VolunteerID: "vol-1",
			StatusIn:    []string{StatusPending, StatusAccepted},
		})
		require.NoError(t, err)
		require.Len(t, apps, 2)
		assert.Equal(t, "opp-1", apps[0].OpportunityID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("filters by opportunity", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectQuery(`SELECT \* FROM applications WHERE 1=1 AND opportunity_id = \$1 ORDER BY created_at DESC`).
			WithArgs("opp-1").
			WillReturnRows(sqlmock.NewRows(applicationColumns()))

		apps, err := repo.List(ctx, ListFilter{OpportunityID: "opp-1"})
		require.NoError(t, err)
		assert.Empty(t, apps)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepositoryHasOpenApplication(t *testing.T) {
	ctx := context.Background()

	t.Run("open application exists", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectQuery(`SELECT EXISTS`).
			WithArgs("opp-1", "vol-1").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		open, err := repo.HasOpenApplication(ctx, "opp-1", "vol-1")
		require.NoError(t, err)
		assert.True(t, open)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no open application", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectQuery(`SELECT EXISTS`).
			WithArgs("opp-1", "vol-1").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		open, err := repo.HasOpenApplication(ctx, "opp-1", "vol-1")
		require.NoError(t, err)
		assert.False(t, open)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
