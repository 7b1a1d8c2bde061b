package shadow

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewPostgresRepository(db), mock
}

func userColumns() []string {
	return []string{"id", "national_id", "username", "email", "phone",
		"first_name", "last_name", "is_staff", "is_superuser"}
}

func TestFind(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT " + selectColumns + " FROM shadow_users WHERE id = $1")).
		WithArgs(uint32(7)).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(7, "1234567890", "alice", "a@b.c", "099", "Alice", "Doe", true, false))

	u, err := repo.Find(context.Background(), Criteria{ID: 7})
	require.NoError(t, err)
	require.Equal(t, uint32(7), u.ID)
	require.Equal(t, "1234567890", u.NationalID)
	require.Equal(t, "alice", u.Username)
	require.True(t, u.IsStaff)
	require.False(t, u.IsSuperuser)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFind_NullNationalID(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT " + selectColumns + " FROM shadow_users WHERE id = $1")).
		WithArgs(uint32(7)).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(7, nil, "alice", "", "", "", "", false, false))

	u, err := repo.Find(context.Background(), Criteria{ID: 7})
	require.NoError(t, err)
	require.Empty(t, u.NationalID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFind_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT " + selectColumns + " FROM shadow_users WHERE username = $1")).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(userColumns()))

	_, err := repo.Find(context.Background(), Criteria{Username: "ghost"})
	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFind_CombinesCriteriaDeterministically(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT " + selectColumns + " FROM shadow_users WHERE id = $1 AND email = $2")).
		WithArgs(uint32(3), "a@b.c").
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(3, nil, "", "a@b.c", "", "", "", false, false))

	_, err := repo.Find(context.Background(), Criteria{ID: 3, Email: "a@b.c"})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindAllByIDs(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT " + selectColumns + " FROM shadow_users WHERE id IN ($1, $2) ORDER BY id")).
		WithArgs(uint32(2), uint32(5)).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(2, nil, "bob", "", "", "", "", false, false).
			AddRow(5, nil, "carol", "", "", "", "", false, false))

	users, err := repo.FindAllByIDs(context.Background(), []uint32{2, 5})
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, "bob", users[0].Username)
	require.Equal(t, "carol", users[1].Username)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindAllByIDs_EmptySetSkipsQuery(t *testing.T) {
	repo, mock := newMockRepo(t)

	users, err := repo.FindAllByIDs(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, users)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIDs(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM shadow_users ORDER BY id")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(2).AddRow(9))

	ids, err := repo.IDs(context.Background())
	require.NoError(t, err)
	require.Equal(t, []uint32{1, 2, 9}, ids)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateMinimal(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO shadow_users (id) VALUES ($1) ON CONFLICT (id) DO NOTHING")).
		WithArgs(uint32(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.CreateMinimal(context.Background(), 42))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByIDs(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(
		"DELETE FROM shadow_users WHERE id IN ($1, $2, $3)")).
		WithArgs(uint32(1), uint32(2), uint32(3)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.DeleteByIDs(context.Background(), []uint32{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, int64(3), n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByIDs_EmptySetSkipsQuery(t *testing.T) {
	repo, mock := newMockRepo(t)

	n, err := repo.DeleteByIDs(context.Background(), nil)
	require.NoError(t, err)
	require.Zero(t, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateColumns_AlphabeticalOrder(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE shadow_users SET email = $1, is_staff = $2, username = $3 WHERE id = $4")).
		WithArgs("a@b.c", true, "alice", uint32(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateColumns(context.Background(), 7, map[string]any{
		"username": "alice",
		"is_staff": true,
		"email":    "a@b.c",
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateColumns_EmptyNationalIDBecomesNull(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE shadow_users SET national_id = $1 WHERE id = $2")).
		WithArgs(nil, uint32(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateColumns(context.Background(), 7, map[string]any{"national_id": ""})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateColumns_RejectsUnknownColumn(t *testing.T) {
	repo, mock := newMockRepo(t)

	err := repo.UpdateColumns(context.Background(), 7, map[string]any{"image": "x.png"})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateColumns_NoColumnsIsNoop(t *testing.T) {
	repo, mock := newMockRepo(t)

	require.NoError(t, repo.UpdateColumns(context.Background(), 7, nil))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTableExists(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT EXISTS").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.TableExists(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}
