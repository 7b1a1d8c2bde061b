package shadow

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mvoronin/authgate/internal/dbx"
	"github.com/mvoronin/authgate/internal/models"
)

const selectColumns = "id, national_id, username, email, phone, first_name, last_name, is_staff, is_superuser"

// writableColumns is the full set UpdateColumns accepts. Everything else a
// remote record carries lives in memory only.
var writableColumns = map[string]struct{}{
	"national_id":  {},
	"username":     {},
	"email":        {},
	"phone":        {},
	"first_name":   {},
	"last_name":    {},
	"is_staff":     {},
	"is_superuser": {},
}

// PostgresRepository persists shadow rows in the shadow_users table.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// whereClause renders the local criteria fields into a deterministic WHERE
// fragment. Remote-only fields are ignored here; the reconciler resolves
// them before the local query runs.
func whereClause(c Criteria) (string, []any) {
	var conds []string
	var args []any

	add := func(col string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if c.ID != 0 {
		add("id", c.ID)
	}
	if c.NationalID != "" {
		add("national_id", c.NationalID)
	}
	if c.Username != "" {
		add("username", c.Username)
	}
	if c.Email != "" {
		add("email", c.Email)
	}
	if c.Phone != "" {
		add("phone", c.Phone)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanUser(row interface{ Scan(dest ...any) error }) (*models.ShadowUser, error) {
	u := &models.ShadowUser{}
	var nationalID sql.NullString

	err := row.Scan(&u.ID, &nationalID, &u.Username, &u.Email, &u.Phone,
		&u.FirstName, &u.LastName, &u.IsStaff, &u.IsSuperuser)
	if err != nil {
		return nil, err
	}

	u.NationalID = nationalID.String
	return u, nil
}

func (r *PostgresRepository) Find(ctx context.Context, c Criteria) (*models.ShadowUser, error) {
	where, args := whereClause(c)
	query := "SELECT " + selectColumns + " FROM shadow_users" + where

	u, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

func (r *PostgresRepository) FindAll(ctx context.Context, c Criteria) ([]*models.ShadowUser, error) {
	where, args := whereClause(c)
	query := "SELECT " + selectColumns + " FROM shadow_users" + where + " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

func (r *PostgresRepository) FindAllByIDs(ctx context.Context, ids []uint32) ([]*models.ShadowUser, error) {
	if len(ids) == 0 {
		return []*models.ShadowUser{}, nil
	}

	placeholders, args := idArgs(ids)
	query := "SELECT " + selectColumns + " FROM shadow_users WHERE id IN (" + placeholders + ") ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

func collectUsers(rows *sql.Rows) ([]*models.ShadowUser, error) {
	users := []*models.ShadowUser{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return users, nil
}

func (r *PostgresRepository) IDs(ctx context.Context) ([]uint32, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id FROM shadow_users ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	ids := []uint32{}
	for rows.Next() {
		var id uint32
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return ids, nil
}

func (r *PostgresRepository) CreateMinimal(ctx context.Context, id uint32) error {
	query := "INSERT INTO shadow_users (id) VALUES ($1) ON CONFLICT (id) DO NOTHING"
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DeleteByIDs(ctx context.Context, ids []uint32) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	placeholders, args := idArgs(ids)
	query := "DELETE FROM shadow_users WHERE id IN (" + placeholders + ")"

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

// UpdateColumns writes the given columns in one UPDATE. Column order in the
// statement is alphabetical so the SQL is deterministic.
func (r *PostgresRepository) UpdateColumns(ctx context.Context, id uint32, cols map[string]any) error {
	if len(cols) == 0 {
		return nil
	}

	names := make([]string, 0, len(cols))
	for name := range cols {
		if _, ok := writableColumns[name]; !ok {
			return fmt.Errorf("column %q is not writable", name)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	sets := make([]string, 0, len(names))
	args := make([]any, 0, len(names)+1)
	for _, name := range names {
		v := cols[name]
		// national_id is nullable-unique; empty means NULL, never ''
		if name == "national_id" {
			s, _ := v.(string)
			v = sql.NullString{String: s, Valid: s != ""}
		}
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", name, len(args)))
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE shadow_users SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) TableExists(ctx context.Context) (bool, error) {
	query := "SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'shadow_users')"

	var exists bool
	if err := r.db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func idArgs(ids []uint32) (string, []any) {
	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	return strings.Join(placeholders, ", "), args
}
