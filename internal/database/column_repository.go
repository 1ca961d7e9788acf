package database

import (
	"context"
	"database/sql"
	"strings"

	"github.com/quadrodev/quadro/internal/models"
	"github.com/quadrodev/quadro/internal/ordering"
)

const columnSelect = `SELECT id, project_id, column_key, title, description, color,
	ordinal, wip_limit, is_default, is_done, is_active, created_at FROM columns`

// IsOrdinalConflict reports whether err comes from the unique
// (project_id, ordinal) index. Under the single-writer transaction discipline
// this should not happen; callers surface it instead of corrupting ordinals.
func IsOrdinalConflict(err error) bool {
	return err != nil && strings.Contains(err.Error(), "idx_columns_ordinal_per_project")
}

func scanColumn(row interface{ Scan(dest ...any) error }) (*models.Column, error) {
	var (
		c         models.Column
		desc      sql.NullString
		wipLimit  sql.NullInt64
		createdAt sql.NullTime
	)
	err := row.Scan(&c.ID, &c.ProjectID, &c.Key, &c.Title, &desc, &c.Color,
		&c.Ordinal, &wipLimit, &c.IsDefault, &c.IsDone, &c.IsActive, &createdAt)
	if err != nil {
		return nil, err
	}
	c.Description = nullStringToString(desc)
	c.WIPLimit = nullIntToPtr(wipLimit)
	c.CreatedAt = nullTimeToTime(createdAt)
	return &c, nil
}

func scanColumns(rows *sql.Rows) ([]*models.Column, error) {
	defer rows.Close()
	var columns []*models.Column
	for rows.Next() {
		c, err := scanColumn(rows)
		if err != nil {
			return nil, err
		}
		columns = append(columns, c)
	}
	return columns, rows.Err()
}

// InsertColumn inserts a column row and returns its id. The caller is
// responsible for having made room at c.Ordinal first.
func InsertColumn(ctx context.Context, q DBTX, c *models.Column) (int, error) {
	result, err := q.ExecContext(ctx,
		`INSERT INTO columns (project_id, column_key, title, description, color,
			ordinal, wip_limit, is_default, is_done, is_active)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ProjectID, c.Key, c.Title, c.Description, c.Color,
		c.Ordinal, ptrToNullInt(c.WIPLimit), c.IsDefault, c.IsDone, c.IsActive,
	)
	if err != nil {
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

// GetColumnByID retrieves a column regardless of active flag.
func GetColumnByID(ctx context.Context, q DBTX, id int) (*models.Column, error) {
	return scanColumn(q.QueryRowContext(ctx, columnSelect+` WHERE id = ?`, id))
}

// GetColumnByKey resolves a column key within a project, active columns only.
func GetColumnByKey(ctx context.Context, q DBTX, projectID int, key string) (*models.Column, error) {
	return scanColumn(q.QueryRowContext(ctx,
		columnSelect+` WHERE project_id = ? AND column_key = ? AND is_active = 1`,
		projectID, key))
}

// GetDefaultColumn returns the entry-stage column of a project.
func GetDefaultColumn(ctx context.Context, q DBTX, projectID int) (*models.Column, error) {
	return scanColumn(q.QueryRowContext(ctx,
		columnSelect+` WHERE project_id = ? AND is_default = 1 AND is_active = 1`,
		projectID))
}

// ListActiveColumns returns the active columns of a project ordered by ordinal.
func ListActiveColumns(ctx context.Context, q DBTX, projectID int) ([]*models.Column, error) {
	rows, err := q.QueryContext(ctx,
		columnSelect+` WHERE project_id = ? AND is_active = 1 ORDER BY ordinal`,
		projectID)
	if err != nil {
		return nil, err
	}
	return scanColumns(rows)
}

// ListAllColumns returns every column of a project, active first, then by ordinal.
func ListAllColumns(ctx context.Context, q DBTX, projectID int) ([]*models.Column, error) {
	rows, err := q.QueryContext(ctx,
		columnSelect+` WHERE project_id = ? ORDER BY is_active DESC, ordinal`,
		projectID)
	if err != nil {
		return nil, err
	}
	return scanColumns(rows)
}

// CountColumns counts every column of a project, soft-deleted included.
func CountColumns(ctx context.Context, q DBTX, projectID int) (int, error) {
	var count int
	err := q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM columns WHERE project_id = ?`, projectID).Scan(&count)
	return count, err
}

// ActiveTitleExists checks for a case-sensitive title collision among active
// columns, optionally excluding one column id (for renames).
func ActiveTitleExists(ctx context.Context, q DBTX, projectID int, title string, excludeID int) (bool, error) {
	var one int
	err := q.QueryRowContext(ctx,
		`SELECT 1 FROM columns WHERE project_id = ? AND title = ? AND is_active = 1 AND id != ?`,
		projectID, title, excludeID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ActiveKeyExists checks for a key collision among active columns.
func ActiveKeyExists(ctx context.Context, q DBTX, projectID int, key string) (bool, error) {
	var one int
	err := q.QueryRowContext(ctx,
		`SELECT 1 FROM columns WHERE project_id = ? AND column_key = ? AND is_active = 1`,
		projectID, key).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// activeOrdinalEntries loads (id, ordinal) pairs for the active columns of a
// project, the in-memory sequence the ordering package operates on.
func activeOrdinalEntries(ctx context.Context, q DBTX, projectID int) ([]ordering.Entry, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, ordinal FROM columns WHERE project_id = ? AND is_active = 1`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []ordering.Entry
	for rows.Next() {
		var e ordering.Entry
		if err := rows.Scan(&e.ID, &e.Rank); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// applyOrdinalChanges writes rank assignments row by row, in the order the
// ordering package emitted them.
func applyOrdinalChanges(ctx context.Context, q DBTX, changes []ordering.Change) error {
	for _, ch := range changes {
		if _, err := q.ExecContext(ctx,
			`UPDATE columns SET ordinal = ? WHERE id = ?`, ch.Rank, ch.ID); err != nil {
			return err
		}
	}
	return nil
}

// OpenOrdinalSlot increments the ordinal of every active column with
// ordinal >= at, making room for an insertion.
func OpenOrdinalSlot(ctx context.Context, q DBTX, projectID, at int) error {
	entries, err := activeOrdinalEntries(ctx, q, projectID)
	if err != nil {
		return err
	}
	return applyOrdinalChanges(ctx, q, ordering.OpenSlot(entries, at))
}

// CloseOrdinalGap decrements the ordinal of every active column with
// ordinal > removed, closing the gap a deletion left.
func CloseOrdinalGap(ctx context.Context, q DBTX, projectID, removed int) error {
	entries, err := activeOrdinalEntries(ctx, q, projectID)
	if err != nil {
		return err
	}
	return applyOrdinalChanges(ctx, q, ordering.CloseGap(entries, removed))
}

// NextOrdinal returns max(ordinal)+1 among active columns, 1 when none exist.
func NextOrdinal(ctx context.Context, q DBTX, projectID int) (int, error) {
	entries, err := activeOrdinalEntries(ctx, q, projectID)
	if err != nil {
		return 0, err
	}
	return ordering.NextRank(entries), nil
}

// RenumberColumns assigns ordinal = index+1 to the given ids in list order.
// The id list must cover every active column of the project; callers build it
// with ordering.TotalOrder. Ordinals are parked in a negative range first so
// the per-project unique index never sees a transient collision.
func RenumberColumns(ctx context.Context, q DBTX, projectID int, orderedIDs []int) error {
	if _, err := q.ExecContext(ctx,
		`UPDATE columns SET ordinal = -ordinal WHERE project_id = ? AND is_active = 1`,
		projectID); err != nil {
		return err
	}
	return applyOrdinalChanges(ctx, q, ordering.Renumber(orderedIDs))
}

// UpdateColumnRow overwrites the mutable fields of a column. Partial-update
// semantics live in the service layer; by the time the row is written every
// field has its final value.
func UpdateColumnRow(ctx context.Context, q DBTX, c *models.Column) error {
	_, err := q.ExecContext(ctx,
		`UPDATE columns SET title = ?, description = ?, color = ?, wip_limit = ?,
			is_done = ?, is_active = ? WHERE id = ?`,
		c.Title, c.Description, c.Color, ptrToNullInt(c.WIPLimit),
		c.IsDone, c.IsActive, c.ID,
	)
	return err
}

// DeactivateColumn flips the soft-delete flag.
func DeactivateColumn(ctx context.Context, q DBTX, id int) error {
	_, err := q.ExecContext(ctx, `UPDATE columns SET is_active = 0 WHERE id = ?`, id)
	return err
}

// DeleteColumnRow removes a column permanently. Tasks that still reference it
// get a NULL column via the FK and must be reassigned by the caller.
func DeleteColumnRow(ctx context.Context, q DBTX, id int) error {
	_, err := q.ExecContext(ctx, `DELETE FROM columns WHERE id = ?`, id)
	return err
}
