package database

import (
	"context"
	"database/sql"

	"github.com/quadrodev/quadro/internal/models"
	"github.com/quadrodev/quadro/internal/ordering"
)

const taskSelect = `SELECT id, project_id, column_id, title, description, position,
	created_at, updated_at FROM tasks`

func scanTask(row interface{ Scan(dest ...any) error }) (*models.Task, error) {
	var (
		t         models.Task
		columnID  sql.NullInt64
		desc      sql.NullString
		createdAt sql.NullTime
		updatedAt sql.NullTime
	)
	err := row.Scan(&t.ID, &t.ProjectID, &columnID, &t.Title, &desc, &t.Position,
		&createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	t.ColumnID = nullIntToPtr(columnID)
	t.Description = nullStringToString(desc)
	t.CreatedAt = nullTimeToTime(createdAt)
	t.UpdatedAt = nullTimeToTime(updatedAt)
	return &t, nil
}

func scanTasks(rows *sql.Rows) ([]*models.Task, error) {
	defer rows.Close()
	var tasks []*models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// InsertTask creates a task in the given column at the given position.
func InsertTask(ctx context.Context, q DBTX, projectID, columnID int, title, description string, position int) (*models.Task, error) {
	result, err := q.ExecContext(ctx,
		`INSERT INTO tasks (project_id, column_id, title, description, position)
		 VALUES (?, ?, ?, ?, ?)`,
		projectID, columnID, title, description, position,
	)
	if err != nil {
		return nil, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return GetTaskByID(ctx, q, int(id))
}

// GetTaskByID retrieves a single task. Returns sql.ErrNoRows when absent.
func GetTaskByID(ctx context.Context, q DBTX, id int) (*models.Task, error) {
	return scanTask(q.QueryRowContext(ctx, taskSelect+` WHERE id = ?`, id))
}

// ListTasksByColumn returns the tasks of a column ordered by position.
func ListTasksByColumn(ctx context.Context, q DBTX, columnID int) ([]*models.Task, error) {
	rows, err := q.QueryContext(ctx,
		taskSelect+` WHERE column_id = ? ORDER BY position`, columnID)
	if err != nil {
		return nil, err
	}
	return scanTasks(rows)
}

// ListTasksByProject returns every task of a project, the status deriver's read.
func ListTasksByProject(ctx context.Context, q DBTX, projectID int) ([]*models.Task, error) {
	rows, err := q.QueryContext(ctx,
		taskSelect+` WHERE project_id = ? ORDER BY id`, projectID)
	if err != nil {
		return nil, err
	}
	return scanTasks(rows)
}

// CountTasksByColumn counts the tasks currently in a column.
func CountTasksByColumn(ctx context.Context, q DBTX, columnID int) (int, error) {
	var count int
	err := q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks WHERE column_id = ?`, columnID).Scan(&count)
	return count, err
}

// CountTasksOutsideDone counts a project's tasks whose column is not a done
// column (tasks with no column count as not done).
func CountTasksOutsideDone(ctx context.Context, q DBTX, projectID int) (int, error) {
	var count int
	err := q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks t
		 LEFT JOIN columns c ON c.id = t.column_id
		 WHERE t.project_id = ? AND (c.id IS NULL OR c.is_done = 0)`,
		projectID).Scan(&count)
	return count, err
}

// CountTasksByProject counts every task of a project.
func CountTasksByProject(ctx context.Context, q DBTX, projectID int) (int, error) {
	var count int
	err := q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks WHERE project_id = ?`, projectID).Scan(&count)
	return count, err
}

// columnPositionEntries loads (id, position) pairs for the tasks of a column.
func columnPositionEntries(ctx context.Context, q DBTX, columnID int) ([]ordering.Entry, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, position FROM tasks WHERE column_id = ?`, columnID)
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

func applyPositionChanges(ctx context.Context, q DBTX, changes []ordering.Change) error {
	for _, ch := range changes {
		if _, err := q.ExecContext(ctx,
			`UPDATE tasks SET position = ? WHERE id = ?`, ch.Rank, ch.ID); err != nil {
			return err
		}
	}
	return nil
}

// OpenPositionSlot shifts every task in the column with position >= at up by
// one, opening a slot for an insertion or an incoming move.
func OpenPositionSlot(ctx context.Context, q DBTX, columnID, at int) error {
	entries, err := columnPositionEntries(ctx, q, columnID)
	if err != nil {
		return err
	}
	return applyPositionChanges(ctx, q, ordering.OpenSlot(entries, at))
}

// ClosePositionGap shifts every task in the column with position > removed
// down by one, closing the gap a departing task left.
func ClosePositionGap(ctx context.Context, q DBTX, columnID, removed int) error {
	entries, err := columnPositionEntries(ctx, q, columnID)
	if err != nil {
		return err
	}
	return applyPositionChanges(ctx, q, ordering.CloseGap(entries, removed))
}

// NextPosition returns the append position for a column.
func NextPosition(ctx context.Context, q DBTX, columnID int) (int, error) {
	entries, err := columnPositionEntries(ctx, q, columnID)
	if err != nil {
		return 0, err
	}
	return ordering.NextRank(entries), nil
}

// ReassignTask points a task at a new column and position.
func ReassignTask(ctx context.Context, q DBTX, taskID, columnID, position int) error {
	_, err := q.ExecContext(ctx,
		`UPDATE tasks SET column_id = ?, position = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		columnID, position, taskID,
	)
	return err
}

// UpdateTask overwrites a task's title and description.
func UpdateTask(ctx context.Context, q DBTX, id int, title, description string) error {
	_, err := q.ExecContext(ctx,
		`UPDATE tasks SET title = ?, description = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		title, description, id,
	)
	return err
}

// DeleteTask removes a task row; audit entries cascade with it.
func DeleteTask(ctx context.Context, q DBTX, id int) error {
	_, err := q.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	return err
}
