package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/quadrodev/quadro/internal/models"
)

// CreateProject inserts a new project and returns it. New projects start
// IN_PROGRESS; the status deriver owns all later transitions.
func CreateProject(ctx context.Context, q DBTX, name, description string) (*models.Project, error) {
	result, err := q.ExecContext(ctx,
		`INSERT INTO projects (name, description, status) VALUES (?, ?, ?)`,
		name, description, string(models.StatusInProgress),
	)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return GetProjectByID(ctx, q, int(id))
}

// GetProjectByID retrieves a single project. Returns sql.ErrNoRows when absent.
func GetProjectByID(ctx context.Context, q DBTX, id int) (*models.Project, error) {
	var (
		p         models.Project
		desc      sql.NullString
		status    string
		createdAt sql.NullTime
		updatedAt sql.NullTime
	)
	err := q.QueryRowContext(ctx,
		`SELECT id, name, description, status, created_at, updated_at FROM projects WHERE id = ?`,
		id,
	).Scan(&p.ID, &p.Name, &desc, &status, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	p.Description = nullStringToString(desc)
	p.Status, err = models.ParseProjectStatus(status)
	if err != nil {
		return nil, fmt.Errorf("project %d: %w", p.ID, err)
	}
	p.CreatedAt = nullTimeToTime(createdAt)
	p.UpdatedAt = nullTimeToTime(updatedAt)
	return &p, nil
}

// GetAllProjects retrieves every project ordered by creation.
func GetAllProjects(ctx context.Context, q DBTX) ([]*models.Project, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, name, description, status, created_at, updated_at FROM projects ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		var (
			p         models.Project
			desc      sql.NullString
			status    string
			createdAt sql.NullTime
			updatedAt sql.NullTime
		)
		if err := rows.Scan(&p.ID, &p.Name, &desc, &status, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		p.Description = nullStringToString(desc)
		p.Status, err = models.ParseProjectStatus(status)
		if err != nil {
			return nil, fmt.Errorf("project %d: %w", p.ID, err)
		}
		p.CreatedAt = nullTimeToTime(createdAt)
		p.UpdatedAt = nullTimeToTime(updatedAt)
		projects = append(projects, &p)
	}
	return projects, rows.Err()
}

// ProjectExists reports whether a project row exists.
func ProjectExists(ctx context.Context, q DBTX, id int) (bool, error) {
	var one int
	err := q.QueryRowContext(ctx, `SELECT 1 FROM projects WHERE id = ?`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// UpdateProjectStatus overwrites the derived status of a project.
func UpdateProjectStatus(ctx context.Context, q DBTX, id int, status models.ProjectStatus) error {
	_, err := q.ExecContext(ctx,
		`UPDATE projects SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		string(status), id,
	)
	return err
}

// DeleteProject removes a project; columns, tasks and audit rows cascade.
func DeleteProject(ctx context.Context, q DBTX, id int) error {
	_, err := q.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	return err
}
