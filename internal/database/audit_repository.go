package database

import (
	"context"
	"database/sql"

	"github.com/quadrodev/quadro/internal/models"
)

// InsertTaskEvent appends one immutable row to the unified audit log.
func InsertTaskEvent(ctx context.Context, q DBTX, ev *models.TaskEvent) error {
	_, err := q.ExecContext(ctx,
		`INSERT INTO task_events (task_id, kind, before_value, after_value,
			from_label, to_label, actor_id, actor_name)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.TaskID, string(ev.Kind), ev.BeforeValue, ev.AfterValue,
		ev.FromLabel, ev.ToLabel, ptrToNullString(ev.ActorID), ptrToNullString(ev.ActorName),
	)
	return err
}

// ListHistoryByTask projects the audit log into history entries, newest last.
func ListHistoryByTask(ctx context.Context, q DBTX, taskID int) ([]*models.HistoryEntry, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT task_id, kind, before_value, after_value, actor_name, created_at
		 FROM task_events WHERE task_id = ? ORDER BY id`,
		taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.HistoryEntry
	for rows.Next() {
		var (
			e         models.HistoryEntry
			kind      string
			before    sql.NullString
			after     sql.NullString
			actor     sql.NullString
			createdAt sql.NullTime
		)
		if err := rows.Scan(&e.TaskID, &kind, &before, &after, &actor, &createdAt); err != nil {
			return nil, err
		}
		e.Action = models.EventKind(kind)
		e.Before = nullStringToString(before)
		e.After = nullStringToString(after)
		e.Actor = nullStringToString(actor)
		e.CreatedAt = nullTimeToTime(createdAt)
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

// ListMovementsByTask projects the audit log into movement records: only
// column-to-column moves, newest last.
func ListMovementsByTask(ctx context.Context, q DBTX, taskID int) ([]*models.MovementRecord, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT task_id, from_label, to_label, actor_id, actor_name, created_at
		 FROM task_events WHERE task_id = ? AND kind = ? ORDER BY id`,
		taskID, string(models.EventMovedToColumn))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.MovementRecord
	for rows.Next() {
		var (
			r         models.MovementRecord
			from      sql.NullString
			to        sql.NullString
			actorID   sql.NullString
			actorName sql.NullString
			createdAt sql.NullTime
		)
		if err := rows.Scan(&r.TaskID, &from, &to, &actorID, &actorName, &createdAt); err != nil {
			return nil, err
		}
		r.FromLabel = nullStringToString(from)
		r.ToLabel = nullStringToString(to)
		r.ActorID = nullStringToPtr(actorID)
		r.ActorName = nullStringToPtr(actorName)
		r.CreatedAt = nullTimeToTime(createdAt)
		records = append(records, &r)
	}
	return records, rows.Err()
}
