package models

// Board is a read-only projection of a project's active columns and their
// tasks, ordered for display. Assembling it never mutates state.
type Board struct {
	ProjectID   int
	ProjectName string
	Status      ProjectStatus
	Columns     []*BoardColumn
}

// BoardColumn pairs a column with its tasks ordered by position.
// A column with no tasks renders with an empty list.
type BoardColumn struct {
	Column *Column
	Tasks  []*Task
}
