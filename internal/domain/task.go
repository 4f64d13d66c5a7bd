package domain

import "time"

// Task belongs to exactly one project and is assigned to exactly one user.
type Task struct {
	ID        string
	Title     string
	Status    Status
	ProjectID string
	UserID    string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Assignee is populated by project-scoped listings, Project by
	// per-user listings. Either may be nil depending on the query.
	Assignee *User
	Project  *Project
}
