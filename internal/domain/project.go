package domain

import "time"

// Project is a named unit of work with an overall status. Names are unique.
type Project struct {
	ID        string
	Name      string
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProjectOverview aggregates task counts for the manager dashboard.
type ProjectOverview struct {
	Project    Project
	TaskCounts map[Status]int
	TotalTasks int
}
