package model

// Todo represents a single task owned by exactly one user.
// AssignedTo is the sole authorization key: every read and mutation is
// filtered by (AssignedTo, ID), so a todo belonging to someone else is
// indistinguishable from one that does not exist.
type Todo struct {
	ID          int    `json:"id"`
	Task        string `json:"task"`
	AssignedTo  int    `json:"assignedTo"`
	IsCompleted bool   `json:"isCompleted"`
}
