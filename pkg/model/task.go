package model

import (
	"fmt"
	"strings"
	"time"
)

// Domain is the coarse life area a task belongs to.
type Domain string

const (
	DomainWork        Domain = "work"
	DomainLifeAdmin   Domain = "life_admin"
	DomainGeneralLife Domain = "general_life"
)

// Domains lists every known domain in display order.
var Domains = []Domain{DomainWork, DomainLifeAdmin, DomainGeneralLife}

// ParseDomain maps a domain name onto a Domain. Hyphens and case are ignored,
// so "Life-Admin" and "life_admin" are the same domain.
func ParseDomain(s string) (Domain, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.ReplaceAll(norm, "-", "_")
	switch Domain(norm) {
	case DomainWork, DomainLifeAdmin, DomainGeneralLife:
		return Domain(norm), nil
	}
	return "", fmt.Errorf("unknown domain %q", s)
}

// Valid reports whether d is one of the known domains.
func (d Domain) Valid() bool {
	switch d {
	case DomainWork, DomainLifeAdmin, DomainGeneralLife:
		return true
	}
	return false
}

// Status is the lifecycle state of a task.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// ParseStatus maps a status name onto a Status. An empty string is pending.
func ParseStatus(s string) (Status, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.ReplaceAll(norm, "-", "_")
	switch Status(norm) {
	case "":
		return StatusPending, nil
	case StatusPending, StatusInProgress, StatusCompleted:
		return Status(norm), nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// DefaultEstimateMinutes is assumed for tasks whose source carries no usable
// estimate.
const DefaultEstimateMinutes = 30

// Task represents a generic task from any source. Tasks are values: the
// ranking engine reads them and never changes them.
type Task struct {
	ID          string
	Description string
	// Deadline is nil when the task has no due date.
	Deadline *time.Time
	// EstimatedMinutes should be positive; zero or negative values are
	// treated as "very quick" by the scoring functions.
	EstimatedMinutes int
	Domain           Domain
	Status           Status
	// ProjectID is empty when the task belongs to no project.
	ProjectID string
	// UrgencyOverride is added to the composite score as-is.
	UrgencyOverride float64
	Source          string // "taskwarrior", "orgmode" or "file"
	Tags            []string
}

// Completed reports whether the task is done.
func (t Task) Completed() bool {
	return t.Status == StatusCompleted
}

// HasTag reports whether the task carries tag.
func (t Task) HasTag(tag string) bool {
	for _, tg := range t.Tags {
		if tg == tag {
			return true
		}
	}
	return false
}

// FilterByTag returns the tasks carrying tag, in input order.
func FilterByTag(tasks []Task, tag string) []Task {
	var filtered []Task
	for _, task := range tasks {
		if task.HasTag(tag) {
			filtered = append(filtered, task)
		}
	}
	return filtered
}

// FilterByDomain returns the tasks in domain, in input order.
func FilterByDomain(tasks []Task, domain Domain) []Task {
	var filtered []Task
	for _, task := range tasks {
		if task.Domain == domain {
			filtered = append(filtered, task)
		}
	}
	return filtered
}
