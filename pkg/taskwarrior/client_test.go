package taskwarrior

import (
	"strings"
	"testing"
	"time"

	"github.com/csainsbury/kairos/pkg/model"
)

func TestParseTask(t *testing.T) {
	input := `{
		"uuid": "f45a05b3-c12e-42e5-9c9c-333333333333",
		"description": "Buy milk",
		"status": "pending",
		"due": "20230101T120000Z",
		"project": "Groceries",
		"tags": ["buy", "food"],
		"est": "PT15M",
		"domain": "life_admin",
		"urgency_override": 1.5
	}`

	client := NewClient()
	task, err := client.ParseTask(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseTask failed: %v", err)
	}

	if task.UUID != "f45a05b3-c12e-42e5-9c9c-333333333333" {
		t.Errorf("Expected UUID f45a05b3-c12e-42e5-9c9c-333333333333, got %s", task.UUID)
	}
	if task.Description != "Buy milk" {
		t.Errorf("Expected Description 'Buy milk', got '%s'", task.Description)
	}
	if task.Project != "Groceries" {
		t.Errorf("Expected Project 'Groceries', got '%s'", task.Project)
	}
	if len(task.Tags) != 2 {
		t.Errorf("Expected 2 tags, got %d", len(task.Tags))
	}
	if task.Est != "PT15M" || task.Domain != "life_admin" || task.UrgencyOverride != 1.5 {
		t.Errorf("UDAs not decoded: est=%q domain=%q override=%v", task.Est, task.Domain, task.UrgencyOverride)
	}
	expectedDue, _ := time.Parse(time.RFC3339, "2023-01-01T12:00:00Z")
	if !task.Due.Time.Equal(expectedDue) {
		t.Errorf("Expected Due %v, got %v", expectedDue, task.Due.Time)
	}
}

func TestParseTasksArrayAndLines(t *testing.T) {
	input := `[{"uuid": "a", "status": "pending"}, {"uuid": "b", "status": "completed"}]
{"uuid": "c", "status": "pending"}`

	tasks, err := NewClient().ParseTasks(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseTasks failed: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("Expected 3 tasks, got %d", len(tasks))
	}
	for i, want := range []string{"a", "b", "c"} {
		if tasks[i].UUID != want {
			t.Errorf("task %d: expected UUID %s, got %s", i, want, tasks[i].UUID)
		}
	}
}

func TestParseTasksInvalid(t *testing.T) {
	if _, err := NewClient().ParseTasks(strings.NewReader(`{"uuid": `)); err == nil {
		t.Error("Expected error for truncated JSON")
	}
}

func TestToModel(t *testing.T) {
	due := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
	tw := Task{
		UUID:            "u1",
		Description:     "File taxes",
		Status:          PENDING,
		Due:             &CustomTime{Time: due},
		Project:         "home",
		Tags:            []string{"paperwork"},
		Est:             "PT1H30M",
		Domain:          "life-admin",
		UrgencyOverride: 2,
	}

	task, ok := ToModel(tw)
	if !ok {
		t.Fatal("Expected pending task to convert")
	}
	if task.ID != "u1" || task.Description != "File taxes" || task.ProjectID != "home" {
		t.Errorf("Unexpected identity fields: %+v", task)
	}
	if task.Deadline == nil || !task.Deadline.Equal(due) {
		t.Errorf("Expected deadline %v, got %v", due, task.Deadline)
	}
	if task.EstimatedMinutes != 90 {
		t.Errorf("Expected 90 minutes, got %d", task.EstimatedMinutes)
	}
	if task.Domain != model.DomainLifeAdmin {
		t.Errorf("Expected life_admin, got %q", task.Domain)
	}
	if task.Status != model.StatusPending {
		t.Errorf("Expected pending, got %q", task.Status)
	}
	if task.UrgencyOverride != 2 {
		t.Errorf("Expected override 2, got %v", task.UrgencyOverride)
	}
	if task.Source != Source {
		t.Errorf("Expected source %q, got %q", Source, task.Source)
	}
}

func TestToModelStatus(t *testing.T) {
	started := &CustomTime{Time: time.Date(2023, 5, 1, 9, 0, 0, 0, time.UTC)}
	tests := []struct {
		name   string
		task   Task
		want   model.Status
		wantOK bool
	}{
		{"pending", Task{Status: PENDING}, model.StatusPending, true},
		{"waiting", Task{Status: WAITING}, model.StatusPending, true},
		{"started", Task{Status: PENDING, Start: started}, model.StatusInProgress, true},
		{"completed", Task{Status: COMPLETED}, model.StatusCompleted, true},
		{"deleted", Task{Status: DELETED}, "", false},
		{"recurring template", Task{Status: RECURRING}, "", false},
	}
	for _, tt := range tests {
		got, ok := ToModel(tt.task)
		if ok != tt.wantOK {
			t.Errorf("%s: expected ok=%v, got %v", tt.name, tt.wantOK, ok)
			continue
		}
		if ok && got.Status != tt.want {
			t.Errorf("%s: expected status %q, got %q", tt.name, tt.want, got.Status)
		}
	}
}

func TestToModelDefaults(t *testing.T) {
	task, _ := ToModel(Task{UUID: "u2", Status: PENDING, Tags: []string{"urgent", "work"}})
	if task.EstimatedMinutes != DefaultEstimateMinutes {
		t.Errorf("Expected default estimate, got %d", task.EstimatedMinutes)
	}
	if task.Domain != model.DomainWork {
		t.Errorf("Expected domain from tag, got %q", task.Domain)
	}
	if task.Deadline != nil {
		t.Errorf("Expected no deadline, got %v", task.Deadline)
	}

	task, _ = ToModel(Task{UUID: "u3", Status: PENDING, Est: "soon", Domain: "hobby"})
	if task.EstimatedMinutes != DefaultEstimateMinutes {
		t.Errorf("Expected default estimate for bad est, got %d", task.EstimatedMinutes)
	}
	if task.Domain != "" {
		t.Errorf("Expected unknown domain to stay empty, got %q", task.Domain)
	}
}

func TestToModels(t *testing.T) {
	tasks := ToModels([]Task{
		{UUID: "a", Status: PENDING},
		{UUID: "b", Status: DELETED},
		{UUID: "c", Status: COMPLETED},
	})
	if len(tasks) != 2 || tasks[0].ID != "a" || tasks[1].ID != "c" {
		t.Errorf("Expected [a c], got %+v", tasks)
	}
}
