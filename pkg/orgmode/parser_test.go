package orgmode

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/csainsbury/kairos/pkg/model"
)

const sample = `#+TITLE: Inbox

* TODO [#A] Send invoice :work:billing:
  DEADLINE: <2023-05-02 Tue 17:00>
  :PROPERTIES:
  :ID: 7d1c2e9a-0000-4000-8000-000000000001
  :EFFORT: 0:45
  :PROJECT: acme
  :END:
  Some notes about the invoice.
  * indented star is not a heading
* DONE Renew passport :life_admin:
  :PROPERTIES:
  :ID: 7d1c2e9a-0000-4000-8000-000000000002
  :END:
* Reference material
  DEADLINE: <2023-06-01 Thu>
* TODO [#C] Tidy garage :general-life:
  DEADLINE: <2023-05-07 Sun>
`

func TestParse(t *testing.T) {
	tasks, err := Parse(strings.NewReader(sample), "inbox.org")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("Expected 3 tasks, got %d: %+v", len(tasks), tasks)
	}

	invoice := tasks[0]
	if invoice.ID != "7d1c2e9a-0000-4000-8000-000000000001" {
		t.Errorf("Expected ID from properties, got %s", invoice.ID)
	}
	if invoice.Description != "Send invoice" {
		t.Errorf("Expected description 'Send invoice', got '%s'", invoice.Description)
	}
	if invoice.Domain != model.DomainWork {
		t.Errorf("Expected work domain, got %q", invoice.Domain)
	}
	if invoice.EstimatedMinutes != 45 {
		t.Errorf("Expected 45 minutes, got %d", invoice.EstimatedMinutes)
	}
	if invoice.ProjectID != "acme" {
		t.Errorf("Expected project acme, got %s", invoice.ProjectID)
	}
	if invoice.UrgencyOverride != 1.0 {
		t.Errorf("Expected [#A] override 1.0, got %v", invoice.UrgencyOverride)
	}
	wantDeadline := time.Date(2023, 5, 2, 17, 0, 0, 0, time.Local)
	if invoice.Deadline == nil || !invoice.Deadline.Equal(wantDeadline) {
		t.Errorf("Expected deadline %v, got %v", wantDeadline, invoice.Deadline)
	}
	if len(invoice.Tags) != 2 || invoice.Tags[1] != "billing" {
		t.Errorf("Expected tags [work billing], got %v", invoice.Tags)
	}
	if invoice.Source != Source {
		t.Errorf("Expected source %q, got %q", Source, invoice.Source)
	}

	passport := tasks[1]
	if passport.Status != model.StatusCompleted {
		t.Errorf("Expected DONE to be completed, got %q", passport.Status)
	}
	if passport.Domain != model.DomainLifeAdmin {
		t.Errorf("Expected life_admin domain, got %q", passport.Domain)
	}
	if passport.Deadline != nil {
		t.Errorf("Deadline of a plain heading leaked into the previous task: %v", passport.Deadline)
	}
	if passport.EstimatedMinutes != model.DefaultEstimateMinutes {
		t.Errorf("Expected default estimate, got %d", passport.EstimatedMinutes)
	}

	garage := tasks[2]
	if _, err := uuid.Parse(garage.ID); err != nil {
		t.Errorf("Expected generated UUID, got %q", garage.ID)
	}
	if garage.UrgencyOverride != -0.5 {
		t.Errorf("Expected [#C] override -0.5, got %v", garage.UrgencyOverride)
	}
	if garage.Domain != model.DomainGeneralLife {
		t.Errorf("Expected general_life domain, got %q", garage.Domain)
	}
	wantEOD := time.Date(2023, 5, 7, 23, 59, 0, 0, time.Local)
	if garage.Deadline == nil || !garage.Deadline.Equal(wantEOD) {
		t.Errorf("Expected end-of-day deadline %v, got %v", wantEOD, garage.Deadline)
	}
	if garage.Status != model.StatusPending {
		t.Errorf("Expected pending, got %q", garage.Status)
	}
}

func TestParseBadProperties(t *testing.T) {
	input := `* STARTED Refactor
  :PROPERTIES:
  :EFFORT: soon
  :DOMAIN: hobby
  :END:
`
	tasks, err := Parse(strings.NewReader(input), "test")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("Expected 1 task, got %d", len(tasks))
	}
	if tasks[0].Status != model.StatusInProgress {
		t.Errorf("Expected STARTED to be in progress, got %q", tasks[0].Status)
	}
	if tasks[0].EstimatedMinutes != model.DefaultEstimateMinutes {
		t.Errorf("Expected bad effort to keep default, got %d", tasks[0].EstimatedMinutes)
	}
	if tasks[0].Domain != "" {
		t.Errorf("Expected unknown domain to be ignored, got %q", tasks[0].Domain)
	}
}

func TestParseFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.org")
	b := filepath.Join(dir, "b.org")
	if err := os.WriteFile(a, []byte("* TODO First\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, []byte("* TODO Second\n* TODO Third\n"), 0600); err != nil {
		t.Fatal(err)
	}

	tasks, err := ParseFiles([]string{a, b})
	if err != nil {
		t.Fatalf("ParseFiles failed: %v", err)
	}
	if len(tasks) != 3 || tasks[2].Description != "Third" {
		t.Errorf("Expected three tasks in file order, got %+v", tasks)
	}

	if _, err := ParseFiles([]string{filepath.Join(dir, "missing.org")}); err == nil {
		t.Error("Expected error for missing file")
	}
}
