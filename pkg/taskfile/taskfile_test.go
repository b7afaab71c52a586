package taskfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csainsbury/kairos/pkg/model"
)

const doc = `
tasks:
  - id: report
    description: Write quarterly report
    deadline: 2023-05-04T17:00:00Z
    duration: 60
    domain: work
    project: q2
    override: 0.5
  - description: Water plants
    duration: 5
    domain: general-life
    status: in_progress
  - id: dentist
    description: Book dentist
    domain: life_admin
    status: completed
    tags: [health]
`

func TestParse(t *testing.T) {
	tasks, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, tasks, 3)

	report := tasks[0]
	assert.Equal(t, "report", report.ID)
	assert.Equal(t, "Write quarterly report", report.Description)
	require.NotNil(t, report.Deadline)
	assert.True(t, report.Deadline.Equal(time.Date(2023, 5, 4, 17, 0, 0, 0, time.UTC)))
	assert.Equal(t, 60, report.EstimatedMinutes)
	assert.Equal(t, model.DomainWork, report.Domain)
	assert.Equal(t, model.StatusPending, report.Status)
	assert.Equal(t, "q2", report.ProjectID)
	assert.Equal(t, 0.5, report.UrgencyOverride)
	assert.Equal(t, Source, report.Source)

	plants := tasks[1]
	_, err = uuid.Parse(plants.ID)
	assert.NoError(t, err, "missing id should be generated")
	assert.Nil(t, plants.Deadline)
	assert.Equal(t, model.DomainGeneralLife, plants.Domain)
	assert.Equal(t, model.StatusInProgress, plants.Status)

	dentist := tasks[2]
	assert.Equal(t, model.DefaultEstimateMinutes, dentist.EstimatedMinutes)
	assert.True(t, dentist.Completed())
	assert.Equal(t, []string{"health"}, dentist.Tags)
}

func TestParseExplicitZeroDuration(t *testing.T) {
	tasks, err := Parse(strings.NewReader("tasks:\n  - id: ping\n    duration: 0\n"))
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, 0, tasks[0].EstimatedMinutes)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse(strings.NewReader("tasks:\n  - id: x\n    domain: hobby\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "task x")

	_, err = Parse(strings.NewReader("tasks:\n  - description: Nap\n    status: someday\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Nap")

	_, err = Parse(strings.NewReader("tasks: [unclosed"))
	assert.Error(t, err)
}

func TestParseEmpty(t *testing.T) {
	tasks, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0600))

	tasks, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, tasks, 3)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
