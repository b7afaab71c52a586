// Package taskfile loads tasks kept by hand in a YAML file:
//
//	tasks:
//	  - id: report
//	    description: Write quarterly report
//	    deadline: 2023-05-04T17:00:00Z
//	    duration: 60
//	    domain: work
//	    project: q2
//	  - description: Water plants
//	    duration: 5
//	    domain: general_life
package taskfile

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/csainsbury/kairos/pkg/model"
)

// Source names tasks that came from a task file.
const Source = "file"

type document struct {
	Tasks []entry `yaml:"tasks"`
}

type entry struct {
	ID          string     `yaml:"id"`
	Description string     `yaml:"description"`
	Deadline    *time.Time `yaml:"deadline"`
	Duration    *int       `yaml:"duration"`
	Domain      string     `yaml:"domain"`
	Status      string     `yaml:"status"`
	Project     string     `yaml:"project"`
	Override    float64    `yaml:"override"`
	Tags        []string   `yaml:"tags"`
}

// Load reads the task file at path.
func Load(path string) ([]model.Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading task file: %w", err)
	}
	return Parse(bytes.NewReader(data))
}

// Parse decodes a task document. An empty document holds no tasks. Entries
// without an id get a random UUID; an unknown domain or status fails the
// whole load with an error naming the entry.
func Parse(r io.Reader) ([]model.Task, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("decoding task file: %w", err)
	}

	tasks := make([]model.Task, 0, len(doc.Tasks))
	for i, e := range doc.Tasks {
		task, err := e.toModel()
		if err != nil {
			name := e.ID
			if name == "" {
				name = fmt.Sprintf("#%d %q", i+1, e.Description)
			}
			return nil, fmt.Errorf("task %s: %w", name, err)
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (e entry) toModel() (model.Task, error) {
	status, err := model.ParseStatus(e.Status)
	if err != nil {
		return model.Task{}, err
	}

	task := model.Task{
		ID:               e.ID,
		Description:      e.Description,
		Deadline:         e.Deadline,
		EstimatedMinutes: model.DefaultEstimateMinutes,
		Status:           status,
		ProjectID:        e.Project,
		UrgencyOverride:  e.Override,
		Source:           Source,
		Tags:             e.Tags,
	}
	if e.Domain != "" {
		if task.Domain, err = model.ParseDomain(e.Domain); err != nil {
			return model.Task{}, err
		}
	}
	if e.Duration != nil {
		task.EstimatedMinutes = *e.Duration
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	return task, nil
}
