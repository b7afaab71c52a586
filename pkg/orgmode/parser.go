package orgmode

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/csainsbury/kairos/pkg/model"
	"github.com/csainsbury/kairos/pkg/util"
)

// Source names tasks that came from Org-mode files.
const Source = "orgmode"

// Priority cookies shift the composite score the way a manual urgency
// override would.
var priorityOverride = map[string]float64{
	"A": 1.0,
	"B": 0,
	"C": -0.5,
}

var (
	headingRegex  = regexp.MustCompile(`^\*+\s+`)
	taskRegex     = regexp.MustCompile(`^\*+\s+(TODO|NEXT|STARTED|DONE)(?:\s+(?:\[#([A-Z])\]\s*)?(.*?))?(?:\s+(:[\w@#%:-]+:))?\s*$`)
	deadlineRegex = regexp.MustCompile(`DEADLINE:\s+<(\d{4}-\d{2}-\d{2})(?:\s+[A-Za-z]{2,3})?(?:\s+(\d{1,2}:\d{2}))?[^>]*>`)
	propertyRegex = regexp.MustCompile(`^:([A-Za-z_]+):\s*(.*?)\s*$`)
)

var keywordStatus = map[string]model.Status{
	"TODO":    model.StatusPending,
	"NEXT":    model.StatusPending,
	"STARTED": model.StatusInProgress,
	"DONE":    model.StatusCompleted,
}

// parseFile parses an Org-mode file and returns a slice of tasks.
func parseFile(filePath string) ([]model.Task, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Parse(file, filePath)
}

// ParseFiles parses multiple Org-mode files and returns a slice of tasks.
func ParseFiles(filePaths []string) ([]model.Task, error) {
	var allTasks []model.Task
	for _, filePath := range filePaths {
		tasks, err := parseFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", filePath, err)
		}
		allTasks = append(allTasks, tasks...)
	}
	return allTasks, nil
}

// Parse reads TODO headings from an Org-mode document. A task ends at the
// next heading of any kind or at the end of input. Tasks without an :ID:
// property are given a random UUID.
func Parse(r io.Reader, source string) ([]model.Task, error) {
	log.Debug().Str("source", source).Msg("parsing org file")
	scanner := bufio.NewScanner(r)
	var tasks []model.Task
	var current *model.Task

	flush := func() {
		if current == nil {
			return
		}
		if current.ID == "" {
			current.ID = uuid.NewString()
		}
		tasks = append(tasks, *current)
		current = nil
	}

	for scanner.Scan() {
		raw := scanner.Text()
		line := strings.TrimSpace(raw)

		// Headings start in column zero; indented stars are list items.
		if headingRegex.MatchString(raw) {
			flush()
			if matches := taskRegex.FindStringSubmatch(raw); matches != nil {
				current = newTask(matches)
			}
			continue
		}
		if current == nil {
			continue
		}

		if matches := deadlineRegex.FindStringSubmatch(line); matches != nil {
			deadline, err := parseDeadline(matches[1], matches[2])
			if err != nil {
				log.Warn().Err(err).Str("task", current.Description).Msg("ignoring bad deadline")
			} else {
				current.Deadline = &deadline
			}
			continue
		}
		if matches := propertyRegex.FindStringSubmatch(line); matches != nil {
			applyProperty(current, strings.ToUpper(matches[1]), matches[2])
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}

func newTask(matches []string) *model.Task {
	task := &model.Task{
		Description:      strings.TrimSpace(matches[3]),
		Status:           keywordStatus[matches[1]],
		EstimatedMinutes: model.DefaultEstimateMinutes,
		UrgencyOverride:  priorityOverride[matches[2]],
		Source:           Source,
	}
	if matches[4] != "" {
		task.Tags = strings.Split(strings.Trim(matches[4], ":"), ":")
	}
	for _, tag := range task.Tags {
		if d, err := model.ParseDomain(tag); err == nil {
			task.Domain = d
			break
		}
	}
	return task
}

func applyProperty(task *model.Task, key, value string) {
	switch key {
	case "ID":
		task.ID = value
	case "PROJECT":
		task.ProjectID = value
	case "DOMAIN":
		d, err := model.ParseDomain(value)
		if err != nil {
			log.Warn().Err(err).Str("task", task.Description).Msg("ignoring unknown domain property")
			return
		}
		task.Domain = d
	case "EFFORT":
		d, err := util.ParseEffort(value)
		if err != nil {
			log.Warn().Err(err).Str("task", task.Description).Msg("ignoring bad effort")
			return
		}
		task.EstimatedMinutes = util.Minutes(d)
	}
}

// parseDeadline reads an Org timestamp in local time. A deadline without a
// time of day falls due at the end of that day.
func parseDeadline(date, clock string) (time.Time, error) {
	if clock == "" {
		day, err := time.ParseInLocation("2006-01-02", date, time.Local)
		if err != nil {
			return time.Time{}, err
		}
		return day.Add(24*time.Hour - time.Minute), nil
	}
	return time.ParseInLocation("2006-01-02 15:04", date+" "+clock, time.Local)
}
