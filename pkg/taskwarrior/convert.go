package taskwarrior

import (
	"github.com/rs/zerolog/log"

	"github.com/csainsbury/kairos/pkg/model"
	"github.com/csainsbury/kairos/pkg/util"
)

// DefaultEstimateMinutes is used for tasks without a usable `est` value.
const DefaultEstimateMinutes = model.DefaultEstimateMinutes

// Source names tasks that came from Taskwarrior.
const Source = "taskwarrior"

// ToModel converts an exported Taskwarrior task. Deleted tasks (and the
// templates of recurring tasks) are not rankable and report false.
func ToModel(tw Task) (model.Task, bool) {
	var status model.Status
	switch tw.Status {
	case PENDING, WAITING:
		status = model.StatusPending
		if tw.Start.Set() {
			status = model.StatusInProgress
		}
	case COMPLETED:
		status = model.StatusCompleted
	default:
		return model.Task{}, false
	}

	task := model.Task{
		ID:               tw.UUID,
		Description:      tw.Description,
		EstimatedMinutes: estimateMinutes(tw),
		Domain:           domainOf(tw),
		Status:           status,
		ProjectID:        tw.Project,
		UrgencyOverride:  tw.UrgencyOverride,
		Source:           Source,
		Tags:             tw.Tags,
	}
	if tw.Due.Set() {
		due := tw.Due.Time
		task.Deadline = &due
	}
	return task, true
}

// ToModels converts a whole export, dropping tasks ToModel rejects.
func ToModels(tasks []Task) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, tw := range tasks {
		if task, ok := ToModel(tw); ok {
			out = append(out, task)
		}
	}
	return out
}

func estimateMinutes(tw Task) int {
	if tw.Est == "" {
		return DefaultEstimateMinutes
	}
	d, err := util.ParseDuration(tw.Est)
	if err != nil || d <= 0 {
		log.Warn().Err(err).Str("uuid", tw.UUID).Str("est", tw.Est).Msg("unusable estimate, using default")
		return DefaultEstimateMinutes
	}
	return util.Minutes(d)
}

// domainOf prefers the domain UDA and falls back to the first tag naming a
// domain. Tasks matching neither keep an empty domain, which scores as unknown.
func domainOf(tw Task) model.Domain {
	if tw.Domain != "" {
		d, err := model.ParseDomain(tw.Domain)
		if err == nil {
			return d
		}
		log.Warn().Str("uuid", tw.UUID).Str("domain", tw.Domain).Msg("unknown domain UDA")
	}
	for _, tag := range tw.Tags {
		if d, err := model.ParseDomain(tag); err == nil {
			return d
		}
	}
	return ""
}
