package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/csainsbury/kairos/pkg/model"
)

// DomainWeightsEnv names the environment variable holding domain weights in
// the form "domain:weight,domain:weight".
const DomainWeightsEnv = "DEFAULT_DOMAIN_WEIGHTS"

// DefaultDomainWeights returns a fresh copy of the built-in weights.
func DefaultDomainWeights() map[model.Domain]float64 {
	return map[model.Domain]float64{
		model.DomainWork:        1.0,
		model.DomainLifeAdmin:   0.8,
		model.DomainGeneralLife: 0.6,
	}
}

// ParseDomainWeights parses "domain:weight,..." into a weight map. Items naming
// an unknown domain are skipped with a warning; any other malformed item fails
// the whole string.
func ParseDomainWeights(s string) (map[model.Domain]float64, error) {
	weights := make(map[model.Domain]float64)
	for _, item := range strings.Split(s, ",") {
		name, raw, ok := strings.Cut(strings.TrimSpace(item), ":")
		if !ok {
			return nil, fmt.Errorf("domain weight %q: expected domain:weight", item)
		}
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("domain weight %q: missing domain", item)
		}
		w, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("domain weight %q: %w", item, err)
		}
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			return nil, fmt.Errorf("domain weight %q: weight must be a non-negative number", item)
		}
		domain, err := model.ParseDomain(name)
		if err != nil {
			log.Warn().Str("item", item).Msg("unknown domain in weights, skipping")
			continue
		}
		weights[domain] = w
	}
	return weights, nil
}

// DomainWeights reads the weights from the process environment.
func DomainWeights() map[model.Domain]float64 {
	return DomainWeightsFrom(os.Getenv)
}

// DomainWeightsFrom reads the weights through getenv. An unset value yields the
// defaults; a malformed one is logged and also yields the defaults.
func DomainWeightsFrom(getenv func(string) string) map[model.Domain]float64 {
	raw := strings.TrimSpace(getenv(DomainWeightsEnv))
	if raw == "" {
		return DefaultDomainWeights()
	}
	weights, err := ParseDomainWeights(raw)
	if err != nil {
		log.Warn().Err(err).Str("value", raw).Msg("invalid domain weights, using defaults")
		return DefaultDomainWeights()
	}
	return weights
}
