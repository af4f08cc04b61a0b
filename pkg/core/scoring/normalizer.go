// Package scoring rates how well an employee fits a task.
//
// Two scorers satisfy the Scorer contract: Heuristic, a fixed weighted sum that
// is always available, and Learned, a small feed-forward regression network that
// is either trained in-process on a seed dataset or loaded from an artifact.
// Learned falls back to Heuristic on any failure, so callers always get a score.
package scoring

import "fmt"

// Feature names one of the normalized inputs to the learned scorer
type Feature string

const (
	FeatureSkillMatch   Feature = "skillMatch"
	FeatureEnergyLevel  Feature = "energyLevel"
	FeaturePerformance  Feature = "performance"
	FeatureTaskUrgency  Feature = "taskUrgency"
	FeatureTaskDuration Feature = "taskDuration"
)

// FeatureOrder is the column order of the feature vector fed to the network
var FeatureOrder = []Feature{
	FeatureSkillMatch,
	FeatureEnergyLevel,
	FeaturePerformance,
	FeatureTaskUrgency,
	FeatureTaskDuration,
}

// Domain is the raw value range a feature is mapped from
type Domain struct {
	Min float64
	Max float64
}

// Domains maps each recognized feature to its raw domain
type Domains map[Feature]Domain

// DefaultDomains returns the fixed per-feature domains
func DefaultDomains() Domains {
	return Domains{
		FeatureSkillMatch:   {Min: 0, Max: 1},
		FeatureEnergyLevel:  {Min: 0, Max: 100},
		FeaturePerformance:  {Min: 0, Max: 100},
		FeatureTaskUrgency:  {Min: 0, Max: 3},
		FeatureTaskDuration: {Min: 1, Max: 8},
	}
}

// ConfigurationError is returned when the normalizer is asked about a feature
// it has no domain for. It signals a programming error, not bad data.
type ConfigurationError struct {
	Feature Feature
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("unrecognized feature %q", string(e.Feature))
}

// Normalizer maps raw feature values onto [0,1] using fixed domains.
// Values outside a domain are not clamped; keeping inputs in range is the
// caller's responsibility.
type Normalizer struct {
	domains Domains
}

// NewNormalizer creates a normalizer over the given domains
func NewNormalizer(domains Domains) *Normalizer {
	copied := make(Domains, len(domains))
	for feature, domain := range domains {
		copied[feature] = domain
	}
	return &Normalizer{domains: copied}
}

// DefaultNormalizer creates a normalizer over DefaultDomains
func DefaultNormalizer() *Normalizer {
	return NewNormalizer(DefaultDomains())
}

// Normalize returns (value - min) / (max - min) for the feature's domain
func (n *Normalizer) Normalize(value float64, feature Feature) (float64, error) {
	domain, ok := n.domains[feature]
	if !ok {
		return 0, &ConfigurationError{Feature: feature}
	}
	return (value - domain.Min) / (domain.Max - domain.Min), nil
}

// MustNormalize is like Normalize but panics on an unrecognized feature
func (n *Normalizer) MustNormalize(value float64, feature Feature) float64 {
	v, err := n.Normalize(value, feature)
	if err != nil {
		panic(err)
	}
	return v
}

// Normalize normalizes value using DefaultDomains
func Normalize(value float64, feature Feature) (float64, error) {
	return defaultNormalizer.Normalize(value, feature)
}

var defaultNormalizer = DefaultNormalizer()
