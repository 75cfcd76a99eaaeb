package metrics

import (
	"sync/atomic"
)

// Outcome classifies how a generation request resolved
type Outcome string

const (
	OutcomeSuccess         Outcome = "success"
	OutcomeInvalid         Outcome = "invalid"
	OutcomeConfigFallback  Outcome = "config_fallback"
	OutcomeServiceFallback Outcome = "service_fallback"
)

// Counters holds in-process generation counters exposed by /api/metrics
type Counters struct {
	total           atomic.Int64
	success         atomic.Int64
	invalid         atomic.Int64
	configFallback  atomic.Int64
	serviceFallback atomic.Int64
}

// Record increments the counter for outcome
func (c *Counters) Record(outcome Outcome) {
	c.total.Add(1)
	switch outcome {
	case OutcomeSuccess:
		c.success.Add(1)
	case OutcomeInvalid:
		c.invalid.Add(1)
	case OutcomeConfigFallback:
		c.configFallback.Add(1)
	case OutcomeServiceFallback:
		c.serviceFallback.Add(1)
	}
}

// Snapshot returns the current counter values
func (c *Counters) Snapshot() map[string]int64 {
	return map[string]int64{
		"total":                        c.total.Load(),
		string(OutcomeSuccess):         c.success.Load(),
		string(OutcomeInvalid):         c.invalid.Load(),
		string(OutcomeConfigFallback):  c.configFallback.Load(),
		string(OutcomeServiceFallback): c.serviceFallback.Load(),
	}
}
