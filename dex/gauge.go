package dex

import (
	"math"

	"github.com/alphadex-cli/alphadex/pokeapi"
	"github.com/samber/lo"
)

// GaugeRadius is the radius of the circular stat gauge.
const GaugeRadius = 50

// Circumference of the gauge track.
var Circumference = 2 * math.Pi * GaugeRadius

// Gauge is the geometry of one stat gauge.
type Gauge struct {
	Stat  string `json:"stat"`
	Value int    `json:"value"`
	// Fraction of the track that is swept, base_stat/100. Above 1 the gauge overdraws.
	Fraction   float64 `json:"fraction"`
	DashOffset float64 `json:"dash_offset"`
}

// NewGauge computes the sweep of a stat. With clamp the sweep stops at a full circle.
func NewGauge(stat pokeapi.StatEntry, clamp bool) Gauge {
	fraction := math.Max(0, float64(stat.BaseStat)/100)
	if clamp {
		fraction = math.Min(fraction, 1)
	}
	return Gauge{
		Stat:       stat.Stat.Name,
		Value:      stat.BaseStat,
		Fraction:   fraction,
		DashOffset: Circumference * (1 - fraction),
	}
}

// Overdraw reports whether the sweep exceeds a full circle.
func (g Gauge) Overdraw() bool {
	return g.Fraction > 1
}

// Gauges returns a gauge per stat in API order.
func Gauges(p *pokeapi.Pokemon, clamp bool) []Gauge {
	return lo.Map(p.Stats, func(s pokeapi.StatEntry, _ int) Gauge {
		return NewGauge(s, clamp)
	})
}
