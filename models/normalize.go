// ABOUTME: Boundary normalisation for numeric entity fields
// ABOUTME: Coerces missing or non-finite numbers to zero and clamps percentages
package models

import "math"

// Finite returns v, or 0 when v is NaN or infinite.
func Finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ClampPercent bounds v to [0, 100] after coercing non-finite input to 0.
func ClampPercent(v float64) float64 {
	v = Finite(v)
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// FromNullable returns *v, or 0 when the value was never set.
func FromNullable(v *float64) float64 {
	if v == nil {
		return 0
	}
	return Finite(*v)
}

func NormalizeLead(l Lead) Lead {
	l.EstimatedValue = Finite(l.EstimatedValue)
	l.Score = ClampPercent(l.Score)
	return l
}

func NormalizeOpportunity(o Opportunity) Opportunity {
	o.Value = Finite(o.Value)
	o.Probability = ClampPercent(o.Probability)
	return o
}

func NormalizeProject(p Project) Project {
	p.Budget = Finite(p.Budget)
	p.ActualCost = Finite(p.ActualCost)
	p.Progress = ClampPercent(p.Progress)
	return p
}

// Normalize applies the per-entity normalisation to every numeric
// collection in the dataset and returns the result. The input is not
// modified.
func (d Dataset) Normalize() Dataset {
	out := d
	out.Leads = make([]Lead, len(d.Leads))
	for i, l := range d.Leads {
		out.Leads[i] = NormalizeLead(l)
	}
	out.Opportunities = make([]Opportunity, len(d.Opportunities))
	for i, o := range d.Opportunities {
		out.Opportunities[i] = NormalizeOpportunity(o)
	}
	out.Projects = make([]Project, len(d.Projects))
	for i, p := range d.Projects {
		out.Projects[i] = NormalizeProject(p)
	}
	return out
}
