package model

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// NonNegative rejects negative and non-finite values.
func NonNegative(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Invalid(field, "must be a finite number")
	}
	if v < 0 {
		return Invalid(field, "must be greater than or equal to 0")
	}
	return nil
}

// Fraction rejects values outside [0, 1).
func Fraction(field string, v float64) error {
	if err := NonNegative(field, v); err != nil {
		return err
	}
	if v >= 1 {
		return Invalid(field, "must be less than 1")
	}
	return nil
}

func (c Customer) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return Invalid("name", "is required")
	}
	return nil
}

func (m Material) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return Invalid("name", "is required")
	}
	if err := NonNegative("cost_per_lb", m.CostPerLb); err != nil {
		return err
	}
	return NonNegative("density_lb_in3", m.DensityLbIn3)
}

func (m Machine) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return Invalid("name", "is required")
	}
	if err := NonNegative("machine_rate_per_hr", m.MachineRatePerHr); err != nil {
		return err
	}
	return NonNegative("labor_rate_per_hr", m.LaborRatePerHr)
}

// Validate checks the operation's own fields. It does not require Machine to be resolved.
func (o Operation) Validate() error {
	if !o.Type.Valid() {
		return Invalid("operation_type", "must be one of roughing, finishing, machining, deburr, inspection")
	}
	checks := []struct {
		field string
		v     float64
	}{
		{"setup_time_hr", o.SetupTimeHr},
		{"cycle_time_hr", o.CycleTimeHr},
		{"allowance_pct", o.AllowancePct},
		{"tool_change_time_min", o.ToolChangeTimeMin},
		{"inspection_time_min", o.InspectionTimeMin},
		{"tool_cost_per_part", o.ToolCostPerPart},
		{"consumables_cost_per_part", o.ConsumablesCostPerPart},
	}
	for _, c := range checks {
		if err := NonNegative(c.field, c.v); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks a part record before it is stored.
func (p Part) Validate() error {
	if strings.TrimSpace(p.PartNumber) == "" {
		return Invalid("part_number", "is required")
	}
	return p.ValidateInputs()
}

// ValidateInputs checks the numeric costing inputs of the part and its operations.
// References to Material and Machine records are not checked.
func (p Part) ValidateInputs() error {
	if err := NonNegative("stock_weight_lb", p.StockWeightLb); err != nil {
		return err
	}
	if p.StockWeightLb == 0 {
		return Invalid("stock_weight_lb", "must be greater than 0")
	}
	if err := Fraction("scrap_factor", p.ScrapFactor); err != nil {
		return err
	}
	checks := []struct {
		field string
		v     float64
	}{
		{"programming_time_hr", p.ProgrammingTimeHr},
		{"programming_rate_per_hr", p.ProgrammingRatePerHr},
		{"first_article_inspection_hr", p.FirstArticleInspectionHr},
		{"overhead_rate_pct", p.OverheadRatePct},
	}
	for _, c := range checks {
		if err := NonNegative(c.field, c.v); err != nil {
			return err
		}
	}
	for i, op := range p.Operations {
		if err := op.Validate(); err != nil {
			var ve *ValidationError
			if errors.As(err, &ve) {
				return Invalid("operations["+strconv.Itoa(i)+"]."+ve.Field, ve.Reason)
			}
			return err
		}
	}
	return nil
}
