package pricing

import (
	"strconv"

	"github.com/grantdozier/dtg-fabrication-automations/internal/model"
)

func validate(part model.Part, quantity int, markup float64) error {
	if quantity < 1 {
		return model.Invalid("quantity", "must be at least 1")
	}
	if err := model.Fraction("margin_pct", markup); err != nil {
		return err
	}
	if len(part.Operations) == 0 {
		return model.Invalid("", "part has no costable operations")
	}
	if part.Material == nil {
		return model.Invalid("material", "reference "+strconv.FormatInt(part.MaterialID, 10)+" is not resolved")
	}
	if err := model.NonNegative("material.cost_per_lb", part.Material.CostPerLb); err != nil {
		return err
	}
	if err := part.ValidateInputs(); err != nil {
		return err
	}
	for i, op := range part.Operations {
		prefix := "operations[" + strconv.Itoa(i) + "]."
		if op.Machine == nil {
			return model.Invalid(prefix+"machine", "reference "+strconv.FormatInt(op.MachineID, 10)+" is not resolved")
		}
		if err := model.NonNegative(prefix+"machine.machine_rate_per_hr", op.Machine.MachineRatePerHr); err != nil {
			return err
		}
		if err := model.NonNegative(prefix+"machine.labor_rate_per_hr", op.Machine.LaborRatePerHr); err != nil {
			return err
		}
	}
	return nil
}
