package model

import "time"

// OperationType classifies an operation. It does not change how the operation is costed.
type OperationType string

const (
	OperationRoughing   OperationType = "roughing"
	OperationFinishing  OperationType = "finishing"
	OperationMachining  OperationType = "machining"
	OperationDeburr     OperationType = "deburr"
	OperationInspection OperationType = "inspection"
)

// Valid reports whether t is one of the known operation types.
func (t OperationType) Valid() bool {
	switch t {
	case OperationRoughing, OperationFinishing, OperationMachining, OperationDeburr, OperationInspection:
		return true
	default:
		return false
	}
}

type Customer struct {
	ID        int64
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
}

// Material is raw stock priced by weight.
type Material struct {
	ID           int64
	Name         string
	CostPerLb    float64
	DensityLbIn3 float64
	Description  string
}

// Machine carries the hourly machine and operator rates charged for time spent on it.
type Machine struct {
	ID               int64
	Name             string
	MachineType      string
	MachineRatePerHr float64
	LaborRatePerHr   float64
	Description      string
}

// Operation is one routing step of a part. Machine is nil until the catalog resolves MachineID.
type Operation struct {
	ID                     int64
	PartID                 int64
	MachineID              int64
	Machine                *Machine
	Name                   string
	Type                   OperationType
	Sequence               int
	SetupTimeHr            float64
	CycleTimeHr            float64
	AllowancePct           float64
	ToolChangeTimeMin      float64
	InspectionTimeMin      float64
	ToolCostPerPart        float64
	ConsumablesCostPerPart float64
}

// Part is a quotable part definition. Material is nil until the catalog resolves MaterialID.
type Part struct {
	ID                       int64
	PartNumber               string
	Description              string
	MaterialID               int64
	Material                 *Material
	StockWeightLb            float64
	ScrapFactor              float64
	ProgrammingTimeHr        float64
	ProgrammingRatePerHr     float64
	FirstArticleInspectionHr float64
	OverheadRatePct          float64
	Operations               []Operation
	CreatedAt                time.Time
}
