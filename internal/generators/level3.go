package generators

import (
	"context"
	"fmt"
	"time"

	"plantforge/internal/core"
	"plantforge/pkg/domain"
)

var firstNames = []string{
	"Ana", "Bram", "Chloe", "Daan", "Elena", "Femke", "Goran", "Hana",
	"Ivan", "Julia", "Kenji", "Lars", "Marta", "Noor", "Olof", "Priya",
	"Quentin", "Rosa", "Stefan", "Tomas",
}

var lastNames = []string{
	"Bakker", "Costa", "Dubois", "Engel", "Fischer", "Garcia", "Hansen",
	"Ito", "Jansen", "Kowalski", "Larsen", "Meyer", "Nakamura", "Olsen",
	"Petrov", "Rossi", "Schmidt", "Tanaka", "Visser", "Weber",
}

var personnelRoles = []core.Weighted{
	{Value: "Operator", Weight: 0.45},
	{Value: "Maintenance Technician", Weight: 0.2},
	{Value: "Quality Inspector", Weight: 0.1},
	{Value: "Shift Supervisor", Weight: 0.1},
	{Value: "Process Engineer", Weight: 0.1},
	{Value: "Plant Manager", Weight: 0.05},
}

var shiftPatterns = []string{"Day", "Evening", "Night", "Rotating 3x8", "Weekend"}

var certificationSets = [][]string{
	{"GMP Basics"},
	{"GMP Basics", "Forklift"},
	{"GMP Basics", "HACCP"},
	{"Electrical Safety", "LOTO"},
	{"GMP Basics", "HACCP", "Internal Auditor"},
	{},
}

// PersonnelGenerator emits the plant workforce table.
type PersonnelGenerator struct{}

func (PersonnelGenerator) Table() string     { return "personnel" }
func (PersonnelGenerator) DefaultCount() int { return 25 }

func (PersonnelGenerator) Generate(_ context.Context, n int, env *core.Env) (core.GenerateResult, error) {
	ids, err := reserve(env, domain.KindPersonnel, n)
	if err != nil {
		return core.GenerateResult{}, err
	}
	tbl := domain.NewTable("personnel", []string{
		"person_id", "name", "role", "facility_id", "shift_pattern",
		"hire_date", "certifications", "active",
	})
	start, _ := window(env)
	missingFacility := false
	for _, id := range ids {
		active := "true"
		if env.Rand.Float64() < 0.05 {
			active = "false"
		}
		row := []string{
			string(id),
			fmt.Sprintf("%s %s", core.Pick(env.Rand, firstNames), core.Pick(env.Rand, lastNames)),
			core.WeightedPick(env.Rand, personnelRoles),
			sampleRef(env, domain.KindFacility, &missingFacility),
			core.Pick(env.Rand, shiftPatterns),
			day(core.DateBetween(env.Rand, start.AddDate(-15, 0, 0), start)),
			domain.EncodeList(core.Pick(env.Rand, certificationSets)),
			active,
		}
		if err := tbl.AppendRow(row); err != nil {
			return core.GenerateResult{}, err
		}
	}
	return core.GenerateResult{Table: tbl}, nil
}

var workOrderTypes = []core.Weighted{
	{Value: "Production", Weight: 0.6},
	{Value: "Cleaning", Weight: 0.15},
	{Value: "Changeover", Weight: 0.15},
	{Value: "Trial", Weight: 0.1},
}

var workOrderStatuses = []core.Weighted{
	{Value: "Completed", Weight: 0.55},
	{Value: "Released", Weight: 0.15},
	{Value: "In Progress", Weight: 0.15},
	{Value: "Planned", Weight: 0.1},
	{Value: "Cancelled", Weight: 0.05},
}

var workOrderPriorities = []core.Weighted{
	{Value: "Normal", Weight: 0.7},
	{Value: "High", Weight: 0.2},
	{Value: "Urgent", Weight: 0.1},
}

// WorkOrdersGenerator emits production work orders. Equipment, product and
// personnel links come from the shared pools and degrade to synthetic
// references when a pool is empty.
type WorkOrdersGenerator struct{}

func (WorkOrdersGenerator) Table() string     { return "work_orders" }
func (WorkOrdersGenerator) DefaultCount() int { return 60 }

func (WorkOrdersGenerator) Generate(_ context.Context, n int, env *core.Env) (core.GenerateResult, error) {
	ids, err := reserve(env, domain.KindWorkOrder, n)
	if err != nil {
		return core.GenerateResult{}, err
	}
	tbl := domain.NewTable("work_orders", []string{
		"work_order_id", "order_type", "status", "priority", "product_id",
		"equipment_id", "assigned_to", "quantity", "unit",
		"scheduled_start", "scheduled_end", "actual_start", "actual_end",
	})
	start, end := window(env)
	missingProduct := false
	missingEquipment := false
	missingPersonnel := false
	for _, id := range ids {
		status := core.WeightedPick(env.Rand, workOrderStatuses)
		schedStart := core.DateBetween(env.Rand, start, end)
		schedEnd := schedStart.Add(time.Duration(core.IntBetween(env.Rand, 4, 48)) * time.Hour)
		actualStart, actualEnd := "", ""
		switch status {
		case "Completed":
			begin := schedStart.Add(time.Duration(core.IntBetween(env.Rand, -60, 120)) * time.Minute)
			actualStart = stamp(begin)
			actualEnd = stamp(begin.Add(schedEnd.Sub(schedStart)))
		case "In Progress":
			actualStart = stamp(schedStart)
		}
		row := []string{
			string(id),
			core.WeightedPick(env.Rand, workOrderTypes),
			status,
			core.WeightedPick(env.Rand, workOrderPriorities),
			sampleRef(env, domain.KindProduct, &missingProduct),
			sampleRef(env, domain.KindEquipment, &missingEquipment),
			sampleRef(env, domain.KindPersonnel, &missingPersonnel),
			itoa(core.IntBetween(env.Rand, 50, 10000)),
			core.Pick(env.Rand, batchUnits),
			stamp(schedStart),
			stamp(schedEnd),
			actualStart,
			actualEnd,
		}
		if err := tbl.AppendRow(row); err != nil {
			return core.GenerateResult{}, err
		}
	}
	return core.GenerateResult{Table: tbl}, nil
}

var lotStatuses = []core.Weighted{
	{Value: "Released", Weight: 0.55},
	{Value: "Quarantine", Weight: 0.2},
	{Value: "Consumed", Weight: 0.15},
	{Value: "Rejected", Weight: 0.05},
	{Value: "Expired", Weight: 0.05},
}

// MaterialLotsGenerator emits material lots. A fraction of lots act as
// parents for splits and repacks.
type MaterialLotsGenerator struct{}

func (MaterialLotsGenerator) Table() string     { return "material_lots" }
func (MaterialLotsGenerator) DefaultCount() int { return 100 }

func (MaterialLotsGenerator) Generate(_ context.Context, n int, env *core.Env) (core.GenerateResult, error) {
	ids, err := reserve(env, domain.KindMaterialLot, n)
	if err != nil {
		return core.GenerateResult{}, err
	}
	h := core.AssignParents(env.Rand, ids, 0.15, 0.25)
	tbl := domain.NewTable("material_lots", []string{
		"lot_id", "material_id", "parent_lot_id", "supplier_id", "status",
		"quantity", "unit", "received_date", "expiry_date", "storage_location",
	})
	start, end := window(env)
	missingMaterial := false
	missingSupplier := false
	for _, id := range ids {
		received := core.DateBetween(env.Rand, start, end)
		row := []string{
			string(id),
			sampleRef(env, domain.KindMaterial, &missingMaterial),
			h.ParentCell(id),
			sampleRef(env, domain.KindSupplier, &missingSupplier),
			core.WeightedPick(env.Rand, lotStatuses),
			money(core.FloatBetween(env.Rand, 10, 20000)),
			core.Pick(env.Rand, batchUnits),
			day(received),
			day(received.AddDate(0, core.IntBetween(env.Rand, 6, 36), 0)),
			fmt.Sprintf("WH%d-%c%02d", core.IntBetween(env.Rand, 1, 3), 'A'+rune(core.IntBetween(env.Rand, 0, 5)), core.IntBetween(env.Rand, 1, 40)),
		}
		if err := tbl.AppendRow(row); err != nil {
			return core.GenerateResult{}, err
		}
	}
	return core.GenerateResult{Table: tbl}, nil
}

type qualityTestSpec struct {
	Name string
	Unit string
	Lo   float64
	Hi   float64
}

var qualityTestSpecs = []qualityTestSpec{
	{"Moisture Content", "%", 0.5, 8},
	{"Viscosity", "cP", 100, 5000},
	{"pH", "pH", 3, 9},
	{"Density", "g/mL", 0.8, 1.4},
	{"Microbial Count", "CFU/g", 0, 1000},
	{"Assay", "%", 90, 110},
}

// QualityTestsGenerator emits quality test results against batches and lots.
// Roughly one test in twelve fails.
type QualityTestsGenerator struct{}

func (QualityTestsGenerator) Table() string     { return "quality_tests" }
func (QualityTestsGenerator) DefaultCount() int { return 150 }

func (QualityTestsGenerator) Generate(_ context.Context, n int, env *core.Env) (core.GenerateResult, error) {
	ids, err := reserve(env, domain.KindQualityTest, n)
	if err != nil {
		return core.GenerateResult{}, err
	}
	tbl := domain.NewTable("quality_tests", []string{
		"test_id", "batch_id", "lot_id", "test_name", "result_value", "unit",
		"spec_low", "spec_high", "outcome", "tested_by", "tested_at",
	})
	start, end := window(env)
	missingBatch := false
	missingLot := false
	missingTester := false
	for _, id := range ids {
		spec := core.Pick(env.Rand, qualityTestSpecs)
		outcome := "Pass"
		value := core.FloatBetween(env.Rand, spec.Lo, spec.Hi)
		if env.Rand.Float64() < 0.08 {
			outcome = "Fail"
			value = spec.Hi + core.FloatBetween(env.Rand, 0.01, (spec.Hi-spec.Lo)*0.2+0.01)
		}
		batchCell, lotCell := "", ""
		if env.Rand.Float64() < 0.6 {
			batchCell = sampleRef(env, domain.KindBatch, &missingBatch)
		} else {
			lotCell = sampleRef(env, domain.KindMaterialLot, &missingLot)
		}
		row := []string{
			string(id),
			batchCell,
			lotCell,
			spec.Name,
			num(value, 3),
			spec.Unit,
			num(spec.Lo, 3),
			num(spec.Hi, 3),
			outcome,
			sampleRef(env, domain.KindPersonnel, &missingTester),
			stamp(core.DateBetween(env.Rand, start, end)),
		}
		if err := tbl.AppendRow(row); err != nil {
			return core.GenerateResult{}, err
		}
	}
	return core.GenerateResult{Table: tbl}, nil
}

// ProductionSchedulesGenerator emits weekly schedule periods. The row count
// is capped at the 52 weekly periods that fit the generated date window.
type ProductionSchedulesGenerator struct{}

func (ProductionSchedulesGenerator) Table() string     { return "production_schedules" }
func (ProductionSchedulesGenerator) DefaultCount() int { return 24 }

const maxSchedulePeriods = 52

func (ProductionSchedulesGenerator) Generate(_ context.Context, n int, env *core.Env) (core.GenerateResult, error) {
	if n > maxSchedulePeriods {
		env.Log.Warn("schedule count capped", "requested", n, "cap", maxSchedulePeriods)
		n = maxSchedulePeriods
	}
	ids, err := reserve(env, domain.KindProductionSchedule, n)
	if err != nil {
		return core.GenerateResult{}, err
	}
	tbl := domain.NewTable("production_schedules", []string{
		"schedule_id", "facility_id", "period_start", "period_end",
		"planned_orders", "planned_hours", "frozen",
	})
	start, _ := window(env)
	weekStart := start
	missingFacility := false
	for i, id := range ids {
		periodStart := weekStart.AddDate(0, 0, 7*i)
		frozen := "false"
		if i < len(ids)/4 {
			frozen = "true"
		}
		row := []string{
			string(id),
			sampleRef(env, domain.KindFacility, &missingFacility),
			day(periodStart),
			day(periodStart.AddDate(0, 0, 6)),
			itoa(core.IntBetween(env.Rand, 3, 25)),
			itoa(core.IntBetween(env.Rand, 40, 160)),
			frozen,
		}
		if err := tbl.AppendRow(row); err != nil {
			return core.GenerateResult{}, err
		}
	}
	return core.GenerateResult{Table: tbl}, nil
}

var maintenanceTypes = []core.Weighted{
	{Value: "Preventive", Weight: 0.55},
	{Value: "Corrective", Weight: 0.3},
	{Value: "Predictive", Weight: 0.1},
	{Value: "Inspection", Weight: 0.05},
}

var partSets = [][]string{
	{},
	{"Bearing 6204"},
	{"Seal Kit SK-12"},
	{"Bearing 6204", "Seal Kit SK-12"},
	{"V-Belt B42", "Filter F-200"},
	{"Gasket G-8", "Lubricant L-Syn"},
}

// MaintenanceRecordsGenerator emits completed and open maintenance jobs on
// equipment. Replaced parts are stored as a JSON list in a single cell.
type MaintenanceRecordsGenerator struct{}

func (MaintenanceRecordsGenerator) Table() string     { return "maintenance_records" }
func (MaintenanceRecordsGenerator) DefaultCount() int { return 50 }

func (MaintenanceRecordsGenerator) Generate(_ context.Context, n int, env *core.Env) (core.GenerateResult, error) {
	ids, err := reserve(env, domain.KindMaintenanceRecord, n)
	if err != nil {
		return core.GenerateResult{}, err
	}
	tbl := domain.NewTable("maintenance_records", []string{
		"maintenance_id", "equipment_id", "maintenance_type", "technician_id",
		"started_at", "completed_at", "downtime_minutes", "parts_replaced", "notes",
	})
	start, end := window(env)
	missingEquipment := false
	missingTechnician := false
	for _, id := range ids {
		begin := core.DateBetween(env.Rand, start, end)
		minutes := core.IntBetween(env.Rand, 15, 720)
		completed := stamp(begin.Add(time.Duration(minutes) * time.Minute))
		downtime := itoa(minutes)
		if env.Rand.Float64() < 0.1 {
			completed = ""
			downtime = ""
		}
		mType := core.WeightedPick(env.Rand, maintenanceTypes)
		row := []string{
			string(id),
			sampleRef(env, domain.KindEquipment, &missingEquipment),
			mType,
			sampleRef(env, domain.KindPersonnel, &missingTechnician),
			stamp(begin),
			completed,
			downtime,
			domain.EncodeList(core.Pick(env.Rand, partSets)),
			fmt.Sprintf("%s work order closed per checklist", mType),
		}
		if err := tbl.AppendRow(row); err != nil {
			return core.GenerateResult{}, err
		}
	}
	return core.GenerateResult{Table: tbl}, nil
}

var transactionTypes = []core.Weighted{
	{Value: "Receipt", Weight: 0.25},
	{Value: "Issue", Weight: 0.35},
	{Value: "Transfer", Weight: 0.2},
	{Value: "Adjustment", Weight: 0.1},
	{Value: "Return", Weight: 0.1},
}

// MaterialTransactionsGenerator streams the inventory movement journal.
type MaterialTransactionsGenerator struct{}

func (MaterialTransactionsGenerator) Table() string     { return "material_transactions" }
func (MaterialTransactionsGenerator) DefaultCount() int { return 2000 }

func (g MaterialTransactionsGenerator) Generate(ctx context.Context, n int, env *core.Env) (core.GenerateResult, error) {
	w, err := env.Sink.OpenTable(ctx, g.Table(), []string{
		"transaction_id", "lot_id", "transaction_type", "quantity", "unit",
		"from_location", "to_location", "work_order_id", "performed_by", "timestamp",
	})
	if err != nil {
		return core.GenerateResult{}, err
	}
	start, end := window(env)
	missingLot := false
	missingWorkOrder := false
	missingPersonnel := false
	for i := 0; i < n; i++ {
		id, err := env.Pools.NewIdentifier(domain.KindMaterialTransaction)
		if err != nil {
			_ = w.Close()
			return core.GenerateResult{}, err
		}
		txType := core.WeightedPick(env.Rand, transactionTypes)
		qty := core.FloatBetween(env.Rand, 1, 2000)
		if txType == "Issue" || txType == "Adjustment" {
			qty = -qty
		}
		workOrder := ""
		if txType == "Issue" || txType == "Return" {
			workOrder = sampleRef(env, domain.KindWorkOrder, &missingWorkOrder)
		}
		row := []string{
			string(id),
			sampleRef(env, domain.KindMaterialLot, &missingLot),
			txType,
			money(qty),
			core.Pick(env.Rand, batchUnits),
			fmt.Sprintf("WH%d", core.IntBetween(env.Rand, 1, 3)),
			fmt.Sprintf("WH%d", core.IntBetween(env.Rand, 1, 3)),
			workOrder,
			sampleRef(env, domain.KindPersonnel, &missingPersonnel),
			stamp(core.DateBetween(env.Rand, start, end)),
		}
		if err := w.Append(row); err != nil {
			_ = w.Close()
			return core.GenerateResult{}, err
		}
	}
	if err := w.Close(); err != nil {
		return core.GenerateResult{}, err
	}
	return core.GenerateResult{Rows: n}, nil
}
