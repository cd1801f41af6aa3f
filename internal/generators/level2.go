package generators

import (
	"context"
	"fmt"
	"time"

	"plantforge/internal/core"
	"plantforge/pkg/domain"
)

var facilitySites = []struct {
	City, Country, TZ string
}{
	{"Rotterdam", "Netherlands", "Europe/Amsterdam"},
	{"Lyon", "France", "Europe/Paris"},
	{"Houston", "United States", "America/Chicago"},
	{"Columbus", "United States", "America/New_York"},
	{"Singapore", "Singapore", "Asia/Singapore"},
	{"Osaka", "Japan", "Asia/Tokyo"},
	{"Monterrey", "Mexico", "America/Monterrey"},
	{"Wroclaw", "Poland", "Europe/Warsaw"},
}

var facilityTypes = []core.Weighted{
	{Value: "Production Plant", Weight: 0.5},
	{Value: "Packaging Site", Weight: 0.2},
	{Value: "Distribution Center", Weight: 0.2},
	{Value: "Pilot Plant", Weight: 0.1},
}

var facilityStatuses = []core.Weighted{
	{Value: "Operational", Weight: 0.85},
	{Value: "Under Maintenance", Weight: 0.1},
	{Value: "Decommissioning", Weight: 0.05},
}

// FacilitiesGenerator emits the facility master table, the root of the plant
// structure hierarchy.
type FacilitiesGenerator struct{}

func (FacilitiesGenerator) Table() string     { return "facilities" }
func (FacilitiesGenerator) DefaultCount() int { return 2 }

func (FacilitiesGenerator) Generate(_ context.Context, n int, env *core.Env) (core.GenerateResult, error) {
	ids, err := reserve(env, domain.KindFacility, n)
	if err != nil {
		return core.GenerateResult{}, err
	}
	h := core.AssignParents(env.Rand, ids, 0.2, 0.2)
	tbl := domain.NewTable("facilities", []string{
		"facility_id", "name", "facility_type", "parent_facility_id",
		"city", "country", "timezone", "commissioned_date", "floor_area_sqm", "status",
	})
	start, _ := window(env)
	for i, id := range ids {
		site := core.Pick(env.Rand, facilitySites)
		row := []string{
			string(id),
			fmt.Sprintf("%s Plant %02d", site.City, i+1),
			core.WeightedPick(env.Rand, facilityTypes),
			h.ParentCell(id),
			site.City,
			site.Country,
			site.TZ,
			day(core.DateBetween(env.Rand, start.AddDate(-25, 0, 0), start)),
			itoa(core.IntBetween(env.Rand, 5000, 120000)),
			core.WeightedPick(env.Rand, facilityStatuses),
		}
		if err := tbl.AppendRow(row); err != nil {
			return core.GenerateResult{}, err
		}
	}
	return core.GenerateResult{Table: tbl}, nil
}

var areaTypes = []core.Weighted{
	{Value: "Mixing", Weight: 0.2},
	{Value: "Reaction", Weight: 0.15},
	{Value: "Filling", Weight: 0.2},
	{Value: "Packaging", Weight: 0.25},
	{Value: "Utilities", Weight: 0.1},
	{Value: "Warehouse", Weight: 0.1},
}

var hazardClasses = []core.Weighted{
	{Value: "None", Weight: 0.6},
	{Value: "Zone 2", Weight: 0.25},
	{Value: "Zone 1", Weight: 0.1},
	{Value: "Zone 0", Weight: 0.05},
}

// ProcessAreasGenerator emits process areas linked to facilities.
type ProcessAreasGenerator struct{}

func (ProcessAreasGenerator) Table() string     { return "process_areas" }
func (ProcessAreasGenerator) DefaultCount() int { return 6 }

func (ProcessAreasGenerator) Generate(_ context.Context, n int, env *core.Env) (core.GenerateResult, error) {
	ids, err := reserve(env, domain.KindProcessArea, n)
	if err != nil {
		return core.GenerateResult{}, err
	}
	h := core.AssignParents(env.Rand, ids, 0.2, 0.2)
	tbl := domain.NewTable("process_areas", []string{
		"area_id", "facility_id", "name", "area_type", "parent_area_id",
		"floor", "hazard_class",
	})
	missingFacility := false
	for i, id := range ids {
		areaType := core.WeightedPick(env.Rand, areaTypes)
		row := []string{
			string(id),
			sampleRef(env, domain.KindFacility, &missingFacility),
			fmt.Sprintf("%s Area %02d", areaType, i+1),
			areaType,
			h.ParentCell(id),
			itoa(core.IntBetween(env.Rand, 0, 3)),
			core.WeightedPick(env.Rand, hazardClasses),
		}
		if err := tbl.AppendRow(row); err != nil {
			return core.GenerateResult{}, err
		}
	}
	return core.GenerateResult{Table: tbl}, nil
}

var equipmentTypes = []string{
	"Mixer", "Reactor", "Centrifuge", "Dryer", "Filler", "Capper",
	"Labeler", "Palletizer", "Conveyor", "Boiler", "Chiller", "Compressor",
}

var equipmentManufacturers = []string{
	"GEA", "Alfa Laval", "Siemens", "ABB", "Krones", "Tetra Pak", "SPX Flow", "Bosch",
}

var equipmentStatuses = []core.Weighted{
	{Value: "Active", Weight: 0.7},
	{Value: "Maintenance", Weight: 0.1},
	{Value: "Standby", Weight: 0.1},
	{Value: "Fault", Weight: 0.05},
	{Value: "Retired", Weight: 0.05},
}

var criticalities = []core.Weighted{
	{Value: "High", Weight: 0.25},
	{Value: "Medium", Weight: 0.5},
	{Value: "Low", Weight: 0.25},
}

// EquipmentGenerator emits the equipment master table. A fifth of the fleet
// is reserved as potential parents; the rest may point at one of them.
type EquipmentGenerator struct{}

func (EquipmentGenerator) Table() string     { return "equipment" }
func (EquipmentGenerator) DefaultCount() int { return 40 }

func (EquipmentGenerator) Generate(_ context.Context, n int, env *core.Env) (core.GenerateResult, error) {
	ids, err := reserve(env, domain.KindEquipment, n)
	if err != nil {
		return core.GenerateResult{}, err
	}
	h := core.AssignParents(env.Rand, ids, 0.2, 0.3)
	tbl := domain.NewTable("equipment", []string{
		"equipment_id", "name", "equipment_type", "area_id", "parent_equipment_id",
		"manufacturer", "model", "serial_number", "install_date", "status", "criticality",
	})
	start, _ := window(env)
	missingArea := false
	for i, id := range ids {
		eqType := core.Pick(env.Rand, equipmentTypes)
		row := []string{
			string(id),
			fmt.Sprintf("%s %02d", eqType, i+1),
			eqType,
			sampleRef(env, domain.KindProcessArea, &missingArea),
			h.ParentCell(id),
			core.Pick(env.Rand, equipmentManufacturers),
			fmt.Sprintf("M-%d", core.IntBetween(env.Rand, 100, 999)),
			fmt.Sprintf("SN%06d", core.IntBetween(env.Rand, 1, 999999)),
			day(core.DateBetween(env.Rand, start.AddDate(-15, 0, 0), start)),
			core.WeightedPick(env.Rand, equipmentStatuses),
			core.WeightedPick(env.Rand, criticalities),
		}
		if err := tbl.AppendRow(row); err != nil {
			return core.GenerateResult{}, err
		}
	}
	return core.GenerateResult{Table: tbl}, nil
}

var recipeStatuses = []core.Weighted{
	{Value: "Approved", Weight: 0.6},
	{Value: "Draft", Weight: 0.2},
	{Value: "In Review", Weight: 0.1},
	{Value: "Obsolete", Weight: 0.1},
}

var batchUnits = []string{"kg", "L", "units"}

// RecipesGenerator emits master recipes referencing the product pool.
type RecipesGenerator struct{}

func (RecipesGenerator) Table() string     { return "recipes" }
func (RecipesGenerator) DefaultCount() int { return 12 }

func (RecipesGenerator) Generate(_ context.Context, n int, env *core.Env) (core.GenerateResult, error) {
	ids, err := reserve(env, domain.KindRecipe, n)
	if err != nil {
		return core.GenerateResult{}, err
	}
	tbl := domain.NewTable("recipes", []string{
		"recipe_id", "product_id", "name", "version", "status",
		"batch_size", "batch_size_unit", "author_id", "approved_date",
	})
	start, end := window(env)
	missingProduct := false
	missingAuthor := false
	for i, id := range ids {
		status := core.WeightedPick(env.Rand, recipeStatuses)
		approved := ""
		if status == "Approved" || status == "Obsolete" {
			approved = day(core.DateBetween(env.Rand, start, end))
		}
		row := []string{
			string(id),
			sampleRef(env, domain.KindProduct, &missingProduct),
			fmt.Sprintf("Recipe %03d", i+1),
			fmt.Sprintf("%d.%d", core.IntBetween(env.Rand, 1, 4), core.IntBetween(env.Rand, 0, 9)),
			status,
			itoa(core.IntBetween(env.Rand, 100, 5000)),
			core.Pick(env.Rand, batchUnits),
			sampleRef(env, domain.KindPersonnel, &missingAuthor),
			approved,
		}
		if err := tbl.AppendRow(row); err != nil {
			return core.GenerateResult{}, err
		}
	}
	return core.GenerateResult{Table: tbl}, nil
}

var batchStatuses = []core.Weighted{
	{Value: "Completed", Weight: 0.6},
	{Value: "In Progress", Weight: 0.15},
	{Value: "Released", Weight: 0.1},
	{Value: "Aborted", Weight: 0.05},
	{Value: "On Hold", Weight: 0.1},
}

// BatchesGenerator emits production batches referencing recipes and
// equipment. Batches form a two-tier hierarchy: a reserved fraction may act
// as parent batches for splits and rework.
type BatchesGenerator struct{}

func (BatchesGenerator) Table() string     { return "batches" }
func (BatchesGenerator) DefaultCount() int { return 80 }

func (BatchesGenerator) Generate(_ context.Context, n int, env *core.Env) (core.GenerateResult, error) {
	ids, err := reserve(env, domain.KindBatch, n)
	if err != nil {
		return core.GenerateResult{}, err
	}
	h := core.AssignParents(env.Rand, ids, 0.15, 0.25)
	tbl := domain.NewTable("batches", []string{
		"batch_id", "parent_batch_id", "recipe_id", "equipment_id", "status",
		"start_time", "end_time", "planned_quantity", "actual_quantity", "unit", "operator_id",
	})
	start, end := window(env)
	missingRecipe := false
	missingEquipment := false
	missingOperator := false
	for _, id := range ids {
		begin := core.DateBetween(env.Rand, start, end)
		finish := begin.Add(time.Duration(core.IntBetween(env.Rand, 2, 72)) * time.Hour)
		status := core.WeightedPick(env.Rand, batchStatuses)
		endCell := stamp(finish)
		actual := ""
		planned := float64(core.IntBetween(env.Rand, 100, 5000))
		if status == "In Progress" {
			endCell = ""
		} else {
			actual = money(core.NormalAround(env.Rand, planned, planned*0.05, 0, planned*1.2))
		}
		row := []string{
			string(id),
			h.ParentCell(id),
			sampleRef(env, domain.KindRecipe, &missingRecipe),
			sampleRef(env, domain.KindEquipment, &missingEquipment),
			status,
			stamp(begin),
			endCell,
			money(planned),
			actual,
			core.Pick(env.Rand, batchUnits),
			sampleRef(env, domain.KindPersonnel, &missingOperator),
		}
		if err := tbl.AppendRow(row); err != nil {
			return core.GenerateResult{}, err
		}
	}
	return core.GenerateResult{Table: tbl}, nil
}

var machineStates = []core.Weighted{
	{Value: "Running", Weight: 0.55},
	{Value: "Idle", Weight: 0.2},
	{Value: "Changeover", Weight: 0.1},
	{Value: "Planned Maintenance", Weight: 0.08},
	{Value: "Unplanned Stop", Weight: 0.07},
}

var stateReasons = map[string][]string{
	"Idle":                {"NO_ORDER", "STARVED", "BLOCKED"},
	"Changeover":          {"PRODUCT_CHANGE", "CLEANING", "FORMAT_CHANGE"},
	"Planned Maintenance": {"PM_WEEKLY", "PM_MONTHLY", "INSPECTION"},
	"Unplanned Stop":      {"JAM", "POWER_LOSS", "SENSOR_FAULT", "OPERATOR_STOP"},
}

// EquipmentStatesGenerator streams the high-volume equipment state journal
// directly to the sink instead of buffering it.
type EquipmentStatesGenerator struct{}

func (EquipmentStatesGenerator) Table() string     { return "equipment_states" }
func (EquipmentStatesGenerator) DefaultCount() int { return 2000 }

func (g EquipmentStatesGenerator) Generate(ctx context.Context, n int, env *core.Env) (core.GenerateResult, error) {
	w, err := env.Sink.OpenTable(ctx, g.Table(), []string{
		"state_id", "equipment_id", "state", "reason_code",
		"start_time", "end_time", "duration_minutes",
	})
	if err != nil {
		return core.GenerateResult{}, err
	}
	start, end := window(env)
	missingEquipment := false
	for i := 0; i < n; i++ {
		id, err := env.Pools.NewIdentifier(domain.KindEquipmentState)
		if err != nil {
			_ = w.Close()
			return core.GenerateResult{}, err
		}
		state := core.WeightedPick(env.Rand, machineStates)
		reason := ""
		if codes := stateReasons[state]; len(codes) > 0 {
			reason = core.Pick(env.Rand, codes)
		}
		begin := core.DateBetween(env.Rand, start, end)
		minutes := core.IntBetween(env.Rand, 5, 480)
		row := []string{
			string(id),
			sampleRef(env, domain.KindEquipment, &missingEquipment),
			state,
			reason,
			stamp(begin),
			stamp(begin.Add(time.Duration(minutes) * time.Minute)),
			itoa(minutes),
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

var alarmSeverities = []core.Weighted{
	{Value: "Critical", Weight: 0.05},
	{Value: "High", Weight: 0.15},
	{Value: "Medium", Weight: 0.35},
	{Value: "Low", Weight: 0.45},
}

var alarmTypes = []string{
	"HIGH_TEMP", "LOW_TEMP", "HIGH_PRESSURE", "LOW_LEVEL", "HIGH_LEVEL",
	"VIBRATION", "FLOW_DEVIATION", "DOOR_OPEN", "ESTOP", "COMM_LOSS",
}

// AlarmsGenerator streams the alarm journal.
type AlarmsGenerator struct{}

func (AlarmsGenerator) Table() string     { return "alarms" }
func (AlarmsGenerator) DefaultCount() int { return 1000 }

func (g AlarmsGenerator) Generate(ctx context.Context, n int, env *core.Env) (core.GenerateResult, error) {
	w, err := env.Sink.OpenTable(ctx, g.Table(), []string{
		"alarm_id", "equipment_id", "alarm_type", "severity", "message",
		"triggered_at", "acknowledged_at", "acknowledged_by", "cleared_at",
	})
	if err != nil {
		return core.GenerateResult{}, err
	}
	start, end := window(env)
	missingEquipment := false
	missingPersonnel := false
	for i := 0; i < n; i++ {
		id, err := env.Pools.NewIdentifier(domain.KindAlarm)
		if err != nil {
			_ = w.Close()
			return core.GenerateResult{}, err
		}
		alarmType := core.Pick(env.Rand, alarmTypes)
		triggered := core.DateBetween(env.Rand, start, end)
		acked, ackedBy, cleared := "", "", ""
		if env.Rand.Float64() < 0.8 {
			ackTime := triggered.Add(time.Duration(core.IntBetween(env.Rand, 1, 120)) * time.Minute)
			acked = stamp(ackTime)
			ackedBy = sampleRef(env, domain.KindPersonnel, &missingPersonnel)
			if env.Rand.Float64() < 0.9 {
				cleared = stamp(ackTime.Add(time.Duration(core.IntBetween(env.Rand, 1, 240)) * time.Minute))
			}
		}
		row := []string{
			string(id),
			sampleRef(env, domain.KindEquipment, &missingEquipment),
			alarmType,
			core.WeightedPick(env.Rand, alarmSeverities),
			fmt.Sprintf("%s alarm on production equipment", alarmType),
			stamp(triggered),
			acked,
			ackedBy,
			cleared,
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
