// Package generators holds the concrete entity table generators for the four
// ISA-95 levels. Every generator follows the same skeleton: reserve its own
// identifiers through the shared pool, draw weighted categorical and
// range-bound numeric attributes, sample cross-references from other pools,
// apply the two-tier hierarchy where the entity supports a parent link, and
// hand the table (or a streamed row count) back to the orchestrator.
package generators

import (
	"strconv"
	"time"

	"plantforge/internal/core"
	"plantforge/pkg/domain"
)

// Level1 returns the sensing/actuation generators in dependency order.
func Level1() []core.Generator {
	return []core.Generator{
		SensorsGenerator{},
		ActuatorsGenerator{},
		ControlLoopsGenerator{},
		SensorReadingsGenerator{},
		DeviceDiagnosticsGenerator{},
	}
}

// Level2 returns the production equipment and batch execution generators.
func Level2() []core.Generator {
	return []core.Generator{
		FacilitiesGenerator{},
		ProcessAreasGenerator{},
		EquipmentGenerator{},
		RecipesGenerator{},
		BatchesGenerator{},
		EquipmentStatesGenerator{},
		AlarmsGenerator{},
	}
}

// Level3 returns the operations management generators.
func Level3() []core.Generator {
	return []core.Generator{
		PersonnelGenerator{},
		WorkOrdersGenerator{},
		MaterialLotsGenerator{},
		QualityTestsGenerator{},
		ProductionSchedulesGenerator{},
		MaintenanceRecordsGenerator{},
		MaterialTransactionsGenerator{},
	}
}

// Level4 returns the business planning and logistics generators.
func Level4() []core.Generator {
	return []core.Generator{
		ProductsGenerator{},
		MaterialsGenerator{},
		BillOfMaterialsGenerator{},
		CustomersGenerator{},
		SuppliersGenerator{},
		CustomerOrdersGenerator{},
		OrderLinesGenerator{},
		PurchaseOrdersGenerator{},
		ShipmentsGenerator{},
		InvoicesGenerator{},
	}
}

// All returns every generator in full cross-level dependency order: plant
// structure first, then devices, then the masters every consumer samples
// (personnel, suppliers, customers, products, materials), then execution and
// operations, then business transactions. Each pool is populated before any
// generator samples it, so a full run emits no synthetic substitutes.
func All() []core.Generator {
	out := []core.Generator{
		FacilitiesGenerator{},
		ProcessAreasGenerator{},
		EquipmentGenerator{},
	}
	out = append(out, Level1()...)
	out = append(out,
		PersonnelGenerator{},
		SuppliersGenerator{},
		CustomersGenerator{},
		ProductsGenerator{},
		MaterialsGenerator{},
		BillOfMaterialsGenerator{},
		RecipesGenerator{},
		BatchesGenerator{},
		EquipmentStatesGenerator{},
		AlarmsGenerator{},
		WorkOrdersGenerator{},
		MaterialLotsGenerator{},
		QualityTestsGenerator{},
		ProductionSchedulesGenerator{},
		MaintenanceRecordsGenerator{},
		MaterialTransactionsGenerator{},
		CustomerOrdersGenerator{},
		OrderLinesGenerator{},
		PurchaseOrdersGenerator{},
		ShipmentsGenerator{},
		InvoicesGenerator{},
	)
	return out
}

// Sources lists the prior-level CSV columns that can seed pools when a run
// reuses earlier output.
func Sources() []core.ReferenceSource {
	return []core.ReferenceSource{
		{Level: 1, Kind: domain.KindSensor, File: "sensors.csv", Column: "sensor_id"},
		{Level: 1, Kind: domain.KindActuator, File: "actuators.csv", Column: "actuator_id"},
		{Level: 1, Kind: domain.KindControlLoop, File: "control_loops.csv", Column: "loop_id"},
		{Level: 2, Kind: domain.KindFacility, File: "facilities.csv", Column: "facility_id"},
		{Level: 2, Kind: domain.KindProcessArea, File: "process_areas.csv", Column: "area_id"},
		{Level: 2, Kind: domain.KindEquipment, File: "equipment.csv", Column: "equipment_id"},
		{Level: 2, Kind: domain.KindRecipe, File: "recipes.csv", Column: "recipe_id"},
		{Level: 2, Kind: domain.KindBatch, File: "batches.csv", Column: "batch_id"},
		{Level: 3, Kind: domain.KindPersonnel, File: "personnel.csv", Column: "person_id"},
		{Level: 3, Kind: domain.KindWorkOrder, File: "work_orders.csv", Column: "work_order_id"},
		{Level: 3, Kind: domain.KindMaterialLot, File: "material_lots.csv", Column: "lot_id"},
		{Level: 4, Kind: domain.KindProduct, File: "products.csv", Column: "product_id"},
		{Level: 4, Kind: domain.KindMaterial, File: "materials.csv", Column: "material_id"},
		{Level: 4, Kind: domain.KindCustomer, File: "customers.csv", Column: "customer_id"},
		{Level: 4, Kind: domain.KindSupplier, File: "suppliers.csv", Column: "supplier_id"},
		{Level: 4, Kind: domain.KindCustomerOrder, File: "customer_orders.csv", Column: "order_id"},
	}
}

const (
	dayFormat   = "2006-01-02"
	stampFormat = "2006-01-02 15:04:05"
)

func day(t time.Time) string   { return t.Format(dayFormat) }
func stamp(t time.Time) string { return t.Format(stampFormat) }

func itoa(n int) string { return strconv.Itoa(n) }

func money(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

func num(v float64, prec int) string { return strconv.FormatFloat(v, 'f', prec, 64) }

// reserve mints (or reuses) the generator's own identifiers and keeps them
// registered for self-referential links and downstream consumers. Over-supply
// from a seeded pool is returned whole, so a seeded run can emit more rows
// than requested rather than truncating the pool.
func reserve(env *core.Env, kind domain.EntityKind, n int) ([]domain.Identifier, error) {
	return env.Pools.GetOrCreate(kind, n)
}

// sampleRef draws a cross-reference from the kind's pool, warning once via
// missing when the pool is empty and a synthetic identifier is substituted.
func sampleRef(env *core.Env, kind domain.EntityKind, missing *bool) string {
	if env.Pools.Len(kind) == 0 && !*missing {
		*missing = true
		env.Log.Warn("upstream pool empty, substituting synthetic identifiers",
			"kind", string(kind))
	}
	return string(env.Pools.Sample(kind))
}

// window returns the generation time window: one year back from the run clock.
func window(env *core.Env) (time.Time, time.Time) {
	end := env.Now
	return end.AddDate(-1, 0, 0), end
}
