package generators

import (
	"context"
	"math"
	"math/rand"
	"strings"
	"testing"
	"time"

	"plantforge/internal/core"
	"plantforge/pkg/domain"
)

type memSink struct {
	tables map[string]*domain.Table
}

func newMemSink() *memSink {
	return &memSink{tables: make(map[string]*domain.Table)}
}

func (s *memSink) WriteTable(_ context.Context, tbl *domain.Table) error {
	s.tables[tbl.Name] = tbl
	return nil
}

type memWriter struct {
	sink  *memSink
	table *domain.Table
}

func (w *memWriter) Append(row []string) error { return w.table.AppendRow(row) }

func (w *memWriter) Close() error {
	w.sink.tables[w.table.Name] = w.table
	return nil
}

func (s *memSink) OpenTable(_ context.Context, name string, columns []string) (core.TableWriter, error) {
	return &memWriter{sink: s, table: domain.NewTable(name, columns)}, nil
}

type captureLogger struct {
	warns []string
}

func (l *captureLogger) Debug(string, ...any) {}
func (l *captureLogger) Info(string, ...any)  {}
func (l *captureLogger) Error(string, ...any) {}

func (l *captureLogger) Warn(msg string, _ ...any) {
	l.warns = append(l.warns, msg)
}

func newTestEnv(seed int64) (*core.Env, *memSink, *captureLogger) {
	rng := rand.New(rand.NewSource(seed))
	store := newMemSink()
	log := &captureLogger{}
	return &core.Env{
		Pools: core.NewIdentifierPool(rng),
		Rand:  rng,
		Log:   log,
		Sink:  store,
		Now:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}, store, log
}

func generate(t *testing.T, g core.Generator, n int, env *core.Env) *domain.Table {
	t.Helper()
	res, err := g.Generate(context.Background(), n, env)
	if err != nil {
		t.Fatalf("generate %s: %v", g.Table(), err)
	}
	if res.Table == nil {
		t.Fatalf("generate %s: expected buffered table", g.Table())
	}
	return res.Table
}

func columnSet(t *testing.T, tbl *domain.Table, column string) map[string]bool {
	t.Helper()
	values, err := tbl.ColumnValues(column)
	if err != nil {
		t.Fatalf("column %s of %s: %v", column, tbl.Name, err)
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

func TestLevelTwoStructureCounts(t *testing.T) {
	env, _, _ := newTestEnv(42)

	facilities := generate(t, FacilitiesGenerator{}, 1, env)
	areas := generate(t, ProcessAreasGenerator{}, 3, env)
	equipment := generate(t, EquipmentGenerator{}, 10, env)

	if got := facilities.RowCount(); got != 1 {
		t.Fatalf("facilities rows = %d, want 1", got)
	}
	if got := areas.RowCount(); got != 3 {
		t.Fatalf("process_areas rows = %d, want 3", got)
	}
	if got := equipment.RowCount(); got != 10 {
		t.Fatalf("equipment rows = %d, want 10", got)
	}

	facilityIDs := columnSet(t, facilities, "facility_id")
	for _, v := range mustColumn(t, areas, "facility_id") {
		if !facilityIDs[v] {
			t.Fatalf("area references unknown facility %q", v)
		}
	}
	areaIDs := columnSet(t, areas, "area_id")
	for _, v := range mustColumn(t, equipment, "area_id") {
		if !areaIDs[v] {
			t.Fatalf("equipment references unknown area %q", v)
		}
	}
	for _, v := range mustColumn(t, equipment, "equipment_id") {
		if !domain.Identifier(v).MatchesKind(domain.KindEquipment) {
			t.Fatalf("equipment id %q has wrong prefix", v)
		}
	}
}

func mustColumn(t *testing.T, tbl *domain.Table, column string) []string {
	t.Helper()
	values, err := tbl.ColumnValues(column)
	if err != nil {
		t.Fatalf("column %s of %s: %v", column, tbl.Name, err)
	}
	return values
}

func TestEquipmentHierarchyTwoTier(t *testing.T) {
	env, _, _ := newTestEnv(42)
	tbl := generate(t, EquipmentGenerator{}, 100, env)

	ids := mustColumn(t, tbl, "equipment_id")
	parents := mustColumn(t, tbl, "parent_equipment_id")
	parentOf := make(map[string]string, len(ids))
	for i, id := range ids {
		parentOf[id] = parents[i]
	}

	wantStratum := int(math.Floor(100 * 0.2))
	referenced := make(map[string]bool)
	for id, parent := range parentOf {
		if parent == "" {
			continue
		}
		if parent == id {
			t.Fatalf("equipment %s is its own parent", id)
		}
		if _, ok := parentOf[parent]; !ok {
			t.Fatalf("parent %s is not a generated equipment id", parent)
		}
		if parentOf[parent] != "" {
			t.Fatalf("parent %s is itself parented, hierarchy deeper than two tiers", parent)
		}
		referenced[parent] = true
	}
	if len(referenced) > wantStratum {
		t.Fatalf("distinct parents = %d, want at most the %d-member stratum", len(referenced), wantStratum)
	}
	if len(referenced) == 0 {
		t.Fatalf("no child was assigned a parent at n=100")
	}
}

func TestWorkOrdersSubstituteSyntheticRefs(t *testing.T) {
	env, _, log := newTestEnv(42)

	tbl := generate(t, WorkOrdersGenerator{}, 5, env)
	if got := tbl.RowCount(); got != 5 {
		t.Fatalf("work_orders rows = %d, want 5", got)
	}
	for _, v := range mustColumn(t, tbl, "equipment_id") {
		if !strings.HasPrefix(v, "EQ-") {
			t.Fatalf("synthetic equipment reference %q lacks EQ- prefix", v)
		}
	}
	if env.Pools.Len(domain.KindEquipment) != 0 {
		t.Fatalf("synthetic references must not be registered in the pool")
	}
	if len(log.warns) == 0 {
		t.Fatalf("expected a warning for the empty upstream pools")
	}
}

func TestStreamingReadingsBypassBuffer(t *testing.T) {
	env, store, _ := newTestEnv(42)

	res, err := SensorReadingsGenerator{}.Generate(context.Background(), 25, env)
	if err != nil {
		t.Fatalf("generate sensor_readings: %v", err)
	}
	if res.Table != nil {
		t.Fatalf("streaming generator must not buffer a table")
	}
	if res.Rows != 25 {
		t.Fatalf("rows = %d, want 25", res.Rows)
	}
	tbl, ok := store.tables["sensor_readings"]
	if !ok {
		t.Fatalf("sensor_readings not written to sink")
	}
	if got := tbl.RowCount(); got != 25 {
		t.Fatalf("sink rows = %d, want 25", got)
	}
	if env.Pools.Len(domain.KindReading) != 0 {
		t.Fatalf("streamed row identifiers must not be registered")
	}
}

func TestScheduleCountCapped(t *testing.T) {
	env, _, log := newTestEnv(42)

	tbl := generate(t, ProductionSchedulesGenerator{}, 80, env)
	if got := tbl.RowCount(); got != maxSchedulePeriods {
		t.Fatalf("schedule rows = %d, want %d", got, maxSchedulePeriods)
	}
	if len(log.warns) == 0 {
		t.Fatalf("expected a warning when capping the schedule count")
	}
}

func TestMaterialsEncodeSupplierLists(t *testing.T) {
	env, _, _ := newTestEnv(42)

	suppliers := generate(t, SuppliersGenerator{}, 5, env)
	if got := suppliers.RowCount(); got != 5 {
		t.Fatalf("suppliers rows = %d, want 5", got)
	}
	materials := generate(t, MaterialsGenerator{}, 10, env)
	supplierIDs := columnSet(t, suppliers, "supplier_id")
	for _, cell := range mustColumn(t, materials, "approved_supplier_ids") {
		ids, err := domain.DecodeList(cell)
		if err != nil {
			t.Fatalf("decode supplier list %q: %v", cell, err)
		}
		if len(ids) == 0 {
			t.Fatalf("material without approved suppliers")
		}
		for _, id := range ids {
			if !supplierIDs[id] {
				t.Fatalf("approved supplier %q not in supplier table", id)
			}
		}
	}
}

func TestGeneratorsAreDeterministic(t *testing.T) {
	run := func() *domain.Table {
		env, _, _ := newTestEnv(42)
		generate(t, FacilitiesGenerator{}, 2, env)
		generate(t, ProcessAreasGenerator{}, 4, env)
		return generate(t, EquipmentGenerator{}, 20, env)
	}
	first := run()
	second := run()
	if first.RowCount() != second.RowCount() {
		t.Fatalf("row counts differ: %d vs %d", first.RowCount(), second.RowCount())
	}
	for i := range first.Rows {
		if strings.Join(first.Rows[i], "|") != strings.Join(second.Rows[i], "|") {
			t.Fatalf("row %d differs between identically seeded runs", i)
		}
	}
}

func TestAllCoversEveryTableOnce(t *testing.T) {
	all := All()
	leveled := len(Level1()) + len(Level2()) + len(Level3()) + len(Level4())
	if len(all) != leveled {
		t.Fatalf("All() has %d generators, levels sum to %d", len(all), leveled)
	}
	seen := make(map[string]bool, len(all))
	for _, g := range all {
		if seen[g.Table()] {
			t.Fatalf("table %s generated twice", g.Table())
		}
		seen[g.Table()] = true
		if g.DefaultCount() <= 0 {
			t.Fatalf("table %s has non-positive default count", g.Table())
		}
	}
}

func TestFullRunReferentialIntegrity(t *testing.T) {
	store := newMemSink()
	log := &captureLogger{}
	orch := core.NewOrchestrator(store, log, nil)
	orch.Append(All()...)

	plan := core.DefaultPlan()
	plan.Counts = map[string]int{
		"sensor_readings":       40,
		"device_diagnostics":    20,
		"equipment_states":      30,
		"alarms":                25,
		"material_transactions": 30,
	}
	if err := orch.Run(context.Background(), plan); err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, warn := range log.warns {
		if warn == "upstream pool empty, substituting synthetic identifiers" {
			t.Fatalf("a generator ran before its upstream pool was populated")
		}
	}

	keys := func(table, column string) map[string]bool {
		tbl, ok := store.tables[table]
		if !ok {
			t.Fatalf("table %s not written", table)
		}
		return columnSet(t, tbl, column)
	}
	refs := func(table, column string) []string {
		tbl, ok := store.tables[table]
		if !ok {
			t.Fatalf("table %s not written", table)
		}
		return mustColumn(t, tbl, column)
	}
	check := func(table, column string, referent map[string]bool) {
		for _, v := range refs(table, column) {
			if v == "" {
				continue
			}
			if !referent[v] {
				t.Fatalf("%s.%s references %q, absent from the referenced table", table, column, v)
			}
		}
	}

	facilities := keys("facilities", "facility_id")
	areas := keys("process_areas", "area_id")
	equipment := keys("equipment", "equipment_id")
	sensors := keys("sensors", "sensor_id")
	actuators := keys("actuators", "actuator_id")
	personnel := keys("personnel", "person_id")
	products := keys("products", "product_id")
	materials := keys("materials", "material_id")
	suppliers := keys("suppliers", "supplier_id")
	customers := keys("customers", "customer_id")
	recipes := keys("recipes", "recipe_id")
	batches := keys("batches", "batch_id")
	lots := keys("material_lots", "lot_id")
	workOrders := keys("work_orders", "work_order_id")
	orders := keys("customer_orders", "order_id")

	check("process_areas", "facility_id", facilities)
	check("personnel", "facility_id", facilities)
	check("production_schedules", "facility_id", facilities)
	check("equipment", "area_id", areas)
	check("sensors", "equipment_id", equipment)
	check("actuators", "equipment_id", equipment)
	check("equipment_states", "equipment_id", equipment)
	check("alarms", "equipment_id", equipment)
	check("maintenance_records", "equipment_id", equipment)
	check("batches", "equipment_id", equipment)
	check("work_orders", "equipment_id", equipment)
	check("control_loops", "sensor_id", sensors)
	check("control_loops", "actuator_id", actuators)
	check("sensor_readings", "sensor_id", sensors)
	check("recipes", "product_id", products)
	check("recipes", "author_id", personnel)
	check("batches", "recipe_id", recipes)
	check("batches", "operator_id", personnel)
	check("alarms", "acknowledged_by", personnel)
	check("work_orders", "product_id", products)
	check("work_orders", "assigned_to", personnel)
	check("material_lots", "material_id", materials)
	check("material_lots", "supplier_id", suppliers)
	check("quality_tests", "batch_id", batches)
	check("quality_tests", "lot_id", lots)
	check("quality_tests", "tested_by", personnel)
	check("maintenance_records", "technician_id", personnel)
	check("material_transactions", "lot_id", lots)
	check("material_transactions", "work_order_id", workOrders)
	check("material_transactions", "performed_by", personnel)
	check("bill_of_materials", "product_id", products)
	check("bill_of_materials", "material_id", materials)
	check("customer_orders", "customer_id", customers)
	check("order_lines", "order_id", orders)
	check("order_lines", "product_id", products)
	check("purchase_orders", "supplier_id", suppliers)
	check("purchase_orders", "material_id", materials)
	check("shipments", "order_id", orders)
	check("invoices", "order_id", orders)
	check("invoices", "customer_id", customers)

	devices := make(map[string]bool, len(sensors)+len(actuators))
	for id := range sensors {
		devices[id] = true
	}
	for id := range actuators {
		devices[id] = true
	}
	check("device_diagnostics", "device_id", devices)

	for _, cell := range refs("materials", "approved_supplier_ids") {
		ids, err := domain.DecodeList(cell)
		if err != nil {
			t.Fatalf("decode supplier list %q: %v", cell, err)
		}
		for _, id := range ids {
			if !suppliers[id] {
				t.Fatalf("materials.approved_supplier_ids references %q, absent from suppliers", id)
			}
		}
	}
	for _, cell := range refs("materials", "alternative_material_ids") {
		ids, err := domain.DecodeList(cell)
		if err != nil {
			t.Fatalf("decode alternative list %q: %v", cell, err)
		}
		for _, id := range ids {
			if !materials[id] {
				t.Fatalf("materials.alternative_material_ids references %q, absent from materials", id)
			}
		}
	}
}

func TestSourcesNameGeneratedTables(t *testing.T) {
	tables := make(map[string]bool)
	for _, g := range All() {
		tables[g.Table()+".csv"] = true
	}
	for _, src := range Sources() {
		if !tables[src.File] {
			t.Fatalf("source file %s matches no generator table", src.File)
		}
		if !src.Kind.Known() {
			t.Fatalf("source kind %q unknown", src.Kind)
		}
		if src.Level < 1 || src.Level > 4 {
			t.Fatalf("source level %d out of range", src.Level)
		}
	}
}
