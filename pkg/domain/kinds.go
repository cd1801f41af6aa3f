// Package domain defines the value types shared by the generation pipeline:
// entity kinds, prefixed identifiers, and flat CSV-shaped tables. It carries
// no generation logic and must stay free of internal package imports.
package domain

import "strings"

// EntityKind identifies one synthetic entity family across the ISA-95 levels.
type EntityKind string

// Entity kinds, grouped by the ISA-95 level that owns them.
const (
	// Level 1: sensing and actuation.
	KindSensor      EntityKind = "sensor"
	KindActuator    EntityKind = "actuator"
	KindControlLoop EntityKind = "control_loop"
	KindReading     EntityKind = "sensor_reading"
	KindDiagnostic  EntityKind = "device_diagnostic"

	// Level 2: production equipment and batch execution.
	KindFacility       EntityKind = "facility"
	KindProcessArea    EntityKind = "process_area"
	KindEquipment      EntityKind = "equipment"
	KindEquipmentState EntityKind = "equipment_state"
	KindAlarm          EntityKind = "alarm"
	KindRecipe         EntityKind = "recipe"
	KindBatch          EntityKind = "batch"

	// Level 3: manufacturing operations management.
	KindPersonnel           EntityKind = "personnel"
	KindWorkOrder           EntityKind = "work_order"
	KindMaterialLot         EntityKind = "material_lot"
	KindQualityTest         EntityKind = "quality_test"
	KindProductionSchedule  EntityKind = "production_schedule"
	KindMaintenanceRecord   EntityKind = "maintenance_record"
	KindMaterialTransaction EntityKind = "material_transaction"

	// Level 4: business planning and logistics.
	KindProduct       EntityKind = "product"
	KindMaterial      EntityKind = "material"
	KindBOMEntry      EntityKind = "bom_entry"
	KindCustomer      EntityKind = "customer"
	KindSupplier      EntityKind = "supplier"
	KindCustomerOrder EntityKind = "customer_order"
	KindOrderLine     EntityKind = "order_line"
	KindPurchaseOrder EntityKind = "purchase_order"
	KindShipment      EntityKind = "shipment"
	KindInvoice       EntityKind = "invoice"
)

var kindPrefixes = map[EntityKind]string{
	KindSensor:              "SNS",
	KindActuator:            "ACT",
	KindControlLoop:         "LOOP",
	KindReading:             "RD",
	KindDiagnostic:          "DIAG",
	KindFacility:            "FAC",
	KindProcessArea:         "AREA",
	KindEquipment:           "EQ",
	KindEquipmentState:      "ST",
	KindAlarm:               "ALM",
	KindRecipe:              "RCP",
	KindBatch:               "BATCH",
	KindPersonnel:           "PERS",
	KindWorkOrder:           "WO",
	KindMaterialLot:         "LOT",
	KindQualityTest:         "QT",
	KindProductionSchedule:  "SCHED",
	KindMaintenanceRecord:   "MNT",
	KindMaterialTransaction: "TXN",
	KindProduct:             "PROD",
	KindMaterial:            "MAT",
	KindBOMEntry:            "BOM",
	KindCustomer:            "CUST",
	KindSupplier:            "SUP",
	KindCustomerOrder:       "ORD",
	KindOrderLine:           "OL",
	KindPurchaseOrder:       "PO",
	KindShipment:            "SHIP",
	KindInvoice:             "INV",
}

// Prefix returns the identifier prefix for the kind, or "" when unknown.
func (k EntityKind) Prefix() string {
	return kindPrefixes[k]
}

// Known reports whether the kind has a registered identifier prefix.
func (k EntityKind) Known() bool {
	_, ok := kindPrefixes[k]
	return ok
}

// Identifier is an opaque synthetic entity token of the form "{PREFIX}-{8 hex}".
// Uniqueness is probabilistic (UUID-derived), never enforced.
type Identifier string

// MatchesKind reports whether the identifier carries the kind's prefix.
func (id Identifier) MatchesKind(k EntityKind) bool {
	p := k.Prefix()
	if p == "" {
		return false
	}
	return strings.HasPrefix(string(id), p+"-")
}
