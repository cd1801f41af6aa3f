package generators

import (
	"context"
	"fmt"
	"time"

	"plantforge/internal/core"
	"plantforge/pkg/domain"
)

var productFamilies = []string{
	"Detergent", "Shampoo", "Conditioner", "Lotion", "Surface Cleaner",
	"Dish Soap", "Hand Wash", "Fabric Softener",
}

var productStatuses = []core.Weighted{
	{Value: "Active", Weight: 0.75},
	{Value: "In Development", Weight: 0.1},
	{Value: "Phase Out", Weight: 0.1},
	{Value: "Discontinued", Weight: 0.05},
}

var packFormats = []string{"500mL Bottle", "1L Bottle", "5L Jerrycan", "250mL Tube", "Sachet Strip"}

// ProductsGenerator emits finished goods. A fraction of products serve as
// family parents for variants.
type ProductsGenerator struct{}

func (ProductsGenerator) Table() string     { return "products" }
func (ProductsGenerator) DefaultCount() int { return 30 }

func (ProductsGenerator) Generate(_ context.Context, n int, env *core.Env) (core.GenerateResult, error) {
	ids, err := reserve(env, domain.KindProduct, n)
	if err != nil {
		return core.GenerateResult{}, err
	}
	h := core.AssignParents(env.Rand, ids, 0.2, 0.2)
	tbl := domain.NewTable("products", []string{
		"product_id", "name", "family", "parent_product_id", "pack_format",
		"status", "unit_price", "launch_date", "shelf_life_months",
	})
	start, _ := window(env)
	for i, id := range ids {
		family := core.Pick(env.Rand, productFamilies)
		row := []string{
			string(id),
			fmt.Sprintf("%s %s %02d", family, core.Pick(env.Rand, packFormats), i+1),
			family,
			h.ParentCell(id),
			core.Pick(env.Rand, packFormats),
			core.WeightedPick(env.Rand, productStatuses),
			money(core.FloatBetween(env.Rand, 1.5, 45)),
			day(core.DateBetween(env.Rand, start.AddDate(-10, 0, 0), start)),
			itoa(core.IntBetween(env.Rand, 12, 48)),
		}
		if err := tbl.AppendRow(row); err != nil {
			return core.GenerateResult{}, err
		}
	}
	return core.GenerateResult{Table: tbl}, nil
}

var materialCategories = []core.Weighted{
	{Value: "Raw Material", Weight: 0.45},
	{Value: "Packaging", Weight: 0.3},
	{Value: "Intermediate", Weight: 0.15},
	{Value: "Consumable", Weight: 0.1},
}

var materialNames = []string{
	"Surfactant SLES", "Citric Acid", "Glycerin", "Fragrance Oil", "Dye Blue 4",
	"Preservative PZ", "HDPE Bottle", "PP Cap", "Label Stock", "Carton Blank",
	"Thickener CMC", "Sodium Chloride",
}

// MaterialsGenerator emits the material master. Approved suppliers and
// alternative materials are sampled from the shared pools and stored as JSON
// lists.
type MaterialsGenerator struct{}

func (MaterialsGenerator) Table() string     { return "materials" }
func (MaterialsGenerator) DefaultCount() int { return 60 }

func (MaterialsGenerator) Generate(_ context.Context, n int, env *core.Env) (core.GenerateResult, error) {
	ids, err := reserve(env, domain.KindMaterial, n)
	if err != nil {
		return core.GenerateResult{}, err
	}
	tbl := domain.NewTable("materials", []string{
		"material_id", "name", "category", "unit", "standard_cost",
		"approved_supplier_ids", "alternative_material_ids", "hazardous", "min_stock",
	})
	missingSupplier := false
	missingMaterial := false
	for i, id := range ids {
		suppliers := make([]string, 0, 3)
		for j := core.IntBetween(env.Rand, 1, 3); j > 0; j-- {
			suppliers = append(suppliers, sampleRef(env, domain.KindSupplier, &missingSupplier))
		}
		alternatives := make([]string, 0, 2)
		for j := core.IntBetween(env.Rand, 0, 2); j > 0; j-- {
			alternatives = append(alternatives, sampleRef(env, domain.KindMaterial, &missingMaterial))
		}
		hazardous := "false"
		if env.Rand.Float64() < 0.15 {
			hazardous = "true"
		}
		row := []string{
			string(id),
			fmt.Sprintf("%s %02d", core.Pick(env.Rand, materialNames), i+1),
			core.WeightedPick(env.Rand, materialCategories),
			core.Pick(env.Rand, batchUnits),
			money(core.FloatBetween(env.Rand, 0.1, 120)),
			domain.EncodeList(suppliers),
			domain.EncodeList(alternatives),
			hazardous,
			itoa(core.IntBetween(env.Rand, 50, 5000)),
		}
		if err := tbl.AppendRow(row); err != nil {
			return core.GenerateResult{}, err
		}
	}
	return core.GenerateResult{Table: tbl}, nil
}

// BillOfMaterialsGenerator emits product-to-material usage lines.
type BillOfMaterialsGenerator struct{}

func (BillOfMaterialsGenerator) Table() string     { return "bill_of_materials" }
func (BillOfMaterialsGenerator) DefaultCount() int { return 120 }

func (BillOfMaterialsGenerator) Generate(_ context.Context, n int, env *core.Env) (core.GenerateResult, error) {
	ids, err := reserve(env, domain.KindBOMEntry, n)
	if err != nil {
		return core.GenerateResult{}, err
	}
	tbl := domain.NewTable("bill_of_materials", []string{
		"bom_id", "product_id", "material_id", "quantity_per_unit", "unit",
		"scrap_factor_pct", "effective_from",
	})
	start, _ := window(env)
	missingProduct := false
	missingMaterial := false
	for _, id := range ids {
		row := []string{
			string(id),
			sampleRef(env, domain.KindProduct, &missingProduct),
			sampleRef(env, domain.KindMaterial, &missingMaterial),
			num(core.FloatBetween(env.Rand, 0.001, 2.5), 4),
			core.Pick(env.Rand, batchUnits),
			num(core.FloatBetween(env.Rand, 0, 8), 1),
			day(core.DateBetween(env.Rand, start.AddDate(-5, 0, 0), start)),
		}
		if err := tbl.AppendRow(row); err != nil {
			return core.GenerateResult{}, err
		}
	}
	return core.GenerateResult{Table: tbl}, nil
}

var customerSegments = []core.Weighted{
	{Value: "Retail Chain", Weight: 0.35},
	{Value: "Wholesale", Weight: 0.3},
	{Value: "E-commerce", Weight: 0.2},
	{Value: "Industrial", Weight: 0.15},
}

var companySuffixes = []string{"Group", "Holdings", "Trading", "Distribution", "Retail", "Partners"}

var paymentTerms = []string{"NET30", "NET45", "NET60", "NET90", "Prepaid"}

// CustomersGenerator emits the customer master.
type CustomersGenerator struct{}

func (CustomersGenerator) Table() string     { return "customers" }
func (CustomersGenerator) DefaultCount() int { return 40 }

func (CustomersGenerator) Generate(_ context.Context, n int, env *core.Env) (core.GenerateResult, error) {
	ids, err := reserve(env, domain.KindCustomer, n)
	if err != nil {
		return core.GenerateResult{}, err
	}
	tbl := domain.NewTable("customers", []string{
		"customer_id", "name", "segment", "country", "payment_terms",
		"credit_limit", "since_date", "active",
	})
	start, _ := window(env)
	for _, id := range ids {
		site := core.Pick(env.Rand, facilitySites)
		active := "true"
		if env.Rand.Float64() < 0.08 {
			active = "false"
		}
		row := []string{
			string(id),
			fmt.Sprintf("%s %s", core.Pick(env.Rand, lastNames), core.Pick(env.Rand, companySuffixes)),
			core.WeightedPick(env.Rand, customerSegments),
			site.Country,
			core.Pick(env.Rand, paymentTerms),
			itoa(core.IntBetween(env.Rand, 10, 500) * 1000),
			day(core.DateBetween(env.Rand, start.AddDate(-12, 0, 0), start)),
			active,
		}
		if err := tbl.AppendRow(row); err != nil {
			return core.GenerateResult{}, err
		}
	}
	return core.GenerateResult{Table: tbl}, nil
}

var supplierRatings = []core.Weighted{
	{Value: "A", Weight: 0.4},
	{Value: "B", Weight: 0.4},
	{Value: "C", Weight: 0.15},
	{Value: "D", Weight: 0.05},
}

// SuppliersGenerator emits the supplier master.
type SuppliersGenerator struct{}

func (SuppliersGenerator) Table() string     { return "suppliers" }
func (SuppliersGenerator) DefaultCount() int { return 15 }

func (SuppliersGenerator) Generate(_ context.Context, n int, env *core.Env) (core.GenerateResult, error) {
	ids, err := reserve(env, domain.KindSupplier, n)
	if err != nil {
		return core.GenerateResult{}, err
	}
	tbl := domain.NewTable("suppliers", []string{
		"supplier_id", "name", "country", "rating", "lead_time_days",
		"payment_terms", "approved",
	})
	for _, id := range ids {
		site := core.Pick(env.Rand, facilitySites)
		approved := "true"
		if env.Rand.Float64() < 0.1 {
			approved = "false"
		}
		row := []string{
			string(id),
			fmt.Sprintf("%s %s", core.Pick(env.Rand, lastNames), core.Pick(env.Rand, companySuffixes)),
			site.Country,
			core.WeightedPick(env.Rand, supplierRatings),
			itoa(core.IntBetween(env.Rand, 3, 60)),
			core.Pick(env.Rand, paymentTerms),
			approved,
		}
		if err := tbl.AppendRow(row); err != nil {
			return core.GenerateResult{}, err
		}
	}
	return core.GenerateResult{Table: tbl}, nil
}

var orderStatuses = []core.Weighted{
	{Value: "Delivered", Weight: 0.45},
	{Value: "Shipped", Weight: 0.15},
	{Value: "Confirmed", Weight: 0.2},
	{Value: "Draft", Weight: 0.1},
	{Value: "Cancelled", Weight: 0.1},
}

// CustomerOrdersGenerator emits sales order headers.
type CustomerOrdersGenerator struct{}

func (CustomerOrdersGenerator) Table() string     { return "customer_orders" }
func (CustomerOrdersGenerator) DefaultCount() int { return 100 }

func (CustomerOrdersGenerator) Generate(_ context.Context, n int, env *core.Env) (core.GenerateResult, error) {
	ids, err := reserve(env, domain.KindCustomerOrder, n)
	if err != nil {
		return core.GenerateResult{}, err
	}
	tbl := domain.NewTable("customer_orders", []string{
		"order_id", "customer_id", "status", "order_date", "requested_date",
		"currency", "total_value",
	})
	start, end := window(env)
	missingCustomer := false
	for _, id := range ids {
		ordered := core.DateBetween(env.Rand, start, end)
		row := []string{
			string(id),
			sampleRef(env, domain.KindCustomer, &missingCustomer),
			core.WeightedPick(env.Rand, orderStatuses),
			day(ordered),
			day(ordered.AddDate(0, 0, core.IntBetween(env.Rand, 3, 45))),
			"EUR",
			money(core.FloatBetween(env.Rand, 500, 250000)),
		}
		if err := tbl.AppendRow(row); err != nil {
			return core.GenerateResult{}, err
		}
	}
	return core.GenerateResult{Table: tbl}, nil
}

// OrderLinesGenerator emits sales order lines linking orders to products.
type OrderLinesGenerator struct{}

func (OrderLinesGenerator) Table() string     { return "order_lines" }
func (OrderLinesGenerator) DefaultCount() int { return 250 }

func (OrderLinesGenerator) Generate(_ context.Context, n int, env *core.Env) (core.GenerateResult, error) {
	ids, err := reserve(env, domain.KindOrderLine, n)
	if err != nil {
		return core.GenerateResult{}, err
	}
	tbl := domain.NewTable("order_lines", []string{
		"order_line_id", "order_id", "product_id", "line_number",
		"quantity", "unit_price", "discount_pct",
	})
	missingOrder := false
	missingProduct := false
	for _, id := range ids {
		discount := "0.0"
		if env.Rand.Float64() < 0.3 {
			discount = num(core.FloatBetween(env.Rand, 1, 15), 1)
		}
		row := []string{
			string(id),
			sampleRef(env, domain.KindCustomerOrder, &missingOrder),
			sampleRef(env, domain.KindProduct, &missingProduct),
			itoa(core.IntBetween(env.Rand, 1, 20)),
			itoa(core.IntBetween(env.Rand, 10, 5000)),
			money(core.FloatBetween(env.Rand, 1.5, 45)),
			discount,
		}
		if err := tbl.AppendRow(row); err != nil {
			return core.GenerateResult{}, err
		}
	}
	return core.GenerateResult{Table: tbl}, nil
}

var purchaseStatuses = []core.Weighted{
	{Value: "Received", Weight: 0.5},
	{Value: "Sent", Weight: 0.2},
	{Value: "Confirmed", Weight: 0.15},
	{Value: "Draft", Weight: 0.1},
	{Value: "Cancelled", Weight: 0.05},
}

// PurchaseOrdersGenerator emits purchase orders against suppliers for
// materials.
type PurchaseOrdersGenerator struct{}

func (PurchaseOrdersGenerator) Table() string     { return "purchase_orders" }
func (PurchaseOrdersGenerator) DefaultCount() int { return 80 }

func (PurchaseOrdersGenerator) Generate(_ context.Context, n int, env *core.Env) (core.GenerateResult, error) {
	ids, err := reserve(env, domain.KindPurchaseOrder, n)
	if err != nil {
		return core.GenerateResult{}, err
	}
	tbl := domain.NewTable("purchase_orders", []string{
		"purchase_order_id", "supplier_id", "material_id", "status",
		"order_date", "expected_date", "quantity", "unit", "unit_cost",
	})
	start, end := window(env)
	missingSupplier := false
	missingMaterial := false
	for _, id := range ids {
		ordered := core.DateBetween(env.Rand, start, end)
		row := []string{
			string(id),
			sampleRef(env, domain.KindSupplier, &missingSupplier),
			sampleRef(env, domain.KindMaterial, &missingMaterial),
			core.WeightedPick(env.Rand, purchaseStatuses),
			day(ordered),
			day(ordered.AddDate(0, 0, core.IntBetween(env.Rand, 3, 60))),
			itoa(core.IntBetween(env.Rand, 100, 20000)),
			core.Pick(env.Rand, batchUnits),
			money(core.FloatBetween(env.Rand, 0.1, 120)),
		}
		if err := tbl.AppendRow(row); err != nil {
			return core.GenerateResult{}, err
		}
	}
	return core.GenerateResult{Table: tbl}, nil
}

var carriers = []string{"DHL Freight", "DB Schenker", "Kuehne+Nagel", "Maersk", "DSV", "GLS"}

var shipmentStatuses = []core.Weighted{
	{Value: "Delivered", Weight: 0.55},
	{Value: "In Transit", Weight: 0.25},
	{Value: "Planned", Weight: 0.15},
	{Value: "Lost", Weight: 0.05},
}

// ShipmentsGenerator emits outbound shipments against customer orders.
type ShipmentsGenerator struct{}

func (ShipmentsGenerator) Table() string     { return "shipments" }
func (ShipmentsGenerator) DefaultCount() int { return 90 }

func (ShipmentsGenerator) Generate(_ context.Context, n int, env *core.Env) (core.GenerateResult, error) {
	ids, err := reserve(env, domain.KindShipment, n)
	if err != nil {
		return core.GenerateResult{}, err
	}
	tbl := domain.NewTable("shipments", []string{
		"shipment_id", "order_id", "carrier", "status", "shipped_date",
		"delivered_date", "tracking_number", "pallet_count",
	})
	start, end := window(env)
	missingOrder := false
	for _, id := range ids {
		status := core.WeightedPick(env.Rand, shipmentStatuses)
		shipped, delivered := "", ""
		if status != "Planned" {
			shipDate := core.DateBetween(env.Rand, start, end)
			shipped = day(shipDate)
			if status == "Delivered" {
				delivered = day(shipDate.AddDate(0, 0, core.IntBetween(env.Rand, 1, 14)))
			}
		}
		row := []string{
			string(id),
			sampleRef(env, domain.KindCustomerOrder, &missingOrder),
			core.Pick(env.Rand, carriers),
			status,
			shipped,
			delivered,
			fmt.Sprintf("TRK%09d", core.IntBetween(env.Rand, 1, 999999999)),
			itoa(core.IntBetween(env.Rand, 1, 33)),
		}
		if err := tbl.AppendRow(row); err != nil {
			return core.GenerateResult{}, err
		}
	}
	return core.GenerateResult{Table: tbl}, nil
}

var invoiceStatuses = []core.Weighted{
	{Value: "Paid", Weight: 0.6},
	{Value: "Open", Weight: 0.25},
	{Value: "Overdue", Weight: 0.1},
	{Value: "Disputed", Weight: 0.05},
}

// InvoicesGenerator emits invoices against customer orders.
type InvoicesGenerator struct{}

func (InvoicesGenerator) Table() string     { return "invoices" }
func (InvoicesGenerator) DefaultCount() int { return 100 }

func (InvoicesGenerator) Generate(_ context.Context, n int, env *core.Env) (core.GenerateResult, error) {
	ids, err := reserve(env, domain.KindInvoice, n)
	if err != nil {
		return core.GenerateResult{}, err
	}
	tbl := domain.NewTable("invoices", []string{
		"invoice_id", "order_id", "customer_id", "status", "issue_date",
		"due_date", "paid_date", "currency", "amount", "tax_amount",
	})
	start, end := window(env)
	missingOrder := false
	missingCustomer := false
	for _, id := range ids {
		status := core.WeightedPick(env.Rand, invoiceStatuses)
		issued := core.DateBetween(env.Rand, start, end)
		due := issued.AddDate(0, 0, core.Pick(env.Rand, []int{30, 45, 60, 90}))
		paid := ""
		if status == "Paid" {
			paid = day(issued.Add(time.Duration(core.IntBetween(env.Rand, 1, 80)) * 24 * time.Hour))
		}
		amount := core.FloatBetween(env.Rand, 500, 250000)
		row := []string{
			string(id),
			sampleRef(env, domain.KindCustomerOrder, &missingOrder),
			sampleRef(env, domain.KindCustomer, &missingCustomer),
			status,
			day(issued),
			day(due),
			paid,
			"EUR",
			money(amount),
			money(amount * 0.21),
		}
		if err := tbl.AppendRow(row); err != nil {
			return core.GenerateResult{}, err
		}
	}
	return core.GenerateResult{Table: tbl}, nil
}
