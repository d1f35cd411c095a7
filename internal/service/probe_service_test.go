package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go-procurement-fixtures/internal/clock"
	"go-procurement-fixtures/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	fail map[string]error
}

func (f fakeCatalog) err(name string) error {
	return f.fail[name]
}

func (f fakeCatalog) Version(context.Context) (string, error) {
	return "PostgreSQL 16.2", f.err("Version")
}

func (f fakeCatalog) Catalogs(context.Context) ([]string, error) {
	return []string{"postgres", "procurement"}, f.err("Catalogs")
}

func (f fakeCatalog) Schemas(context.Context) ([]string, error) {
	return []string{"information_schema", "public"}, f.err("Schemas")
}

func (f fakeCatalog) Tables(context.Context) ([]string, error) {
	return []string{"products", "replenishment_rules", "suppliers"}, f.err("Tables")
}

func (f fakeCatalog) SampleProducts(context.Context, int) ([]model.Product, error) {
	return []model.Product{{ProductID: "SKU-0001", ProductName: "Sparkling Water", Category: "Beverages", Price: 1.25}}, f.err("SampleProducts")
}

func (f fakeCatalog) CountSuppliers(context.Context) (int64, error) {
	return 12, f.err("CountSuppliers")
}

func (f fakeCatalog) SampleSuppliers(context.Context, int) ([]model.Supplier, error) {
	return []model.Supplier{{SupplierID: "1", SupplierName: "Acme", ContactEmail: "orders@acme.test"}}, f.err("SampleSuppliers")
}

func (f fakeCatalog) SampleReplenishmentRules(context.Context, int) ([]model.ReplenishmentRule, error) {
	return []model.ReplenishmentRule{{ProductID: "SKU-0001", SupplierID: "1", MOQ: 10, SafetyStockLevel: 20}}, f.err("SampleReplenishmentRules")
}

func (f fakeCatalog) ProductsByCategory(context.Context) ([]model.CategoryCount, error) {
	return []model.CategoryCount{{Category: "Beverages", ProductCount: 30}, {Category: "Snacks", ProductCount: 20}}, f.err("ProductsByCategory")
}

func (f fakeCatalog) ProductSuppliers(context.Context, int) ([]model.ProductSupplier, error) {
	return []model.ProductSupplier{{ProductID: "SKU-0001", ProductName: "Sparkling Water", Category: "Beverages", SupplierName: "Acme", LeadTimeDays: 3}}, f.err("ProductSuppliers")
}

func (f fakeCatalog) CategoryProfiles(context.Context) ([]model.CategoryProfile, error) {
	return []model.CategoryProfile{{Category: "Beverages", ProductCount: 30, AvgSafetyStock: 42.5, AvgMOQ: 12}}, f.err("CategoryProfiles")
}

var probeClock = clock.NewFixed(time.Date(2026, 1, 5, 8, 30, 0, 0, time.UTC))

func TestProbe_AllPass(t *testing.T) {
	var out bytes.Buffer
	svc := NewProbeService(fakeCatalog{}, &out, probeClock, "public")

	report := svc.Run(context.Background())
	assert.True(t, report.AllPassed())
	assert.Equal(t, 10, report.Total())
	assert.Equal(t, 10, report.Passed())
	assert.Empty(t, report.FailedNames())
	assert.InDelta(t, 100.0, report.PassRate(), 1e-9)

	text := out.String()
	assert.Contains(t, text, "Started: 2026-01-05 08:30:00")
	assert.Contains(t, text, "CHECK 1: Store Version")
	assert.Contains(t, text, "✅ Version: PostgreSQL 16.2")
	assert.Contains(t, text, "CHECK 4: Tables in public Schema")
	assert.Contains(t, text, "✅ Total Tables: 3")
	assert.Contains(t, text, "$1.25")
	assert.Contains(t, text, "✅ Total Suppliers: 12")
	assert.Contains(t, text, "TOTAL"+strings.Repeat(" ", 29)+"50")
	assert.Contains(t, text, "42.50")
	assert.Contains(t, text, "Pass Rate:   100.0%")
	assert.Contains(t, text, "ALL CATALOG CHECKS PASSED!")
	assert.NotContains(t, text, "Failed Checks:")
}

func TestProbe_FailureDoesNotStopSequence(t *testing.T) {
	var out bytes.Buffer
	repo := fakeCatalog{fail: map[string]error{
		"SampleSuppliers":  errors.New("relation \"suppliers\" does not exist"),
		"CategoryProfiles": errors.New("permission denied"),
	}}
	svc := NewProbeService(repo, &out, probeClock, "public")

	report := svc.Run(context.Background())
	require.Equal(t, 10, report.Total())
	assert.False(t, report.AllPassed())
	assert.Equal(t, 8, report.Passed())
	assert.Equal(t, []string{"Suppliers Count", "Complex Query"}, report.FailedNames())
	assert.InDelta(t, 80.0, report.PassRate(), 1e-9)

	// checks after the first failure still ran
	assert.True(t, report.Results[6].Passed)
	assert.Equal(t, "Replenishment Rules", report.Results[6].Name)
	assert.EqualError(t, report.Results[9].Err, "permission denied")

	text := out.String()
	assert.Contains(t, text, "❌ Error: relation \"suppliers\" does not exist")
	assert.Contains(t, text, "Failed Checks:\n   • Suppliers Count\n   • Complex Query\n")
	assert.Contains(t, text, "2 check(s) failed")
	assert.Contains(t, text, "Pass Rate:   80.0%")
}

func TestProbe_CheckNamesOrder(t *testing.T) {
	svc := NewProbeService(fakeCatalog{}, &bytes.Buffer{}, probeClock, "public")
	assert.Equal(t, []string{
		"Version", "Catalogs", "Schemas", "Tables", "Products Query", "Suppliers Count",
		"Replenishment Rules", "Aggregate Query", "Join Query", "Complex Query",
	}, svc.CheckNames())
}

func TestProbeReport_Empty(t *testing.T) {
	var report ProbeReport
	assert.Zero(t, report.PassRate())
	assert.True(t, report.AllPassed())
	assert.Empty(t, report.FailedNames())
}
