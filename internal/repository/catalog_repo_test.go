package repository

import (
	"context"
	"testing"

	"go-procurement-fixtures/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newCatalogDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1) // one connection keeps one in-memory database
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&model.Product{}, &model.Supplier{}, &model.ReplenishmentRule{}))

	require.NoError(t, db.Create([]model.Product{
		{ProductID: "P1", ProductName: "Sparkling Water", Category: "Beverages", Price: 1.25},
		{ProductID: "P2", ProductName: "Cold Brew", Category: "Beverages", Price: 3.5},
		{ProductID: "P3", ProductName: "Pretzels", Category: "Snacks", Price: 2},
	}).Error)
	require.NoError(t, db.Create([]model.Supplier{
		{SupplierID: "S1", SupplierName: "Acme", ContactEmail: "orders@acme.test", LeadTimeDays: 3},
		{SupplierID: "S2", SupplierName: "Globex", ContactEmail: "supply@globex.test", LeadTimeDays: 5},
	}).Error)
	require.NoError(t, db.Create([]model.ReplenishmentRule{
		{ProductID: "P1", SupplierID: "S1", MOQ: 10, SafetyStockLevel: 20},
		{ProductID: "P2", SupplierID: "S1", MOQ: 20, SafetyStockLevel: 40},
		{ProductID: "P3", SupplierID: "S2", MOQ: 5, SafetyStockLevel: 15},
	}).Error)
	return db
}

func newCatalogRepo(t *testing.T) CatalogRepository {
	t.Helper()
	repo, err := NewCatalogRepo(newCatalogDB(t), "main")
	require.NoError(t, err)
	return repo
}

func TestNewCatalogRepo_RejectsSchema(t *testing.T) {
	_, err := NewCatalogRepo(nil, "public; DROP TABLE products")
	assert.Error(t, err)
	_, err = NewCatalogRepo(nil, "")
	assert.Error(t, err)
}

func TestCatalogRepo_Metadata(t *testing.T) {
	repo := newCatalogRepo(t)
	ctx := context.Background()

	version, err := repo.Version(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, version)

	catalogs, err := repo.Catalogs(ctx)
	require.NoError(t, err)
	assert.Contains(t, catalogs, "main")

	schemas, err := repo.Schemas(ctx)
	require.NoError(t, err)
	assert.Contains(t, schemas, "main")

	tables, err := repo.Tables(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"products", "replenishment_rules", "suppliers"}, tables)
}

func TestCatalogRepo_Samples(t *testing.T) {
	repo := newCatalogRepo(t)
	ctx := context.Background()

	products, err := repo.SampleProducts(ctx, 2)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "P1", products[0].ProductID)
	assert.Equal(t, "Sparkling Water", products[0].ProductName)
	assert.Equal(t, 1.25, products[0].Price)

	count, err := repo.CountSuppliers(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	suppliers, err := repo.SampleSuppliers(ctx, 5)
	require.NoError(t, err)
	require.Len(t, suppliers, 2)
	assert.Equal(t, "orders@acme.test", suppliers[0].ContactEmail)

	rules, err := repo.SampleReplenishmentRules(ctx, 5)
	require.NoError(t, err)
	require.Len(t, rules, 3)
	assert.Equal(t, model.ReplenishmentRule{ProductID: "P1", SupplierID: "S1", MOQ: 10, SafetyStockLevel: 20}, rules[0])
}

func TestCatalogRepo_Analytics(t *testing.T) {
	repo := newCatalogRepo(t)
	ctx := context.Background()

	counts, err := repo.ProductsByCategory(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.CategoryCount{
		{Category: "Beverages", ProductCount: 2},
		{Category: "Snacks", ProductCount: 1},
	}, counts)

	joined, err := repo.ProductSuppliers(ctx, 5)
	require.NoError(t, err)
	require.Len(t, joined, 5)
	assert.Equal(t, model.ProductSupplier{
		ProductID: "P1", ProductName: "Sparkling Water", Category: "Beverages",
		SupplierName: "Acme", LeadTimeDays: 3,
	}, joined[0])

	profiles, err := repo.CategoryProfiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.CategoryProfile{
		{Category: "Beverages", ProductCount: 2, AvgSafetyStock: 30, AvgMOQ: 15},
		{Category: "Snacks", ProductCount: 1, AvgSafetyStock: 15, AvgMOQ: 5},
	}, profiles)
}

func TestCatalogRepo_MissingTable(t *testing.T) {
	repo, err := NewCatalogRepo(newCatalogDB(t), "elsewhere")
	require.NoError(t, err)

	_, err = repo.CountSuppliers(context.Background())
	assert.Error(t, err)
}
