package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go-procurement-fixtures/internal/model"
	"go-procurement-fixtures/pkg/validator"

	"gorm.io/gorm"
)

// CatalogRepository reads the procurement catalog tables the pipeline
// queries: products, suppliers and replenishment_rules.
type CatalogRepository interface {
	Version(ctx context.Context) (string, error)
	Catalogs(ctx context.Context) ([]string, error)
	Schemas(ctx context.Context) ([]string, error)
	Tables(ctx context.Context) ([]string, error)
	SampleProducts(ctx context.Context, limit int) ([]model.Product, error)
	CountSuppliers(ctx context.Context) (int64, error)
	SampleSuppliers(ctx context.Context, limit int) ([]model.Supplier, error)
	SampleReplenishmentRules(ctx context.Context, limit int) ([]model.ReplenishmentRule, error)
	ProductsByCategory(ctx context.Context) ([]model.CategoryCount, error)
	ProductSuppliers(ctx context.Context, limit int) ([]model.ProductSupplier, error)
	CategoryProfiles(ctx context.Context) ([]model.CategoryProfile, error)
}

type catalogRepo struct {
	db     *gorm.DB
	schema string
}

type catalogScope struct {
	Schema string `validate:"required,sql_ident"`
}

// NewCatalogRepo returns a repository whose queries are qualified by schema
// ("public" on PostgreSQL, "main" on SQLite).
func NewCatalogRepo(db *gorm.DB, schema string) (CatalogRepository, error) {
	if err := validator.Validate(catalogScope{Schema: schema}); err != nil {
		return nil, err
	}
	return &catalogRepo{db: db, schema: schema}, nil
}

func (r *catalogRepo) sqlite() bool {
	return r.db.Dialector.Name() == "sqlite"
}

func (r *catalogRepo) table(name string) string {
	return r.schema + "." + name
}

func (r *catalogRepo) Version(ctx context.Context) (string, error) {
	query := "SELECT version()"
	if r.sqlite() {
		query = "SELECT sqlite_version()"
	}
	var version string
	err := r.db.WithContext(ctx).Raw(query).Scan(&version).Error
	return version, err
}

func (r *catalogRepo) Catalogs(ctx context.Context) ([]string, error) {
	if r.sqlite() {
		return r.strings(ctx, "SELECT name FROM pragma_database_list ORDER BY seq")
	}
	return r.strings(ctx, "SELECT datname FROM pg_database WHERE NOT datistemplate ORDER BY datname")
}

func (r *catalogRepo) Schemas(ctx context.Context) ([]string, error) {
	if r.sqlite() {
		return r.strings(ctx, "SELECT name FROM pragma_database_list ORDER BY seq")
	}
	return r.strings(ctx, "SELECT schema_name FROM information_schema.schemata ORDER BY schema_name")
}

func (r *catalogRepo) Tables(ctx context.Context) ([]string, error) {
	if r.sqlite() {
		return r.strings(ctx, fmt.Sprintf(
			"SELECT name FROM %s WHERE type = 'table' AND name NOT LIKE 'sqlite_%%' ORDER BY name",
			r.table("sqlite_master")))
	}
	return r.strings(ctx,
		"SELECT table_name FROM information_schema.tables WHERE table_schema = ? ORDER BY table_name",
		r.schema)
}

func (r *catalogRepo) SampleProducts(ctx context.Context, limit int) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).Raw(fmt.Sprintf(`
		SELECT product_id, product_name, category, price
		FROM %s
		ORDER BY product_id
		LIMIT ?`, r.table("products")), limit).Scan(&products).Error
	return products, err
}

func (r *catalogRepo) CountSuppliers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Raw(fmt.Sprintf("SELECT COUNT(*) FROM %s", r.table("suppliers"))).Scan(&count).Error
	return count, err
}

func (r *catalogRepo) SampleSuppliers(ctx context.Context, limit int) ([]model.Supplier, error) {
	var suppliers []model.Supplier
	err := r.db.WithContext(ctx).Raw(fmt.Sprintf(`
		SELECT supplier_id, supplier_name, contact_email
		FROM %s
		ORDER BY supplier_id
		LIMIT ?`, r.table("suppliers")), limit).Scan(&suppliers).Error
	return suppliers, err
}

func (r *catalogRepo) SampleReplenishmentRules(ctx context.Context, limit int) ([]model.ReplenishmentRule, error) {
	var rules []model.ReplenishmentRule
	err := r.db.WithContext(ctx).Raw(fmt.Sprintf(`
		SELECT product_id, supplier_id, moq, safety_stock_level
		FROM %s
		ORDER BY product_id, supplier_id
		LIMIT ?`, r.table("replenishment_rules")), limit).Scan(&rules).Error
	return rules, err
}

func (r *catalogRepo) ProductsByCategory(ctx context.Context) ([]model.CategoryCount, error) {
	var counts []model.CategoryCount
	err := r.db.WithContext(ctx).Raw(fmt.Sprintf(`
		SELECT category, COUNT(*) AS product_count
		FROM %s
		GROUP BY category
		ORDER BY product_count DESC, category`, r.table("products"))).Scan(&counts).Error
	return counts, err
}

func (r *catalogRepo) ProductSuppliers(ctx context.Context, limit int) ([]model.ProductSupplier, error) {
	var rows []model.ProductSupplier
	err := r.db.WithContext(ctx).Raw(fmt.Sprintf(`
		SELECT
			p.product_id,
			p.product_name,
			p.category,
			s.supplier_name,
			s.lead_time_days
		FROM %s p
		CROSS JOIN %s s
		ORDER BY p.product_id, s.supplier_id
		LIMIT ?`, r.table("products"), r.table("suppliers")), limit).Scan(&rows).Error
	return rows, err
}

func (r *catalogRepo) CategoryProfiles(ctx context.Context) ([]model.CategoryProfile, error) {
	var profiles []model.CategoryProfile
	err := r.db.WithContext(ctx).Raw(fmt.Sprintf(`
		SELECT
			p.category,
			COUNT(DISTINCT p.product_id) AS product_count,
			CAST(AVG(r.safety_stock_level) AS DOUBLE PRECISION) AS avg_safety_stock,
			CAST(AVG(r.moq) AS DOUBLE PRECISION) AS avg_moq
		FROM %s p
		JOIN %s r
			ON p.product_id = r.product_id
		GROUP BY p.category
		ORDER BY product_count DESC, p.category`, r.table("products"), r.table("replenishment_rules"))).Scan(&profiles).Error
	return profiles, err
}

func (r *catalogRepo) strings(ctx context.Context, query string, args ...interface{}) ([]string, error) {
	rows, err := r.db.WithContext(ctx).Raw(query, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStrings(rows)
}

func scanStrings(rows *sql.Rows) ([]string, error) {
	var results []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		results = append(results, s)
	}
	return results, rows.Err()
}
