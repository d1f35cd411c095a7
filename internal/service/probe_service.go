package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go-procurement-fixtures/internal/clock"
	"go-procurement-fixtures/internal/repository"
)

const (
	probeRule   = 70
	sampleLimit = 5
)

type ProbeResult struct {
	Name   string
	Passed bool
	Err    error
}

// ProbeReport holds the results of one probe in check order.
type ProbeReport struct {
	Results []ProbeResult
}

func (r ProbeReport) Total() int {
	return len(r.Results)
}

func (r ProbeReport) Passed() int {
	n := 0
	for _, res := range r.Results {
		if res.Passed {
			n++
		}
	}
	return n
}

// FailedNames lists failed checks in the order they ran.
func (r ProbeReport) FailedNames() []string {
	var names []string
	for _, res := range r.Results {
		if !res.Passed {
			names = append(names, res.Name)
		}
	}
	return names
}

func (r ProbeReport) AllPassed() bool {
	return r.Passed() == r.Total()
}

// PassRate is the passed percentage, 0 for an empty report.
func (r ProbeReport) PassRate() float64 {
	if r.Total() == 0 {
		return 0
	}
	return float64(r.Passed()) / float64(r.Total()) * 100
}

type ProbeService interface {
	CheckNames() []string
	Run(ctx context.Context) ProbeReport
}

type probeCheck struct {
	name  string
	title string
	run   func(ctx context.Context, w io.Writer) error
}

type probeService struct {
	repo   repository.CatalogRepository
	out    io.Writer
	clock  clock.Clock
	schema string
	checks []probeCheck
}

// NewProbeService prints every check's section and the final summary to out.
func NewProbeService(repo repository.CatalogRepository, out io.Writer, clk clock.Clock, schema string) ProbeService {
	s := &probeService{repo: repo, out: out, clock: clk, schema: schema}
	s.checks = []probeCheck{
		{"Version", "Store Version", s.checkVersion},
		{"Catalogs", "Available Catalogs", s.checkCatalogs},
		{"Schemas", "Available Schemas", s.checkSchemas},
		{"Tables", fmt.Sprintf("Tables in %s Schema", schema), s.checkTables},
		{"Products Query", "Sample Data from Products Table", s.checkProducts},
		{"Suppliers Count", "Suppliers Count", s.checkSuppliers},
		{"Replenishment Rules", "Replenishment Rules", s.checkReplenishmentRules},
		{"Aggregate Query", "Products by Category (Aggregation)", s.checkAggregate},
		{"Join Query", "Join Query (Products + Suppliers)", s.checkJoin},
		{"Complex Query", "Complex Analytical Query", s.checkComplex},
	}
	return s
}

func (s *probeService) CheckNames() []string {
	names := make([]string, len(s.checks))
	for i, c := range s.checks {
		names[i] = c.name
	}
	return names
}

// Run executes every check in order. A failing check is recorded and the
// sequence continues.
func (s *probeService) Run(ctx context.Context) ProbeReport {
	rule := strings.Repeat("=", probeRule)
	fmt.Fprintf(s.out, "\n%s\n  CATALOG PROBE\n%s\n", rule, rule)
	fmt.Fprintf(s.out, "  Started: %s\n", s.clock.Now().Format("2006-01-02 15:04:05"))

	var report ProbeReport
	for i, c := range s.checks {
		s.header(fmt.Sprintf("CHECK %d: %s", i+1, c.title))
		err := c.run(ctx, s.out)
		if err != nil {
			fmt.Fprintf(s.out, "\n   ❌ Error: %v\n", err)
		}
		report.Results = append(report.Results, ProbeResult{Name: c.name, Passed: err == nil, Err: err})
	}

	s.summary(report)
	return report
}

func (s *probeService) header(title string) {
	rule := strings.Repeat("=", probeRule)
	fmt.Fprintf(s.out, "\n%s\n  %s\n%s\n", rule, title, rule)
}

func (s *probeService) summary(report ProbeReport) {
	s.header("PROBE SUMMARY")

	failed := report.FailedNames()
	fmt.Fprintf(s.out, "\n   Total Checks: %d\n", report.Total())
	fmt.Fprintf(s.out, "   ✅ Passed:    %d\n", report.Passed())
	fmt.Fprintf(s.out, "   ❌ Failed:    %d\n", len(failed))
	fmt.Fprintf(s.out, "   Pass Rate:   %.1f%%\n", report.PassRate())

	if len(failed) > 0 {
		fmt.Fprintf(s.out, "\n   Failed Checks:\n")
		for _, name := range failed {
			fmt.Fprintf(s.out, "   • %s\n", name)
		}
	}

	rule := strings.Repeat("=", probeRule)
	fmt.Fprintf(s.out, "\n%s\n", rule)
	if report.AllPassed() {
		fmt.Fprintf(s.out, "   🎉 ALL CATALOG CHECKS PASSED!\n")
	} else {
		fmt.Fprintf(s.out, "   ⚠️  %d check(s) failed\n", len(failed))
	}
	fmt.Fprintf(s.out, "%s\n\n", rule)
}

func (s *probeService) checkVersion(ctx context.Context, w io.Writer) error {
	version, err := s.repo.Version(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\n   ✅ Version: %s\n", version)
	return nil
}

func (s *probeService) checkCatalogs(ctx context.Context, w io.Writer) error {
	catalogs, err := s.repo.Catalogs(ctx)
	if err != nil {
		return err
	}
	listNames(w, "Available Catalogs", catalogs)
	return nil
}

func (s *probeService) checkSchemas(ctx context.Context, w io.Writer) error {
	schemas, err := s.repo.Schemas(ctx)
	if err != nil {
		return err
	}
	listNames(w, "Available Schemas", schemas)
	return nil
}

func (s *probeService) checkTables(ctx context.Context, w io.Writer) error {
	tables, err := s.repo.Tables(ctx)
	if err != nil {
		return err
	}
	listNames(w, "Available Tables", tables)
	fmt.Fprintf(w, "\n   ✅ Total Tables: %d\n", len(tables))
	return nil
}

func (s *probeService) checkProducts(ctx context.Context, w io.Writer) error {
	products, err := s.repo.SampleProducts(ctx, sampleLimit)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\n   %-15s %-30s %-15s %-12s\n", "Product ID", "Product Name", "Category", "Price")
	fmt.Fprintf(w, "   %s\n", strings.Repeat("-", 75))
	for _, p := range products {
		fmt.Fprintf(w, "   %-15s %-30s %-15s $%-10.2f\n", p.ProductID, p.ProductName, p.Category, p.Price)
	}
	fmt.Fprintf(w, "\n   ✅ Successfully queried %d products\n", len(products))
	return nil
}

func (s *probeService) checkSuppliers(ctx context.Context, w io.Writer) error {
	count, err := s.repo.CountSuppliers(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\n   ✅ Total Suppliers: %d\n", count)

	suppliers, err := s.repo.SampleSuppliers(ctx, sampleLimit)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\n   Sample Suppliers:\n")
	fmt.Fprintf(w, "   %-5s %-25s %-30s\n", "ID", "Supplier Name", "Contact Email")
	fmt.Fprintf(w, "   %s\n", strings.Repeat("-", 65))
	for _, sup := range suppliers {
		fmt.Fprintf(w, "   %-5s %-25s %-30s\n", sup.SupplierID, sup.SupplierName, sup.ContactEmail)
	}
	return nil
}

func (s *probeService) checkReplenishmentRules(ctx context.Context, w io.Writer) error {
	rules, err := s.repo.SampleReplenishmentRules(ctx, sampleLimit)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\n   %-15s %-15s %-10s %-15s\n", "Product ID", "Supplier ID", "MOQ", "Safety Stock")
	fmt.Fprintf(w, "   %s\n", strings.Repeat("-", 60))
	for _, r := range rules {
		fmt.Fprintf(w, "   %-15s %-15s %-10d %-15d\n", r.ProductID, r.SupplierID, r.MOQ, r.SafetyStockLevel)
	}
	fmt.Fprintf(w, "\n   ✅ Retrieved %d replenishment rules\n", len(rules))
	return nil
}

func (s *probeService) checkAggregate(ctx context.Context, w io.Writer) error {
	counts, err := s.repo.ProductsByCategory(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\n   %-20s %15s\n", "Category", "Product Count")
	fmt.Fprintf(w, "   %s\n", strings.Repeat("-", 40))
	var total int64
	for _, c := range counts {
		fmt.Fprintf(w, "   %-20s %15d\n", c.Category, c.ProductCount)
		total += c.ProductCount
	}
	fmt.Fprintf(w, "   %s\n", strings.Repeat("-", 40))
	fmt.Fprintf(w, "   %-20s %15d\n", "TOTAL", total)
	fmt.Fprintf(w, "\n   ✅ Successfully aggregated %d categories\n", len(counts))
	return nil
}

func (s *probeService) checkJoin(ctx context.Context, w io.Writer) error {
	rows, err := s.repo.ProductSuppliers(ctx, sampleLimit)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\n   %-15s %-25s %-15s %-20s %-10s\n", "Product ID", "Product", "Category", "Supplier", "Lead Time")
	fmt.Fprintf(w, "   %s\n", strings.Repeat("-", 90))
	for _, r := range rows {
		fmt.Fprintf(w, "   %-15s %-25s %-15s %-20s %-10d\n", r.ProductID, r.ProductName, r.Category, r.SupplierName, r.LeadTimeDays)
	}
	fmt.Fprintf(w, "\n   ✅ Successfully joined tables and retrieved %d rows\n", len(rows))
	return nil
}

func (s *probeService) checkComplex(ctx context.Context, w io.Writer) error {
	profiles, err := s.repo.CategoryProfiles(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\n   %-15s %-12s %-20s %-15s\n", "Category", "Products", "Avg Safety Stock", "Avg MOQ")
	fmt.Fprintf(w, "   %s\n", strings.Repeat("-", 70))
	for _, p := range profiles {
		fmt.Fprintf(w, "   %-15s %-12d %-20.2f %-15.2f\n", p.Category, p.ProductCount, p.AvgSafetyStock, p.AvgMOQ)
	}
	fmt.Fprintf(w, "\n   ✅ Successfully executed complex analytical query\n")
	return nil
}

func listNames(w io.Writer, label string, names []string) {
	fmt.Fprintf(w, "\n   %s:\n", label)
	for _, n := range names {
		fmt.Fprintf(w, "   • %s\n", n)
	}
}
