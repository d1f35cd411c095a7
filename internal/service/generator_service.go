package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"go-procurement-fixtures/internal/clock"
	"go-procurement-fixtures/internal/config"
	"go-procurement-fixtures/internal/fixture"
	"go-procurement-fixtures/internal/model"
	"go-procurement-fixtures/internal/repository"

	"golang.org/x/sync/errgroup"
)

var ErrInvalidIndex = errors.New("index out of configured range")

// RunOptions override the configured seed, end date and day count for one run.
type RunOptions struct {
	Seed    *uint64 `json:"seed,omitempty"`
	EndDate string  `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Days    int     `json:"days,omitempty" validate:"gte=0"`
}

// RunSummary describes what a run wrote. Seed replays the run exactly.
type RunSummary struct {
	Seed           uint64   `json:"seed"`
	Dates          []string `json:"dates"`
	OrderArtifacts int      `json:"order_artifacts"`
	StockArtifacts int      `json:"stock_artifacts"`
	Orders         int      `json:"orders"`
	LineItems      int      `json:"line_items"`
	StockRows      int      `json:"stock_rows"`
}

type GeneratorService interface {
	Pool() fixture.Pool
	Run(ctx context.Context, opts RunOptions) (*RunSummary, error)
	RenderOrders(seed uint64, storeIndex int, date time.Time) ([]byte, error)
	RenderStock(seed uint64, warehouseIndex int, date time.Time) ([]byte, error)
}

type generatorService struct {
	cfg    config.Config
	pool   fixture.Pool
	sink   repository.ArtifactSink
	clock  clock.Clock
	logger *slog.Logger
}

func NewGeneratorService(cfg config.Config, sink repository.ArtifactSink, clk clock.Clock, logger *slog.Logger) (GeneratorService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &generatorService{
		cfg:    cfg,
		pool:   fixture.NewPool(cfg.Products),
		sink:   sink,
		clock:  clk,
		logger: logger,
	}, nil
}

func (s *generatorService) Pool() fixture.Pool {
	return s.pool
}

// artifactSource keys an artifact's random stream by what it is, not by when
// it is generated.
func artifactSource(root *fixture.Source, kind model.ArtifactKind, index int, date time.Time) *fixture.Source {
	return root.Derive(string(kind), strconv.Itoa(index), date.Format(fixture.DateLayout))
}

func (s *generatorService) RenderOrders(seed uint64, storeIndex int, date time.Time) ([]byte, error) {
	if storeIndex < 1 || storeIndex > s.cfg.Stores {
		return nil, fmt.Errorf("store %d: %w", storeIndex, ErrInvalidIndex)
	}
	data, _, err := s.renderOrders(s.cfg, fixture.NewSource(seed), storeIndex, fixture.Day(date))
	return data, err
}

func (s *generatorService) RenderStock(seed uint64, warehouseIndex int, date time.Time) ([]byte, error) {
	if warehouseIndex < 1 || warehouseIndex > s.cfg.Warehouses {
		return nil, fmt.Errorf("warehouse %d: %w", warehouseIndex, ErrInvalidIndex)
	}
	data, _, err := s.renderStock(s.cfg, fixture.NewSource(seed), warehouseIndex, fixture.Day(date))
	return data, err
}

func (s *generatorService) renderOrders(cfg config.Config, root *fixture.Source, storeIndex int, date time.Time) ([]byte, []model.Order, error) {
	src := artifactSource(root, model.ArtifactOrders, storeIndex, date)
	orders, err := fixture.ProduceOrders(s.pool, src, cfg.OrderParams(), storeIndex, date)
	if err != nil {
		return nil, nil, err
	}
	data, err := fixture.EncodeOrders(orders)
	if err != nil {
		return nil, nil, fmt.Errorf("encode orders: %w", err)
	}
	return data, orders, nil
}

func (s *generatorService) renderStock(cfg config.Config, root *fixture.Source, warehouseIndex int, date time.Time) ([]byte, []model.StockRow, error) {
	src := artifactSource(root, model.ArtifactStock, warehouseIndex, date)
	rows := fixture.ProduceStock(s.pool, src, cfg.StockParams(), warehouseIndex, date)
	data, err := fixture.EncodeStock(rows)
	if err != nil {
		return nil, nil, fmt.Errorf("encode stock: %w", err)
	}
	return data, rows, nil
}

// Run writes every order and stock artifact of the date range to the sink.
// Each path is written by exactly one job; the first failure stops the run.
func (s *generatorService) Run(ctx context.Context, opts RunOptions) (*RunSummary, error) {
	cfg := s.cfg
	if opts.Seed != nil {
		cfg.Seed = opts.Seed
	}
	if opts.EndDate != "" {
		cfg.EndDate = opts.EndDate
	}
	if opts.Days > 0 {
		cfg.Days = opts.Days
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	end, err := cfg.End(s.clock)
	if err != nil {
		return nil, err
	}
	seed := fixture.RandomSeed()
	if cfg.Seed != nil {
		seed = *cfg.Seed
	}
	root := fixture.NewSource(seed)
	dates := fixture.DateRange(end, cfg.Days)

	summary := &RunSummary{Seed: seed}
	for _, d := range dates {
		summary.Dates = append(summary.Dates, d.Format(fixture.DateLayout))
	}
	s.logger.Info("generating fixtures",
		"seed", seed,
		"from", summary.Dates[0],
		"to", summary.Dates[len(summary.Dates)-1],
		"stores", cfg.Stores,
		"warehouses", cfg.Warehouses,
		"products", len(s.pool),
	)

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)

	for _, date := range dates {
		for store := 1; store <= cfg.Stores; store++ {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				data, orders, err := s.renderOrders(cfg, root, store, date)
				if err != nil {
					return fmt.Errorf("orders for store %d on %s: %w", store, date.Format(fixture.DateLayout), err)
				}
				path := fixture.OrdersPath(cfg.OrdersDir, store, date)
				if err := s.sink.Write(path, data); err != nil {
					return err
				}
				items := 0
				for _, o := range orders {
					items += len(o.Items)
				}
				s.logger.Info("generated", "path", path, "orders", len(orders))

				mu.Lock()
				summary.OrderArtifacts++
				summary.Orders += len(orders)
				summary.LineItems += items
				mu.Unlock()
				return nil
			})
		}

		for wh := 1; wh <= cfg.Warehouses; wh++ {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				data, rows, err := s.renderStock(cfg, root, wh, date)
				if err != nil {
					return fmt.Errorf("stock for warehouse %d on %s: %w", wh, date.Format(fixture.DateLayout), err)
				}
				path := fixture.StockPath(cfg.StockDir, wh, date)
				if err := s.sink.Write(path, data); err != nil {
					return err
				}
				s.logger.Info("generated", "path", path, "rows", len(rows))

				mu.Lock()
				summary.StockArtifacts++
				summary.StockRows += len(rows)
				mu.Unlock()
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.Info("generation complete",
		"seed", seed,
		"days", len(dates),
		"order_files", summary.OrderArtifacts,
		"stock_files", summary.StockArtifacts,
	)
	return summary, nil
}
