package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"go-procurement-fixtures/internal/clock"
	"go-procurement-fixtures/internal/fixture"
	"go-procurement-fixtures/pkg/validator"

	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. FIXTURES_PRODUCTS.
const EnvPrefix = "FIXTURES_"

// Config is the whole configuration surface of a generation run.
type Config struct {
	Products   int `yaml:"products" validate:"gte=1,lte=9999"`
	Stores     int `yaml:"stores" validate:"gte=0"`
	Warehouses int `yaml:"warehouses" validate:"gte=0"`
	Days       int `yaml:"days" validate:"gte=1"`

	// EndDate is the last day of the run; empty means today.
	EndDate string `yaml:"end_date" validate:"omitempty,datetime=2006-01-02"`

	// Seed fixes the random stream; nil draws a fresh seed.
	Seed *uint64 `yaml:"seed"`

	OrdersMin   int     `yaml:"orders_min" validate:"gte=0"`
	OrdersMax   int     `yaml:"orders_max" validate:"gtefield=OrdersMin"`
	ItemsMin    int     `yaml:"items_min" validate:"gte=1"`
	ItemsMax    int     `yaml:"items_max" validate:"gtefield=ItemsMin"`
	QuantityMin int     `yaml:"quantity_min" validate:"gte=1"`
	QuantityMax int     `yaml:"quantity_max" validate:"gtefield=QuantityMin"`
	PriceMin    float64 `yaml:"price_min" validate:"gt=0"`
	PriceMax    float64 `yaml:"price_max" validate:"gtefield=PriceMin"`
	StockMin    int     `yaml:"stock_min" validate:"gte=0"`
	StockMax    int     `yaml:"stock_max" validate:"gtefield=StockMin"`

	OrdersDir string `yaml:"orders_dir" validate:"required"`
	StockDir  string `yaml:"stock_dir" validate:"required"`
	Workers   int    `yaml:"workers" validate:"gte=1"`
}

// Default mirrors the constants the pipeline's fixtures were first generated with.
func Default() Config {
	return Config{
		Products:    50,
		Stores:      15,
		Warehouses:  5,
		Days:        7,
		OrdersMin:   150,
		OrdersMax:   300,
		ItemsMin:    1,
		ItemsMax:    8,
		QuantityMin: 1,
		QuantityMax: 15,
		PriceMin:    1.0,
		PriceMax:    150.0,
		StockMin:    0,
		StockMax:    500,
		OrdersDir:   "data/raw/orders",
		StockDir:    "data/raw/stock",
		Workers:     1,
	}
}

// Load returns the defaults overlaid with the YAML file at path. An empty
// path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// ApplyEnv overrides fields from FIXTURES_* variables.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	ints := []struct {
		key string
		dst *int
	}{
		{"PRODUCTS", &c.Products},
		{"STORES", &c.Stores},
		{"WAREHOUSES", &c.Warehouses},
		{"DAYS", &c.Days},
		{"ORDERS_MIN", &c.OrdersMin},
		{"ORDERS_MAX", &c.OrdersMax},
		{"ITEMS_MIN", &c.ItemsMin},
		{"ITEMS_MAX", &c.ItemsMax},
		{"QUANTITY_MIN", &c.QuantityMin},
		{"QUANTITY_MAX", &c.QuantityMax},
		{"STOCK_MIN", &c.StockMin},
		{"STOCK_MAX", &c.StockMax},
		{"WORKERS", &c.Workers},
	}
	for _, f := range ints {
		v, ok := lookup(EnvPrefix + f.key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, f.key, err)
		}
		*f.dst = n
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{"PRICE_MIN", &c.PriceMin},
		{"PRICE_MAX", &c.PriceMax},
	}
	for _, f := range floats {
		v, ok := lookup(EnvPrefix + f.key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, f.key, err)
		}
		*f.dst = n
	}

	if v, ok := lookup(EnvPrefix + "SEED"); ok && v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%sSEED: %w", EnvPrefix, err)
		}
		c.Seed = &seed
	}
	if v, ok := lookup(EnvPrefix + "END_DATE"); ok && v != "" {
		c.EndDate = v
	}
	if v, ok := lookup(EnvPrefix + "ORDERS_DIR"); ok && v != "" {
		c.OrdersDir = v
	}
	if v, ok := lookup(EnvPrefix + "STOCK_DIR"); ok && v != "" {
		c.StockDir = v
	}
	return nil
}

var ErrEmptyPriceRange = errors.New("price range contains no whole-cent value")

// Validate checks the struct tags and the price range's cent granularity.
func (c Config) Validate() error {
	if err := validator.Validate(c); err != nil {
		return err
	}
	if _, _, ok := fixture.CentsRange(c.PriceMin, c.PriceMax); !ok {
		return fmt.Errorf("%w: [%v, %v]", ErrEmptyPriceRange, c.PriceMin, c.PriceMax)
	}
	return nil
}

func (c Config) OrderParams() fixture.OrderParams {
	lo, hi, _ := fixture.CentsRange(c.PriceMin, c.PriceMax)
	return fixture.OrderParams{
		OrdersMin:     c.OrdersMin,
		OrdersMax:     c.OrdersMax,
		ItemsMin:      c.ItemsMin,
		ItemsMax:      c.ItemsMax,
		QuantityMin:   c.QuantityMin,
		QuantityMax:   c.QuantityMax,
		PriceMinCents: lo,
		PriceMaxCents: hi,
	}
}

func (c Config) StockParams() fixture.StockParams {
	return fixture.StockParams{Min: c.StockMin, Max: c.StockMax}
}

// End resolves the last date of the run: EndDate when set, else today on clk.
func (c Config) End(clk clock.Clock) (time.Time, error) {
	if c.EndDate == "" {
		return fixture.Day(clk.Now()), nil
	}
	day, err := fixture.ParseDay(c.EndDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("end_date: %w", err)
	}
	return day, nil
}
