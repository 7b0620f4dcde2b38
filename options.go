package lmbridge

import (
	"fmt"
	"log/slog"

	"github.com/lmbridge/lmbridge-go/catalog"
	"github.com/lmbridge/lmbridge-go/driver"
)

type bridgeOptions struct {
	logger     *slog.Logger
	drv        driver.Driver
	driverName string
	catalog    *catalog.Catalog
}

type Option func(*bridgeOptions) error

func WithLogger(l *slog.Logger) Option {
	return func(o *bridgeOptions) error {
		o.logger = l
		return nil
	}
}

// WithDriver binds the bridge to an explicit driver instance, bypassing the
// registry.
func WithDriver(d driver.Driver) Option {
	return func(o *bridgeOptions) error {
		if d == nil {
			return fmt.Errorf("WithDriver: driver is nil")
		}
		o.drv = d
		return nil
	}
}

// WithDriverName selects a registered driver by name.
func WithDriverName(name string) Option {
	return func(o *bridgeOptions) error {
		o.driverName = name
		return nil
	}
}

// WithCatalog attaches a model catalog, enabling CreateEngineFromCatalog.
func WithCatalog(c *catalog.Catalog) Option {
	return func(o *bridgeOptions) error {
		o.catalog = c
		return nil
	}
}
