package lmbridge

import (
	"fmt"
	"sort"
	"sync"

	"github.com/lmbridge/lmbridge-go/driver"
)

var (
	driversMu sync.RWMutex
	drivers   = map[string]driver.Driver{}
)

// Register makes an engine driver available under the given name, following
// the database/sql convention: call it from the driver package's init
// function. Register panics if d is nil or the name is already taken.
func Register(name string, d driver.Driver) {
	driversMu.Lock()
	defer driversMu.Unlock()
	if d == nil {
		panic("lmbridge: Register driver is nil")
	}
	if _, dup := drivers[name]; dup {
		panic(fmt.Sprintf("lmbridge: Register called twice for driver %q", name))
	}
	drivers[name] = d
}

// Drivers returns the sorted names of the registered drivers.
func Drivers() []string {
	driversMu.RLock()
	defer driversMu.RUnlock()
	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookupDriver(name string) (driver.Driver, bool) {
	driversMu.RLock()
	defer driversMu.RUnlock()
	d, ok := drivers[name]
	return d, ok
}

// soleDriver returns the registered driver when exactly one exists.
func soleDriver() (driver.Driver, bool) {
	driversMu.RLock()
	defer driversMu.RUnlock()
	if len(drivers) != 1 {
		return nil, false
	}
	for _, d := range drivers {
		return d, true
	}
	return nil, false
}
