package service

import (
	"fmt"
	"sort"
	"sync"

	"github.com/c2fo/fixture"
)

var mmu sync.RWMutex
var m map[string]fixture.Service

// Register a service under name, replacing any previous registration
func Register(name string, s fixture.Service) {
	mmu.Lock()
	m[name] = s
	mmu.Unlock()
}

// Unregister removes a service from the registry
func Unregister(name string) {
	mmu.Lock()
	delete(m, name)
	mmu.Unlock()
}

// UnregisterAll removes every registered service
func UnregisterAll() {
	// mainly for tests
	mmu.Lock()
	m = make(map[string]fixture.Service)
	mmu.Unlock()
}

// Lookup returns the service registered under name. fixture.ErrUnknownService is returned when there is none.
func Lookup(name string) (fixture.Service, error) {
	mmu.RLock()
	defer mmu.RUnlock()
	s, ok := m[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, fixture.ErrUnknownService)
	}
	return s, nil
}

// Registered returns the sorted names of all registered services
func Registered() []string {
	f := make([]string, 0)
	mmu.RLock()
	for k := range m {
		f = append(f, k)
	}
	mmu.RUnlock()
	sort.Strings(f)
	return f
}

func init() {
	m = make(map[string]fixture.Service)
}
