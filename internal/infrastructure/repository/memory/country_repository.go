package memory

import (
	"context"
	"sync"
)

type CountryRepository struct {
	mu          sync.RWMutex
	codesByName map[string]string
}

// NewCountryRepository seeds the reference table from a name -> code map.
func NewCountryRepository(countries map[string]string) *CountryRepository {
	codesByName := make(map[string]string, len(countries))
	for name, code := range countries {
		if key := canonicalName(name); key != "" {
			codesByName[key] = code
		}
	}
	return &CountryRepository{codesByName: codesByName}
}

func (r *CountryRepository) CodesByName(_ context.Context) (map[string]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]string, len(r.codesByName))
	for name, code := range r.codesByName {
		out[name] = code
	}
	return out, nil
}
