package sales

import (
	"fmt"
	"slices"
)

// Storage is the main interface for our sales storage layer.
type Storage interface {
	GetAll() ([]Sale, error)
}

// LocalStorage provides a read-only in-memory catalog of sales.
// It is safe for concurrent use because nothing writes after construction.
type LocalStorage struct {
	sales []Sale
}

// NewLocalStorage instantiates a LocalStorage holding the given records in order.
// Every record is validated and ids must be unique.
func NewLocalStorage(records ...Sale) (*LocalStorage, error) {
	seen := make(map[string]struct{}, len(records))
	for _, s := range records {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[s.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %s", ErrInvalidSale, s.ID)
		}
		seen[s.ID] = struct{}{}
	}
	return &LocalStorage{sales: slices.Clone(records)}, nil
}

// NewFixedStorage returns the storage seeded with the service catalog.
func NewFixedStorage() (*LocalStorage, error) {
	return NewLocalStorage(fixedSales...)
}

// GetAll returns a copy of every sale in catalog order.
func (l *LocalStorage) GetAll() ([]Sale, error) {
	return slices.Clone(l.sales), nil
}

var fixedSales = []Sale{
	{ID: "SALE-001", Total: mustMoney("499.99"), Currency: "USD", Status: StatusCompleted},
	{ID: "SALE-002", Total: mustMoney("129.50"), Currency: "USD", Status: StatusPending},
	{ID: "SALE-003", Total: mustMoney("89.00"), Currency: "USD", Status: StatusCancelled},
}

func mustMoney(s string) Money {
	m, err := NewMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}
