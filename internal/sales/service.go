package sales

import (
	"fmt"

	"go.uber.org/zap"
)

// Service provides read access to the sales catalog.
type Service struct {
	storage Storage
	logger  *zap.Logger
}

// NewService creates a new Service.
func NewService(storage Storage, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// ListSales returns every sale in catalog order.
func (s *Service) ListSales() ([]Sale, error) {
	all, err := s.storage.GetAll()
	if err != nil {
		s.logger.Error("failed to get all sales from storage", zap.Error(err))
		return nil, fmt.Errorf("failed to retrieve sales: %w", err)
	}

	s.logger.Debug("sales listed", zap.Int("results_count", len(all)))
	return all, nil
}
