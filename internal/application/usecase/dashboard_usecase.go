package usecase

import (
	"github.com/vtcwoerden/materiaal-api/internal/application/dto"
	"github.com/vtcwoerden/materiaal-api/internal/domain/entity"
	"github.com/vtcwoerden/materiaal-api/internal/domain/repository"
)

// lowStockThreshold marks items the club should restock or repair.
const lowStockThreshold = 2

// DashboardUseCase builds the admin dashboard aggregates. Read-only; all data
// comes from StatsRepository.
type DashboardUseCase struct {
	stats repository.StatsRepository
}

// NewDashboardUseCase builds the use case.
func NewDashboardUseCase(stats repository.StatsRepository) *DashboardUseCase {
	return &DashboardUseCase{stats: stats}
}

// GetSummary returns the totals and per-taxonomy breakdowns.
func (uc *DashboardUseCase) GetSummary() (*dto.DashboardResponse, error) {
	totalItems, err := uc.stats.TotalItems()
	if err != nil {
		return nil, err
	}
	totalLocations, err := uc.stats.TotalTerms(entity.TaxonomyLocation)
	if err != nil {
		return nil, err
	}
	totalOwners, err := uc.stats.TotalTerms(entity.TaxonomyOwner)
	if err != nil {
		return nil, err
	}
	lowStock, err := uc.stats.LowStockCount(lowStockThreshold)
	if err != nil {
		return nil, err
	}
	owners, err := uc.stats.Breakdown(entity.TaxonomyOwner)
	if err != nil {
		return nil, err
	}
	conditions, err := uc.stats.Breakdown(entity.TaxonomyCondition)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardResponse{
		TotalItems:         totalItems,
		TotalLocations:     totalLocations,
		TotalOwners:        totalOwners,
		LowStockItems:      lowStock,
		OwnerBreakdown:     toBreakdown(owners),
		ConditionBreakdown: toBreakdown(conditions),
	}, nil
}

func toBreakdown(rows []repository.TermBreakdown) []dto.BreakdownEntry {
	out := make([]dto.BreakdownEntry, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.BreakdownEntry{Name: r.Name, Count: r.Count})
	}
	return out
}
