// Package report provides the dashboard service.
package report

import (
	"context"
	"errors"

	"github.com/lupon/admin-client/internal/application/resource"
	"github.com/lupon/admin-client/internal/domain/report"
)

const dashboardPath = "dashboard"

// ErrInvalidPeriod is returned when fecha_desde is after fecha_hasta
var ErrInvalidPeriod = errors.New("fecha_desde must not be after fecha_hasta")

// DashboardService reads the dashboard aggregates
type DashboardService struct {
	api resource.API
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(api resource.API) *DashboardService {
	return &DashboardService{api: api}
}

// Get returns the dashboard for filter
func (s *DashboardService) Get(ctx context.Context, filter report.DashboardFilter) (*report.Dashboard, error) {
	if !filter.FechaDesde.IsNull() && !filter.FechaHasta.IsNull() && filter.FechaDesde.After(filter.FechaHasta.Time) {
		return nil, ErrInvalidPeriod
	}
	var out report.Dashboard
	if err := s.api.Get(ctx, resource.Path(dashboardPath), filter.Query(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
