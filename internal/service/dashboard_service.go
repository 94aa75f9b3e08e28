package service

import (
	"time"

	"github.com/Aioros01/veterinaria-sistema-sub000/internal/repository"

	"github.com/shopspring/decimal"
)

type DashboardService interface {
	GetDashboardStats() (*DashboardOverview, error)
	GetSalesMovement(days int) ([]repository.SalesMovementData, error)
}

// DashboardOverview combines entity counts with an appointment and revenue
// snapshot for the landing page cards.
type DashboardOverview struct {
	repository.DashboardStats
	AppointmentsToday int64           `json:"appointments_today"`
	RevenueThisMonth  decimal.Decimal `json:"revenue_this_month"`
}

type dashboardService struct {
	saleRepo repository.SaleRepository
	apptRepo repository.AppointmentRepository
}

func NewDashboardService(saleRepo repository.SaleRepository, apptRepo repository.AppointmentRepository) DashboardService {
	return &dashboardService{saleRepo: saleRepo, apptRepo: apptRepo}
}

func (s *dashboardService) GetDashboardStats() (*DashboardOverview, error) {
	stats, err := s.saleRepo.GetDashboardStats()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	apptToday, err := s.apptRepo.CountByDateRange(dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	revenue, err := s.saleRepo.GetRevenue(monthStart, now)
	if err != nil {
		return nil, err
	}

	return &DashboardOverview{
		DashboardStats:    *stats,
		AppointmentsToday: apptToday,
		RevenueThisMonth:  revenue,
	}, nil
}

func (s *dashboardService) GetSalesMovement(days int) ([]repository.SalesMovementData, error) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)

	return s.saleRepo.GetSalesMovement(startDate, endDate)
}
