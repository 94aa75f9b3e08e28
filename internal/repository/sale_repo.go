package repository

import (
	"time"

	"github.com/Aioros01/veterinaria-sistema-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SaleRepository interface {
	FindAll() ([]model.Sale, error)
	FindByID(id uuid.UUID) (*model.Sale, error)
	FindByPrescription(prescriptionID uuid.UUID) ([]model.Sale, error)
	GetSalesMovement(startDate, endDate time.Time) ([]SalesMovementData, error)
	GetDashboardStats() (*DashboardStats, error)
	GetRevenue(startDate, endDate time.Time) (decimal.Decimal, error)
}

// SalesMovementData aggregates dispensed units per day for the dashboard chart
type SalesMovementData struct {
	Date          string `json:"date"`
	UnitsInClinic int    `json:"units_in_clinic"`
	UnitsExternal int    `json:"units_external"`
	SaleCount     int    `json:"sale_count"`
}

// DashboardStats for the overview cards
type DashboardStats struct {
	TotalClients      int64           `json:"total_clients"`
	TotalPets         int64           `json:"total_pets"`
	TotalMedicines    int64           `json:"total_medicines"`
	LowStockCount     int64           `json:"low_stock_count"`
	OpenAdmissions    int64           `json:"open_admissions"`
	InventoryValue    decimal.Decimal `json:"inventory_value"`
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

func (r *saleRepo) FindAll() ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Preload("Client").Preload("Pet").Preload("Medicine").Preload("CreatedByUser").
		Order("created_at DESC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindByID(id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	err := r.db.Preload("Client").Preload("Pet").Preload("Medicine").Preload("Prescription").Preload("CreatedByUser").
		First(&sale, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepo) FindByPrescription(prescriptionID uuid.UUID) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Where("prescription_id = ?", prescriptionID).
		Order("created_at ASC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) GetSalesMovement(startDate, endDate time.Time) ([]SalesMovementData, error) {
	var results []SalesMovementData

	rows, err := r.db.Model(&model.Sale{}).
		Select(`
			DATE(created_at) as date,
			COALESCE(SUM(quantity_in_clinic), 0) as units_in_clinic,
			COALESCE(SUM(quantity_external), 0) as units_external,
			COUNT(*) as sale_count
		`).
		Where("created_at BETWEEN ? AND ?", startDate, endDate).
		Group("DATE(created_at)").
		Order("date ASC").
		Rows()

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data SalesMovementData
		if err := rows.Scan(&data.Date, &data.UnitsInClinic, &data.UnitsExternal, &data.SaleCount); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, nil
}

func (r *saleRepo) GetDashboardStats() (*DashboardStats, error) {
	var stats DashboardStats

	r.db.Model(&model.Client{}).Count(&stats.TotalClients)
	r.db.Model(&model.Pet{}).Count(&stats.TotalPets)
	r.db.Model(&model.Medicine{}).Count(&stats.TotalMedicines)
	r.db.Model(&model.Medicine{}).Where("current_stock <= minimum_stock").Count(&stats.LowStockCount)
	r.db.Model(&model.Hospitalization{}).Where("discharged_at IS NULL").Count(&stats.OpenAdmissions)

	var valuation decimal.NullDecimal
	r.db.Model(&model.Medicine{}).
		Select("COALESCE(SUM(current_stock * unit_price), 0)").
		Scan(&valuation)
	if valuation.Valid {
		stats.InventoryValue = valuation.Decimal
	}

	return &stats, nil
}

func (r *saleRepo) GetRevenue(startDate, endDate time.Time) (decimal.Decimal, error) {
	var revenue decimal.NullDecimal
	err := r.db.Model(&model.Sale{}).
		Where("created_at BETWEEN ? AND ?", startDate, endDate).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&revenue).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !revenue.Valid {
		return decimal.Zero, nil
	}
	return revenue.Decimal, nil
}
