package service

import (
	"testing"
	"time"

	"github.com/Aioros01/veterinaria-sistema-sub000/internal/model"
	"github.com/Aioros01/veterinaria-sistema-sub000/internal/repository"
	"github.com/Aioros01/veterinaria-sistema-sub000/internal/ws"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupInventoryTest(t *testing.T) (*gorm.DB, InventoryService) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:inv_"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Medicine{}))

	hub := ws.NewHub()
	go hub.Run()

	return db, NewInventoryService(repository.NewMedicineRepo(db), db, hub)
}

func TestCreateMedicineDuplicateName(t *testing.T) {
	_, svc := setupInventoryTest(t)

	m := model.Medicine{Name: "Amoxicillin 500mg", UnitPrice: decimal.RequireFromString("15.99"), CurrentStock: 10}
	require.NoError(t, svc.CreateMedicine(&m, "user-1", "Ana"))

	dup := model.Medicine{Name: "Amoxicillin 500mg", UnitPrice: decimal.RequireFromString("9.99")}
	err := svc.CreateMedicine(&dup, "user-1", "Ana")
	assert.ErrorIs(t, err, ErrMedicineNameTaken)
}

func TestAdjustStock(t *testing.T) {
	_, svc := setupInventoryTest(t)

	m := model.Medicine{Name: "Carprofen 75mg", UnitPrice: decimal.RequireFromString("8.50"), CurrentStock: 10}
	require.NoError(t, svc.CreateMedicine(&m, "user-1", "Ana"))

	adjusted, err := svc.AdjustStock(m.ID, 15, "restock delivery", "user-1", "Ana")
	require.NoError(t, err)
	assert.Equal(t, 25, adjusted.CurrentStock)

	adjusted, err = svc.AdjustStock(m.ID, -5, "broken vials", "user-1", "Ana")
	require.NoError(t, err)
	assert.Equal(t, 20, adjusted.CurrentStock)

	_, err = svc.AdjustStock(m.ID, -21, "bad count", "user-1", "Ana")
	assert.ErrorIs(t, err, ErrInsufficientStock)

	_, err = svc.AdjustStock(m.ID, 0, "noop", "user-1", "Ana")
	assert.ErrorIs(t, err, ErrInvalidAdjustment)
}

func TestGetLowStockAndExpiring(t *testing.T) {
	db, svc := setupInventoryTest(t)

	soon := time.Now().AddDate(0, 0, 10)
	later := time.Now().AddDate(1, 0, 0)
	past := time.Now().AddDate(0, 0, -5)
	rows := []model.Medicine{
		{Name: "Low", UnitPrice: decimal.NewFromInt(1), CurrentStock: 2, MinimumStock: 5},
		{Name: "Ok", UnitPrice: decimal.NewFromInt(1), CurrentStock: 50, MinimumStock: 5, ExpirationDate: &later},
		{Name: "Expiring", UnitPrice: decimal.NewFromInt(1), CurrentStock: 50, MinimumStock: 5, ExpirationDate: &soon},
		{Name: "Expired", UnitPrice: decimal.NewFromInt(1), CurrentStock: 50, MinimumStock: 5, ExpirationDate: &past},
	}
	for i := range rows {
		require.NoError(t, db.Create(&rows[i]).Error)
	}

	low, err := svc.GetLowStock()
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "Low", low[0].Name)

	// Already-expired stock is not "expiring soon"
	expiring, err := svc.GetExpiring(30)
	require.NoError(t, err)
	require.Len(t, expiring, 1)
	assert.Equal(t, "Expiring", expiring[0].Name)
}
