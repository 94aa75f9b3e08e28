package service

import (
	"sync"
	"testing"

	"github.com/Aioros01/veterinaria-sistema-sub000/internal/model"
	"github.com/Aioros01/veterinaria-sistema-sub000/internal/repository"
	"github.com/Aioros01/veterinaria-sistema-sub000/internal/ws"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestComputeSaleSplit(t *testing.T) {
	tests := []struct {
		name       string
		quantity   int
		stock      int
		wantLoc    model.PurchaseLocation
		wantClinic int
		wantExt    int
	}{
		{"stock covers request", 10, 50, model.LocationInClinic, 10, 0},
		{"stock exactly covers request", 10, 10, model.LocationInClinic, 10, 0},
		{"no stock at all", 10, 0, model.LocationExternal, 0, 10},
		{"partial stock", 10, 4, model.LocationSplit, 4, 6},
		{"single unit short", 10, 9, model.LocationSplit, 9, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, inClinic, external := ComputeSaleSplit(tt.quantity, tt.stock)
			assert.Equal(t, tt.wantLoc, loc)
			assert.Equal(t, tt.wantClinic, inClinic)
			assert.Equal(t, tt.wantExt, external)
			assert.Equal(t, tt.quantity, inClinic+external, "split must conserve the requested quantity")
		})
	}
}

func TestComputePrice(t *testing.T) {
	price := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }

	t.Run("no discount", func(t *testing.T) {
		total, err := ComputePrice(10, price("15.99"), 0, model.LocationInClinic)
		require.NoError(t, err)
		assert.True(t, total.Equal(price("159.90")), "got %s", total)
	})

	t.Run("ten percent discount", func(t *testing.T) {
		total, err := ComputePrice(10, price("15.99"), 10, model.LocationInClinic)
		require.NoError(t, err)
		assert.True(t, total.Equal(price("143.91")), "got %s", total)
	})

	t.Run("rounds half up", func(t *testing.T) {
		// 1 x 0.05 with 50% off = 0.025, rounds to 0.03
		total, err := ComputePrice(1, price("0.05"), 50, model.LocationInClinic)
		require.NoError(t, err)
		assert.True(t, total.Equal(price("0.03")), "got %s", total)
	})

	t.Run("external purchase is free", func(t *testing.T) {
		total, err := ComputePrice(0, price("15.99"), 25, model.LocationExternal)
		require.NoError(t, err)
		assert.True(t, total.IsZero())
	})

	t.Run("discount out of range", func(t *testing.T) {
		_, err := ComputePrice(10, price("15.99"), 150, model.LocationInClinic)
		assert.ErrorIs(t, err, ErrInvalidDiscount)

		_, err = ComputePrice(10, price("15.99"), -1, model.LocationInClinic)
		assert.ErrorIs(t, err, ErrInvalidDiscount)
	})

	t.Run("higher discount never costs more", func(t *testing.T) {
		prev := price("999999")
		for pct := 0.0; pct <= 100; pct += 12.5 {
			total, err := ComputePrice(7, price("3.33"), pct, model.LocationSplit)
			require.NoError(t, err)
			assert.True(t, total.LessThanOrEqual(prev), "pct=%v total=%s prev=%s", pct, total, prev)
			prev = total
		}
	})
}

// --- transaction-level tests over an in-memory database ---

type saleTestEnv struct {
	db      *gorm.DB
	service SaleService
	client  model.Client
	pet     model.Pet
}

func setupSaleTest(t *testing.T) *saleTestEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:sale_"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Client{}, &model.Pet{},
		&model.Medicine{}, &model.Prescription{}, &model.Sale{},
	))

	hub := ws.NewHub()
	go hub.Run()

	medicineRepo := repository.NewMedicineRepo(db)
	prescriptionRepo := repository.NewPrescriptionRepo(db)
	saleRepo := repository.NewSaleRepo(db)

	env := &saleTestEnv{
		db:      db,
		service: NewSaleService(medicineRepo, prescriptionRepo, saleRepo, db, hub),
	}

	env.client = model.Client{FullName: "Maria Lopez", DocumentID: "0912345678"}
	require.NoError(t, db.Create(&env.client).Error)
	env.pet = model.Pet{ClientID: env.client.ID, Name: "Firulais", Species: "dog"}
	require.NoError(t, db.Create(&env.pet).Error)

	return env
}

func (e *saleTestEnv) createMedicine(t *testing.T, name string, stock int, unitPrice string) model.Medicine {
	t.Helper()
	m := model.Medicine{
		Name:         name,
		UnitPrice:    decimal.RequireFromString(unitPrice),
		CurrentStock: stock,
	}
	require.NoError(t, e.db.Create(&m).Error)
	return m
}

func (e *saleTestEnv) createPrescription(t *testing.T, medicineID uuid.UUID, quantity int) model.Prescription {
	t.Helper()
	p := model.Prescription{
		PetID:          e.pet.ID,
		MedicineID:     medicineID,
		VeterinarianID: uuid.New(),
		Quantity:       quantity,
		PurchaseStatus: model.PurchaseNotPurchased,
	}
	require.NoError(t, e.db.Create(&p).Error)
	return p
}

func (e *saleTestEnv) baseRequest(medicineID uuid.UUID, quantity int) *SaleRequest {
	return &SaleRequest{
		ClientID:   e.client.ID.String(),
		PetID:      e.pet.ID.String(),
		MedicineID: medicineID.String(),
		Quantity:   quantity,
	}
}

func (e *saleTestEnv) currentStock(t *testing.T, id uuid.UUID) int {
	t.Helper()
	var m model.Medicine
	require.NoError(t, e.db.First(&m, "id = ?", id).Error)
	return m.CurrentStock
}

func TestProcessSaleInClinic(t *testing.T) {
	env := setupSaleTest(t)
	med := env.createMedicine(t, "Amoxicillin 500mg", 50, "15.99")

	sale, err := env.service.ProcessSale(env.baseRequest(med.ID, 10), "user-1", "Ana", "ana@clinic.test")
	require.NoError(t, err)

	assert.Equal(t, model.LocationInClinic, sale.PurchaseLocation)
	assert.Equal(t, 10, sale.QuantityInClinic)
	assert.Equal(t, 0, sale.QuantityExternal)
	assert.True(t, sale.TotalPrice.Equal(decimal.RequireFromString("159.90")), "got %s", sale.TotalPrice)
	assert.True(t, sale.UnitPrice.Equal(med.UnitPrice), "unit price snapshot")
	assert.Equal(t, 40, env.currentStock(t, med.ID))
}

func TestProcessSaleInsufficientStock(t *testing.T) {
	env := setupSaleTest(t)
	med := env.createMedicine(t, "Carprofen 75mg", 3, "8.50")

	req := env.baseRequest(med.ID, 10)
	req.PurchaseLocation = string(model.LocationInClinic)

	_, err := env.service.ProcessSale(req, "user-1", "Ana", "ana@clinic.test")
	assert.ErrorIs(t, err, ErrInsufficientStock)

	assert.Equal(t, 3, env.currentStock(t, med.ID), "stock untouched on failure")
	var count int64
	env.db.Model(&model.Sale{}).Count(&count)
	assert.Zero(t, count, "no sale row on failure")
}

func TestProcessSaleInvalidDiscount(t *testing.T) {
	env := setupSaleTest(t)
	med := env.createMedicine(t, "Meloxicam 1.5mg", 20, "12.00")

	req := env.baseRequest(med.ID, 5)
	req.DiscountPercentage = 150

	_, err := env.service.ProcessSale(req, "user-1", "Ana", "ana@clinic.test")
	assert.ErrorIs(t, err, ErrInvalidDiscount)
	assert.Equal(t, 20, env.currentStock(t, med.ID))
}

func TestProcessSaleAutoSplit(t *testing.T) {
	env := setupSaleTest(t)
	med := env.createMedicine(t, "Prednisolone 5mg", 4, "2.50")

	req := env.baseRequest(med.ID, 10)
	req.ExternalPharmacy = "Farmacia Central"

	sale, err := env.service.ProcessSale(req, "user-1", "Ana", "ana@clinic.test")
	require.NoError(t, err)

	assert.Equal(t, model.LocationSplit, sale.PurchaseLocation)
	assert.Equal(t, 4, sale.QuantityInClinic)
	assert.Equal(t, 6, sale.QuantityExternal)
	assert.True(t, sale.TotalPrice.Equal(decimal.RequireFromString("10.00")), "only the in-clinic units are charged, got %s", sale.TotalPrice)
	assert.Equal(t, 0, env.currentStock(t, med.ID))
}

func TestProcessSaleExternalPharmacyRequired(t *testing.T) {
	env := setupSaleTest(t)
	med := env.createMedicine(t, "Insulin 100IU", 0, "45.00")

	_, err := env.service.ProcessSale(env.baseRequest(med.ID, 5), "user-1", "Ana", "ana@clinic.test")
	assert.ErrorIs(t, err, ErrExternalPharmacyRequired)
}

func TestProcessSaleExternalDiscountIgnored(t *testing.T) {
	env := setupSaleTest(t)
	med := env.createMedicine(t, "Tramadol 50mg", 0, "6.00")

	req := env.baseRequest(med.ID, 5)
	req.ExternalPharmacy = "Farmacia Norte"
	req.DiscountPercentage = 20

	sale, err := env.service.ProcessSale(req, "user-1", "Ana", "ana@clinic.test")
	require.NoError(t, err)
	assert.Equal(t, model.LocationExternal, sale.PurchaseLocation)
	assert.Zero(t, sale.DiscountPercentage, "discount has no meaning on external purchases")
	assert.True(t, sale.TotalPrice.IsZero())
}

func TestProcessSaleMedicineNotFound(t *testing.T) {
	env := setupSaleTest(t)

	_, err := env.service.ProcessSale(env.baseRequest(uuid.New(), 5), "user-1", "Ana", "ana@clinic.test")
	assert.ErrorIs(t, err, ErrMedicineNotFound)
}

func TestProcessSalePrescriptionLifecycle(t *testing.T) {
	env := setupSaleTest(t)
	med := env.createMedicine(t, "Doxycycline 100mg", 100, "4.25")
	presc := env.createPrescription(t, med.ID, 10)
	prescID := presc.ID.String()

	// First sale covers part of the prescription
	req := env.baseRequest(med.ID, 4)
	req.PrescriptionID = &prescID
	_, err := env.service.ProcessSale(req, "user-1", "Ana", "ana@clinic.test")
	require.NoError(t, err)

	var got model.Prescription
	require.NoError(t, env.db.First(&got, "id = ?", presc.ID).Error)
	assert.Equal(t, model.PurchasePartial, got.PurchaseStatus)

	// Second sale completes it externally
	req = env.baseRequest(med.ID, 6)
	req.PrescriptionID = &prescID
	req.PurchaseLocation = string(model.LocationExternal)
	req.ExternalPharmacy = "Farmacia Central"
	_, err = env.service.ProcessSale(req, "user-1", "Ana", "ana@clinic.test")
	require.NoError(t, err)

	require.NoError(t, env.db.First(&got, "id = ?", presc.ID).Error)
	assert.Equal(t, model.PurchaseComplete, got.PurchaseStatus)

	// A third sale against the fulfilled prescription is rejected
	req = env.baseRequest(med.ID, 1)
	req.PrescriptionID = &prescID
	_, err = env.service.ProcessSale(req, "user-1", "Ana", "ana@clinic.test")
	assert.ErrorIs(t, err, ErrPrescriptionAlreadyFulfilled)

	// 4 in-clinic units left the shelf across the whole lifecycle
	assert.Equal(t, 96, env.currentStock(t, med.ID))
}

func TestProcessSalePrescriptionMedicineMismatch(t *testing.T) {
	env := setupSaleTest(t)
	med := env.createMedicine(t, "Cephalexin 250mg", 30, "3.10")
	other := env.createMedicine(t, "Ivermectin 6mg", 30, "7.80")
	presc := env.createPrescription(t, other.ID, 5)
	prescID := presc.ID.String()

	req := env.baseRequest(med.ID, 5)
	req.PrescriptionID = &prescID

	_, err := env.service.ProcessSale(req, "user-1", "Ana", "ana@clinic.test")
	assert.ErrorIs(t, err, ErrPrescriptionMedicineMismatch)
	assert.Equal(t, 30, env.currentStock(t, med.ID))
}

func TestProcessSaleExplicitSplitMustAddUp(t *testing.T) {
	env := setupSaleTest(t)
	med := env.createMedicine(t, "Furosemide 40mg", 20, "1.90")

	three, four := 3, 4
	req := env.baseRequest(med.ID, 10)
	req.PurchaseLocation = string(model.LocationSplit)
	req.QuantityInClinic = &three
	req.QuantityExternal = &four
	req.ExternalPharmacy = "Farmacia Sur"

	_, err := env.service.ProcessSale(req, "user-1", "Ana", "ana@clinic.test")
	assert.ErrorIs(t, err, ErrInvalidSplit)
}

func TestVoidSaleRestoresStockAndStatus(t *testing.T) {
	env := setupSaleTest(t)
	med := env.createMedicine(t, "Enrofloxacin 50mg", 50, "5.00")
	presc := env.createPrescription(t, med.ID, 10)
	prescID := presc.ID.String()

	req := env.baseRequest(med.ID, 10)
	req.PrescriptionID = &prescID
	sale, err := env.service.ProcessSale(req, "user-1", "Ana", "ana@clinic.test")
	require.NoError(t, err)
	require.Equal(t, 40, env.currentStock(t, med.ID))

	var got model.Prescription
	require.NoError(t, env.db.First(&got, "id = ?", presc.ID).Error)
	require.Equal(t, model.PurchaseInClinic, got.PurchaseStatus)

	require.NoError(t, env.service.VoidSale(sale.ID, "user-2", "Luis"))

	assert.Equal(t, 50, env.currentStock(t, med.ID), "voided units return to stock")
	require.NoError(t, env.db.First(&got, "id = ?", presc.ID).Error)
	assert.Equal(t, model.PurchaseNotPurchased, got.PurchaseStatus, "prescription reopens")

	var count int64
	env.db.Model(&model.Sale{}).Count(&count)
	assert.Zero(t, count, "voided sale is excluded from listings")
}

// Two clerks selling the same medicine at the same time must serialize on the
// medicine row: the loser sees the decremented stock and fails cleanly, and
// stock never goes negative.
func TestProcessSaleConcurrentStockGuard(t *testing.T) {
	env := setupSaleTest(t)
	med := env.createMedicine(t, "Metronidazole 250mg", 50, "3.75")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.service.ProcessSale(env.baseRequest(med.ID, 30), "user-1", "Ana", "ana@clinic.test")
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		}
	}
	assert.LessOrEqual(t, successes, 1, "only one sale can claim the stock")

	stock := env.currentStock(t, med.ID)
	assert.Equal(t, 50-30*successes, stock)
	assert.GreaterOrEqual(t, stock, 0, "stock never goes negative")
}

func TestVoidSaleNotFound(t *testing.T) {
	env := setupSaleTest(t)
	err := env.service.VoidSale(uuid.New(), "user-1", "Ana")
	assert.ErrorIs(t, err, ErrSaleNotFound)
}

func TestSuggestSplit(t *testing.T) {
	env := setupSaleTest(t)
	med := env.createMedicine(t, "Ketoconazole 200mg", 4, "9.99")

	suggestion, err := env.service.SuggestSplit(med.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, model.LocationSplit, suggestion.PurchaseLocation)
	assert.Equal(t, 4, suggestion.QuantityInClinic)
	assert.Equal(t, 6, suggestion.QuantityExternal)
	assert.Equal(t, 4, suggestion.AvailableStock)

	_, err = env.service.SuggestSplit(uuid.New(), 10)
	assert.ErrorIs(t, err, ErrMedicineNotFound)
}
