package handler

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Aioros01/veterinaria-sistema-sub000/internal/model"
	"github.com/Aioros01/veterinaria-sistema-sub000/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSaleService lets each test pin the error the handler has to translate
type stubSaleService struct {
	err  error
	sale *model.Sale
}

func (s *stubSaleService) ProcessSale(req *service.SaleRequest, userID, userName, userEmail string) (*model.Sale, error) {
	return s.sale, s.err
}

func (s *stubSaleService) SuggestSplit(medicineID uuid.UUID, quantity int) (*service.SplitSuggestion, error) {
	return &service.SplitSuggestion{}, s.err
}

func (s *stubSaleService) VoidSale(id uuid.UUID, userID, userName string) error {
	return s.err
}

func (s *stubSaleService) GetAllSales() ([]model.Sale, error) { return nil, s.err }

func (s *stubSaleService) GetSaleByID(id uuid.UUID) (*model.Sale, error) { return s.sale, s.err }

func newSaleTestApp(svc service.SaleService) *fiber.App {
	app := fiber.New()
	h := NewSaleHandler(svc)
	app.Post("/sales", h.CreateSale)
	app.Post("/sales/from-prescription", h.CreateSaleFromPrescription)
	app.Delete("/sales/:id", h.VoidSale)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) int {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestSaleErrorStatusMapping(t *testing.T) {
	body := `{"client_id":"a","pet_id":"b","medicine_id":"c","quantity":1}`

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"medicine not found", service.ErrMedicineNotFound, 404},
		{"prescription not found", service.ErrPrescriptionNotFound, 404},
		{"insufficient stock", service.ErrInsufficientStock, 400},
		{"invalid discount", service.ErrInvalidDiscount, 400},
		{"invalid split", service.ErrInvalidSplit, 400},
		{"pharmacy required", service.ErrExternalPharmacyRequired, 400},
		{"medicine mismatch", service.ErrPrescriptionMedicineMismatch, 400},
		{"already fulfilled", service.ErrPrescriptionAlreadyFulfilled, 409},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newSaleTestApp(&stubSaleService{err: tt.err})
			assert.Equal(t, tt.want, postJSON(t, app, "/sales", body))
		})
	}
}

func TestCreateSaleSuccess(t *testing.T) {
	app := newSaleTestApp(&stubSaleService{sale: &model.Sale{Quantity: 1}})
	status := postJSON(t, app, "/sales", `{"client_id":"a","pet_id":"b","medicine_id":"c","quantity":1}`)
	assert.Equal(t, 201, status)
}

func TestCreateSaleFromPrescriptionRequiresID(t *testing.T) {
	app := newSaleTestApp(&stubSaleService{sale: &model.Sale{}})

	req := httptest.NewRequest("POST", "/sales/from-prescription",
		strings.NewReader(`{"client_id":"a","pet_id":"b","medicine_id":"c","quantity":1}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode, "missing prescription reference")

	// The error names the field as it appears on the wire
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "prescription_id")

	status := postJSON(t, app, "/sales/from-prescription",
		`{"client_id":"a","pet_id":"b","medicine_id":"c","quantity":1,"prescription_id":"`+uuid.NewString()+`"}`)
	assert.Equal(t, 201, status)
}

func TestVoidSaleStatuses(t *testing.T) {
	id := uuid.NewString()

	app := newSaleTestApp(&stubSaleService{})
	req := httptest.NewRequest("DELETE", "/sales/"+id, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	app = newSaleTestApp(&stubSaleService{err: service.ErrSaleNotFound})
	resp, err = app.Test(httptest.NewRequest("DELETE", "/sales/"+id, nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("DELETE", "/sales/not-a-uuid", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}
