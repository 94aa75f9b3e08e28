package service

import (
	"errors"
	"fmt"

	"github.com/Aioros01/veterinaria-sistema-sub000/internal/model"
	"github.com/Aioros01/veterinaria-sistema-sub000/internal/repository"
	"github.com/Aioros01/veterinaria-sistema-sub000/internal/ws"
	"github.com/Aioros01/veterinaria-sistema-sub000/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrMedicineNotFound             = errors.New("medicine not found")
	ErrInsufficientStock            = errors.New("insufficient stock remaining")
	ErrInvalidDiscount              = errors.New("discount percentage must be between 0 and 100")
	ErrPrescriptionNotFound         = errors.New("prescription not found")
	ErrPrescriptionAlreadyFulfilled = errors.New("prescription is already fully purchased")
	ErrPrescriptionMedicineMismatch = errors.New("prescription was issued for a different medicine")
	ErrInvalidSplit                 = errors.New("in-clinic and external quantities must add up to the requested quantity")
	ErrExternalPharmacyRequired     = errors.New("external pharmacy name is required for external or split purchases")
	ErrSaleNotFound                 = errors.New("sale not found")
)

// ComputeSaleSplit suggests how a requested quantity should be divided between
// in-clinic and external fulfillment given the stock on hand. Pure function;
// the staff member may override the suggestion as long as the in-clinic portion
// stays within available stock.
func ComputeSaleSplit(requestedQuantity, availableStock int) (model.PurchaseLocation, int, int) {
	switch {
	case availableStock >= requestedQuantity:
		return model.LocationInClinic, requestedQuantity, 0
	case availableStock == 0:
		return model.LocationExternal, 0, requestedQuantity
	default:
		return model.LocationSplit, availableStock, requestedQuantity - availableStock
	}
}

// ComputePrice returns the amount charged for the in-clinic portion of a sale,
// rounded half-up to 2 decimal places. External purchases are never charged.
func ComputePrice(quantityInClinic int, unitPrice decimal.Decimal, discountPercentage float64, location model.PurchaseLocation) (decimal.Decimal, error) {
	if discountPercentage < 0 || discountPercentage > 100 {
		return decimal.Zero, ErrInvalidDiscount
	}
	if location == model.LocationExternal {
		return decimal.Zero, nil
	}
	subtotal := unitPrice.Mul(decimal.NewFromInt(int64(quantityInClinic)))
	discount := subtotal.Mul(decimal.NewFromFloat(discountPercentage)).Div(decimal.NewFromInt(100))
	return subtotal.Sub(discount).Round(2), nil
}

// SaleRequest is the payload for both direct and prescription-linked sales
type SaleRequest struct {
	ClientID           string  `json:"client_id" validate:"required"`
	PetID              string  `json:"pet_id" validate:"required"`
	MedicineID         string  `json:"medicine_id" validate:"required"`
	PrescriptionID     *string `json:"prescription_id,omitempty"`
	Quantity           int     `json:"quantity" validate:"required,gt=0"`
	PurchaseLocation   string  `json:"purchase_location" validate:"omitempty,oneof=in_clinic external split"`
	QuantityInClinic   *int    `json:"quantity_in_clinic,omitempty"`
	QuantityExternal   *int    `json:"quantity_external,omitempty"`
	DiscountPercentage float64 `json:"discount_percentage"`
	ExternalPharmacy   string  `json:"external_pharmacy"`
	Notes              string  `json:"notes"`
}

// SplitSuggestion is the default split the UI offers before the sale is confirmed
type SplitSuggestion struct {
	PurchaseLocation model.PurchaseLocation `json:"purchase_location"`
	QuantityInClinic int                    `json:"quantity_in_clinic"`
	QuantityExternal int                    `json:"quantity_external"`
	AvailableStock   int                    `json:"available_stock"`
}

type SaleService interface {
	ProcessSale(req *SaleRequest, userID, userName, userEmail string) (*model.Sale, error)
	SuggestSplit(medicineID uuid.UUID, quantity int) (*SplitSuggestion, error)
	VoidSale(id uuid.UUID, userID, userName string) error
	GetAllSales() ([]model.Sale, error)
	GetSaleByID(id uuid.UUID) (*model.Sale, error)
}

type saleService struct {
	medicineRepo     repository.MedicineRepository
	prescriptionRepo repository.PrescriptionRepository
	saleRepo         repository.SaleRepository
	db               *gorm.DB
	wsHub            *ws.Hub
}

func NewSaleService(
	medicineRepo repository.MedicineRepository,
	prescriptionRepo repository.PrescriptionRepository,
	saleRepo repository.SaleRepository,
	db *gorm.DB,
	hub *ws.Hub,
) SaleService {
	return &saleService{
		medicineRepo:     medicineRepo,
		prescriptionRepo: prescriptionRepo,
		saleRepo:         saleRepo,
		db:               db,
		wsHub:            hub,
	}
}

// resolveSplit applies the caller's explicit location choice, or falls back to
// the suggested split when none was given.
func resolveSplit(req *SaleRequest, availableStock int) (model.PurchaseLocation, int, int, error) {
	if req.PurchaseLocation == "" {
		loc, inClinic, external := ComputeSaleSplit(req.Quantity, availableStock)
		return loc, inClinic, external, nil
	}

	location := model.PurchaseLocation(req.PurchaseLocation)
	switch location {
	case model.LocationInClinic:
		return location, req.Quantity, 0, nil
	case model.LocationExternal:
		return location, 0, req.Quantity, nil
	case model.LocationSplit:
		if req.QuantityInClinic == nil || req.QuantityExternal == nil {
			return "", 0, 0, ErrInvalidSplit
		}
		inClinic, external := *req.QuantityInClinic, *req.QuantityExternal
		if inClinic < 0 || external < 0 || inClinic+external != req.Quantity {
			return "", 0, 0, ErrInvalidSplit
		}
		return location, inClinic, external, nil
	}
	return "", 0, 0, ErrInvalidSplit
}

func (s *saleService) ProcessSale(req *SaleRequest, userID, userName, userEmail string) (*model.Sale, error) {
	// 1. Struct validation
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	// 2. Reject bad discounts before touching anything
	if req.DiscountPercentage < 0 || req.DiscountPercentage > 100 {
		return nil, ErrInvalidDiscount
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return nil, errors.New("invalid client ID format")
	}
	petID, err := uuid.Parse(req.PetID)
	if err != nil {
		return nil, errors.New("invalid pet ID format")
	}
	medicineID, err := uuid.Parse(req.MedicineID)
	if err != nil {
		return nil, errors.New("invalid medicine ID format")
	}
	var prescriptionID *uuid.UUID
	if req.PrescriptionID != nil {
		parsed, err := uuid.Parse(*req.PrescriptionID)
		if err != nil {
			return nil, errors.New("invalid prescription ID format")
		}
		prescriptionID = &parsed
	}

	var created *model.Sale
	var newStock int
	var medicineName string

	// Check-and-decrement, sale insert, and prescription transition run in one
	// transaction with the medicine row locked. Concurrent sales against the
	// same medicine serialize here; the loser of the race sees the decremented
	// stock and fails cleanly instead of overselling.
	err = s.db.Transaction(func(tx *gorm.DB) error {
		medicine, err := s.medicineRepo.FindForUpdate(tx, medicineID)
		if err != nil {
			return ErrMedicineNotFound
		}

		location, inClinic, external, err := resolveSplit(req, medicine.CurrentStock)
		if err != nil {
			return err
		}

		// No partial silent correction: the caller either used the suggested
		// split or explicitly accepted the shortfall.
		if location != model.LocationExternal && inClinic > medicine.CurrentStock {
			return ErrInsufficientStock
		}
		if external > 0 && req.ExternalPharmacy == "" {
			return ErrExternalPharmacyRequired
		}

		// The external portion is never charged
		discount := req.DiscountPercentage
		if location == model.LocationExternal {
			discount = 0
		}

		var prescription model.Prescription
		if prescriptionID != nil {
			if err := tx.First(&prescription, "id = ?", *prescriptionID).Error; err != nil {
				return ErrPrescriptionNotFound
			}
			if prescription.PurchaseStatus.IsTerminal() {
				return ErrPrescriptionAlreadyFulfilled
			}
			if prescription.MedicineID != medicineID {
				return ErrPrescriptionMedicineMismatch
			}
		}

		total, err := ComputePrice(inClinic, medicine.UnitPrice, discount, location)
		if err != nil {
			return err
		}

		if inClinic > 0 {
			if err := s.medicineRepo.UpdateStock(tx, medicine.ID, medicine.CurrentStock-inClinic, userID); err != nil {
				return err
			}
		}

		sale := &model.Sale{
			ClientID:           clientID,
			PetID:              petID,
			MedicineID:         medicine.ID,
			PrescriptionID:     prescriptionID,
			Quantity:           req.Quantity,
			PurchaseLocation:   location,
			QuantityInClinic:   inClinic,
			QuantityExternal:   external,
			UnitPrice:          medicine.UnitPrice, // snapshot at sale time
			DiscountPercentage: discount,
			TotalPrice:         total,
			ExternalPharmacy:   req.ExternalPharmacy,
			Notes:              req.Notes,
		}
		sale.CreatedBy = userID
		sale.UpdatedBy = userID
		sale.CreatedByUserID = &userID
		if err := tx.Create(sale).Error; err != nil {
			return err
		}

		if prescriptionID != nil {
			fulfilledIn, fulfilledExt, err := s.prescriptionRepo.SumFulfilled(tx, *prescriptionID)
			if err != nil {
				return err
			}
			status := model.ResolvePurchaseStatus(prescription.Quantity, fulfilledIn, fulfilledExt)
			if err := s.prescriptionRepo.UpdatePurchaseStatus(tx, prescription.ID, status, userID); err != nil {
				return err
			}
		}

		created = sale
		newStock = medicine.CurrentStock - inClinic
		medicineName = medicine.Name
		return nil
	})

	if err != nil {
		return nil, err
	}

	go s.wsHub.Publish(map[string]interface{}{
		"type":   "stock_update",
		"action": "sale_processed",
		"sale": map[string]interface{}{
			"id":                 created.ID,
			"medicine_id":        created.MedicineID,
			"medicine":           medicineName,
			"quantity_in_clinic": created.QuantityInClinic,
			"quantity_external":  created.QuantityExternal,
			"total_price":        created.TotalPrice,
			"new_stock":          newStock,
		},
		"user": map[string]interface{}{
			"id":    userID,
			"name":  userName,
			"email": userEmail,
		},
		"message": fmt.Sprintf("%s sold %d units of '%s'", userName, created.QuantityInClinic, medicineName),
	})

	return created, nil
}

func (s *saleService) SuggestSplit(medicineID uuid.UUID, quantity int) (*SplitSuggestion, error) {
	if quantity <= 0 {
		return nil, errors.New("quantity must be greater than zero")
	}
	medicine, err := s.medicineRepo.FindByID(medicineID)
	if err != nil {
		return nil, ErrMedicineNotFound
	}
	location, inClinic, external := ComputeSaleSplit(quantity, medicine.CurrentStock)
	return &SplitSuggestion{
		PurchaseLocation: location,
		QuantityInClinic: inClinic,
		QuantityExternal: external,
		AvailableStock:   medicine.CurrentStock,
	}, nil
}

// VoidSale deletes a sale, restores the in-clinic quantity to stock, and
// recomputes the linked prescription's purchase status. Best-effort path for
// data-entry mistakes; runs as a single transaction.
func (s *saleService) VoidSale(id uuid.UUID, userID, userName string) error {
	var medicineName string
	var restored int

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var sale model.Sale
		if err := tx.First(&sale, "id = ?", id).Error; err != nil {
			return ErrSaleNotFound
		}

		medicine, err := s.medicineRepo.FindForUpdate(tx, sale.MedicineID)
		if err != nil {
			return ErrMedicineNotFound
		}

		if sale.QuantityInClinic > 0 {
			if err := s.medicineRepo.UpdateStock(tx, medicine.ID, medicine.CurrentStock+sale.QuantityInClinic, userID); err != nil {
				return err
			}
		}

		if err := tx.Model(&sale).Update("deleted_by", userID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&sale).Error; err != nil {
			return err
		}

		if sale.PrescriptionID != nil {
			var prescription model.Prescription
			if err := tx.First(&prescription, "id = ?", *sale.PrescriptionID).Error; err != nil {
				return ErrPrescriptionNotFound
			}
			fulfilledIn, fulfilledExt, err := s.prescriptionRepo.SumFulfilled(tx, prescription.ID)
			if err != nil {
				return err
			}
			status := model.ResolvePurchaseStatus(prescription.Quantity, fulfilledIn, fulfilledExt)
			if err := s.prescriptionRepo.UpdatePurchaseStatus(tx, prescription.ID, status, userID); err != nil {
				return err
			}
		}

		medicineName = medicine.Name
		restored = sale.QuantityInClinic
		return nil
	})

	if err != nil {
		return err
	}

	go s.wsHub.Publish(map[string]interface{}{
		"type":    "stock_update",
		"action":  "sale_voided",
		"message": fmt.Sprintf("%s voided a sale, restored %d units of '%s'", userName, restored, medicineName),
	})

	return nil
}

func (s *saleService) GetAllSales() ([]model.Sale, error) {
	return s.saleRepo.FindAll()
}

func (s *saleService) GetSaleByID(id uuid.UUID) (*model.Sale, error) {
	sale, err := s.saleRepo.FindByID(id)
	if err != nil {
		return nil, ErrSaleNotFound
	}
	return sale, nil
}
