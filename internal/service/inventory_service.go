package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/Aioros01/veterinaria-sistema-sub000/internal/model"
	"github.com/Aioros01/veterinaria-sistema-sub000/internal/repository"
	"github.com/Aioros01/veterinaria-sistema-sub000/internal/ws"
	"github.com/Aioros01/veterinaria-sistema-sub000/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrMedicineNameTaken = errors.New("a medicine with this name already exists")
	ErrInvalidAdjustment = errors.New("adjustment quantity must not be zero")
)

type InventoryService interface {
	CreateMedicine(req *model.Medicine, userID, userName string) error
	UpdateMedicine(id uuid.UUID, req *model.Medicine, userID, userName string) (*model.Medicine, error)
	AdjustStock(id uuid.UUID, delta int, reason, userID, userName string) (*model.Medicine, error)
	GetAllMedicines() ([]model.Medicine, error)
	GetMedicineByID(id uuid.UUID) (*model.Medicine, error)
	GetLowStock() ([]model.Medicine, error)
	GetExpiring(daysThreshold int) ([]model.Medicine, error)
}

type inventoryService struct {
	medicineRepo repository.MedicineRepository
	db           *gorm.DB
	wsHub        *ws.Hub
}

func NewInventoryService(medicineRepo repository.MedicineRepository, db *gorm.DB, hub *ws.Hub) InventoryService {
	return &inventoryService{
		medicineRepo: medicineRepo,
		db:           db,
		wsHub:        hub,
	}
}

func (s *inventoryService) CreateMedicine(req *model.Medicine, userID, userName string) error {
	// 1. Struct validation
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	// 2. Duplicate name check
	existing, _ := s.medicineRepo.FindByName(req.Name)
	if existing != nil && existing.ID != uuid.Nil {
		return ErrMedicineNameTaken
	}

	// 3. Audit fields
	req.CreatedBy = userID
	req.UpdatedBy = userID
	req.CreatedByUserID = &userID
	req.UpdatedByUserID = &userID

	if err := s.medicineRepo.Create(req); err != nil {
		return err
	}

	go s.wsHub.Publish(map[string]interface{}{
		"type":   "stock_update",
		"action": "medicine_created",
		"medicine": map[string]interface{}{
			"id":    req.ID,
			"name":  req.Name,
			"stock": req.CurrentStock,
			"price": req.UnitPrice,
		},
		"message": fmt.Sprintf("%s added medicine '%s'", userName, req.Name),
	})

	return nil
}

func (s *inventoryService) UpdateMedicine(id uuid.UUID, req *model.Medicine, userID, userName string) (*model.Medicine, error) {
	var updated *model.Medicine

	// Transaction with row lock so edits do not race the sale path
	err := s.db.Transaction(func(tx *gorm.DB) error {
		existing, err := s.medicineRepo.FindForUpdate(tx, id)
		if err != nil {
			return ErrMedicineNotFound
		}

		oldStock := existing.CurrentStock

		existing.Name = req.Name
		existing.Description = req.Description
		existing.Supplier = req.Supplier
		existing.UnitPrice = req.UnitPrice
		existing.CurrentStock = req.CurrentStock
		existing.MinimumStock = req.MinimumStock
		existing.MaximumStock = req.MaximumStock
		existing.ExpirationDate = req.ExpirationDate
		existing.UpdatedBy = userID
		existing.UpdatedByUserID = &userID

		if err := tx.Save(existing).Error; err != nil {
			return err
		}

		updated = existing

		go s.wsHub.Publish(map[string]interface{}{
			"type":   "stock_update",
			"action": "medicine_updated",
			"medicine": map[string]interface{}{
				"id":        existing.ID,
				"name":      existing.Name,
				"old_stock": oldStock,
				"new_stock": existing.CurrentStock,
				"price":     existing.UnitPrice,
			},
			"message": fmt.Sprintf("%s updated medicine '%s'", userName, existing.Name),
		})

		return nil
	})

	if err != nil {
		return nil, err
	}
	return updated, nil
}

// AdjustStock applies a manual restock (positive delta) or shrinkage correction
// (negative delta) through the same locked path the sale processor uses.
func (s *inventoryService) AdjustStock(id uuid.UUID, delta int, reason, userID, userName string) (*model.Medicine, error) {
	if delta == 0 {
		return nil, ErrInvalidAdjustment
	}

	var adjusted *model.Medicine

	err := s.db.Transaction(func(tx *gorm.DB) error {
		medicine, err := s.medicineRepo.FindForUpdate(tx, id)
		if err != nil {
			return ErrMedicineNotFound
		}

		newStock := medicine.CurrentStock + delta
		if newStock < 0 {
			return ErrInsufficientStock
		}

		if err := s.medicineRepo.UpdateStock(tx, medicine.ID, newStock, userID); err != nil {
			return err
		}

		medicine.CurrentStock = newStock
		adjusted = medicine

		go s.wsHub.Publish(map[string]interface{}{
			"type":   "stock_update",
			"action": "stock_adjusted",
			"medicine": map[string]interface{}{
				"id":        medicine.ID,
				"name":      medicine.Name,
				"delta":     delta,
				"new_stock": newStock,
			},
			"reason":  reason,
			"message": fmt.Sprintf("%s adjusted '%s' stock by %d", userName, medicine.Name, delta),
		})

		return nil
	})

	if err != nil {
		return nil, err
	}
	return adjusted, nil
}

func (s *inventoryService) GetAllMedicines() ([]model.Medicine, error) {
	return s.medicineRepo.FindAll()
}

func (s *inventoryService) GetMedicineByID(id uuid.UUID) (*model.Medicine, error) {
	medicine, err := s.medicineRepo.FindByID(id)
	if err != nil {
		return nil, ErrMedicineNotFound
	}
	return medicine, nil
}

func (s *inventoryService) GetLowStock() ([]model.Medicine, error) {
	return s.medicineRepo.FindLowStock()
}

func (s *inventoryService) GetExpiring(daysThreshold int) ([]model.Medicine, error) {
	if daysThreshold <= 0 {
		daysThreshold = 30
	}
	now := time.Now()
	return s.medicineRepo.FindExpiringBetween(now, now.AddDate(0, 0, daysThreshold))
}
