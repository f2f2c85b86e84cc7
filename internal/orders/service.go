package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rfqhub/rfqhub-backend/pkg/db"
	"github.com/rfqhub/rfqhub-backend/pkg/db/models"
	"github.com/rfqhub/rfqhub-backend/pkg/enums"
	pkgerrors "github.com/rfqhub/rfqhub-backend/pkg/errors"
)

// Service drives a purchase order along its linear fulfillment chain. There
// is deliberately no create operation here: orders come into existence only
// through quote acceptance.
type Service interface {
	Accept(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error)
	Start(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error)
	Invoice(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error)
	Ship(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error)
	ReceivePayment(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error)
	Complete(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error)
	Cancel(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error)
	AddShipment(ctx context.Context, input ShipmentInput) (*models.Shipment, error)
	Get(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error)
	ListOrders(ctx context.Context, params ListParams) (*List, error)
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds an order fulfillment service with the required dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) Accept(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error) {
	return s.transition(ctx, id, enums.PurchaseOrderStatusAccepted)
}

func (s *service) Start(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error) {
	return s.transition(ctx, id, enums.PurchaseOrderStatusInProgress)
}

func (s *service) Invoice(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error) {
	return s.transition(ctx, id, enums.PurchaseOrderStatusInvoiced)
}

func (s *service) Ship(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error) {
	return s.transition(ctx, id, enums.PurchaseOrderStatusShipped)
}

func (s *service) ReceivePayment(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error) {
	return s.transition(ctx, id, enums.PurchaseOrderStatusPaymentReceived)
}

func (s *service) Complete(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error) {
	return s.transition(ctx, id, enums.PurchaseOrderStatusCompleted)
}

// Cancel bypasses the predecessor table and additionally clears the active
// flag.
func (s *service) Cancel(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error) {
	var result *models.PurchaseOrder
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.FindByID(ctx, id)
		if err != nil {
			return mapLoadErr(err, id)
		}
		order.Status = enums.PurchaseOrderStatusCancelled
		order.IsActive = false
		if err := repo.Save(ctx, order); err != nil {
			return mapSaveErr(err)
		}
		result = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// AddShipment attaches a shipment record to an existing order. It does not
// move the status; shipOrder does that.
func (s *service) AddShipment(ctx context.Context, input ShipmentInput) (*models.Shipment, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	var created *models.Shipment
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.FindByID(ctx, input.OrderID)
		if err != nil {
			return mapLoadErr(err, input.OrderID)
		}
		shipment := &models.Shipment{
			PurchaseOrderID: order.ID,
			Carrier:         input.Carrier,
			TrackingNumber:  input.TrackingNumber,
			ShippedAt:       input.ShippedAt,
		}
		created, err = repo.CreateShipment(ctx, shipment)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating shipment")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLoadErr(err, id)
	}
	return order, nil
}

func (s *service) ListOrders(ctx context.Context, params ListParams) (*List, error) {
	list, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing orders")
	}
	return list, nil
}

func (s *service) transition(ctx context.Context, id uuid.UUID, target enums.PurchaseOrderStatus) (*models.PurchaseOrder, error) {
	var result *models.PurchaseOrder
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.FindByID(ctx, id)
		if err != nil {
			return mapLoadErr(err, id)
		}
		if err := validateTransition(order.Status, target); err != nil {
			return err
		}
		order.Status = target
		if err := repo.Save(ctx, order); err != nil {
			return mapSaveErr(err)
		}
		result = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func mapLoadErr(err error, id uuid.UUID) error {
	if db.IsNotFound(err) {
		return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("order %s not found", id))
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading order")
}

func mapSaveErr(err error) error {
	if errors.Is(err, ErrStaleAggregate) {
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "order was modified concurrently, reload and retry")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving order")
}
