package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rfqhub/rfqhub-backend/api/responses"
	"github.com/rfqhub/rfqhub-backend/api/validators"
	ordersvc "github.com/rfqhub/rfqhub-backend/internal/orders"
	"github.com/rfqhub/rfqhub-backend/pkg/db/models"
	"github.com/rfqhub/rfqhub-backend/pkg/enums"
	pkgerrors "github.com/rfqhub/rfqhub-backend/pkg/errors"
	"github.com/rfqhub/rfqhub-backend/pkg/logger"
	"github.com/rfqhub/rfqhub-backend/pkg/pagination"
)

// OrderGet returns one purchase order with its items and shipments.
func OrderGet(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "orderID"), "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newOrderResponse(order))
	}
}

// OrderList pages purchase orders filtered by tenant or status.
func OrderList(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := parseOrderListParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListOrders(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]orderResponse, 0, len(list.Orders))
		for i := range list.Orders {
			items = append(items, newOrderResponse(&list.Orders[i]))
		}
		responses.WriteList(w, items, list.NextCursor)
	}
}

// OrderAccept confirms a freshly created order on the seller side.
func OrderAccept(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return orderStatusHandler(svc, logg, ordersvc.Service.Accept)
}

// OrderStart moves an accepted order into preparation.
func OrderStart(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return orderStatusHandler(svc, logg, ordersvc.Service.Start)
}

// OrderInvoice records that the invoice went out.
func OrderInvoice(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return orderStatusHandler(svc, logg, ordersvc.Service.Invoice)
}

// OrderShip marks the goods as dispatched.
func OrderShip(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return orderStatusHandler(svc, logg, ordersvc.Service.Ship)
}

// OrderPayment records receipt of payment.
func OrderPayment(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return orderStatusHandler(svc, logg, ordersvc.Service.ReceivePayment)
}

// OrderComplete closes out fulfillment.
func OrderComplete(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return orderStatusHandler(svc, logg, ordersvc.Service.Complete)
}

// OrderCancel aborts fulfillment from any state.
func OrderCancel(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return orderStatusHandler(svc, logg, ordersvc.Service.Cancel)
}

// OrderAddShipment attaches a shipment record to an order.
func OrderAddShipment(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "orderID"), "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addShipmentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		shipment, err := svc.AddShipment(r.Context(), payload.toInput(id))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newShipmentResponse(shipment))
	}
}

func orderStatusHandler(svc ordersvc.Service, logg *logger.Logger, op func(ordersvc.Service, context.Context, uuid.UUID) (*models.PurchaseOrder, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "orderID"), "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := op(svc, r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newOrderResponse(order))
	}
}

type addShipmentRequest struct {
	Carrier        *string    `json:"carrier"`
	TrackingNumber *string    `json:"tracking_number"`
	ShippedAt      *time.Time `json:"shipped_at"`
}

func (r addShipmentRequest) toInput(orderID uuid.UUID) ordersvc.ShipmentInput {
	return ordersvc.ShipmentInput{
		OrderID:        orderID,
		Carrier:        r.Carrier,
		TrackingNumber: r.TrackingNumber,
		ShippedAt:      r.ShippedAt,
	}
}

func parseOrderListParams(r *http.Request) (ordersvc.ListParams, error) {
	limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
	if err != nil {
		return ordersvc.ListParams{}, err
	}

	buyerID, err := validators.ParseQueryUUID(r, "buyer_tenant_id")
	if err != nil {
		return ordersvc.ListParams{}, err
	}
	sellerID, err := validators.ParseQueryUUID(r, "seller_tenant_id")
	if err != nil {
		return ordersvc.ListParams{}, err
	}

	var status *enums.PurchaseOrderStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		parsed, err := enums.ParsePurchaseOrderStatus(raw)
		if err != nil {
			return ordersvc.ListParams{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter")
		}
		status = &parsed
	}

	return ordersvc.ListParams{
		Pagination: pagination.Params{
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		},
		Filters: ordersvc.ListFilters{
			BuyerTenantID:  buyerID,
			SellerTenantID: sellerID,
			Status:         status,
		},
	}, nil
}

type orderResponse struct {
	ID             uuid.UUID           `json:"id"`
	Number         string              `json:"number"`
	BuyerTenantID  uuid.UUID           `json:"buyer_tenant_id"`
	SellerTenantID uuid.UUID           `json:"seller_tenant_id"`
	QuoteRequestID *uuid.UUID          `json:"quote_request_id,omitempty"`
	Status         string              `json:"status"`
	WarehouseID    uuid.UUID           `json:"warehouse_id"`
	DeliveryTermID uuid.UUID           `json:"delivery_term_id"`
	PaymentTermID  uuid.UUID           `json:"payment_term_id"`
	PaymentModeID  uuid.UUID           `json:"payment_mode_id"`
	ShippingCost   decimal.Decimal     `json:"shipping_cost"`
	Currency       string              `json:"currency"`
	IsActive       bool                `json:"is_active"`
	Subtotal       decimal.Decimal     `json:"subtotal"`
	Total          decimal.Decimal     `json:"total"`
	Items          []orderItemResponse `json:"items"`
	Shipments      []shipmentResponse  `json:"shipments"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

type orderItemResponse struct {
	ID            uuid.UUID        `json:"id"`
	ProductID     uuid.UUID        `json:"product_id"`
	SKUID         *uuid.UUID       `json:"sku_id,omitempty"`
	UnitCount     int              `json:"unit_count"`
	TotalQuantity decimal.Decimal  `json:"total_quantity"`
	PricePerUnit  *decimal.Decimal `json:"price_per_unit,omitempty"`
	Currency      string           `json:"currency"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

type shipmentResponse struct {
	ID              uuid.UUID  `json:"id"`
	PurchaseOrderID uuid.UUID  `json:"purchase_order_id"`
	Carrier         *string    `json:"carrier,omitempty"`
	TrackingNumber  *string    `json:"tracking_number,omitempty"`
	ShippedAt       *time.Time `json:"shipped_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

func newOrderResponse(order *models.PurchaseOrder) orderResponse {
	items := make([]orderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItemResponse{
			ID:            item.ID,
			ProductID:     item.ProductID,
			SKUID:         item.SKUID,
			UnitCount:     item.UnitCount,
			TotalQuantity: item.TotalQuantity,
			PricePerUnit:  item.PricePerUnit,
			Currency:      string(item.Currency),
			CreatedAt:     item.CreatedAt,
			UpdatedAt:     item.UpdatedAt,
		})
	}

	shipments := make([]shipmentResponse, 0, len(order.Shipments))
	for i := range order.Shipments {
		shipments = append(shipments, newShipmentResponse(&order.Shipments[i]))
	}

	return orderResponse{
		ID:             order.ID,
		Number:         order.Number,
		BuyerTenantID:  order.BuyerTenantID,
		SellerTenantID: order.SellerTenantID,
		QuoteRequestID: order.QuoteRequestID,
		Status:         string(order.Status),
		WarehouseID:    order.WarehouseID,
		DeliveryTermID: order.DeliveryTermID,
		PaymentTermID:  order.PaymentTermID,
		PaymentModeID:  order.PaymentModeID,
		ShippingCost:   order.ShippingCost,
		Currency:       string(order.Currency),
		IsActive:       order.IsActive,
		Subtotal:       order.Subtotal(),
		Total:          order.Total(),
		Items:          items,
		Shipments:      shipments,
		CreatedAt:      order.CreatedAt,
		UpdatedAt:      order.UpdatedAt,
	}
}

func newShipmentResponse(shipment *models.Shipment) shipmentResponse {
	return shipmentResponse{
		ID:              shipment.ID,
		PurchaseOrderID: shipment.PurchaseOrderID,
		Carrier:         shipment.Carrier,
		TrackingNumber:  shipment.TrackingNumber,
		ShippedAt:       shipment.ShippedAt,
		CreatedAt:       shipment.CreatedAt,
	}
}
