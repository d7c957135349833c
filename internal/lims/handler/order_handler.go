package handler

import (
	"errors"

	"github.com/ducsssanh/testflow-lab-nexus/internal/lims/access"
	"github.com/ducsssanh/testflow-lab-nexus/internal/lims/repository"
	"github.com/ducsssanh/testflow-lab-nexus/internal/lims/service"
	"github.com/gin-gonic/gin"
)

// OrderHandler serves intake orders. Every response body goes through the
// role field filter so commercial fields never reach testers.
type OrderHandler struct {
	svc *service.OrderService
}

func NewOrderHandler(svc *service.OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// List GET /api/v1/orders
func (h *OrderHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)

	filters := map[string]string{
		"status":      c.Query("status"),
		"sample_type": c.Query("sample_type"),
	}

	items, total, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		InternalError(c, "list orders failed: "+err.Error())
		return
	}

	Success(c, gin.H{
		"items": access.FilterOrders(items, GetUserRole(c)),
		"pagination": Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      int(total),
			TotalPages: totalPages(total, pageSize),
		},
	})
}

// Get GET /api/v1/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	o, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "order not found")
			return
		}
		InternalError(c, "get order failed: "+err.Error())
		return
	}
	Success(c, access.FilterOrder(o, GetUserRole(c)))
}

// Create POST /api/v1/orders
func (h *OrderHandler) Create(c *gin.Context) {
	var req service.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	o, err := h.svc.Create(c.Request.Context(), &req, GetUserID(c))
	if err != nil {
		InternalError(c, "create order failed: "+err.Error())
		return
	}
	Created(c, access.FilterOrder(o, GetUserRole(c)))
}

// Update PATCH /api/v1/orders/:id
func (h *OrderHandler) Update(c *gin.Context) {
	var req service.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	o, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			NotFound(c, "order not found")
		case errors.Is(err, service.ErrInvalidTransition):
			Conflict(c, "order status does not allow this change")
		default:
			InternalError(c, "update order failed: "+err.Error())
		}
		return
	}
	Success(c, access.FilterOrder(o, GetUserRole(c)))
}
