package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"quickbill/internal/domain"
	"quickbill/internal/service"
)

// CustomerHandler handles customer management endpoints.
type CustomerHandler struct {
	customerService service.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(customerService service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// List handles GET /api/v1/customers
func (h *CustomerHandler) List(c *gin.Context) {
	enterpriseID, ok := extractEnterpriseID(c)
	if !ok {
		return
	}

	offset, limit := pagination(c)
	customers, total, err := h.customerService.List(c.Request.Context(), enterpriseID, c.Query("search"), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, customers, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Get handles GET /api/v1/customers/:id
func (h *CustomerHandler) Get(c *gin.Context) {
	enterpriseID, ok := extractEnterpriseID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid customer id")
		return
	}

	detail, err := h.customerService.GetDetail(c.Request.Context(), enterpriseID, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, detail)
}

// Stats handles GET /api/v1/customers/stats
func (h *CustomerHandler) Stats(c *gin.Context) {
	enterpriseID, ok := extractEnterpriseID(c)
	if !ok {
		return
	}

	result, err := h.customerService.Stats(c.Request.Context(), enterpriseID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// UpdateStatus handles PATCH /api/v1/customers/:id/status
func (h *CustomerHandler) UpdateStatus(c *gin.Context) {
	enterpriseID, ok := extractEnterpriseID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid customer id")
		return
	}

	var body struct {
		Status domain.CustomerStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	customer, err := h.customerService.UpdateStatus(c.Request.Context(), enterpriseID, id, body.Status)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, customer)
}

// Update handles PUT /api/v1/customers/:id
func (h *CustomerHandler) Update(c *gin.Context) {
	enterpriseID, ok := extractEnterpriseID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid customer id")
		return
	}

	var input service.UpdateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	customer, err := h.customerService.Update(c.Request.Context(), enterpriseID, id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, customer)
}
