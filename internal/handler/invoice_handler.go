package handler

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"quickbill/internal/domain"
	"quickbill/internal/export"
	"quickbill/internal/port"
	"quickbill/internal/service"
)

// InvoiceHandler handles invoice management endpoints.
type InvoiceHandler struct {
	invoiceService service.InvoiceService
	sendService    service.SendService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService service.InvoiceService, sendService service.SendService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService, sendService: sendService}
}

// Create handles POST /api/v1/invoices
func (h *InvoiceHandler) Create(c *gin.Context) {
	enterpriseID, ok := extractEnterpriseID(c)
	if !ok {
		return
	}

	var input service.CreateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	invoice, err := h.invoiceService.Create(c.Request.Context(), enterpriseID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, invoice)
}

// List handles GET /api/v1/invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	enterpriseID, ok := extractEnterpriseID(c)
	if !ok {
		return
	}

	offset, limit := pagination(c)
	invoices, total, err := h.invoiceService.List(c.Request.Context(), enterpriseID, invoiceFilter(c), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, invoices, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Get handles GET /api/v1/invoices/:id
func (h *InvoiceHandler) Get(c *gin.Context) {
	enterpriseID, ok := extractEnterpriseID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid invoice id")
		return
	}

	invoice, err := h.invoiceService.GetByID(c.Request.Context(), enterpriseID, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, invoice)
}

// UpdateStatus handles PATCH /api/v1/invoices/:id/status
func (h *InvoiceHandler) UpdateStatus(c *gin.Context) {
	enterpriseID, ok := extractEnterpriseID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid invoice id")
		return
	}

	var input struct {
		Status domain.InvoiceStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.invoiceService.UpdateStatus(c.Request.Context(), enterpriseID, id, input.Status); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "status updated"})
}

// Send handles POST /api/v1/invoices/:id/send. The document is rendered,
// stored and dispatched server-side.
func (h *InvoiceHandler) Send(c *gin.Context) {
	enterpriseID, ok := extractEnterpriseID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid invoice id")
		return
	}

	result, err := h.sendService.SendInvoice(c.Request.Context(), enterpriseID, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// MarkWhatsappSent handles PATCH /api/v1/invoices/:id/whatsapp. Used by
// clients that dispatch the document themselves and report delivery back.
func (h *InvoiceHandler) MarkWhatsappSent(c *gin.Context) {
	enterpriseID, ok := extractEnterpriseID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid invoice id")
		return
	}

	if err := h.invoiceService.MarkWhatsappSent(c.Request.Context(), enterpriseID, id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "whatsapp status updated"})
}

const exportLimit = 1000

// Export handles GET /api/v1/invoices/export. Returns an xlsx workbook of
// either the invoices named by the ids query param or the filtered listing.
func (h *InvoiceHandler) Export(c *gin.Context) {
	enterpriseID, ok := extractEnterpriseID(c)
	if !ok {
		return
	}

	var (
		invoices []domain.Invoice
		err      error
	)
	if raw := c.Query("ids"); raw != "" {
		ids := make([]uuid.UUID, 0)
		for _, part := range strings.Split(raw, ",") {
			id, perr := uuid.Parse(strings.TrimSpace(part))
			if perr != nil {
				RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid invoice id in ids")
				return
			}
			ids = append(ids, id)
		}
		invoices, err = h.invoiceService.ListByIDs(c.Request.Context(), enterpriseID, ids)
	} else {
		invoices, _, err = h.invoiceService.List(c.Request.Context(), enterpriseID, invoiceFilter(c), 0, exportLimit)
	}
	if err != nil {
		HandleError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteInvoices(&buf, invoices); err != nil {
		HandleError(c, err)
		return
	}

	filename := "invoices_" + time.Now().UTC().Format("20060102") + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// Stats handles GET /api/v1/invoices/stats
func (h *InvoiceHandler) Stats(c *gin.Context) {
	enterpriseID, ok := extractEnterpriseID(c)
	if !ok {
		return
	}

	stats, monthly, err := h.invoiceService.Stats(c.Request.Context(), enterpriseID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"summary": stats, "monthly": monthly})
}

// invoiceFilter reads the status/start_date/end_date query params shared by
// the listing and export endpoints. Malformed dates are ignored.
func invoiceFilter(c *gin.Context) port.InvoiceFilter {
	filter := port.InvoiceFilter{
		Status: domain.InvoiceStatus(c.Query("status")),
	}
	if v := c.Query("start_date"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			filter.StartDate = &t
		}
	}
	if v := c.Query("end_date"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			filter.EndDate = &t
		}
	}
	return filter
}

// pagination reads offset/limit query params with sane bounds.
func pagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if offset < 0 {
		offset = 0
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return offset, limit
}
