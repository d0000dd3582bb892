package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"quickbill/internal/artifact"
	"quickbill/internal/domain"
	"quickbill/internal/handler"
	"quickbill/internal/port"
	"quickbill/internal/service"
	"quickbill/mocks"
)

func TestInvoiceHandler_Create_Success(t *testing.T) {
	invoiceSvc := new(mocks.MockInvoiceService)
	sendSvc := new(mocks.MockSendService)
	h := handler.NewInvoiceHandler(invoiceSvc, sendSvc)

	enterpriseID := uuid.New()
	created := &domain.Invoice{
		ID:            uuid.New(),
		EnterpriseID:  enterpriseID,
		InvoiceNumber: "INV-1",
		Total:         decimal.RequireFromString("236.00"),
		Status:        domain.InvoiceStatusDraft,
	}
	invoiceSvc.On("Create", mock.Anything, enterpriseID, mock.AnythingOfType("service.CreateInvoiceInput")).
		Return(created, nil)

	body, _ := json.Marshal(gin.H{
		"invoiceNumber": "INV-1",
		"dateOfIssue":   time.Now().Format(time.RFC3339),
		"billTo":        gin.H{"name": "Asha Traders", "phone": "+911234567890"},
		"items": []gin.H{
			{"name": "Widget", "price": "100", "quantity": 2},
		},
		"cgstRate": "9",
		"sgstRate": "9",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/invoices", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	setAuthContext(c, enterpriseID)

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	invoiceSvc.AssertExpectations(t)
}

func TestInvoiceHandler_Create_DuplicateNumber(t *testing.T) {
	invoiceSvc := new(mocks.MockInvoiceService)
	sendSvc := new(mocks.MockSendService)
	h := handler.NewInvoiceHandler(invoiceSvc, sendSvc)

	enterpriseID := uuid.New()
	invoiceSvc.On("Create", mock.Anything, enterpriseID, mock.AnythingOfType("service.CreateInvoiceInput")).
		Return(nil, domain.ErrDuplicateInvoice)

	body, _ := json.Marshal(gin.H{
		"invoiceNumber": "INV-1",
		"dateOfIssue":   time.Now().Format(time.RFC3339),
		"billTo":        gin.H{"name": "Asha Traders"},
		"items":         []gin.H{{"name": "Widget", "price": "100", "quantity": 1}},
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/invoices", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	setAuthContext(c, enterpriseID)

	h.Create(c)

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "DUPLICATE_INVOICE", resp.Error.Code)
}

func TestInvoiceHandler_Get_NotFound(t *testing.T) {
	invoiceSvc := new(mocks.MockInvoiceService)
	sendSvc := new(mocks.MockSendService)
	h := handler.NewInvoiceHandler(invoiceSvc, sendSvc)

	enterpriseID := uuid.New()
	invoiceID := uuid.New()
	invoiceSvc.On("GetByID", mock.Anything, enterpriseID, invoiceID).Return(nil, domain.ErrNotFound)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/invoices/"+invoiceID.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: invoiceID.String()}}
	setAuthContext(c, enterpriseID)

	h.Get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInvoiceHandler_Get_BadID(t *testing.T) {
	invoiceSvc := new(mocks.MockInvoiceService)
	sendSvc := new(mocks.MockSendService)
	h := handler.NewInvoiceHandler(invoiceSvc, sendSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/invoices/not-a-uuid", nil)
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}
	setAuthContext(c, uuid.New())

	h.Get(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	invoiceSvc.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
}

func TestInvoiceHandler_Send_Success(t *testing.T) {
	invoiceSvc := new(mocks.MockInvoiceService)
	sendSvc := new(mocks.MockSendService)
	h := handler.NewInvoiceHandler(invoiceSvc, sendSvc)

	enterpriseID := uuid.New()
	invoiceID := uuid.New()
	sendSvc.On("SendInvoice", mock.Anything, enterpriseID, invoiceID).
		Return(&service.SendResult{
			ProviderMessageID: "msg-1",
			Channel:           domain.ChannelPersonal,
			ArtifactReference: artifact.Reference{Kind: domain.ReferenceDurable, URL: "https://bucket/i.pdf"},
		}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/invoices/"+invoiceID.String()+"/send", nil)
	c.Params = gin.Params{{Key: "id", Value: invoiceID.String()}}
	setAuthContext(c, enterpriseID)

	h.Send(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	sendSvc.AssertExpectations(t)
}

func TestInvoiceHandler_MarkWhatsappSent_Success(t *testing.T) {
	invoiceSvc := new(mocks.MockInvoiceService)
	sendSvc := new(mocks.MockSendService)
	h := handler.NewInvoiceHandler(invoiceSvc, sendSvc)

	enterpriseID := uuid.New()
	invoiceID := uuid.New()
	invoiceSvc.On("MarkWhatsappSent", mock.Anything, enterpriseID, invoiceID).Return(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPatch, "/api/v1/invoices/"+invoiceID.String()+"/whatsapp", nil)
	c.Params = gin.Params{{Key: "id", Value: invoiceID.String()}}
	setAuthContext(c, enterpriseID)

	h.MarkWhatsappSent(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	invoiceSvc.AssertExpectations(t)
}

func TestInvoiceHandler_MarkWhatsappSent_NotFound(t *testing.T) {
	invoiceSvc := new(mocks.MockInvoiceService)
	sendSvc := new(mocks.MockSendService)
	h := handler.NewInvoiceHandler(invoiceSvc, sendSvc)

	enterpriseID := uuid.New()
	invoiceID := uuid.New()
	invoiceSvc.On("MarkWhatsappSent", mock.Anything, enterpriseID, invoiceID).Return(domain.ErrNotFound)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPatch, "/api/v1/invoices/"+invoiceID.String()+"/whatsapp", nil)
	c.Params = gin.Params{{Key: "id", Value: invoiceID.String()}}
	setAuthContext(c, enterpriseID)

	h.MarkWhatsappSent(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInvoiceHandler_Export_ByIDs(t *testing.T) {
	invoiceSvc := new(mocks.MockInvoiceService)
	sendSvc := new(mocks.MockSendService)
	h := handler.NewInvoiceHandler(invoiceSvc, sendSvc)

	enterpriseID := uuid.New()
	id1 := uuid.New()
	id2 := uuid.New()
	invoiceSvc.On("ListByIDs", mock.Anything, enterpriseID, []uuid.UUID{id1, id2}).
		Return([]domain.Invoice{
			{InvoiceNumber: "INV-1", Total: decimal.RequireFromString("236"), Currency: "₹"},
			{InvoiceNumber: "INV-2", Total: decimal.RequireFromString("99.5"), Currency: "₹"},
		}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet,
		"/api/v1/invoices/export?ids="+id1.String()+","+id2.String(), nil)
	setAuthContext(c, enterpriseID)

	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
	assert.NotZero(t, w.Body.Len())
	invoiceSvc.AssertExpectations(t)
}

func TestInvoiceHandler_Export_BadID(t *testing.T) {
	invoiceSvc := new(mocks.MockInvoiceService)
	sendSvc := new(mocks.MockSendService)
	h := handler.NewInvoiceHandler(invoiceSvc, sendSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/invoices/export?ids=not-a-uuid", nil)
	setAuthContext(c, uuid.New())

	h.Export(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	invoiceSvc.AssertNotCalled(t, "ListByIDs", mock.Anything, mock.Anything, mock.Anything)
}

func TestInvoiceHandler_Export_FilteredListing(t *testing.T) {
	invoiceSvc := new(mocks.MockInvoiceService)
	sendSvc := new(mocks.MockSendService)
	h := handler.NewInvoiceHandler(invoiceSvc, sendSvc)

	enterpriseID := uuid.New()
	invoiceSvc.On("List", mock.Anything, enterpriseID,
		mock.MatchedBy(func(f port.InvoiceFilter) bool { return f.Status == domain.InvoiceStatusSent }),
		0, mock.AnythingOfType("int")).
		Return([]domain.Invoice{{InvoiceNumber: "INV-1", Currency: "₹"}}, 1, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/invoices/export?status=sent", nil)
	setAuthContext(c, enterpriseID)

	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	invoiceSvc.AssertExpectations(t)
}

func TestInvoiceHandler_UpdateStatus_Invalid(t *testing.T) {
	invoiceSvc := new(mocks.MockInvoiceService)
	sendSvc := new(mocks.MockSendService)
	h := handler.NewInvoiceHandler(invoiceSvc, sendSvc)

	enterpriseID := uuid.New()
	invoiceID := uuid.New()
	invoiceSvc.On("UpdateStatus", mock.Anything, enterpriseID, invoiceID, domain.InvoiceStatus("archived")).
		Return(domain.ErrInvalidInput)

	body, _ := json.Marshal(gin.H{"status": "archived"})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPatch, "/api/v1/invoices/"+invoiceID.String()+"/status", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: invoiceID.String()}}
	setAuthContext(c, enterpriseID)

	h.UpdateStatus(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
