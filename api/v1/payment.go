package v1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/anprojects-core/dto"
	"github.com/anprojects-core/middleware"
	"github.com/anprojects-core/services"
	"github.com/gin-gonic/gin"
)

// PaymentController handles invoices recorded against budget items
type PaymentController struct {
	paymentService *services.PaymentService
	budgetService  *services.BudgetService
}

// NewPaymentController creates a new payment controller
func NewPaymentController(paymentService *services.PaymentService, budgetService *services.BudgetService) *PaymentController {
	return &PaymentController{paymentService: paymentService, budgetService: budgetService}
}

// RegisterRoutes registers payment routes
func (pc *PaymentController) RegisterRoutes(router *gin.RouterGroup) {
	items := router.Group("/budget-items/:id/payments")
	{
		items.GET("", pc.ListPayments)
		items.POST("", pc.CreatePayment)
		items.GET("/summary", pc.PaymentSummary)
	}

	payments := router.Group("/payments")
	{
		payments.GET("", middleware.AdminMiddleware(), pc.PaymentsByMonth)
		payments.PUT("/:id", pc.UpdatePayment)
		payments.DELETE("/:id", pc.DeletePayment)
	}
}

// requireItemProject checks access to the project owning itemID
func (pc *PaymentController) requireItemProject(c *gin.Context, itemID string) bool {
	item, err := pc.budgetService.GetBudgetItem(c.Request.Context(), itemID)
	if err != nil {
		respondServiceError(c, err)
		return false
	}
	return requireProject(c, item.ProjectID)
}

func (pc *PaymentController) ListPayments(c *gin.Context) {
	itemID := c.Param("id")
	if !pc.requireItemProject(c, itemID) {
		return
	}
	respondData(c, http.StatusOK, pc.paymentService.ListByItem(c.Request.Context(), itemID))
}

func (pc *PaymentController) PaymentSummary(c *gin.Context) {
	itemID := c.Param("id")
	if !pc.requireItemProject(c, itemID) {
		return
	}
	respondData(c, http.StatusOK, pc.paymentService.ItemPaymentSummary(c.Request.Context(), itemID))
}

func (pc *PaymentController) CreatePayment(c *gin.Context) {
	itemID := c.Param("id")
	if !pc.requireItemProject(c, itemID) {
		return
	}

	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request data: "+err.Error())
		return
	}

	payment, err := pc.paymentService.CreatePayment(c.Request.Context(), itemID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusCreated, payment)
}

// PaymentsByMonth lists payments invoiced in ?year=&month= (month is 1-12)
func (pc *PaymentController) PaymentsByMonth(c *gin.Context) {
	now := time.Now()
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid year")
		return
	}
	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil || month < 1 || month > 12 {
		respondError(c, http.StatusBadRequest, "Invalid month")
		return
	}

	respondData(c, http.StatusOK, pc.paymentService.ByMonth(c.Request.Context(), year, time.Month(month)))
}

func (pc *PaymentController) loadPayment(c *gin.Context) (string, bool) {
	payment, err := pc.paymentService.GetPayment(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return "", false
	}
	if !pc.requireItemProject(c, payment.BudgetItemID) {
		return "", false
	}
	return payment.ID, true
}

func (pc *PaymentController) UpdatePayment(c *gin.Context) {
	id, ok := pc.loadPayment(c)
	if !ok {
		return
	}
	fields, ok := bindFields(c)
	if !ok {
		return
	}

	payment, err := pc.paymentService.UpdatePayment(c.Request.Context(), id, fields)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, payment)
}

func (pc *PaymentController) DeletePayment(c *gin.Context) {
	id, ok := pc.loadPayment(c)
	if !ok {
		return
	}
	if err := pc.paymentService.DeletePayment(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Payment deleted successfully",
	})
}
