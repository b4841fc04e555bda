package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/staffhub/staffhub-api/internal/core/domain"
	"github.com/staffhub/staffhub-api/internal/core/ports"
)

// EmployeeHandler handles HTTP requests for the employee surface: profile,
// leave submission and the sales ledger.
type EmployeeHandler struct {
	service ports.EmployeeService
}

func NewEmployeeHandler(service ports.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{service: service}
}

// CreateProfile provisions the caller's employee profile. The new role takes
// effect on the next session check or refresh, not on the current token.
func (h *EmployeeHandler) CreateProfile(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createEmployeeProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.CreateProfile(c.Request().Context(), userID, ports.CreateEmployeeProfileInput{
		Position:     req.Position,
		JobTitle:     req.JobTitle,
		DateHired:    parseDate(req.DateHired),
		ManagerEmail: req.ManagerEmail,
	}); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]string{"status": "profile created"})
}

// GetProfile returns the caller's full employee view.
func (h *EmployeeHandler) GetProfile(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	profile, err := h.service.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toEmployeeProfileResponse(profile))
}

// UpdateProfile applies a partial update; omitted fields keep their value.
func (h *EmployeeHandler) UpdateProfile(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateEmployeeProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.service.UpdateProfile(c.Request().Context(), userID, ports.UpdateEmployeeProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Position:  req.Position,
		JobTitle:  req.JobTitle,
	}); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "profile updated"})
}

// ApplyLeave submits a leave application and notifies the assigned manager.
func (h *EmployeeHandler) ApplyLeave(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req applyLeaveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	start, end := parseDate(req.StartDate), parseDate(req.EndDate)
	if end.Before(start) {
		return echo.NewHTTPError(http.StatusBadRequest, "end_date must not precede start_date")
	}

	if err := h.service.ApplyForLeave(c.Request().Context(), userID, ports.ApplyLeaveInput{
		StartDate: start,
		EndDate:   end,
		Reason:    req.Reason,
	}); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]string{"status": "leave application submitted"})
}

// RecordSale creates a sales record. The total amount is computed server-side
// from quantity and unit price, never accepted from the client.
func (h *EmployeeHandler) RecordSale(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req recordSaleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	unitPrice, err := domain.ParseMoney(req.UnitPrice)
	if err != nil {
		return err
	}

	if err := h.service.RecordSale(c.Request().Context(), userID, ports.RecordSaleInput{
		CustomerName: req.CustomerName,
		ProductName:  req.ProductName,
		Quantity:     req.Quantity,
		UnitPrice:    unitPrice,
		SaleDate:     parseDate(req.SaleDate),
		Notes:        req.Notes,
	}); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]string{"status": "sales record created"})
}

// UpdateSale patches the three mutable fields of a sales record the caller
// owns. Quantity, unit price, sale date and the computed total are immutable.
func (h *EmployeeHandler) UpdateSale(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateSaleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.service.UpdateSale(c.Request().Context(), userID, ports.UpdateSaleInput{
		SalesRecordID: c.Param("id"),
		CustomerName:  req.CustomerName,
		ProductName:   req.ProductName,
		Notes:         req.Notes,
	}); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "sales record updated"})
}

// ListSales returns every sales record the caller owns.
func (h *EmployeeHandler) ListSales(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	sales, err := h.service.ListSales(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	data := make([]saleResponse, 0, len(sales))
	for _, s := range sales {
		data = append(data, toSaleResponse(s))
	}
	return c.JSON(http.StatusOK, listSalesResponse{Data: data})
}
