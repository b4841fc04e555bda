package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/staffhub/staffhub-api/internal/core/ports"
)

// ManagerHandler handles HTTP requests for the manager surface: profile,
// leave approvals, promotion and team sales rollups.
type ManagerHandler struct {
	service ports.ManagerService
}

func NewManagerHandler(service ports.ManagerService) *ManagerHandler {
	return &ManagerHandler{service: service}
}

// CreateProfile provisions the caller's manager profile, starting inactive.
func (h *ManagerHandler) CreateProfile(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createManagerProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.CreateProfile(c.Request().Context(), userID, ports.CreateManagerProfileInput{
		Department:     req.Department,
		OfficeLocation: req.OfficeLocation,
	}); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]string{"status": "profile created"})
}

// GetProfile returns the caller's manager view with direct reports.
func (h *ManagerHandler) GetProfile(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	profile, err := h.service.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toManagerProfileResponse(*profile))
}

// UpdateProfile applies a partial update; omitted fields keep their value.
func (h *ManagerHandler) UpdateProfile(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateManagerProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.service.UpdateProfile(c.Request().Context(), userID, ports.UpdateManagerProfileInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Department:     req.Department,
		OfficeLocation: req.OfficeLocation,
	}); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "profile updated"})
}

// ApproveLeave approves a pending application submitted by one of the
// caller's direct reports.
func (h *ManagerHandler) ApproveLeave(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req approveLeaveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.ApproveLeave(c.Request().Context(), userID, req.ApplicationID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "leave application approved"})
}

// ListUnpromoted returns every inactive manager profile. An inactive caller
// gets an empty list.
func (h *ManagerHandler) ListUnpromoted(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	profiles, err := h.service.ListUnpromoted(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	data := make([]managerProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		data = append(data, toManagerProfileResponse(p))
	}
	return c.JSON(http.StatusOK, listUnpromotedResponse{Data: data})
}

// Promote activates the inactive manager addressed by email.
func (h *ManagerHandler) Promote(c echo.Context) error {
	if _, _, err := ctxIdentity(c); err != nil {
		return err
	}

	var req promoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.Promote(c.Request().Context(), req.Email); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "manager promoted"})
}

// GetSubordinate returns the full employee view of one direct report,
// addressed by email via query parameter.
func (h *ManagerHandler) GetSubordinate(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	email := c.QueryParam("email")
	if email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email query parameter is required")
	}

	profile, err := h.service.GetSubordinateProfile(c.Request().Context(), userID, email)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toEmployeeProfileResponse(profile))
}

// ListTeamSales returns every sales record owned by the caller's reports.
func (h *ManagerHandler) ListTeamSales(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	sales, err := h.service.ListTeamSales(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	data := make([]teamSaleResponse, 0, len(sales))
	for _, s := range sales {
		data = append(data, teamSaleResponse{
			saleResponse: toSaleResponse(s.SaleView),
			EmployeeName: s.EmployeeName,
		})
	}
	return c.JSON(http.StatusOK, listTeamSalesResponse{Data: data})
}
