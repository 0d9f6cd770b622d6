package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/neximprove/broker-onboarding/internal/core/domain"
	"github.com/neximprove/broker-onboarding/internal/core/ports"
)

// AdminHandler handles read-only cross-broker routes.
type AdminHandler struct {
	service ports.AdminService
}

func NewAdminHandler(service ports.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

type listBrokersResponse struct {
	Brokers []ports.BrokerSummary `json:"brokers"`
}

type listCustomersResponse struct {
	Customers []domain.Customer `json:"customers"`
}

// Overview returns the system-wide snapshot. Any authenticated identity may
// read it; role gating applies to the other admin routes only.
//
// @Summary      System-wide overview
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.Overview
// @Failure      401  {object}  map[string]string
// @Router       /admin/overview [get]
func (h *AdminHandler) Overview(c echo.Context) error {
	overview, err := h.service.Overview(c.Request().Context())
	if err != nil {
		return err
	}
	if overview.RecentUsers == nil {
		overview.RecentUsers = []domain.User{}
	}
	if overview.RecentCustomers == nil {
		overview.RecentCustomers = []domain.Customer{}
	}
	return c.JSON(http.StatusOK, overview)
}

// Stats returns broker/customer counts.
//
// @Summary      Broker and customer counts
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.AdminStats
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// ListBrokers returns every broker with its customer count.
//
// @Summary      List brokers
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listBrokersResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /admin/brokers [get]
func (h *AdminHandler) ListBrokers(c echo.Context) error {
	brokers, err := h.service.ListBrokers(c.Request().Context())
	if err != nil {
		return err
	}
	if brokers == nil {
		brokers = []ports.BrokerSummary{}
	}
	return c.JSON(http.StatusOK, listBrokersResponse{Brokers: brokers})
}

// ListCustomers returns every customer with the owning broker embedded.
//
// @Summary      List customers
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listCustomersResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /admin/customers [get]
func (h *AdminHandler) ListCustomers(c echo.Context) error {
	customers, err := h.service.ListCustomers(c.Request().Context())
	if err != nil {
		return err
	}
	if customers == nil {
		customers = []domain.Customer{}
	}
	return c.JSON(http.StatusOK, listCustomersResponse{Customers: customers})
}
