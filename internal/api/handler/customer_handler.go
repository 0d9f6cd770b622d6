package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/neximprove/broker-onboarding/internal/api/metrics"
	"github.com/neximprove/broker-onboarding/internal/core/domain"
	"github.com/neximprove/broker-onboarding/internal/core/ports"
)

// CustomerHandler handles broker-scoped customer routes.
type CustomerHandler struct {
	service ports.CustomerService
}

func NewCustomerHandler(service ports.CustomerService) *CustomerHandler {
	return &CustomerHandler{service: service}
}

type createCustomerRequest struct {
	FullName   string `json:"fullName" validate:"required,min=2,max=100"`
	Email      string `json:"email" validate:"required,email"`
	GSTIN      string `json:"gstin" validate:"required,gstin"`
	EntityType string `json:"entityType" validate:"required,oneof=EXPORTER IMPORTER"`
}

type createCustomerResponse struct {
	Message  string           `json:"message"`
	Customer *domain.Customer `json:"customer"`
}

type brokerStatsResponse struct {
	Stats           *ports.BrokerStats `json:"stats"`
	RecentCustomers []domain.Customer  `json:"recentCustomers"`
}

// Create onboards a customer under the authenticated broker.
//
// @Summary      Onboard a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCustomerRequest  true  "Customer details"
// @Success      201   {object}  createCustomerResponse
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /customers [post]
func (h *CustomerHandler) Create(c echo.Context) error {
	var req createCustomerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	brokerID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	customer, err := h.service.Create(c.Request().Context(), ports.CreateCustomerInput{
		BrokerID:   brokerID,
		FullName:   req.FullName,
		Email:      req.Email,
		GSTIN:      req.GSTIN,
		EntityType: req.EntityType,
	})
	if err != nil {
		return err
	}

	metrics.CustomersOnboardedTotal.WithLabelValues(string(customer.EntityType)).Inc()
	return c.JSON(http.StatusCreated, createCustomerResponse{
		Message:  "Customer onboarded successfully.",
		Customer: customer,
	})
}

// Stats returns the authenticated broker's dashboard aggregate.
//
// @Summary      Broker dashboard stats
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  brokerStatsResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /customers/stats [get]
func (h *CustomerHandler) Stats(c echo.Context) error {
	brokerID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	stats, err := h.service.Stats(c.Request().Context(), brokerID)
	if err != nil {
		return err
	}

	recent := stats.Recent
	if recent == nil {
		recent = []domain.Customer{}
	}
	return c.JSON(http.StatusOK, brokerStatsResponse{
		Stats:           stats,
		RecentCustomers: recent,
	})
}
