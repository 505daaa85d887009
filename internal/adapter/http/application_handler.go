package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	domain "lending-core/internal/domain/application"
	"lending-core/internal/usecase/application"
)

// HeaderActorID names the staff member acting on an application when the body omits processed_by.
const HeaderActorID = "X-Actor-Id"

type ApplicationHandler struct {
	uc  *application.Usecase
	log logrus.FieldLogger
}

func NewApplicationHandler(uc *application.Usecase, log logrus.FieldLogger) *ApplicationHandler {
	return &ApplicationHandler{uc: uc, log: log}
}

type createApplicationReq struct {
	CustomerID      string           `json:"customer_id"      validate:"required,max=64"`
	ProductID       string           `json:"product_id"       validate:"required,hex32"`
	RequestedAmount *decimal.Decimal `json:"requested_amount" validate:"required,dec2"`
}

type updateStatusReq struct {
	Status         string           `json:"status"          validate:"required"`
	ApprovedAmount *decimal.Decimal `json:"approved_amount" validate:"omitempty,dec2"`
	ProcessedBy    *string          `json:"processed_by"    validate:"omitempty,max=64"`
}

func (h *ApplicationHandler) Create(c echo.Context) error {
	var req createApplicationReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Create(c.Request().Context(), application.CreateApplicationInput{
		CustomerID:      req.CustomerID,
		ProductID:       req.ProductID,
		RequestedAmount: *req.RequestedAmount,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ApplicationHandler) List(c echo.Context) error {
	skip, limit, err := pageParams(c)
	if err != nil {
		return invalidQuery(c)
	}
	items, err := h.uc.List(c.Request().Context(), skip, limit)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, listResponse[application.ApplicationDTO]{Items: items, Skip: skip, Limit: limit})
}

func (h *ApplicationHandler) ListByCustomer(c echo.Context) error {
	skip, limit, err := pageParams(c)
	if err != nil {
		return invalidQuery(c)
	}
	items, err := h.uc.ListByCustomer(c.Request().Context(), c.Param("customer_id"), skip, limit)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, listResponse[application.ApplicationDTO]{Items: items, Skip: skip, Limit: limit})
}

func (h *ApplicationHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("application_id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ApplicationHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	processedBy := req.ProcessedBy
	if processedBy == nil {
		if actor := strings.TrimSpace(c.Request().Header.Get(HeaderActorID)); actor != "" {
			processedBy = &actor
		}
	}
	dto, err := h.uc.UpdateStatus(c.Request().Context(), application.UpdateStatusInput{
		ApplicationID:  c.Param("application_id"),
		Status:         domain.Status(normalize(req.Status)),
		ApprovedAmount: req.ApprovedAmount,
		ProcessedBy:    processedBy,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}
