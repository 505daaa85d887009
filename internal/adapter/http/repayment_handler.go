package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	domain "lending-core/internal/domain/repayment"
	"lending-core/internal/usecase/repayment"
)

type RepaymentHandler struct {
	uc  *repayment.Usecase
	log logrus.FieldLogger
}

func NewRepaymentHandler(uc *repayment.Usecase, log logrus.FieldLogger) *RepaymentHandler {
	return &RepaymentHandler{uc: uc, log: log}
}

type recordRepaymentReq struct {
	ApplicationID string           `json:"application_id" validate:"required,hex32"`
	AmountPaid    *decimal.Decimal `json:"amount_paid"    validate:"required,dec2"`
	PaymentStatus string           `json:"payment_status"`
}

type paymentStatusReq struct {
	PaymentStatus string `json:"payment_status" validate:"required"`
}

func normalize(s string) string { return strings.ToUpper(strings.TrimSpace(s)) }

func (h *RepaymentHandler) Record(c echo.Context) error {
	var req recordRepaymentReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Record(c.Request().Context(), repayment.RecordRepaymentInput{
		ApplicationID: req.ApplicationID,
		AmountPaid:    *req.AmountPaid,
		PaymentStatus: domain.PaymentStatus(normalize(req.PaymentStatus)),
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *RepaymentHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("repayment_id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *RepaymentHandler) UpdateStatus(c echo.Context) error {
	var req paymentStatusReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.UpdateStatus(c.Request().Context(), c.Param("repayment_id"), domain.PaymentStatus(normalize(req.PaymentStatus)))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *RepaymentHandler) ListByApplication(c echo.Context) error {
	skip, limit, err := pageParams(c)
	if err != nil {
		return invalidQuery(c)
	}
	ctx := c.Request().Context()
	appID := c.Param("application_id")
	items, err := h.uc.ListByApplication(ctx, appID, skip, limit)
	if err != nil {
		return writeError(c, h.log, err)
	}
	total, err := h.uc.CountByApplication(ctx, appID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, listResponse[repayment.RepaymentDTO]{Items: items, Skip: skip, Limit: limit, Total: &total})
}

func (h *RepaymentHandler) Balance(c echo.Context) error {
	dto, err := h.uc.Balance(c.Request().Context(), c.Param("application_id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}
