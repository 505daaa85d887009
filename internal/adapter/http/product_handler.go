package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"lending-core/internal/usecase/product"
)

type ProductHandler struct {
	uc  *product.Usecase
	log logrus.FieldLogger
}

func NewProductHandler(uc *product.Usecase, log logrus.FieldLogger) *ProductHandler {
	return &ProductHandler{uc: uc, log: log}
}

type createProductReq struct {
	Name         string           `json:"name"          validate:"required,max=100"`
	InterestRate *decimal.Decimal `json:"interest_rate" validate:"required,dec2"`
	MaxAmount    *decimal.Decimal `json:"max_amount"    validate:"required,dec2"`
	TenureMonths int              `json:"tenure_months" validate:"required"`
	Description  *string          `json:"description"`
}

type updateProductReq struct {
	Name         *string          `json:"name"          validate:"omitempty,max=100"`
	InterestRate *decimal.Decimal `json:"interest_rate" validate:"omitempty,dec2"`
	MaxAmount    *decimal.Decimal `json:"max_amount"    validate:"omitempty,dec2"`
	TenureMonths *int             `json:"tenure_months"`
	Description  *string          `json:"description"`
}

func (h *ProductHandler) Create(c echo.Context) error {
	var req createProductReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Create(c.Request().Context(), product.CreateProductInput{
		Name:         req.Name,
		InterestRate: *req.InterestRate,
		MaxAmount:    *req.MaxAmount,
		TenureMonths: req.TenureMonths,
		Description:  req.Description,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ProductHandler) List(c echo.Context) error {
	skip, limit, err := pageParams(c)
	if err != nil {
		return invalidQuery(c)
	}
	ctx := c.Request().Context()
	items, err := h.uc.List(ctx, skip, limit)
	if err != nil {
		return writeError(c, h.log, err)
	}
	total, err := h.uc.Count(ctx)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, listResponse[product.ProductDTO]{Items: items, Skip: skip, Limit: limit, Total: &total})
}

func (h *ProductHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("product_id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ProductHandler) Update(c echo.Context) error {
	var req updateProductReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Update(c.Request().Context(), c.Param("product_id"), product.UpdateProductInput(req))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ProductHandler) Delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("product_id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.NoContent(http.StatusNoContent)
}
