package http

import (
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lending-core/internal/domain/uow"
	"lending-core/internal/infrastructure/logging"
	"lending-core/internal/testutil/productmock"
	"lending-core/internal/testutil/uowmock"
	productuc "lending-core/internal/usecase/product"
)

func TestProductRoutes_CRUD(t *testing.T) {
	s := newTestServer(t)
	id := s.createProduct(t, 5_000_000)

	rec := s.do(t, stdhttp.MethodGet, "/loan-products/"+id, nil)
	wantStatus(t, rec, stdhttp.StatusOK)
	got := decodeJSON[productuc.ProductDTO](t, rec)
	assert.Equal(t, "Home Loan", got.Name)
	assert.True(t, got.MaxAmount.Equal(decimal.NewFromInt(5_000_000)))

	rec = s.do(t, stdhttp.MethodPut, "/loan-products/"+id, map[string]any{"name": "Home Loan Plus", "max_amount": "6000000.50"})
	wantStatus(t, rec, stdhttp.StatusOK)
	got = decodeJSON[productuc.ProductDTO](t, rec)
	assert.Equal(t, "Home Loan Plus", got.Name)
	assert.True(t, got.MaxAmount.Equal(decimal.RequireFromString("6000000.50")))
	assert.Equal(t, 240, got.TenureMonths)

	s.createProduct(t, 1_000)
	rec = s.do(t, stdhttp.MethodGet, "/loan-products?skip=1&limit=5", nil)
	wantStatus(t, rec, stdhttp.StatusOK)
	list := decodeJSON[listResponse[productuc.ProductDTO]](t, rec)
	assert.Len(t, list.Items, 1)
	require.NotNil(t, list.Total)
	assert.EqualValues(t, 2, *list.Total)
	assert.Equal(t, 1, list.Skip)
	assert.Equal(t, 5, list.Limit)

	rec = s.do(t, stdhttp.MethodDelete, "/loan-products/"+id, nil)
	wantStatus(t, rec, stdhttp.StatusNoContent)
	rec = s.do(t, stdhttp.MethodGet, "/loan-products/"+id, nil)
	wantStatus(t, rec, stdhttp.StatusNotFound)
}

func TestProductRoutes_Errors(t *testing.T) {
	s := newTestServer(t)

	cases := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
		errMsg string
	}{
		{"broken json", stdhttp.MethodPost, "/loan-products", `{"name":`, stdhttp.StatusBadRequest, "invalid body"},
		{"missing fields", stdhttp.MethodPost, "/loan-products", map[string]any{"name": "x"}, stdhttp.StatusUnprocessableEntity, "validation failed"},
		{"three decimals", stdhttp.MethodPost, "/loan-products", map[string]any{
			"name": "x", "interest_rate": 7.125, "max_amount": 1000, "tenure_months": 12,
		}, stdhttp.StatusUnprocessableEntity, "validation failed"},
		{"rate above limit", stdhttp.MethodPost, "/loan-products", map[string]any{
			"name": "x", "interest_rate": 51, "max_amount": 1000, "tenure_months": 12,
		}, stdhttp.StatusBadRequest, ""},
		{"negative skip", stdhttp.MethodGet, "/loan-products?skip=-1", nil, stdhttp.StatusBadRequest, ""},
		{"zero limit", stdhttp.MethodGet, "/loan-products?limit=0", nil, stdhttp.StatusBadRequest, ""},
		{"non numeric skip", stdhttp.MethodGet, "/loan-products?skip=abc", nil, stdhttp.StatusBadRequest, ""},
		{"unknown product", stdhttp.MethodGet, "/loan-products/" + strings.Repeat("f", 32), nil, stdhttp.StatusNotFound, ""},
		{"update unknown", stdhttp.MethodPut, "/loan-products/" + strings.Repeat("f", 32), map[string]any{"name": "y"}, stdhttp.StatusNotFound, ""},
		{"delete unknown", stdhttp.MethodDelete, "/loan-products/" + strings.Repeat("f", 32), nil, stdhttp.StatusNotFound, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := s.do(t, tc.method, tc.path, tc.body)
			wantStatus(t, rec, tc.want)
			if tc.errMsg != "" {
				assert.Equal(t, tc.errMsg, decodeJSON[ErrorResponse](t, rec).Error)
			}
		})
	}
}

func TestProductRoutes_DeleteReferencedProduct(t *testing.T) {
	s := newTestServer(t)
	id := s.createProduct(t, 5_000_000)
	s.createApplication(t, id, 1_000)

	rec := s.do(t, stdhttp.MethodDelete, "/loan-products/"+id, nil)
	wantStatus(t, rec, stdhttp.StatusBadRequest)
	assert.Equal(t, "VALIDATION_ERROR", decodeJSON[ErrorResponse](t, rec).Code)
}

func TestProductHandler_InfrastructureErrorIsHidden(t *testing.T) {
	e := echo.New()
	repo := &productmock.Repo{} // unset reads fail with context.Canceled
	h := NewProductHandler(productuc.NewUsecase(repo, uowmock.PassThrough(uow.Repos{Products: repo})), logging.Discard())

	req := httptest.NewRequest(stdhttp.MethodGet, "/loan-products/x", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("product_id")
	c.SetParamValues("x")

	if err := h.Get(c); err != nil {
		t.Fatalf("Get error: %v", err)
	}
	wantStatus(t, rec, stdhttp.StatusInternalServerError)
	assert.Equal(t, "internal error", decodeJSON[ErrorResponse](t, rec).Error)
}
