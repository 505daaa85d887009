package http

import (
	"bytes"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"lending-core/internal/adapter/repository/mysql"
	"lending-core/internal/domain/application"
	"lending-core/internal/domain/customer"
	"lending-core/internal/domain/product"
	"lending-core/internal/domain/repayment"
	"lending-core/internal/infrastructure/logging"
	"lending-core/internal/infrastructure/metrics"
	appuc "lending-core/internal/usecase/application"
	productuc "lending-core/internal/usecase/product"
	repaymentuc "lending-core/internal/usecase/repayment"
)

var fixedNow = time.Date(2025, 9, 6, 10, 0, 0, 0, time.UTC)

type testServer struct {
	e  *echo.Echo
	db *gorm.DB
}

// newTestServer wires the real usecases and gorm repositories over in-memory sqlite.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := db.AutoMigrate(&product.Product{}, &application.Application{}, &repayment.Repayment{}, &customer.Customer{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	if err := db.Create(&customer.Customer{CustomerID: "cust-1", Name: "Ada", Email: "ada@example.com", CreatedAt: fixedNow}).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}

	log := logging.Discard()
	clock := func() time.Time { return fixedNow }
	tx := mysql.NewGormUoW(db)
	products := mysql.NewProductRepository(db)
	apps := mysql.NewApplicationRepository(db)
	repays := mysql.NewRepaymentRepository(db)

	workflow := appuc.NewUsecase(apps, mysql.NewCustomerDirectory(db), tx, appuc.WithClock(clock))
	routes := Routes{
		Health:       NewHandler(),
		Products:     NewProductHandler(productuc.NewUsecase(products, tx, productuc.WithClock(clock)), log),
		Applications: NewApplicationHandler(workflow, log),
		Repayments:   NewRepaymentHandler(repaymentuc.NewUsecase(repays, apps, tx, workflow, repaymentuc.WithClock(clock)), log),
		Metrics:      metrics.New().Handler(),
	}

	e := echo.New()
	e.Validator = NewValidator()
	Register(e, routes)
	return &testServer{e: e, db: db}
}

func (s *testServer) do(t *testing.T, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			if err := json.NewEncoder(&buf).Encode(b); err != nil {
				t.Fatalf("encode body: %v", err)
			}
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "raw=%s", rec.Body.String())
	return v
}

func wantStatus(t *testing.T, rec *httptest.ResponseRecorder, code int) {
	t.Helper()
	if rec.Code != code {
		t.Fatalf("status = %d, want %d; body=%s", rec.Code, code, rec.Body.String())
	}
}

// createProduct posts a valid product and returns its id.
func (s *testServer) createProduct(t *testing.T, maxAmount int) string {
	t.Helper()
	rec := s.do(t, stdhttp.MethodPost, "/loan-products", map[string]any{
		"name":          "Home Loan",
		"interest_rate": 7.5,
		"max_amount":    maxAmount,
		"tenure_months": 240,
	})
	wantStatus(t, rec, stdhttp.StatusCreated)
	return decodeJSON[productuc.ProductDTO](t, rec).ProductID
}

func (s *testServer) createApplication(t *testing.T, productID string, amount int) string {
	t.Helper()
	rec := s.do(t, stdhttp.MethodPost, "/loan-applications", map[string]any{
		"customer_id":      "cust-1",
		"product_id":       productID,
		"requested_amount": amount,
	})
	wantStatus(t, rec, stdhttp.StatusCreated)
	return decodeJSON[appuc.ApplicationDTO](t, rec).ApplicationID
}
