package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Routes struct {
	Health       *Handler
	Products     *ProductHandler
	Applications *ApplicationHandler
	Repayments   *RepaymentHandler
	Metrics      http.Handler
}

// Register mounts every route; mw wraps only the business routes.
func Register(e *echo.Echo, r Routes, mw ...echo.MiddlewareFunc) {
	e.GET("/health", r.Health.Health)
	if r.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(r.Metrics))
	}

	g := e.Group("", mw...)

	g.POST("/loan-products", r.Products.Create)
	g.GET("/loan-products", r.Products.List)
	g.GET("/loan-products/:product_id", r.Products.Get)
	g.PUT("/loan-products/:product_id", r.Products.Update)
	g.DELETE("/loan-products/:product_id", r.Products.Delete)

	g.POST("/loan-applications", r.Applications.Create)
	g.GET("/loan-applications", r.Applications.List)
	g.GET("/loan-applications/:application_id", r.Applications.Get)
	g.PUT("/loan-applications/:application_id/status", r.Applications.UpdateStatus)
	g.GET("/customers/:customer_id/loan-applications", r.Applications.ListByCustomer)

	g.POST("/repayments", r.Repayments.Record)
	g.GET("/repayments/:repayment_id", r.Repayments.Get)
	g.PATCH("/repayments/:repayment_id/status", r.Repayments.UpdateStatus)
	g.GET("/loan-applications/:application_id/repayments", r.Repayments.ListByApplication)
	g.GET("/loan-applications/:application_id/balance", r.Repayments.Balance)
}
