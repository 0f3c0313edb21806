package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/wasteworks/hazbill/internal/company"
	companydomain "github.com/wasteworks/hazbill/internal/company/domain"
	"github.com/wasteworks/hazbill/internal/config"
	"github.com/wasteworks/hazbill/internal/dashboard"
	dashboarddomain "github.com/wasteworks/hazbill/internal/dashboard/domain"
	"github.com/wasteworks/hazbill/internal/entry"
	entrydomain "github.com/wasteworks/hazbill/internal/entry/domain"
	"github.com/wasteworks/hazbill/internal/invoice"
	invoicedomain "github.com/wasteworks/hazbill/internal/invoice/domain"
	"github.com/wasteworks/hazbill/internal/observability"
	"github.com/wasteworks/hazbill/internal/providers/pdf"
	"github.com/wasteworks/hazbill/internal/setting"
	settingdomain "github.com/wasteworks/hazbill/internal/setting/domain"
	"github.com/wasteworks/hazbill/internal/transporter"
	transporterdomain "github.com/wasteworks/hazbill/internal/transporter/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	observability.Module,
	fx.Provide(NewEngine),
	company.Module,
	transporter.Module,
	entry.Module,
	setting.Module,
	invoice.Module,
	dashboard.Module,
	pdf.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, httpMetrics *observability.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(log))
	r.Use(httpMetrics.Middleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine         *gin.Engine
	cfg            config.Config
	companySvc     companydomain.Service
	transporterSvc transporterdomain.Service
	inwardSvc      entrydomain.InwardService
	outwardSvc     entrydomain.OutwardService
	settingSvc     settingdomain.Service
	invoiceSvc     invoicedomain.Service
	dashboardSvc   dashboarddomain.Service
	pdfProvider    pdf.Provider
}

type ServerParams struct {
	fx.In

	Gin            *gin.Engine
	Cfg            config.Config
	CompanySvc     companydomain.Service
	TransporterSvc transporterdomain.Service
	InwardSvc      entrydomain.InwardService
	OutwardSvc     entrydomain.OutwardService
	SettingSvc     settingdomain.Service
	InvoiceSvc     invoicedomain.Service
	DashboardSvc   dashboarddomain.Service
	PDFProvider    pdf.Provider
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:         p.Gin,
		cfg:            p.Cfg,
		companySvc:     p.CompanySvc,
		transporterSvc: p.TransporterSvc,
		inwardSvc:      p.InwardSvc,
		outwardSvc:     p.OutwardSvc,
		settingSvc:     p.SettingSvc,
		invoiceSvc:     p.InvoiceSvc,
		dashboardSvc:   p.DashboardSvc,
		pdfProvider:    p.PDFProvider,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	// -------- Companies --------
	api.GET("/companies", s.ListCompanies)
	api.POST("/companies", s.CreateCompany)
	api.GET("/companies/:id", s.GetCompanyByID)
	api.PUT("/companies/:id", s.UpdateCompany)
	api.DELETE("/companies/:id", s.DeleteCompany)
	api.GET("/companies/:id/rates", s.ListCompanyRates)
	api.PUT("/companies/:id/rates", s.ReplaceCompanyRates)

	// -------- Transporters --------
	api.GET("/transporters", s.ListTransporters)
	api.POST("/transporters", s.CreateTransporter)
	api.GET("/transporters/:id", s.GetTransporterByID)
	api.PUT("/transporters/:id", s.UpdateTransporter)
	api.DELETE("/transporters/:id", s.DeleteTransporter)

	// -------- Movement entries --------
	api.GET("/inward-entries", s.ListInwardEntries)
	api.POST("/inward-entries", s.CreateInwardEntry)
	api.GET("/inward-entries/:id", s.GetInwardEntryByID)
	api.PUT("/inward-entries/:id", s.UpdateInwardEntry)
	api.DELETE("/inward-entries/:id", s.DeleteInwardEntry)

	api.GET("/outward-entries", s.ListOutwardEntries)
	api.POST("/outward-entries", s.CreateOutwardEntry)
	api.GET("/outward-entries/:id", s.GetOutwardEntryByID)
	api.PUT("/outward-entries/:id", s.UpdateOutwardEntry)
	api.DELETE("/outward-entries/:id", s.DeleteOutwardEntry)

	// -------- Invoices --------
	api.GET("/invoices", s.ListInvoices)
	api.POST("/invoices", s.CreateInvoice)
	api.GET("/invoices/:id", s.GetInvoiceByID)
	api.PUT("/invoices/:id", s.UpdateInvoice)
	api.DELETE("/invoices/:id", s.DeleteInvoice)
	api.GET("/invoices/:id/pdf", s.RenderInvoicePDF)

	// -------- Settings --------
	api.GET("/settings", s.ListSettings)
	api.PUT("/settings", s.ReplaceSettings)

	// -------- Dashboard --------
	api.GET("/dashboard/revenue", s.GetDashboardRevenue)
	api.GET("/dashboard/payments", s.GetDashboardPayments)
	api.GET("/dashboard/waste-flow", s.GetDashboardWasteFlow)
}
