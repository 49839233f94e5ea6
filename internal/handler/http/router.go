package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/sigma-erp/payroll-engine-go/internal/handler/http/middleware"
	"github.com/sigma-erp/payroll-engine-go/internal/pkg/jwt"
)

func NewRouter(JWTService jwt.Service, env string, payrollHandler PayrollHandler, contractHandler ContractHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payroll-engine"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/payroll", func(r chi.Router) {
				r.Post("/generate", payrollHandler.GeneratePayroll)
				r.Post("/regenerate", payrollHandler.RegeneratePayroll)
				r.Post("/finalize", payrollHandler.FinalizePayroll)
				r.Get("/summary", payrollHandler.GetPayrollSummary)

				r.Route("/records", func(r chi.Router) {
					r.Get("/", payrollHandler.ListPayrollRecords)
					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", payrollHandler.GetPayrollRecord)
						r.Patch("/", payrollHandler.UpdatePayrollRecord)
						r.Delete("/", payrollHandler.DeletePayrollRecord)
					})
				})

				r.Get("/employees/{employeeId}", payrollHandler.GetPayrollByEmployeePeriod)
			})

			r.Route("/contracts", func(r chi.Router) {
				r.Post("/", contractHandler.CreateContract)
				r.Get("/{id}", contractHandler.GetContract)
			})

			r.Route("/employees/{employeeId}/contracts", func(r chi.Router) {
				r.Get("/", contractHandler.ListEmployeeContracts)
				r.Get("/active", contractHandler.GetActiveContract)
			})
		})
	})
	return r
}
