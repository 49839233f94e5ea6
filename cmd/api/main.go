package main

import (
	"fmt"
	"net/http"

	"github.com/sigma-erp/payroll-engine-go/internal/config"
	appHTTP "github.com/sigma-erp/payroll-engine-go/internal/handler/http"
	"github.com/sigma-erp/payroll-engine-go/internal/pkg/database"
	"github.com/sigma-erp/payroll-engine-go/internal/pkg/jwt"
	"github.com/sigma-erp/payroll-engine-go/internal/repository/postgresql"
	contractService "github.com/sigma-erp/payroll-engine-go/internal/service/contract"
	payrollService "github.com/sigma-erp/payroll-engine-go/internal/service/payroll"
	taxconfigService "github.com/sigma-erp/payroll-engine-go/internal/service/taxconfig"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	payrollRepo := postgresql.NewPayrollRepository(db)
	contractRepo := postgresql.NewContractRepository(db)
	configRepo := postgresql.NewConfigRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	configResolver := taxconfigService.NewResolver(configRepo)
	payrollSvc := payrollService.NewPayrollService(db, payrollRepo, contractRepo, configResolver)
	contractSvc := contractService.NewContractService(db, contractRepo)

	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	contractHandler := appHTTP.NewContractHandler(contractSvc)

	router := appHTTP.NewRouter(
		JWTService,
		cfg.App.Env,
		payrollHandler,
		contractHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
