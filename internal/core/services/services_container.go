package services

import (
	portsrepo "github.com/klinikore/klinik-ledger/internal/core/ports/repositories"
	portssvc "github.com/klinikore/klinik-ledger/internal/core/ports/services"
	"github.com/klinikore/klinik-ledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo, repos.MovementRepo)
	container.Transaction = NewTransactionService(repos.TransactionRepo, repos.AccountRepo, repos.MovementRepo, repos.CategoryRepo, repos.PatientRepo)
	container.Transfer = NewTransferService(repos.TransferRepo, repos.AccountRepo, repos.MovementRepo)
	container.Category = NewCategoryService(repos.CategoryRepo)
	container.Company = NewCompanyService(repos.CompanyRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo, repos.AccountRepo)
	container.User = NewUserService(repos.UserRepo)
	container.Auth = NewAuthService(cfg, repos.UserRepo)

	return container
}
