package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/klinikore/klinik-ledger/internal/core/domain"
	portsrepo "github.com/klinikore/klinik-ledger/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool, overdraft domain.OverdraftPolicy) portsrepo.RepositoryProvider {
	movementRepo := newPgxMovementRepository(dbPool, overdraft)
	accountRepo := newPgxAccountRepository(dbPool, movementRepo)
	transactionRepo := newPgxTransactionRepository(dbPool, accountRepo, movementRepo)
	transferRepo := newPgxTransferRepository(dbPool, accountRepo, movementRepo)
	categoryRepo := newPgxCategoryRepository(dbPool)
	companyRepo := newPgxCompanyRepository(dbPool)
	patientRepo := newPgxPatientDirectory(dbPool)
	reportingRepo := newReportingRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:     accountRepo,
		MovementRepo:    movementRepo,
		TransactionRepo: transactionRepo,
		TransferRepo:    transferRepo,
		CategoryRepo:    categoryRepo,
		CompanyRepo:     companyRepo,
		PatientRepo:     patientRepo,
		ReportingRepo:   reportingRepo,
		UserRepo:        userRepo,
	}
}
