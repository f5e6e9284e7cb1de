package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	AccountRepo     AccountRepositoryFacade
	MovementRepo    MovementRepositoryFacade
	TransactionRepo TransactionRepositoryFacade
	TransferRepo    TransferRepositoryFacade
	CategoryRepo    CategoryRepositoryFacade
	CompanyRepo     CompanyRepositoryFacade
	PatientRepo     PatientDirectory
	ReportingRepo   ReportingRepository
	UserRepo        UserRepositoryFacade
}
