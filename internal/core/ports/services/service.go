package services

// ServiceContainer bundles every service facade for handler registration.
type ServiceContainer struct {
	Account     AccountSvcFacade
	Transaction TransactionSvcFacade
	Transfer    TransferSvcFacade
	Category    CategorySvcFacade
	Company     CompanySvcFacade
	Reporting   ReportingSvcFacade
	User        UserSvcFacade
	Auth        AuthSvcFacade
}
