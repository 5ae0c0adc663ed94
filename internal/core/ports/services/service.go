// Package services defines the service facades the rest of the application
// (and the excluded presentation layer) programs against.
package services

// ServiceContainer holds instances of all the application services. This is
// the single surface external collaborators call; they never touch derived
// values directly.
type ServiceContainer struct {
	Session SessionSvcFacade
	Ledger  LedgerSvcFacade
	Gateway GatewaySvcFacade
	Events  EventBusSvc
}
