package services

import (
	portsrepo "github.com/tableside/backoffice/internal/core/ports/repositories"
	portssvc "github.com/tableside/backoffice/internal/core/ports/services"
	"github.com/tableside/backoffice/internal/platform/config"
)

// NewServiceContainer wires all application services. The durable session
// store survives restarts; the scoped store lives and dies with the process.
func NewServiceContainer(
	cfg *config.Config,
	repos *portsrepo.RepositoryProvider,
	durable portsrepo.SessionStore,
	scoped portsrepo.SessionStore,
	prefs portsrepo.BranchPreferenceStore,
) *portssvc.ServiceContainer {
	bus := NewEventBus()

	return &portssvc.ServiceContainer{
		Session: NewSessionService(cfg, repos, durable, scoped, prefs),
		Ledger:  NewLedgerService(repos, bus),
		Gateway: NewGatewayService(repos, bus),
		Events:  bus,
	}
}
