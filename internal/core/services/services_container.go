package services

import (
	"github.com/SscSPs/moneytx/internal/core/ledger"
	portssvc "github.com/SscSPs/moneytx/internal/core/ports/services"
)

// NewServiceContainer wires the application services around the supervised ledger.
func NewServiceContainer(supervisor *ledger.Supervisor) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Ledger: NewLedgerService(supervisor),
		Health: supervisor,
	}
}

// Helper to check interface implementations at compile time
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)
