package services

import "github.com/SscSPs/moneytx/internal/core/ports"

// ServiceContainer holds instances of all the application services.
// It is the handlers' entry point to service functionality.
type ServiceContainer struct {
	Ledger LedgerSvcFacade
	Health ports.ProcessorHealth
}
