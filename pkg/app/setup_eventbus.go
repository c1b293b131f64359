package app

import "github.com/adu-coder/nineteen/pkg/domain/transaction"

// setupEventBus registers all event handlers with the application's bus.
func (a *App) setupEventBus() {
	if a.Deps.EventBus == nil {
		return
	}
	a.Deps.EventBus.Register(
		transaction.EventTypeLedgerChanged,
		a.SharingService.InvalidateOnLedgerChange,
	)
}
