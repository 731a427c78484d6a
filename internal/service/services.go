package service

import (
	"github.com/balance-app/balance-sync/internal/logger"
	"github.com/balance-app/balance-sync/internal/store"
)

type Services struct {
	DataService     DataService
	SyncSession     SyncSession
	TransferSession TransferSession
	PairingSession  PairingSession
}

func NewServices(storages *store.Storages, logger *logger.Logger) *Services {
	dataSvc := NewDataService(storages.Records, logger)

	return &Services{
		DataService:     dataSvc,
		SyncSession:     NewSyncSession(dataSvc, logger),
		TransferSession: NewTransferSession(dataSvc, logger),
		PairingSession:  NewPairingSession(storages.Meta, dataSvc, logger),
	}
}
