package commands

import (
	"context"
	"time"

	"farmtrade/internal/core/domain/model/transport"
)

// RecordMonitoringCommandHandler stores a reading on a locked transport leg.
type RecordMonitoringCommandHandler struct {
	uowFactory TransportUoWFactory
}

func NewRecordMonitoringCommandHandler(uowFactory TransportUoWFactory) RecordMonitoringCommandHandler {
	return RecordMonitoringCommandHandler{uowFactory: uowFactory}
}

func (h *RecordMonitoringCommandHandler) Handle(
	ctx context.Context, cmd RecordMonitoringCommand,
) (*transport.Transport, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.TransportRepository()
	t, err := repo.GetForUpdate(ctx, cmd.TransportID())
	if err != nil {
		return nil, err
	}

	if err = t.RecordMonitoring(cmd.Actor(), cmd.Reading(), time.Now().UTC()); err != nil {
		return nil, err
	}
	if err = repo.Update(ctx, t); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return t, nil
}
