package viewstate

import (
	"context"
	"log/slog"

	"makeupsales/internal/domain/model"
	"makeupsales/internal/repository"
	"makeupsales/internal/usecase"
)

type CustomersState struct {
	*live[model.Customer]
	customers repository.CustomerRepository
	uc        *usecase.CustomerUsecase
}

func NewCustomersState(customers repository.CustomerRepository, uc *usecase.CustomerUsecase, log *slog.Logger) *CustomersState {
	return &CustomersState{
		live:      newLive[model.Customer]("customers", log),
		customers: customers,
		uc:        uc,
	}
}

func (s *CustomersState) Start(ctx context.Context) error {
	return s.start(ctx, s.customers.Subscribe)
}

func (s *CustomersState) SaveCustomer(ctx context.Context, in usecase.CustomerInput) (int64, error) {
	id, err := s.uc.SaveCustomer(ctx, in)
	if err != nil {
		s.intentFailed("save_customer", err)
	}
	return id, err
}

func (s *CustomersState) DeleteCustomer(ctx context.Context, customerID int64) error {
	err := s.uc.DeleteCustomer(ctx, customerID)
	if err != nil {
		s.intentFailed("delete_customer", err)
	}
	return err
}
