package usecase

import (
	"context"
	"strings"

	"makeupsales/internal/domain/model"
	repo "makeupsales/internal/repository"
	"makeupsales/internal/validator"
)

type CustomerUsecase struct {
	customers repo.CustomerRepository
}

func NewCustomerUsecase(customers repo.CustomerRepository) *CustomerUsecase {
	return &CustomerUsecase{customers: customers}
}

type CustomerInput struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Phone        *string `json:"phone"`
	SocialHandle *string `json:"social_handle"`
	Address      *string `json:"address"`
}

func (u *CustomerUsecase) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	list, err := u.customers.ListAll(ctx)
	if err != nil {
		return []model.Customer{}, persistence(err)
	}
	return list, nil
}

func (u *CustomerUsecase) SaveCustomer(ctx context.Context, in CustomerInput) (int64, error) {
	if in.ID < 0 {
		return 0, invalidArgument("invalid customer id")
	}
	if err := validator.CustomerName(in.Name); err != nil {
		return 0, invalidInput(err)
	}

	id, err := u.customers.Upsert(ctx, model.Customer{
		ID:           in.ID,
		Name:         strings.TrimSpace(in.Name),
		Phone:        validator.OptionalString(in.Phone),
		SocialHandle: validator.OptionalString(in.SocialHandle),
		Address:      validator.OptionalString(in.Address),
	})
	if err != nil {
		return 0, persistence(err)
	}
	return id, nil
}

// 注文は残る
func (u *CustomerUsecase) DeleteCustomer(ctx context.Context, customerID int64) error {
	if customerID <= 0 {
		return invalidArgument("invalid customer id")
	}
	return classify(u.customers.Delete(ctx, customerID), "customer not found")
}
