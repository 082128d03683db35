package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"go-retail-backoffice/internal/model"
	"go-retail-backoffice/internal/repository"
	"go-retail-backoffice/pkg/validator"
)

// ClientUpdate carries a partial update. Nil fields are left untouched,
// never reset.
type ClientUpdate struct {
	Name  *string
	Email *string
	CPF   *string
}

type ClientService interface {
	Create(client *model.Client) error
	Get(id uuid.UUID) (*model.Client, error)
	List(filter repository.ClientFilter) ([]model.Client, error)
	Update(id uuid.UUID, upd ClientUpdate) (*model.Client, error)
	Delete(id uuid.UUID) error
}

type clientService struct {
	clientRepo repository.ClientRepository
}

func NewClientService(clientRepo repository.ClientRepository) ClientService {
	return &clientService{clientRepo: clientRepo}
}

func (s *clientService) Create(client *model.Client) error {
	// 1. Structural validation (name present, email syntax, CPF 11 digits)
	if errs := validator.ValidateStruct(client); len(errs) > 0 {
		first := errs[0]
		return fmt.Errorf("%w: field '%s' failed on tag '%s'", model.ErrValidation, first.FailedField, first.Tag)
	}

	// 2. CPF and email must be unique across all clients
	if existing, _ := s.clientRepo.FindByCPF(client.CPF); existing != nil {
		return model.ErrCPFTaken
	}
	if existing, _ := s.clientRepo.FindByEmail(client.Email); existing != nil {
		return model.ErrEmailTaken
	}

	return s.clientRepo.Create(client)
}

func (s *clientService) Get(id uuid.UUID) (*model.Client, error) {
	return s.clientRepo.FindByID(id)
}

func (s *clientService) List(filter repository.ClientFilter) ([]model.Client, error) {
	filter.Offset, filter.Limit = clampPage(filter.Offset, filter.Limit)
	return s.clientRepo.FindAll(filter)
}

func (s *clientService) Update(id uuid.UUID, upd ClientUpdate) (*model.Client, error) {
	client, err := s.clientRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		client.Name = *upd.Name
	}
	if upd.Email != nil && *upd.Email != client.Email {
		existing, err := s.clientRepo.FindByEmail(*upd.Email)
		if err != nil && !errors.Is(err, model.ErrClientNotFound) {
			return nil, err
		}
		if existing != nil {
			return nil, model.ErrEmailTaken
		}
		client.Email = *upd.Email
	}
	if upd.CPF != nil && *upd.CPF != client.CPF {
		if !validator.IsCPF(*upd.CPF) {
			return nil, fmt.Errorf("%w: cpf must be exactly 11 digits", model.ErrValidation)
		}
		existing, err := s.clientRepo.FindByCPF(*upd.CPF)
		if err != nil && !errors.Is(err, model.ErrClientNotFound) {
			return nil, err
		}
		if existing != nil {
			return nil, model.ErrCPFTaken
		}
		client.CPF = *upd.CPF
	}

	if err := s.clientRepo.Update(client); err != nil {
		return nil, err
	}
	return client, nil
}

// Delete removes the client unconditionally. Orders referencing the client
// are left dangling; the order side does not cascade.
func (s *clientService) Delete(id uuid.UUID) error {
	if _, err := s.clientRepo.FindByID(id); err != nil {
		return err
	}
	return s.clientRepo.Delete(id)
}
