package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-retail-backoffice/internal/model"
)

// ClientFilter narrows client listings. Empty string fields are ignored.
type ClientFilter struct {
	Name   string // case-insensitive substring
	Email  string // case-insensitive substring
	Offset int
	Limit  int
}

type ClientRepository interface {
	Create(client *model.Client) error
	FindByID(id uuid.UUID) (*model.Client, error)
	FindByEmail(email string) (*model.Client, error)
	FindByCPF(cpf string) (*model.Client, error)
	FindAll(filter ClientFilter) ([]model.Client, error)
	Update(client *model.Client) error
	Delete(id uuid.UUID) error
}

type clientRepo struct {
	db *gorm.DB
}

func NewClientRepo(db *gorm.DB) ClientRepository {
	return &clientRepo{db}
}

func (r *clientRepo) Create(client *model.Client) error {
	return r.db.Create(client).Error
}

func (r *clientRepo) FindByID(id uuid.UUID) (*model.Client, error) {
	var client model.Client
	if err := r.db.First(&client, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrClientNotFound
		}
		return nil, err
	}
	return &client, nil
}

func (r *clientRepo) FindByEmail(email string) (*model.Client, error) {
	var client model.Client
	if err := r.db.First(&client, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrClientNotFound
		}
		return nil, err
	}
	return &client, nil
}

func (r *clientRepo) FindByCPF(cpf string) (*model.Client, error) {
	var client model.Client
	if err := r.db.First(&client, "cpf = ?", cpf).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrClientNotFound
		}
		return nil, err
	}
	return &client, nil
}

func (r *clientRepo) FindAll(filter ClientFilter) ([]model.Client, error) {
	q := r.db.Model(&model.Client{})
	if filter.Name != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.Email != "" {
		q = q.Where("email ILIKE ?", "%"+filter.Email+"%")
	}

	var clients []model.Client
	err := q.Order("created_at ASC").Offset(filter.Offset).Limit(filter.Limit).Find(&clients).Error
	return clients, err
}

func (r *clientRepo) Update(client *model.Client) error {
	return r.db.Save(client).Error
}

func (r *clientRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Client{}, "id = ?", id).Error
}
