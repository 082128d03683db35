package model

// Client is a retail customer. Email and CPF are unique across all clients;
// CPF is exactly 11 ASCII digits.
type Client struct {
	Base
	Name  string `gorm:"type:varchar(255);not null;index" json:"name" validate:"required"`
	Email string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	CPF   string `gorm:"type:varchar(11);uniqueIndex;not null;column:cpf" json:"cpf" validate:"required,cpf"`
}
