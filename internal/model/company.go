package model

import (
	"context"
	"time"
)

// CompanyStore defines persistence operations for companies.
type CompanyStore interface {
	Create(ctx context.Context, company Company) (Company, error)
	GetByID(ctx context.Context, id int64) (Company, error)
	List(ctx context.Context) ([]Company, error)
}

// Company is the organization a user belongs to. Companies hold no PII
// and are stored in plaintext.
type Company struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CNPJ      string    `json:"cnpj"`
	CreatedAt time.Time `json:"created_at"`
}
