package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/reflora/server/internal/model"
)

var _ model.CompanyStore = (*CompanyRepository)(nil)

type CompanyRepository struct {
	db *Connection
}

func NewCompanyRepository(db *Connection) *CompanyRepository {
	return &CompanyRepository{
		db: db,
	}
}

func (r *CompanyRepository) Create(ctx context.Context, company model.Company) (model.Company, error) {
	query := `INSERT INTO companies (name, cnpj) VALUES ($1, $2)
			  RETURNING id, name, cnpj, created_at`

	var saved model.Company
	err := r.db.QueryRow(ctx, query, company.Name, company.CNPJ).Scan(
		&saved.ID, &saved.Name, &saved.CNPJ, &saved.CreatedAt,
	)
	if err != nil {
		return model.Company{}, fmt.Errorf("failed to create company: %w", err)
	}

	return saved, nil
}

func (r *CompanyRepository) GetByID(ctx context.Context, id int64) (model.Company, error) {
	query := `SELECT id, name, cnpj, created_at FROM companies WHERE id = $1`

	var company model.Company
	err := r.db.QueryRow(ctx, query, id).Scan(
		&company.ID, &company.Name, &company.CNPJ, &company.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Company{}, model.ErrNotFound
		}
		return model.Company{}, fmt.Errorf("failed to get company by id: %w", err)
	}

	return company, nil
}

func (r *CompanyRepository) List(ctx context.Context) ([]model.Company, error) {
	query := `SELECT id, name, cnpj, created_at FROM companies ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	var companies []model.Company
	for rows.Next() {
		var company model.Company
		if err := rows.Scan(&company.ID, &company.Name, &company.CNPJ, &company.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan company row: %w", err)
		}
		companies = append(companies, company)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate company rows: %w", err)
	}

	return companies, nil
}
