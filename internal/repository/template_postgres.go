package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/donorflow/donorflow/internal/domain"
)

type templateRepository struct {
	db *sql.DB
}

// NewTemplateRepository creates a new PostgreSQL template repository
func NewTemplateRepository(db *sql.DB) domain.TemplateRepository {
	return &templateRepository{db: db}
}

func (r *templateRepository) CreateTemplate(ctx context.Context, template *domain.EmailTemplate) error {
	now := time.Now().UTC()
	template.CreatedAt = now
	template.UpdatedAt = now

	query := `
		INSERT INTO email_templates (
			id,
			name,
			description,
			category,
			blocks,
			global_style,
			created_at,
			updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		template.ID,
		template.Name,
		template.Description,
		template.Category,
		template.Blocks,
		template.GlobalStyle,
		template.CreatedAt,
		template.UpdatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return &domain.ErrTemplateExists{ID: template.ID}
		}
		return fmt.Errorf("failed to create template: %w", err)
	}
	return nil
}

func (r *templateRepository) GetTemplateByID(ctx context.Context, id string) (*domain.EmailTemplate, error) {
	query := `
		SELECT
			id,
			name,
			description,
			category,
			blocks,
			global_style,
			created_at,
			updated_at
		FROM email_templates
		WHERE id = $1 AND deleted_at IS NULL
	`
	row := r.db.QueryRowContext(ctx, query, id)

	template, err := scanTemplate(row)
	if err == sql.ErrNoRows {
		return nil, &domain.ErrTemplateNotFound{ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	return template, nil
}

func (r *templateRepository) ListTemplates(ctx context.Context, category string) ([]*domain.EmailTemplate, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	selectBuilder := psql.Select(
		"id",
		"name",
		"description",
		"category",
		"blocks",
		"global_style",
		"created_at",
		"updated_at",
	).From("email_templates").
		Where(sq.Eq{"deleted_at": nil}).
		OrderBy("updated_at DESC")

	if category != "" {
		selectBuilder = selectBuilder.Where(sq.Eq{"category": category})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer rows.Close()

	var templates []*domain.EmailTemplate
	for rows.Next() {
		template, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		templates = append(templates, template)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating template rows: %w", err)
	}

	return templates, nil
}

func (r *templateRepository) UpdateTemplate(ctx context.Context, template *domain.EmailTemplate) error {
	template.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE email_templates
		SET
			name = $2,
			description = $3,
			category = $4,
			blocks = $5,
			global_style = $6,
			updated_at = $7
		WHERE id = $1 AND deleted_at IS NULL
	`
	result, err := r.db.ExecContext(ctx, query,
		template.ID,
		template.Name,
		template.Description,
		template.Category,
		template.Blocks,
		template.GlobalStyle,
		template.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update template: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return &domain.ErrTemplateNotFound{ID: template.ID}
	}
	return nil
}

func (r *templateRepository) DeleteTemplate(ctx context.Context, id string) error {
	query := `
		UPDATE email_templates
		SET deleted_at = $2
		WHERE id = $1 AND deleted_at IS NULL
	`
	result, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return &domain.ErrTemplateNotFound{ID: id}
	}
	return nil
}

// scanner is an interface to handle both sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTemplate(s scanner) (*domain.EmailTemplate, error) {
	var template domain.EmailTemplate
	err := s.Scan(
		&template.ID,
		&template.Name,
		&template.Description,
		&template.Category,
		&template.Blocks,
		&template.GlobalStyle,
		&template.CreatedAt,
		&template.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &template, nil
}
