package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donorflow/donorflow/internal/domain"
	"github.com/donorflow/donorflow/pkg/emailbuilder"
)

func setupMockDB(t *testing.T) (*templateRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	repo := NewTemplateRepository(db).(*templateRepository)
	return repo, mock, func() { db.Close() }
}

func sampleTemplate(t *testing.T) *domain.EmailTemplate {
	t.Helper()
	return &domain.EmailTemplate{
		ID:       "spring-appeal",
		Name:     "Spring Appeal",
		Category: string(domain.TemplateCategoryAppeal),
		Blocks: domain.BlockList{
			emailbuilder.NewBlock(emailbuilder.BlockTypeHeading),
			emailbuilder.NewBlock(emailbuilder.BlockTypeText),
		},
	}
}

func templateRows(t *testing.T, template *domain.EmailTemplate) *sqlmock.Rows {
	t.Helper()
	blocks, err := template.Blocks.Value()
	require.NoError(t, err)
	style, err := template.GlobalStyle.Value()
	require.NoError(t, err)

	return sqlmock.NewRows([]string{
		"id", "name", "description", "category", "blocks", "global_style", "created_at", "updated_at",
	}).AddRow(
		template.ID,
		template.Name,
		template.Description,
		template.Category,
		blocks,
		style,
		time.Now().UTC(),
		time.Now().UTC(),
	)
}

func TestTemplateRepository_CreateTemplate(t *testing.T) {
	t.Run("successful creation", func(t *testing.T) {
		repo, mock, cleanup := setupMockDB(t)
		defer cleanup()

		template := sampleTemplate(t)
		mock.ExpectExec("INSERT INTO email_templates").
			WithArgs(
				template.ID, template.Name, template.Description, template.Category,
				sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := repo.CreateTemplate(context.Background(), template)
		require.NoError(t, err)
		assert.False(t, template.CreatedAt.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate id", func(t *testing.T) {
		repo, mock, cleanup := setupMockDB(t)
		defer cleanup()

		mock.ExpectExec("INSERT INTO email_templates").
			WillReturnError(&pq.Error{Code: "23505"})

		err := repo.CreateTemplate(context.Background(), sampleTemplate(t))
		var exists *domain.ErrTemplateExists
		require.ErrorAs(t, err, &exists)
		assert.Equal(t, "spring-appeal", exists.ID)
	})

	t.Run("database error", func(t *testing.T) {
		repo, mock, cleanup := setupMockDB(t)
		defer cleanup()

		mock.ExpectExec("INSERT INTO email_templates").
			WillReturnError(errors.New("connection refused"))

		err := repo.CreateTemplate(context.Background(), sampleTemplate(t))
		assert.ErrorContains(t, err, "failed to create template")
	})
}

func TestTemplateRepository_GetTemplateByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock, cleanup := setupMockDB(t)
		defer cleanup()

		template := sampleTemplate(t)
		mock.ExpectQuery("SELECT (.+) FROM email_templates").
			WithArgs(template.ID).
			WillReturnRows(templateRows(t, template))

		got, err := repo.GetTemplateByID(context.Background(), template.ID)
		require.NoError(t, err)
		assert.Equal(t, template.ID, got.ID)
		assert.Equal(t, template.Name, got.Name)
		require.Len(t, got.Blocks, 2)
		assert.Equal(t, emailbuilder.BlockTypeHeading, got.Blocks[0].GetType())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock, cleanup := setupMockDB(t)
		defer cleanup()

		mock.ExpectQuery("SELECT (.+) FROM email_templates").
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "name", "description", "category", "blocks", "global_style", "created_at", "updated_at",
			}))

		_, err := repo.GetTemplateByID(context.Background(), "missing")
		var notFound *domain.ErrTemplateNotFound
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "missing", notFound.ID)
	})
}

func TestTemplateRepository_ListTemplates(t *testing.T) {
	t.Run("without filter", func(t *testing.T) {
		repo, mock, cleanup := setupMockDB(t)
		defer cleanup()

		template := sampleTemplate(t)
		mock.ExpectQuery("SELECT (.+) FROM email_templates").
			WillReturnRows(templateRows(t, template))

		templates, err := repo.ListTemplates(context.Background(), "")
		require.NoError(t, err)
		require.Len(t, templates, 1)
		assert.Equal(t, template.ID, templates[0].ID)
	})

	t.Run("with category filter", func(t *testing.T) {
		repo, mock, cleanup := setupMockDB(t)
		defer cleanup()

		template := sampleTemplate(t)
		mock.ExpectQuery("SELECT (.+) FROM email_templates").
			WithArgs("appeal").
			WillReturnRows(templateRows(t, template))

		templates, err := repo.ListTemplates(context.Background(), "appeal")
		require.NoError(t, err)
		require.Len(t, templates, 1)
	})

	t.Run("empty result", func(t *testing.T) {
		repo, mock, cleanup := setupMockDB(t)
		defer cleanup()

		mock.ExpectQuery("SELECT (.+) FROM email_templates").
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "name", "description", "category", "blocks", "global_style", "created_at", "updated_at",
			}))

		templates, err := repo.ListTemplates(context.Background(), "")
		require.NoError(t, err)
		assert.Empty(t, templates)
	})
}

func TestTemplateRepository_UpdateTemplate(t *testing.T) {
	t.Run("successful update", func(t *testing.T) {
		repo, mock, cleanup := setupMockDB(t)
		defer cleanup()

		template := sampleTemplate(t)
		mock.ExpectExec("UPDATE email_templates").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateTemplate(context.Background(), template)
		require.NoError(t, err)
		assert.False(t, template.UpdatedAt.IsZero())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock, cleanup := setupMockDB(t)
		defer cleanup()

		mock.ExpectExec("UPDATE email_templates").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateTemplate(context.Background(), sampleTemplate(t))
		var notFound *domain.ErrTemplateNotFound
		assert.ErrorAs(t, err, &notFound)
	})
}

func TestTemplateRepository_DeleteTemplate(t *testing.T) {
	t.Run("successful delete", func(t *testing.T) {
		repo, mock, cleanup := setupMockDB(t)
		defer cleanup()

		mock.ExpectExec("UPDATE email_templates").
			WithArgs("spring-appeal", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.DeleteTemplate(context.Background(), "spring-appeal")
		assert.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock, cleanup := setupMockDB(t)
		defer cleanup()

		mock.ExpectExec("UPDATE email_templates").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.DeleteTemplate(context.Background(), "missing")
		var notFound *domain.ErrTemplateNotFound
		assert.ErrorAs(t, err, &notFound)
	})
}
