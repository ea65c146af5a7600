package service

import (
	"context"
	"fmt"

	"github.com/donorflow/donorflow/internal/domain"
	"github.com/donorflow/donorflow/pkg/emailbuilder"
	"github.com/donorflow/donorflow/pkg/logger"
	"github.com/donorflow/donorflow/pkg/mailer"
)

type TemplateService struct {
	repo   domain.TemplateRepository
	mailer mailer.Mailer
	logger logger.Logger
}

func NewTemplateService(repo domain.TemplateRepository, mailer mailer.Mailer, logger logger.Logger) *TemplateService {
	return &TemplateService{
		repo:   repo,
		mailer: mailer,
		logger: logger,
	}
}

func (s *TemplateService) CreateTemplate(ctx context.Context, template *domain.EmailTemplate) error {
	if err := template.Validate(); err != nil {
		return err
	}

	if err := s.repo.CreateTemplate(ctx, template); err != nil {
		if _, ok := err.(*domain.ErrTemplateExists); ok {
			return err
		}
		s.logger.WithField("template_id", template.ID).Error(fmt.Sprintf("Failed to create template: %v", err))
		return fmt.Errorf("failed to create template: %w", err)
	}
	return nil
}

func (s *TemplateService) GetTemplateByID(ctx context.Context, id string) (*domain.EmailTemplate, error) {
	template, err := s.repo.GetTemplateByID(ctx, id)
	if err != nil {
		if _, ok := err.(*domain.ErrTemplateNotFound); ok {
			return nil, err
		}
		s.logger.WithField("template_id", id).Error(fmt.Sprintf("Failed to get template: %v", err))
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	return template, nil
}

func (s *TemplateService) ListTemplates(ctx context.Context, category string) ([]*domain.EmailTemplate, error) {
	templates, err := s.repo.ListTemplates(ctx, category)
	if err != nil {
		s.logger.Error(fmt.Sprintf("Failed to list templates: %v", err))
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	return templates, nil
}

func (s *TemplateService) UpdateTemplate(ctx context.Context, template *domain.EmailTemplate) error {
	if err := template.Validate(); err != nil {
		return err
	}

	if err := s.repo.UpdateTemplate(ctx, template); err != nil {
		if _, ok := err.(*domain.ErrTemplateNotFound); ok {
			return err
		}
		s.logger.WithField("template_id", template.ID).Error(fmt.Sprintf("Failed to update template: %v", err))
		return fmt.Errorf("failed to update template: %w", err)
	}
	return nil
}

func (s *TemplateService) DeleteTemplate(ctx context.Context, id string) error {
	if err := s.repo.DeleteTemplate(ctx, id); err != nil {
		if _, ok := err.(*domain.ErrTemplateNotFound); ok {
			return err
		}
		s.logger.WithField("template_id", id).Error(fmt.Sprintf("Failed to delete template: %v", err))
		return fmt.Errorf("failed to delete template: %w", err)
	}
	return nil
}

// CompileTemplate renders an inline block document to HTML and plain
// text without touching storage, for live previews.
func (s *TemplateService) CompileTemplate(ctx context.Context, req domain.CompileTemplateRequest) (*emailbuilder.CompileResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	resp := emailbuilder.CompileTemplate(emailbuilder.CompileRequest{
		Blocks:      req.Blocks,
		GlobalStyle: emailbuilder.GlobalStyle(req.GlobalStyle),
		TestData:    req.TestData,
	})
	if !resp.Success && resp.Error != nil {
		s.logger.Warn(fmt.Sprintf("Template compilation degraded: %s", *resp.Error))
	}
	return resp, nil
}

func (s *TemplateService) SendTestTemplate(ctx context.Context, req domain.SendTestTemplateRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	template, err := s.GetTemplateByID(ctx, req.ID)
	if err != nil {
		return err
	}

	resp := emailbuilder.CompileTemplate(emailbuilder.CompileRequest{
		Blocks:      template.Blocks,
		GlobalStyle: emailbuilder.GlobalStyle(template.GlobalStyle),
		TestData:    req.TestData,
	})
	if !resp.Success {
		reason := "unknown error"
		if resp.Error != nil {
			reason = *resp.Error
		}
		return fmt.Errorf("failed to compile template: %s", reason)
	}

	subject := fmt.Sprintf("[Test] %s", template.Name)
	if err := s.mailer.SendTest(req.To, subject, *resp.HTML, *resp.Text); err != nil {
		s.logger.WithFields(map[string]interface{}{
			"template_id": req.ID,
			"to":          req.To,
		}).Error(fmt.Sprintf("Failed to send test email: %v", err))
		return fmt.Errorf("failed to send test email: %w", err)
	}
	return nil
}
