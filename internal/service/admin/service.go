// Package admin implements the read-only table browser.
package admin

import (
	"context"
	"fmt"

	"github.com/jwalitptl/medidesk-api/internal/model"
	"github.com/jwalitptl/medidesk-api/internal/repository"
	apperrors "github.com/jwalitptl/medidesk-api/pkg/errors"
)

const (
	BrowseLimit = 100
	Redacted    = "[redacted]"
)

// redactedColumns are never returned by the browser.
var redactedColumns = []string{"password"}

type AdminServicer interface {
	ListTables(ctx context.Context) ([]string, error)
	BrowseTable(ctx context.Context, name string) (*model.TableRows, error)
}

type Service struct {
	repo repository.AdminRepository
}

func NewService(repo repository.AdminRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListTables(ctx context.Context) ([]string, error) {
	tables, err := s.repo.ListTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	return tables, nil
}

// BrowseTable returns up to BrowseLimit rows of name. The name must appear in
// the live table listing before it reaches a query.
func (s *Service) BrowseTable(ctx context.Context, name string) (*model.TableRows, error) {
	tables, err := s.ListTables(ctx)
	if err != nil {
		return nil, err
	}
	if !contains(tables, name) {
		return nil, apperrors.Validation("Invalid table name")
	}

	rows, err := s.repo.SelectRows(ctx, name, BrowseLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to browse %s: %w", name, err)
	}
	for _, row := range rows {
		for _, col := range redactedColumns {
			if _, ok := row[col]; ok {
				row[col] = Redacted
			}
		}
	}

	return &model.TableRows{Table: name, Rows: rows}, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
