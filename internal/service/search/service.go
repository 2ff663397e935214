package search

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/jwalitptl/medidesk-api/internal/model"
	"github.com/jwalitptl/medidesk-api/internal/repository"
)

type SearchServicer interface {
	Search(ctx context.Context, q string) (*model.SearchResult, error)
}

type Service struct {
	repo repository.SearchRepository
}

func NewService(repo repository.SearchRepository) *Service {
	return &Service{repo: repo}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Pattern builds a substring ILIKE pattern that matches term literally.
func Pattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

// Search looks q up across patients, doctors and medicines. Queries shorter
// than model.SearchMinLength runes return empty buckets without a lookup.
func (s *Service) Search(ctx context.Context, q string) (*model.SearchResult, error) {
	q = strings.TrimSpace(q)
	result := model.EmptySearchResult()
	if utf8.RuneCountInString(q) < model.SearchMinLength {
		return result, nil
	}

	pattern := Pattern(q)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		hits, err := s.repo.SearchPatients(gctx, pattern, model.SearchLimit)
		if err != nil {
			return err
		}
		result.Patients = append(result.Patients, hits...)
		return nil
	})
	g.Go(func() error {
		hits, err := s.repo.SearchDoctors(gctx, pattern, model.SearchLimit)
		if err != nil {
			return err
		}
		result.Doctors = append(result.Doctors, hits...)
		return nil
	})
	g.Go(func() error {
		hits, err := s.repo.SearchMedicines(gctx, pattern, model.SearchLimit)
		if err != nil {
			return err
		}
		result.Medicines = append(result.Medicines, hits...)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}
	return result, nil
}
