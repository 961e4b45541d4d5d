package service

import (
	"context"
	"fmt"

	"hdt/internal/modules/curriculum/domain"
	curriculumout "hdt/internal/modules/curriculum/port/out"
)

type CurriculumService struct {
	source curriculumout.Source
}

func NewCurriculumService(source curriculumout.Source) *CurriculumService {
	return &CurriculumService{source: source}
}

// Load reads and validates the curriculum. A curriculum that fails validation
// is never partially used.
func (s *CurriculumService) Load(ctx context.Context) (domain.Curriculum, error) {
	c, err := s.source.Load(ctx)
	if err != nil {
		return domain.Curriculum{}, err
	}
	if err := c.Validate(); err != nil {
		return domain.Curriculum{}, fmt.Errorf("invalid curriculum: %w", err)
	}
	return c, nil
}
