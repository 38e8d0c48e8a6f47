package tutors

import (
	"math"
	"strings"

	"musicstore/internal/domain"
	"musicstore/internal/modules/crud"
	"musicstore/internal/pkg/utils"
	"musicstore/internal/repository"
)

type Service struct {
	store *repository.TutorStore
}

func NewService(store *repository.TutorStore) *Service {
	return &Service{store: store}
}

func (s *Service) Search(f Filter) []domain.Tutor {
	return Apply(f, s.store.List())
}

func (s *Service) Facets() Facets {
	return BuildFacets(s.store.List())
}

// Get resolves a tutor by id first, then by slug.
func (s *Service) Get(key string) (domain.Tutor, error) {
	if t, err := s.store.GetByID(key); err == nil {
		return t, nil
	}
	return s.store.Find(func(t domain.Tutor) bool { return t.Slug == key })
}

// Prepare fills the slug, derives the rating from reviews when there are
// any, and validates a tutor before it is stored.
func Prepare(t *domain.Tutor) error {
	t.Name = strings.TrimSpace(t.Name)
	if t.Slug == "" {
		t.Slug = utils.Slugify(t.Name)
	}
	if len(t.Reviews) > 0 {
		t.Rating = math.Round(domain.AverageRating(t.Reviews)*10) / 10
	}
	return crud.Validate(t)
}
