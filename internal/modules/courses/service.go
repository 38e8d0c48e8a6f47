package courses

import (
	"math"
	"strings"

	"musicstore/internal/domain"
	"musicstore/internal/modules/crud"
	"musicstore/internal/pkg/utils"
	"musicstore/internal/repository"
)

type Service struct {
	store *repository.CourseStore
}

func NewService(store *repository.CourseStore) *Service {
	return &Service{store: store}
}

func (s *Service) Search(f Filter) []domain.Course {
	return Apply(f, s.store.List())
}

func (s *Service) Get(key string) (domain.Course, error) {
	if c, err := s.store.GetByID(key); err == nil {
		return c, nil
	}
	return s.store.Find(func(c domain.Course) bool { return c.Slug == key })
}

// Prepare fills the slug and validates a course before it is stored. The
// tutor reference is not checked.
func Prepare(c *domain.Course) error {
	c.Title = strings.TrimSpace(c.Title)
	if c.Slug == "" {
		c.Slug = utils.Slugify(c.Title)
	}
	if len(c.Reviews) > 0 {
		c.Rating = math.Round(domain.AverageRating(c.Reviews)*10) / 10
	}
	return crud.Validate(c)
}
