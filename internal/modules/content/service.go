package content

import (
	"sort"
	"strings"
	"time"

	"musicstore/internal/domain"
	"musicstore/internal/modules/crud"
	"musicstore/internal/pkg/utils"
	"musicstore/internal/repository"
)

type Service struct {
	services *repository.ServiceStore
	news     *repository.NewsStore
}

func NewService(services *repository.ServiceStore, news *repository.NewsStore) *Service {
	return &Service{services: services, news: news}
}

// ActiveServices keeps stored order.
func (s *Service) ActiveServices() []domain.Service {
	all := s.services.List()
	out := make([]domain.Service, 0, len(all))
	for _, svc := range all {
		if svc.Active {
			out = append(out, svc)
		}
	}
	return out
}

func (s *Service) ServiceBySlug(slug string) (domain.Service, error) {
	return s.services.Find(func(svc domain.Service) bool { return svc.Active && svc.Slug == slug })
}

// News returns posts newest first, optionally only those carrying tag.
func (s *Service) News(tag string) []domain.News {
	all := s.news.List()
	out := make([]domain.News, 0, len(all))
	for _, n := range all {
		if tag == "" || utils.HasString(n.Tags, tag) {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PublishedAt.After(out[j].PublishedAt) })
	return out
}

func (s *Service) NewsBySlug(slug string) (domain.News, error) {
	return s.news.Find(func(n domain.News) bool { return n.Slug == slug })
}

func PrepareService(svc *domain.Service) error {
	svc.Title = strings.TrimSpace(svc.Title)
	if svc.Slug == "" {
		svc.Slug = utils.Slugify(svc.Title)
	}
	return crud.Validate(svc)
}

// PrepareNews also stamps a missing publication date.
func PrepareNews(now func() time.Time) crud.PrepareFunc[domain.News] {
	return func(n *domain.News) error {
		n.Title = strings.TrimSpace(n.Title)
		if n.Slug == "" {
			n.Slug = utils.Slugify(n.Title)
		}
		if n.PublishedAt.IsZero() {
			n.PublishedAt = now().UTC()
		}
		return crud.Validate(n)
	}
}
