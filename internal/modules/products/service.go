package products

import (
	"bytes"
	"strings"

	"github.com/gocarina/gocsv"

	"musicstore/internal/domain"
	"musicstore/internal/modules/crud"
	"musicstore/internal/pkg/utils"
	"musicstore/internal/repository"
)

type Service struct {
	store *repository.ProductStore
}

func NewService(store *repository.ProductStore) *Service {
	return &Service{store: store}
}

func (s *Service) Search(f Filter) []domain.Product {
	return Apply(f, s.store.List())
}

func (s *Service) GetByID(id string) (domain.Product, error) {
	return s.store.GetByID(id)
}

// GetBySlug only resolves active products.
func (s *Service) GetBySlug(slug string) (domain.Product, error) {
	return s.store.Find(func(p domain.Product) bool { return p.Active && p.Slug == slug })
}

// ExportCSV renders every product, inactive ones included, as CSV.
func (s *Service) ExportCSV() ([]byte, error) {
	items := s.store.List()
	rows := make([]csvRow, 0, len(items))
	for _, p := range items {
		rows = append(rows, toCSVRow(p))
	}

	var buf bytes.Buffer
	if err := gocsv.Marshal(&rows, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Prepare normalises and validates a product before it is stored.
func Prepare(p *domain.Product) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Slug == "" {
		p.Slug = utils.Slugify(p.Name)
	}
	if p.Condition == "" {
		p.Condition = domain.ConditionNew
	}
	if err := crud.Validate(p); err != nil {
		return err
	}
	cat, err := domain.ParseProductCategory(string(p.Category))
	if err != nil {
		return err
	}
	p.Category = cat
	return nil
}
