package domain

import "time"

// Service is something the shop offers besides goods: repairs, rentals, recording.
type Service struct {
	ID          string  `json:"id"`
	Slug        string  `json:"slug"`
	Title       string  `json:"title" validate:"required,min=2"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price" validate:"gte=0"`
	Icon        string  `json:"icon,omitempty"`
	Active      bool    `json:"active"`
}

func (s *Service) GetID() string   { return s.ID }
func (s *Service) SetID(id string) { s.ID = id }

type News struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title" validate:"required,min=2"`
	Summary     string    `json:"summary,omitempty"`
	Body        string    `json:"body,omitempty"`
	Author      string    `json:"author,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}

func (n *News) GetID() string   { return n.ID }
func (n *News) SetID(id string) { n.ID = id }
