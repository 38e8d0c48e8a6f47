package repository

import (
	"context"

	"musicstore/internal/domain"
	"musicstore/internal/storage"
)

// Fixed durable keys, one per collection.
const (
	KeyTutors     = "musicstore.tutors"
	KeyProducts   = "musicstore.products"
	KeyCourses    = "musicstore.courses"
	KeyServices   = "musicstore.services"
	KeyNews       = "musicstore.news"
	KeyUsers      = "musicstore.users"
	KeyAdminUsers = "musicstore.admin_users"
)

type (
	TutorStore     = Store[domain.Tutor, *domain.Tutor]
	ProductStore   = Store[domain.Product, *domain.Product]
	CourseStore    = Store[domain.Course, *domain.Course]
	ServiceStore   = Store[domain.Service, *domain.Service]
	NewsStore      = Store[domain.News, *domain.News]
	UserStore      = Store[domain.User, *domain.User]
	AdminUserStore = Store[domain.AdminUser, *domain.AdminUser]
)

// Stores groups every collection the service owns.
type Stores struct {
	Tutors     *TutorStore
	Products   *ProductStore
	Courses    *CourseStore
	Services   *ServiceStore
	News       *NewsStore
	Users      *UserStore
	AdminUsers *AdminUserStore
}

// Seed is the initial content of each collection.
type Seed struct {
	Tutors     []domain.Tutor     `json:"tutors" yaml:"tutors"`
	Products   []domain.Product   `json:"products" yaml:"products"`
	Courses    []domain.Course    `json:"courses" yaml:"courses"`
	Services   []domain.Service   `json:"services" yaml:"services"`
	News       []domain.News      `json:"news" yaml:"news"`
	Users      []domain.User      `json:"users,omitempty" yaml:"users,omitempty"`
	AdminUsers []domain.AdminUser `json:"admin_users" yaml:"admin_users"`
}

// NewStores builds every collection over kv; kv and pub may be nil.
func NewStores(kv storage.KV, pub Publisher) *Stores {
	var opts []Option
	if kv != nil {
		opts = append(opts, WithKV(kv))
	}
	if pub != nil {
		opts = append(opts, WithPublisher(pub))
	}
	return &Stores{
		Tutors:     NewStore[domain.Tutor](KeyTutors, opts...),
		Products:   NewStore[domain.Product](KeyProducts, opts...),
		Courses:    NewStore[domain.Course](KeyCourses, opts...),
		Services:   NewStore[domain.Service](KeyServices, opts...),
		News:       NewStore[domain.News](KeyNews, opts...),
		Users:      NewStore[domain.User](KeyUsers, opts...),
		AdminUsers: NewStore[domain.AdminUser](KeyAdminUsers, opts...),
	}
}

// Hydrate loads each collection, falling back to seed for keys never written.
func (s *Stores) Hydrate(ctx context.Context, seed Seed) error {
	steps := []func() error{
		func() error { return s.Tutors.Hydrate(ctx, seed.Tutors) },
		func() error { return s.Products.Hydrate(ctx, seed.Products) },
		func() error { return s.Courses.Hydrate(ctx, seed.Courses) },
		func() error { return s.Services.Hydrate(ctx, seed.Services) },
		func() error { return s.News.Hydrate(ctx, seed.News) },
		func() error { return s.Users.Hydrate(ctx, seed.Users) },
		func() error { return s.AdminUsers.Hydrate(ctx, seed.AdminUsers) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

// Replace overwrites every collection present in seed; nil slices are left untouched.
func (s *Stores) Replace(ctx context.Context, seed Seed) error {
	if seed.Tutors != nil {
		if err := s.Tutors.Replace(ctx, seed.Tutors); err != nil {
			return err
		}
	}
	if seed.Products != nil {
		if err := s.Products.Replace(ctx, seed.Products); err != nil {
			return err
		}
	}
	if seed.Courses != nil {
		if err := s.Courses.Replace(ctx, seed.Courses); err != nil {
			return err
		}
	}
	if seed.Services != nil {
		if err := s.Services.Replace(ctx, seed.Services); err != nil {
			return err
		}
	}
	if seed.News != nil {
		if err := s.News.Replace(ctx, seed.News); err != nil {
			return err
		}
	}
	if seed.Users != nil {
		if err := s.Users.Replace(ctx, seed.Users); err != nil {
			return err
		}
	}
	if seed.AdminUsers != nil {
		if err := s.AdminUsers.Replace(ctx, seed.AdminUsers); err != nil {
			return err
		}
	}
	return nil
}

// Snapshot copies every collection into a Seed, e.g. for export.
func (s *Stores) Snapshot() Seed {
	return Seed{
		Tutors:     s.Tutors.List(),
		Products:   s.Products.List(),
		Courses:    s.Courses.List(),
		Services:   s.Services.List(),
		News:       s.News.List(),
		Users:      s.Users.List(),
		AdminUsers: s.AdminUsers.List(),
	}
}
