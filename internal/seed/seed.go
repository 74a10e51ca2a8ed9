package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"ticketdesk/internal/model"
	"ticketdesk/internal/repository"
)

// DemoUser is a seeded account with a known password.
type DemoUser struct {
	Email    string
	Name     string
	Password string
	Role     model.Role
}

// DemoCategory is a seeded category.
type DemoCategory struct {
	Name        string
	Description string
	Color       string
}

// Users are the accounts created by Run.
var Users = []DemoUser{
	{Email: "admin@example.com", Name: "Admin User", Password: "admin123", Role: model.RoleAdmin},
	{Email: "user@example.com", Name: "Regular User", Password: "user123", Role: model.RoleUser},
}

// Categories are the categories created by Run.
var Categories = []DemoCategory{
	{Name: "Bug Report", Description: "Report software bugs and issues", Color: "#ef4444"},
	{Name: "Feature Request", Description: "Request new features", Color: "#22c55e"},
	{Name: "Support", Description: "General support inquiries", Color: "#3b82f6"},
	{Name: "Other", Description: "Other inquiries", Color: "#6b7280"},
}

// Result counts what Run inserted and what already existed.
type Result struct {
	UsersCreated      int
	UsersSkipped      int
	CategoriesCreated int
	CategoriesSkipped int
}

// Seeder inserts demo data. Records that already exist are left alone, so
// running it twice is harmless.
type Seeder struct {
	users      repository.UserRepository
	categories repository.CategoryRepository
	log        zerolog.Logger
	cost       int
}

// New creates a seeder.
func New(users repository.UserRepository, categories repository.CategoryRepository, log zerolog.Logger) *Seeder {
	return &Seeder{users: users, categories: categories, log: log, cost: bcrypt.DefaultCost}
}

// Run seeds users then categories.
func (s *Seeder) Run(ctx context.Context) (Result, error) {
	var res Result

	for _, u := range Users {
		_, err := s.users.FindByEmail(ctx, u.Email)
		if err == nil {
			res.UsersSkipped++
			s.log.Info().Str("email", u.Email).Msg("user exists, skipping")
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return res, fmt.Errorf("find user %s: %w", u.Email, err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), s.cost)
		if err != nil {
			return res, fmt.Errorf("hash password: %w", err)
		}
		if err := s.users.Create(ctx, &model.User{
			Email:        u.Email,
			Name:         u.Name,
			PasswordHash: string(hash),
			Role:         u.Role,
		}); err != nil {
			return res, fmt.Errorf("create user %s: %w", u.Email, err)
		}
		res.UsersCreated++
		s.log.Info().Str("email", u.Email).Str("role", string(u.Role)).Msg("created user")
	}

	for _, c := range Categories {
		_, err := s.categories.FindByName(ctx, c.Name)
		if err == nil {
			res.CategoriesSkipped++
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return res, fmt.Errorf("find category %s: %w", c.Name, err)
		}

		desc := c.Description
		if err := s.categories.Create(ctx, &model.Category{
			Name:        c.Name,
			Description: &desc,
			Color:       c.Color,
		}); err != nil {
			return res, fmt.Errorf("create category %s: %w", c.Name, err)
		}
		res.CategoriesCreated++
		s.log.Info().Str("name", c.Name).Msg("created category")
	}

	return res, nil
}
