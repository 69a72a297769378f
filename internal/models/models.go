package models

import (
	"time"

	"github.com/google/uuid"
)

type Category string

const (
	CategoryEconomic    Category = "economic"
	CategoryTech        Category = "tech"
	CategoryNewArrivals Category = "newArrivals"
)

func Categories() []Category {
	return []Category{CategoryEconomic, CategoryTech, CategoryNewArrivals}
}

func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Label is the name shown in navigation and on category pages.
func (c Category) Label() string {
	switch c {
	case CategoryEconomic:
		return "Economics"
	case CategoryTech:
		return "Technology"
	case CategoryNewArrivals:
		return "New Arrivals"
	}
	return string(c)
}

type BlogPost struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Title     string    `json:"title" db:"title" validate:"required"`
	Category  Category  `json:"category" db:"category" validate:"required,oneof=economic tech newArrivals"`
	Content   string    `json:"content" db:"content" validate:"required"`
	ImageURL  string    `json:"imageUrl" db:"image_url"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// SeedPost is inserted with created_at = NOW() - Age.
type SeedPost struct {
	Title    string        `validate:"required"`
	Content  string        `validate:"required"`
	Category Category      `validate:"required,oneof=economic tech newArrivals"`
	ImageURL string        `validate:"-"`
	Age      time.Duration `validate:"min=0"`
}

func SeedPosts() []SeedPost {
	return []SeedPost{
		{
			Title:    "Getting Started with Flutter",
			Content:  "Flutter is Google's UI toolkit for building beautiful, natively compiled applications for mobile, web, and desktop from a single codebase.",
			Category: CategoryTech,
			Age:      48 * time.Hour,
		},
		{
			Title:    "The Future of Mobile Development",
			Content:  "Mobile development is evolving rapidly with new frameworks, tools, and technologies emerging constantly.",
			Category: CategoryTech,
			Age:      24 * time.Hour,
		},
		{
			Title:    "Economic Impact of Technology",
			Content:  "Technology continues to reshape the global economy, creating new opportunities while disrupting traditional industries.",
			Category: CategoryEconomic,
			Age:      72 * time.Hour,
		},
		{
			Title:    "New Features in Flutter 3.0",
			Content:  "Flutter 3.0 brings exciting new features including improved performance, better web support, and enhanced developer tools.",
			Category: CategoryNewArrivals,
			Age:      4 * time.Hour,
		},
		{
			Title:    "Building Responsive UIs",
			Content:  "Creating responsive user interfaces that work seamlessly across different screen sizes and devices is crucial for modern app development.",
			Category: CategoryTech,
			Age:      6 * time.Hour,
		},
	}
}
