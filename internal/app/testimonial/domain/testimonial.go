package domain

import (
	"errors"
	"strings"
)

// DefaultRating is applied when a testimonial is created without a rating.
const DefaultRating int64 = 5

// Domain errors as sentinel values
var (
	ErrNotFound      = errors.New("testimonial not found")
	ErrEmptyName     = errors.New("testimonial name cannot be empty")
	ErrEmptyRole     = errors.New("testimonial role cannot be empty")
	ErrEmptyText     = errors.New("testimonial text cannot be empty")
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	ErrInvalidID     = errors.New("invalid testimonial id")
)

// Testimonial is a customer quote shown on the marketing site.
type Testimonial struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	Testimonial string `json:"testimonial"`
	Rating      int64  `json:"rating"`
	VideoURL    string `json:"videoUrl,omitempty"`
}

// Patch carries optional replacements; nil fields are left unchanged.
type Patch struct {
	Name        *string
	Role        *string
	Testimonial *string
	Rating      *int64
	VideoURL    *string
}

// New validates and builds a testimonial. A zero rating means DefaultRating.
func New(id int64, name, role, text string, rating int64, videoURL string) (*Testimonial, error) {
	if rating == 0 {
		rating = DefaultRating
	}
	t := &Testimonial{
		ID:          id,
		Name:        strings.TrimSpace(name),
		Role:        strings.TrimSpace(role),
		Testimonial: strings.TrimSpace(text),
		Rating:      rating,
		VideoURL:    strings.TrimSpace(videoURL),
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Apply copies the set fields of p and revalidates. On error t is unchanged.
func (t *Testimonial) Apply(p Patch) error {
	next := *t
	if p.Name != nil {
		next.Name = strings.TrimSpace(*p.Name)
	}
	if p.Role != nil {
		next.Role = strings.TrimSpace(*p.Role)
	}
	if p.Testimonial != nil {
		next.Testimonial = strings.TrimSpace(*p.Testimonial)
	}
	if p.Rating != nil {
		next.Rating = *p.Rating
	}
	if p.VideoURL != nil {
		next.VideoURL = strings.TrimSpace(*p.VideoURL)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*t = next
	return nil
}

// Validate checks the required fields and the rating range.
func (t *Testimonial) Validate() error {
	switch {
	case t.Name == "":
		return ErrEmptyName
	case t.Role == "":
		return ErrEmptyRole
	case t.Testimonial == "":
		return ErrEmptyText
	case t.Rating < 1 || t.Rating > 5:
		return ErrInvalidRating
	}
	return nil
}
