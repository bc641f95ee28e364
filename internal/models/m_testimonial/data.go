package m_testimonial

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the testimonials table.
type Data struct {
	ID          int64              `spanner:"id"`
	Name        string             `spanner:"name"`
	Role        string             `spanner:"role"`
	Testimonial string             `spanner:"testimonial"`
	Rating      int64              `spanner:"rating"`
	VideoURL    spanner.NullString `spanner:"video_url"`
	CreatedAt   time.Time          `spanner:"created_at"`
}
