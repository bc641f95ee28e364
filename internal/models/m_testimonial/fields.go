package m_testimonial

// Field name constants for the testimonials table.
const (
	TableName = "testimonials"

	ID          = "id"
	Name        = "name"
	Role        = "role"
	Testimonial = "testimonial"
	Rating      = "rating"
	VideoURL    = "video_url"
	CreatedAt   = "created_at"
)

// AllColumns lists every column in table order.
var AllColumns = []string{ID, Name, Role, Testimonial, Rating, VideoURL, CreatedAt}
