package models

// CartItem is the purchasable summary of a course kept in the cart ledger.
// It carries only what the checkout view needs; the canonical course record
// stays on the server.
type CartItem struct {
	CourseID     string  `json:"course_id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	ThumbnailURL string  `json:"thumbnail_url"`
	Instructor   string  `json:"instructor"`
}

// CartItemFromCourse builds the cart summary for a course
func CartItemFromCourse(c *Course) CartItem {
	return CartItem{
		CourseID:     c.ID,
		Name:         c.Name,
		Price:        c.Price,
		ThumbnailURL: c.ThumbnailURL,
		Instructor:   c.Instructor,
	}
}
