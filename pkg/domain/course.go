package domain

import "github.com/google/uuid"

// Course is a catalog entry from the course listing endpoint.
type Course struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Instructor  string    `json:"instructor"`
	Category    string    `json:"category"`
	Level       string    `json:"level"`
	Duration    string    `json:"duration"`
	Rating      float64   `json:"rating"`
	Students    int       `json:"students"`
}

// CourseCategories lists the known catalog categories, used for the
// course-list filter cycle. "" means no filter.
var CourseCategories = []string{"", "frontend", "backend", "fullstack", "data-science", "devops"}
