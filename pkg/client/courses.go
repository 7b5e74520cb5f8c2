package client

import (
	"context"
	"fmt"

	"github.com/linkcodelearn/campus/pkg/domain"
)

// ListCourses fetches the course catalog. Pagination and filtering happen
// client-side in the courses view, so this is a single unparameterized call.
func (c *Client) ListCourses(ctx context.Context) ([]domain.Course, error) {
	var courses []domain.Course
	if err := c.get(ctx, "/courses", &courses); err != nil {
		return nil, fmt.Errorf("client.ListCourses: %w", err)
	}
	return courses, nil
}
