package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/linkcodelearn/campus/pkg/domain"
)

// DashboardStats returns the admin dashboard summary counters.
func (c *Client) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	var stats domain.DashboardStats
	if err := c.get(ctx, "/admin/dashboard/stats", &stats); err != nil {
		return nil, fmt.Errorf("client.DashboardStats: %w", err)
	}
	return &stats, nil
}

// ListUsers fetches platform users with optional role and search filters.
func (c *Client) ListUsers(ctx context.Context, filters domain.UserFilters) ([]domain.User, error) {
	params := url.Values{}
	if filters.Role != "" {
		params.Set("role", string(filters.Role))
	}
	if filters.Search != "" {
		params.Set("search", filters.Search)
	}
	path := "/admin/users"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var users []domain.User
	if err := c.get(ctx, path, &users); err != nil {
		return nil, fmt.Errorf("client.ListUsers: %w", err)
	}
	return users, nil
}

// GetUser fetches a single user by ID.
func (c *Client) GetUser(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	if err := c.get(ctx, "/admin/users/"+url.PathEscape(id), &u); err != nil {
		return nil, fmt.Errorf("client.GetUser: %w", err)
	}
	return &u, nil
}

// UpdateUser patches arbitrary user fields and returns the updated record.
func (c *Client) UpdateUser(ctx context.Context, id string, fields map[string]any) (*domain.User, error) {
	var u domain.User
	if err := c.patch(ctx, "/admin/users/"+url.PathEscape(id), fields, &u); err != nil {
		return nil, fmt.Errorf("client.UpdateUser: %w", err)
	}
	return &u, nil
}

// ActivateUser re-enables a deactivated account.
func (c *Client) ActivateUser(ctx context.Context, id string) error {
	if err := c.patch(ctx, "/admin/users/"+url.PathEscape(id)+"/activate", nil, nil); err != nil {
		return fmt.Errorf("client.ActivateUser: %w", err)
	}
	return nil
}

// DeactivateUser disables an account without deleting it.
func (c *Client) DeactivateUser(ctx context.Context, id string) error {
	if err := c.patch(ctx, "/admin/users/"+url.PathEscape(id)+"/deactivate", nil, nil); err != nil {
		return fmt.Errorf("client.DeactivateUser: %w", err)
	}
	return nil
}

// DeleteUser permanently removes an account.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	if err := c.delete(ctx, "/admin/users/"+url.PathEscape(id)); err != nil {
		return fmt.Errorf("client.DeleteUser: %w", err)
	}
	return nil
}
