package schoolapi

import (
	"context"
	"fmt"
)

type Notification struct {
	ID        int    `json:"id"`
	Message   string `json:"message"`
	IsRead    bool   `json:"is_read"`
	CreatedAt string `json:"created_at,omitempty"`
}

func (c *Client) Notifications(ctx context.Context) ([]Notification, error) {
	var notifications []Notification
	err := c.get(ctx, "notifications/", nil, &notifications)
	return notifications, err
}

func (c *Client) MarkNotificationRead(ctx context.Context, id int) error {
	return c.patch(ctx, fmt.Sprintf("notifications/%d/read/", id), nil, nil)
}

func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.patch(ctx, "notifications/mark-all-read/", nil, nil)
}
