package appwrite

import (
	"context"
	"net/http"
)

// User is an account of the platform.
type User struct {
	ID        string `json:"$id"`
	CreatedAt string `json:"$createdAt"`
	UpdatedAt string `json:"$updatedAt"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// GetUser fetches a user by id.
func (c *Client) GetUser(ctx context.Context, userID string) (User, error) {
	var u User
	if err := c.do(ctx, http.MethodGet, "/users/"+seg(userID), nil, nil, &u); err != nil {
		return User{}, err
	}
	return u, nil
}
