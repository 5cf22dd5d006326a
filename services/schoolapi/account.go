package schoolapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Shivankitsingh3/School-Management-System/core/session"
)

// LoginResponse is the account/login/ payload; the token pair plus a
// few convenience fields about the user.
type LoginResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
	UserID  int    `json:"user_id"`
	Name    string `json:"name"`
	Role    string `json:"role"`
}

// Login exchanges credentials for a token pair. Issued anonymously: a
// 401 here means rejected credentials and must not clear any session.
func (c *Client) Login(ctx context.Context, creds session.Credentials) (session.TokenPair, error) {
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "account/login/", nil, creds, &resp, true); err != nil {
		return session.TokenPair{}, err
	}
	return session.TokenPair{Access: resp.Access, Refresh: resp.Refresh}, nil
}

// Me fetches the current user's profile.
func (c *Client) Me(ctx context.Context) (session.Profile, error) {
	var profile session.Profile
	if err := c.get(ctx, "account/me/", nil, &profile); err != nil {
		return session.Profile{}, err
	}
	return profile, nil
}

type Registration struct {
	Name      string `json:"name" form:"name" validate:"required"`
	Email     string `json:"email" form:"email" validate:"required,email"`
	Password  string `json:"password" form:"password" validate:"required,min=8"`
	Role      string `json:"role" form:"role" validate:"required,role"`
	DOB       string `json:"dob" form:"dob" validate:"required"`
	Mobile    string `json:"mobile" form:"mobile" validate:"required"`
	City      string `json:"city" form:"city" validate:"required"`
	Classroom int    `json:"classroom,omitempty" form:"classroom"`
}

type RegistrationResponse struct {
	Message string `json:"message"`
	UserID  int    `json:"user_id"`
	Role    string `json:"role"`
}

// Register creates an account; the backend mails an activation link.
func (c *Client) Register(ctx context.Context, reg Registration) (RegistrationResponse, error) {
	var resp RegistrationResponse
	err := c.do(ctx, http.MethodPost, "account/register/", nil, reg, &resp, true)
	return resp, err
}

// ActivateAccount redeems the uid/token pair carried by the mailed
// activation link. Anonymous: the account is not signed in yet.
func (c *Client) ActivateAccount(ctx context.Context, uid, token string) error {
	path := fmt.Sprintf("account/activate/%s/%s/", uid, token)
	return c.do(ctx, http.MethodGet, path, nil, nil, nil, true)
}

// ForgotPassword asks the backend to mail a reset link.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	in := map[string]string{"email": email}
	return c.do(ctx, http.MethodPost, "account/forgot-password/", nil, in, nil, true)
}

// PasswordReset is the reset-link landing form. Only the password
// travels to the backend; the confirmation is checked client-side.
type PasswordReset struct {
	Password        string `json:"password" form:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"-" form:"confirm_password" validate:"required,eqfield=Password"`
}

// ResetPassword consumes the uid/token pair from the mailed reset
// link. A failure means the link expired or was already used.
func (c *Client) ResetPassword(ctx context.Context, uid, token string, reset PasswordReset) error {
	path := fmt.Sprintf("account/reset-password/%s/%s/", uid, token)
	return c.do(ctx, http.MethodPost, path, nil, reset, nil, true)
}

type PasswordChange struct {
	OldPassword     string `json:"old_password" form:"old_password" validate:"required"`
	NewPassword     string `json:"new_password" form:"new_password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password" validate:"required,eqfield=NewPassword"`
}

func (c *Client) ChangePassword(ctx context.Context, change PasswordChange) error {
	return c.post(ctx, "account/change-password/", change, nil)
}
