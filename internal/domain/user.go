package domain

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/diagnosis/patrol-checkpoints/internal/utils"
)

const (
	RoleAdmin = "Admin"
	RoleGuard = "Guard"
)

type User struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	Phone        string     `json:"phone,omitempty"`
	Active       bool       `json:"active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

type CreateUserRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Phone    string `json:"phone"`
	Active   *bool  `json:"active"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
	Phone    *string `json:"phone"`
	Active   *bool   `json:"active"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresIn int64     `json:"expires_in"`
	User      *UserInfo `json:"user"`
}

type UserInfo struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Username    string    `json:"username"`
	Role        string    `json:"role"`
	Permissions []string  `json:"permissions"`
}

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]{2,50}$`)

func (r *CreateUserRequest) Normalize() {
	r.Name = utils.NormalizeString(r.Name)
	r.Username = utils.NormalizeUsername(r.Username)
	r.Role = utils.NormalizeString(r.Role)
	r.Phone = utils.NormalizePhone(r.Phone)
	if r.Role == "" {
		r.Role = RoleGuard
	}
}

func (r *CreateUserRequest) Validate() error {
	var v ValidationError
	if r.Name == "" {
		v.Add("name", "is required")
	}
	if !usernamePattern.MatchString(r.Username) {
		v.Add("username", "must be 2-50 characters of letters, digits, dot, dash or underscore")
	}
	if len(r.Password) < 6 {
		v.Add("password", "must be at least 6 characters")
	}
	if !utils.IsValidPhone(r.Phone) {
		v.Add("phone", "must contain at least 7 digits")
	}
	return v.Err()
}

func (r *UpdateUserRequest) Normalize() {
	if r.Name != nil {
		n := strings.TrimSpace(*r.Name)
		r.Name = &n
	}
	if r.Role != nil {
		role := strings.TrimSpace(*r.Role)
		r.Role = &role
	}
	if r.Phone != nil {
		p := utils.NormalizePhone(*r.Phone)
		r.Phone = &p
	}
}

func (r *UpdateUserRequest) Validate() error {
	var v ValidationError
	if r.Name != nil && *r.Name == "" {
		v.Add("name", "must not be empty")
	}
	if r.Role != nil && *r.Role == "" {
		v.Add("role", "must not be empty")
	}
	if r.Password != nil && len(*r.Password) < 6 {
		v.Add("password", "must be at least 6 characters")
	}
	if r.Phone != nil && !utils.IsValidPhone(*r.Phone) {
		v.Add("phone", "must contain at least 7 digits")
	}
	return v.Err()
}

func (r *LoginRequest) Normalize() {
	r.Username = utils.NormalizeUsername(r.Username)
}

func (r *LoginRequest) Validate() error {
	var v ValidationError
	if r.Username == "" {
		v.Add("username", "is required")
	}
	if r.Password == "" {
		v.Add("password", "is required")
	}
	return v.Err()
}

// ToUserInfo converts User to UserInfo (without sensitive data)
func (u *User) ToUserInfo(permissions []string) *UserInfo {
	if permissions == nil {
		permissions = []string{}
	}
	return &UserInfo{
		ID:          u.ID,
		Name:        u.Name,
		Username:    u.Username,
		Role:        u.Role,
		Permissions: permissions,
	}
}
