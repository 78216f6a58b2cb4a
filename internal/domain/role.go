package domain

import (
	"strings"

	"github.com/diagnosis/patrol-checkpoints/pkg/auth"
)

type Role struct {
	Name        string   `json:"role"`
	Permissions []string `json:"permissions"`
	Description string   `json:"description,omitempty"`
}

type RoleInput struct {
	Permissions []string `json:"permissions"`
	Description string   `json:"description"`
}

func (in *RoleInput) Normalize() {
	seen := make(map[string]bool, len(in.Permissions))
	out := make([]string, 0, len(in.Permissions))
	for _, p := range in.Permissions {
		p = strings.TrimSpace(p)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	in.Permissions = out
	in.Description = strings.TrimSpace(in.Description)
}

func (in *RoleInput) Validate(name string) error {
	var v ValidationError
	if strings.TrimSpace(name) == "" {
		v.Add("role", "is required")
	}
	for _, p := range in.Permissions {
		if !auth.ValidPermission(p) {
			v.Add("permissions", "invalid permission "+p)
			break
		}
	}
	return v.Err()
}
