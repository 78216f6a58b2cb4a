package auth

import "strings"

// Permission names checked by the API.
const (
	PermAll              = "all"
	PermScanCreate       = "scan.create"
	PermCheckpointRead   = "checkpoint.read"
	PermCheckpointWrite  = "checkpoint.write"
	PermUserRead         = "user.read"
	PermUserWrite        = "user.write"
	PermRoleWrite        = "role.write"
	PermReportRead       = "report.read"
	PermSettingsWrite    = "settings.write"
	PermAttendanceRead   = "attendance.read"
	PermAttendanceDelete = "attendance.delete"
)

// HasPermission matches required against granted entries. An entry may be
// "all" or "*" (everything), an exact name, or a namespace wildcard such as "checkpoint.*".
func HasPermission(granted []string, required string) bool {
	for _, p := range granted {
		p = strings.TrimSpace(p)
		switch {
		case p == PermAll || p == "*":
			return true
		case p == required:
			return true
		case strings.HasSuffix(p, ".*"):
			ns := strings.TrimSuffix(p, "*")
			if strings.HasPrefix(required, ns) && len(required) > len(ns) {
				return true
			}
		}
	}
	return false
}

// ValidPermission rejects empty entries and malformed wildcards like "a*b" or ".*".
func ValidPermission(p string) bool {
	p = strings.TrimSpace(p)
	if p == "" {
		return false
	}
	if p == PermAll || p == "*" {
		return true
	}
	if strings.HasSuffix(p, ".*") {
		p = strings.TrimSuffix(p, ".*")
		if p == "" {
			return false
		}
	}
	return !strings.ContainsAny(p, "* ")
}
