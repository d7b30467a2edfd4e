package authroles

// Package authroles maps externally authenticated emails to application
// roles through a configured whitelist. Google logins carry no role, so
// an email absent from the whitelist cannot log in.

import (
	"fmt"
	"strings"

	domainauth "github.com/academica/progress-ui-api/internal/domain/auth"
	"github.com/academica/progress-ui-api/internal/ports"
)

// WhitelistDirectory is a static email-to-role mapping.
type WhitelistDirectory struct {
	roles map[string]domainauth.Role
}

var _ ports.RoleDirectory = (*WhitelistDirectory)(nil)

// ParseWhitelist builds a directory from the serialized form
// "role:email,email;role:email". Role names may use the legacy Spanish
// spellings. When the same email appears under several roles, the last
// entry wins.
func ParseWhitelist(raw string) (*WhitelistDirectory, error) {
	dir := &WhitelistDirectory{roles: make(map[string]domainauth.Role)}

	for _, group := range strings.Split(raw, ";") {
		group = strings.TrimSpace(group)
		if group == "" {
			continue
		}

		roleRaw, emails, ok := strings.Cut(group, ":")
		if !ok {
			return nil, fmt.Errorf("whitelist entry %q: missing role separator", group)
		}
		role, ok := domainauth.ParseRole(strings.TrimSpace(roleRaw))
		if !ok {
			return nil, fmt.Errorf("whitelist entry %q: unknown role %q", group, strings.TrimSpace(roleRaw))
		}

		for _, email := range strings.Split(emails, ",") {
			email = strings.ToLower(strings.TrimSpace(email))
			if email == "" {
				continue
			}
			dir.roles[email] = role
		}
	}

	return dir, nil
}

// RoleFor resolves the role for an email, case-insensitively.
func (d *WhitelistDirectory) RoleFor(email string) (domainauth.Role, bool) {
	role, ok := d.roles[strings.ToLower(strings.TrimSpace(email))]
	return role, ok
}

// Len reports the number of whitelisted emails.
func (d *WhitelistDirectory) Len() int { return len(d.roles) }
