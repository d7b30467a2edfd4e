package mockauth

// Package mockauth provides the built-in demo account directory used in
// mock auth mode. Accounts, passwords, and display names are fixed so
// that demos and tests are reproducible.

import (
	"context"
	"sort"
	"strings"
	"time"

	domainauth "github.com/academica/progress-ui-api/internal/domain/auth"
	apperrors "github.com/academica/progress-ui-api/internal/errors"
)

// Account is a canned demo user.
type Account struct {
	Email    string
	Password string
	Name     string
	Role     domainauth.Role
}

// Identity returns the account's identity without the password.
func (a Account) Identity() domainauth.Identity {
	return domainauth.Identity{
		Email: a.Email,
		Name:  a.Name,
		Role:  a.Role,
	}
}

var defaultAccounts = []Account{
	{Email: "student@example.com", Password: "student123", Name: "Juan Estudiante", Role: domainauth.RoleStudent},
	{Email: "teacher@example.com", Password: "teacher123", Name: "María Profesora", Role: domainauth.RoleTeacher},
	{Email: "coord@example.com", Password: "coord123", Name: "Carlos Coordinador", Role: domainauth.RoleCoordinator},
	{Email: "admin@example.com", Password: "admin123", Name: "Ana Administradora", Role: domainauth.RoleAdmin},
}

// Directory holds the demo accounts and answers both lookup styles: by
// role (the one-click role login) and by email plus password.
type Directory struct {
	byEmail map[string]Account
	byRole  map[domainauth.Role]Account

	// loginDelay simulates backend latency on credential checks so the
	// UI's loading states stay exercised in demos.
	loginDelay time.Duration
}

// Option customizes a Directory.
type Option func(*Directory)

// WithLoginDelay sets an artificial delay applied to every Authenticate
// call.
func WithLoginDelay(d time.Duration) Option {
	return func(dir *Directory) { dir.loginDelay = d }
}

// WithAccounts replaces the default account set (tests).
func WithAccounts(accounts []Account) Option {
	return func(dir *Directory) {
		dir.byEmail = make(map[string]Account, len(accounts))
		dir.byRole = make(map[domainauth.Role]Account, len(accounts))
		for _, a := range accounts {
			dir.byEmail[strings.ToLower(a.Email)] = a
			dir.byRole[a.Role] = a
		}
	}
}

// NewDirectory creates a directory with the four built-in demo accounts,
// one per role.
func NewDirectory(opts ...Option) *Directory {
	dir := &Directory{}
	WithAccounts(defaultAccounts)(dir)
	for _, opt := range opts {
		opt(dir)
	}
	return dir
}

// LookupRole returns the demo identity for a role name. Legacy Spanish
// role names are accepted. Unknown names yield an UnknownRole error.
func (d *Directory) LookupRole(raw string) (domainauth.Identity, error) {
	role, ok := domainauth.ParseRole(raw)
	if !ok {
		return domainauth.Identity{}, apperrors.UnknownRolef("unknown role %q", raw)
	}
	account, ok := d.byRole[role]
	if !ok {
		return domainauth.Identity{}, apperrors.UnknownRolef("no demo account for role %q", role)
	}
	return account.Identity(), nil
}

// Authenticate checks an email and password against the directory.
// Unknown email and wrong password return the same error so the caller
// cannot distinguish them.
func (d *Directory) Authenticate(ctx context.Context, email, password string) (domainauth.Identity, error) {
	if d.loginDelay > 0 {
		select {
		case <-time.After(d.loginDelay):
		case <-ctx.Done():
			return domainauth.Identity{}, ctx.Err()
		}
	}

	account, ok := d.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok || account.Password != password {
		return domainauth.Identity{}, apperrors.InvalidCredentials()
	}
	return account.Identity(), nil
}

// RoleFor reports the role for a directory email, satisfying the role
// directory port so mock mode can share the whitelist code path.
func (d *Directory) RoleFor(email string) (domainauth.Role, bool) {
	account, ok := d.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return "", false
	}
	return account.Role, true
}

// Accounts lists the demo accounts ordered by role rank. Used by the
// admin CLI and the login page's account hints.
func (d *Directory) Accounts() []Account {
	out := make([]Account, 0, len(d.byRole))
	for _, a := range d.byRole {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out
}
