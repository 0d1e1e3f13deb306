package models

import "github.com/golang-jwt/jwt/v5"

// Claims defines the JWT claims structure. It mirrors Account minus the
// password hash, which must never be embedded in a token.
type Claims struct {
	AccountID int64  `json:"account_id"`
	FirstName string `json:"account_firstname"`
	LastName  string `json:"account_lastname"`
	Email     string `json:"account_email"`
	Role      Role   `json:"account_type"`
	jwt.RegisteredClaims
}

// ClaimsFor builds token claims from an account.
func ClaimsFor(a *Account) Claims {
	return Claims{
		AccountID: a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Email:     a.Email,
		Role:      a.Role,
	}
}

// HasRole reports whether the claims carry one of the given roles.
func (c *Claims) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if c.Role == r {
			return true
		}
	}
	return false
}

// CanManage reports whether the claims may act on the given account: their
// own, or any account for an Admin.
func (c *Claims) CanManage(accountID int64) bool {
	return c.AccountID == accountID || c.Role == RoleAdmin
}

type LoginRequest struct {
	Email    string
	Password string
}

type RegisterRequest struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	PasswordConfirm string
}
