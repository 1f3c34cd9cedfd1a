// Package httpkit provides HTTP utilities including identity abstraction.
package httpkit

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Identity represents the authenticated account's identity.
// This interface abstracts identity extraction from the web framework,
// allowing handlers to access account information without depending on Gin.
type Identity interface {
	// AccountID returns the authenticated account's ID.
	AccountID() uuid.UUID
	// Roles returns the account's assigned roles.
	Roles() []string
	// HasRole checks if the account has a specific role.
	HasRole(role string) bool
	// IsAuthenticated returns true if the account is authenticated.
	IsAuthenticated() bool
}

// identity is the concrete implementation of Identity.
type identity struct {
	accountID     uuid.UUID
	roles         []string
	authenticated bool
}

func (i *identity) AccountID() uuid.UUID {
	return i.accountID
}

func (i *identity) Roles() []string {
	return i.roles
}

func (i *identity) HasRole(role string) bool {
	for _, r := range i.roles {
		if r == role {
			return true
		}
	}
	return false
}

func (i *identity) IsAuthenticated() bool {
	return i.authenticated
}

// GetIdentity extracts the Identity from a Gin context.
// Returns an unauthenticated identity if account info is not present.
func GetIdentity(c *gin.Context) Identity {
	accountID, accountOK := c.Get(ContextAccountIDKey)
	roles, rolesOK := c.Get(ContextRolesKey)

	if !accountOK {
		return &identity{authenticated: false}
	}

	id, ok := accountID.(uuid.UUID)
	if !ok {
		return &identity{authenticated: false}
	}

	var roleList []string
	if rolesOK {
		roleList, _ = roles.([]string)
	}

	return &identity{
		accountID:     id,
		roles:         roleList,
		authenticated: true,
	}
}

// MustGetIdentity extracts the Identity from a Gin context.
// If the account is not authenticated, it aborts with 401 Unauthorized and returns nil.
func MustGetIdentity(c *gin.Context) Identity {
	id := GetIdentity(c)
	if !id.IsAuthenticated() {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil
	}
	return id
}
