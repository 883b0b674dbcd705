package auth

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// PrincipalHeader carries the platform-injected identity payload: a
// base64-encoded JSON client principal.
const PrincipalHeader = "x-ms-client-principal"

// Claim type URIs used by principals that arrive with a pre-built claims
// list. Short "roles"/"name" types are accepted as well.
const (
	roleClaimType = "http://schemas.microsoft.com/ws/2008/06/identity/claims/role"
	nameClaimType = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/name"
)

// ClientPrincipalClaim is one type/value pair from the principal payload.
type ClientPrincipalClaim struct {
	Type  string `json:"typ"`
	Value string `json:"val"`
}

// ClientPrincipal is the decoded identity payload.
type ClientPrincipal struct {
	IdentityProvider string                 `json:"identityProvider"`
	UserID           string                 `json:"userId"`
	UserDetails      string                 `json:"userDetails"`
	UserRoles        []string               `json:"userRoles"`
	Claims           []ClientPrincipalClaim `json:"claims"`
}

// Identity is the caller's resolved identity for one request. The zero value
// is anonymous.
type Identity struct {
	Authenticated bool
	Name          string
	Roles         []string
}

// HasRole reports whether the identity carries the named role.
func (id Identity) HasRole(role string) bool {
	for _, r := range id.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// ParsePrincipal decodes the principal header value.
func ParsePrincipal(encoded string) (ClientPrincipal, error) {
	var principal ClientPrincipal
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return principal, fmt.Errorf("decode principal header: %w", err)
	}
	if err := json.Unmarshal(raw, &principal); err != nil {
		return principal, fmt.Errorf("parse principal payload: %w", err)
	}
	return principal, nil
}

// Identity resolves the principal into an Identity. Exactly one construction
// path applies: a supplied claims list wins outright; otherwise roles are
// synthesized from the user-roles array, but only for the aad provider. Any
// other provider without claims stays anonymous.
func (p ClientPrincipal) Identity() Identity {
	if len(p.Claims) > 0 {
		id := Identity{Authenticated: true, Name: p.UserDetails}
		for _, claim := range p.Claims {
			switch claim.Type {
			case roleClaimType, "roles":
				id.Roles = append(id.Roles, claim.Value)
			case nameClaimType, "name":
				id.Name = claim.Value
			}
		}
		return id
	}

	if p.IdentityProvider == "aad" {
		return Identity{
			Authenticated: true,
			Name:          p.UserDetails,
			Roles:         p.UserRoles,
		}
	}

	return Identity{}
}
