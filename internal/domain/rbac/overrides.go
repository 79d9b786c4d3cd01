package rbac

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Overrides is the stored replacement matrix, as held under the rbac_overrides
// setting: {"finance": ["dashboard:executive", "revenue"], ...}
type Overrides map[Role][]Scope

// ParseOverrides decodes and validates a stored override document. Blank input means no overrides.
func ParseOverrides(raw string) (Overrides, error) {
	if strings.TrimSpace(raw) == "" {
		return Overrides{}, nil
	}

	var overrides Overrides
	if err := json.Unmarshal([]byte(raw), &overrides); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRBACOverrides, err)
	}
	if err := overrides.Validate(); err != nil {
		return nil, err
	}
	return overrides, nil
}

// Validate rejects unknown roles and scopes
func (o Overrides) Validate() error {
	for role, scopes := range o {
		if !role.IsValid() {
			return fmt.Errorf("%w: unknown role %q", ErrInvalidRBACOverrides, role)
		}
		for _, scope := range scopes {
			if !scope.IsValid() {
				return fmt.Errorf("%w: unknown scope %q for role %q", ErrInvalidRBACOverrides, scope, role)
			}
		}
	}
	return nil
}

// Merge applies overrides on top of base. A listed role has its scope set replaced; unlisted
// roles keep their base scopes. Admin is pinned to ScopeAll whatever the overrides say.
func Merge(base Matrix, overrides Overrides) Matrix {
	merged := base.Clone()
	for role, scopes := range overrides {
		merged[role] = NewScopeSet(scopes...)
	}
	merged[RoleAdmin] = NewScopeSet(ScopeAll)
	return merged
}

// Marshal renders the overrides in the stored form
func (o Overrides) Marshal() (string, error) {
	if len(o) == 0 {
		return "", nil
	}
	b, err := json.Marshal(o)
	if err != nil {
		return "", fmt.Errorf("failed to marshal rbac overrides: %w", err)
	}
	return string(b), nil
}
