package auth

import (
	"errors"
	"testing"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		input   string
		want    Role
		wantErr bool
	}{
		{"ADMIN", RoleAdmin, false},
		{"HANDLER", RoleHandler, false},
		{"AGENT", RoleAgent, false},
		{"admin", "", true},
		{"", "", true},
		{"SUPERUSER", "", true},
	}

	for _, tt := range tests {
		got, err := ParseRole(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseRole(%q) expected error, got %q", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRole(%q) error = %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseRole(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

// Authorize is a pure predicate over (role, required set); check it over the
// full 3-role x power-set space.
func TestAuthorize_Exhaustive(t *testing.T) {
	roles := []Role{RoleAdmin, RoleHandler, RoleAgent}
	requiredSets := [][]Role{
		{},
		{RoleAdmin},
		{RoleHandler},
		{RoleAgent},
		{RoleAdmin, RoleHandler},
		{RoleAdmin, RoleAgent},
		{RoleHandler, RoleAgent},
		{RoleAdmin, RoleHandler, RoleAgent},
	}

	for _, role := range roles {
		for _, required := range requiredSets {
			identity := &Identity{ID: "id", Email: "x@imf.gov", Role: role}
			err := Authorize(identity, required...)

			member := false
			for _, r := range required {
				if r == role {
					member = true
				}
			}

			if member && err != nil {
				t.Errorf("Authorize(%s, %v) = %v, want nil", role, required, err)
			}
			if !member && !errors.Is(err, ErrForbidden) {
				t.Errorf("Authorize(%s, %v) = %v, want ErrForbidden", role, required, err)
			}
		}
	}
}

func TestAuthorize_NilIdentity(t *testing.T) {
	if err := Authorize(nil, RoleAdmin); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("Authorize(nil) = %v, want ErrUnauthenticated", err)
	}
	if err := Authorize(nil); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("Authorize(nil, no roles) = %v, want ErrUnauthenticated", err)
	}
}
