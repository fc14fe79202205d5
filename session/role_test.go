package session

import "testing"

func TestParseRole(t *testing.T) {
	tests := []struct {
		raw  string
		want Role
	}{
		{"ADMIN", RoleAdmin},
		{"ROLE_ADMIN", RoleAdmin},
		{"admin", RoleAdmin},
		{" Role_Admin ", RoleAdmin},
		{"EMPLOYEE", RoleEmployee},
		{"ROLE_EMPLOYEE", RoleEmployee},
		{"STAFF", RoleUnknown},
		{"CUSTOMER", RoleCustomer},
		{"ROLE_CUSTOMER", RoleCustomer},
		{"", RoleUnknown},
		{"SUPERVISOR", RoleUnknown},
	}
	for _, tt := range tests {
		if got := ParseRole(tt.raw); got != tt.want {
			t.Errorf("ParseRole(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestRoleEquivalence(t *testing.T) {
	// Bare and legacy-prefixed tags must be interchangeable.
	if ParseRole("ADMIN") != ParseRole("ROLE_ADMIN") {
		t.Fatal("ADMIN and ROLE_ADMIN should normalize to the same role")
	}
	if !RoleAdmin.Is("ROLE_ADMIN") {
		t.Fatal("RoleAdmin.Is(ROLE_ADMIN) should hold")
	}
}

func TestHomePath(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{RoleAdmin, "/admin/dashboard"},
		{RoleEmployee, "/employee/dashboard"},
		{RoleCustomer, "/customer/dashboard"},
		{RoleUnknown, "/customer/dashboard"},
	}
	for _, tt := range tests {
		if got := tt.role.HomePath(); got != tt.want {
			t.Errorf("HomePath(%q) = %q, want %q", tt.role, got, tt.want)
		}
	}
}

func TestDisplayName(t *testing.T) {
	u := User{Email: "a@x.com"}
	if got := u.DisplayName(); got != "a@x.com" {
		t.Errorf("DisplayName = %q, want email fallback", got)
	}
	u.FirstName = "Ada"
	u.LastName = "Lovelace"
	if got := u.DisplayName(); got != "Ada Lovelace" {
		t.Errorf("DisplayName = %q, want %q", got, "Ada Lovelace")
	}
}
