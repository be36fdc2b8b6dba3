package enums

import "testing"

func TestParseRole(t *testing.T) {
	cases := map[string]Role{
		"admin":  RoleAdmin,
		" USER ": RoleUser,
	}
	for input, want := range cases {
		got, err := ParseRole(input)
		if err != nil {
			t.Fatalf("ParseRole(%q) returned error: %v", input, err)
		}
		if got != want {
			t.Fatalf("ParseRole(%q) = %s, want %s", input, got, want)
		}
	}

	if _, err := ParseRole("owner"); err == nil {
		t.Fatal("expected unknown role to fail")
	}
}

func TestRoleHelpers(t *testing.T) {
	if !RoleAdmin.IsAdmin() || RoleUser.IsAdmin() {
		t.Fatal("unexpected IsAdmin result")
	}
	if Role("").IsValid() {
		t.Fatal("empty role must be invalid")
	}
	if RoleUser.String() != "user" {
		t.Fatalf("unexpected string %q", RoleUser.String())
	}
}
