package permissions_test

import (
	"testing"

	"guesthouse/permissions"
)

func TestGet(t *testing.T) {
	data := permissions.Get()
	if data == nil {
		t.Fatal("expected embedded permissions to decode")
	}
	if len(data.Endpoints) == 0 {
		t.Fatal("expected endpoints in the embedded table")
	}
}

func TestFindPermissions(t *testing.T) {
	data := permissions.Get()

	tests := []struct {
		name      string
		path      string
		method    string
		wantSkip  bool
		wantRoles []string
	}{
		{name: "public room listing", path: "/v1/rooms", method: "GET", wantSkip: true},
		{name: "public booking inquiry", path: "/v1/bookings", method: "POST", wantSkip: true},
		{name: "account creation needs superadmin", path: "/v1/auth/accounts", method: "POST", wantRoles: []string{"superadmin"}},
		{name: "unknown route requires authentication", path: "/v1/unknown", method: "GET"},
		{name: "method matters", path: "/v1/rooms", method: "POST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			permission := data.FindPermissions(tt.path, tt.method)

			if permission.Skip != tt.wantSkip {
				t.Errorf("expected Skip %v, got %v", tt.wantSkip, permission.Skip)
			}
			if len(permission.Permissions) != len(tt.wantRoles) {
				t.Fatalf("expected roles %v, got %v", tt.wantRoles, permission.Permissions)
			}
			for i, role := range tt.wantRoles {
				if permission.Permissions[i] != role {
					t.Errorf("expected role %s, got %s", role, permission.Permissions[i])
				}
			}
		})
	}
}
