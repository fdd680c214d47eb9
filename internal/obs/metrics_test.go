package obs

import "testing"

func TestCanonicalPath(t *testing.T) {
	cases := map[string]string{
		"":                            "/",
		"/metrics":                    "/metrics",
		"/v1/auth/login":              "/v1/auth/login",
		"/v1/users":                   "/v1/users",
		"/v1/users/01J8F3ZK2M":        "/v1/users/:id",
		"/v1/roles/abc":               "/v1/roles/:id",
		"/v1/permissions/abc":         "/v1/permissions/:id",
		"/v1/users/abc/extra":         "/v1/users/abc/extra",
		"/v1/permissions?page=2":      "/v1/permissions",
		"/v1/roles/abc?include=perms": "/v1/roles/:id",
	}
	for input, expected := range cases {
		if got := CanonicalPath(input); got != expected {
			t.Fatalf("CanonicalPath(%q)=%q, want %q", input, got, expected)
		}
	}
}
