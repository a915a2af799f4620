package authz

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthzServiceTest(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	return svc
}

func TestEnforceRoleWithPolicy(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("clerk", "/invoices/:id", "GET"); err != nil {
		t.Fatalf("grant role policy failed: %v", err)
	}

	allow, err := svc.EnforceRole("clerk", "/api/v1/invoices/42", "get")
	if err != nil {
		t.Fatalf("enforce allow failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected allow=true")
	}

	allow, err = svc.EnforceRole("clerk", "/api/v1/invoices/42", "DELETE")
	if err != nil {
		t.Fatalf("enforce deny failed: %v", err)
	}
	if allow {
		t.Fatalf("expected allow=false")
	}

	if err := svc.RevokeRolePolicy("clerk", "/invoices/:id", "GET"); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	allow, _ = svc.EnforceRole("clerk", "/api/v1/invoices/42", "GET")
	if allow {
		t.Fatalf("revoked policy should deny")
	}
}

func TestEnforceRoleEmptyRoleDenies(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	allow, err := svc.EnforceRole(" ", "/clients", "GET")
	if err != nil || allow {
		t.Fatalf("empty role should deny without error, allow=%v err=%v", allow, err)
	}
}

func TestNormalizeObject(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "/api/v1/payments/:id", want: "/payments/:id"},
		{in: "/payments/:id", want: "/payments/:id"},
		{in: "payments", want: "/payments"},
		{in: "/api/v1", want: "/"},
		{in: "", want: "/"},
	}
	for _, item := range cases {
		got := NormalizeObject(item.in)
		if got != item.want {
			t.Fatalf("normalize object failed, in=%q want=%q got=%q", item.in, item.want, got)
		}
	}
}

func TestBootstrapBuiltinRoles(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap builtin roles failed: %v", err)
	}
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap should be repeatable: %v", err)
	}

	roles, err := svc.ListRoles()
	if err != nil {
		t.Fatalf("list roles failed: %v", err)
	}
	wantRoles := map[string]bool{
		"role:viewer":     true,
		"role:staff":      true,
		"role:accounting": true,
		"role:admin":      true,
	}
	for _, role := range roles {
		delete(wantRoles, role)
	}
	if len(wantRoles) != 0 {
		t.Fatalf("builtin roles missing: %v", wantRoles)
	}

	cases := []struct {
		role   string
		path   string
		method string
		want   bool
	}{
		{role: "viewer", path: "/api/v1/payments", method: "GET", want: true},
		{role: "viewer", path: "/api/v1/clients", method: "POST", want: false},
		{role: "staff", path: "/api/v1/clients", method: "POST", want: true},
		{role: "staff", path: "/api/v1/invoices/:id", method: "PUT", want: true},
		{role: "staff", path: "/api/v1/payments/match", method: "POST", want: false},
		{role: "accounting", path: "/api/v1/payments/match", method: "POST", want: true},
		{role: "accounting", path: "/api/v1/invoices", method: "POST", want: true},
		{role: "admin", path: "/api/v1/bank-transactions/import", method: "POST", want: true},
	}
	for _, tc := range cases {
		allow, err := svc.EnforceRole(tc.role, tc.path, tc.method)
		if err != nil {
			t.Fatalf("enforce %s %s %s failed: %v", tc.role, tc.method, tc.path, err)
		}
		if allow != tc.want {
			t.Fatalf("%s %s %s want %v got %v", tc.role, tc.method, tc.path, tc.want, allow)
		}
	}

	policies, err := svc.GetRolePolicies("staff")
	if err != nil {
		t.Fatalf("get policies failed: %v", err)
	}
	foundInherited := false
	for _, p := range policies {
		if p.Subject == "role:viewer" && p.Object == "/*" && p.Action == "GET" {
			foundInherited = true
		}
	}
	if !foundInherited {
		t.Fatalf("staff policies should include inherited viewer policy: %+v", policies)
	}
}
