package authz

import (
	"testing"

	"github.com/afristar/helpdesk/internal/domain"
)

func TestAuthorizeAdminAllowsEverything(t *testing.T) {
	admin := Actor{ID: "a1", Role: domain.RoleAdmin}
	actions := []Action{
		ActionTicketCreate, ActionTicketRead, ActionTicketUpdate,
		ActionTicketSchedule, ActionTicketAssign, ActionTicketStats,
		ActionCommentCreate, ActionInternalCommentRead, ActionUserList,
	}
	for _, action := range actions {
		if err := Authorize(admin, action, Resource{OwnerID: "someone-else"}); err != nil {
			t.Errorf("admin denied %s: %v", action, err)
		}
	}
}

func TestAuthorizeCustomer(t *testing.T) {
	customer := Actor{ID: "c1", Role: domain.RoleCustomer}
	own := Resource{OwnerID: "c1"}
	foreign := Resource{OwnerID: "c2"}

	cases := []struct {
		name    string
		action  Action
		res     Resource
		allowed bool
	}{
		{"create ticket", ActionTicketCreate, Resource{}, true},
		{"read own ticket", ActionTicketRead, own, true},
		{"read foreign ticket", ActionTicketRead, foreign, false},
		{"update own ticket", ActionTicketUpdate, own, true},
		{"update foreign ticket", ActionTicketUpdate, foreign, false},
		{"schedule own ticket", ActionTicketSchedule, own, false},
		{"assign ticket", ActionTicketAssign, own, false},
		{"comment own ticket", ActionCommentCreate, own, true},
		{"comment foreign ticket", ActionCommentCreate, foreign, false},
		{"read internal comments", ActionInternalCommentRead, own, false},
		{"stats", ActionTicketStats, Resource{}, true},
		{"list users", ActionUserList, Resource{}, false},
	}
	for _, tc := range cases {
		err := Authorize(customer, tc.action, tc.res)
		if tc.allowed && err != nil {
			t.Errorf("%s: expected allow, got %v", tc.name, err)
		}
		if !tc.allowed && err == nil {
			t.Errorf("%s: expected deny, got allow", tc.name)
		}
	}
}

func TestAuthorizeUnknownRoleFailsClosed(t *testing.T) {
	ghost := Actor{ID: "g1", Role: domain.Role("SUPERVISOR")}
	if err := Authorize(ghost, ActionTicketRead, Resource{OwnerID: "g1"}); err == nil {
		t.Fatal("unknown role should be denied")
	}
}

func TestScopeToOwner(t *testing.T) {
	if ScopeToOwner(Actor{Role: domain.RoleAdmin}) {
		t.Error("admin listings should be unrestricted")
	}
	if !ScopeToOwner(Actor{Role: domain.RoleCustomer}) {
		t.Error("customer listings should be owner-scoped")
	}
}

func TestCanReadInternal(t *testing.T) {
	if CanReadInternal(Actor{Role: domain.RoleCustomer}) {
		t.Error("customer should not read internal comments")
	}
	if !CanReadInternal(Actor{Role: domain.RoleAdmin}) {
		t.Error("admin should read internal comments")
	}
}
