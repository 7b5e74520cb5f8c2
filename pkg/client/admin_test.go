package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/linkcodelearn/campus/pkg/domain"
)

func TestDashboardStats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/admin/dashboard/stats" {
			http.NotFound(w, r)
			return
		}
		writeData(w, domain.DashboardStats{TotalUsers: 42, TotalStudents: 30, TotalInstructors: 10, ActiveUsers: 35})
	}))
	defer srv.Close()

	stats, err := newTestClient(srv.URL).DashboardStats(context.Background())
	if err != nil {
		t.Fatalf("DashboardStats: %v", err)
	}
	if stats.TotalUsers != 42 || stats.ActiveUsers != 35 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestGetUser(t *testing.T) {
	id := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/admin/users/"+id.String() {
			http.NotFound(w, r)
			return
		}
		writeData(w, domain.User{ID: id, Email: "ravi@linkcode.dev", Role: domain.RoleInstructor})
	}))
	defer srv.Close()

	u, err := newTestClient(srv.URL).GetUser(context.Background(), id.String())
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if u.Email != "ravi@linkcode.dev" {
		t.Errorf("email = %q", u.Email)
	}
}

func TestUpdateUserPatchesFields(t *testing.T) {
	id := uuid.New()
	var gotMethod string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		json.NewDecoder(r.Body).Decode(&gotBody) //nolint:errcheck
		writeData(w, domain.User{ID: id, Bio: "updated"})
	}))
	defer srv.Close()

	u, err := newTestClient(srv.URL).UpdateUser(context.Background(), id.String(), map[string]any{"bio": "updated"})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if gotMethod != http.MethodPatch {
		t.Errorf("method = %q, want PATCH", gotMethod)
	}
	if gotBody["bio"] != "updated" {
		t.Errorf("body = %v", gotBody)
	}
	if u.Bio != "updated" {
		t.Errorf("bio = %q", u.Bio)
	}
}

func TestActivationLifecycle(t *testing.T) {
	id := uuid.New().String()
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		writeData(w, map[string]string{"message": "ok"})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	if err := c.DeactivateUser(context.Background(), id); err != nil {
		t.Fatalf("DeactivateUser: %v", err)
	}
	if err := c.ActivateUser(context.Background(), id); err != nil {
		t.Fatalf("ActivateUser: %v", err)
	}
	if err := c.DeleteUser(context.Background(), id); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if len(paths) != 3 {
		t.Fatalf("calls = %v", paths)
	}
	if paths[2] != "DELETE /admin/users/"+id {
		t.Errorf("delete call = %q", paths[2])
	}
}

func TestListCourses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/courses" {
			http.NotFound(w, r)
			return
		}
		writeData(w, []domain.Course{
			{ID: uuid.New(), Title: "Intro to Go", Category: "backend"},
			{ID: uuid.New(), Title: "React from Scratch", Category: "frontend"},
		})
	}))
	defer srv.Close()

	courses, err := newTestClient(srv.URL).ListCourses(context.Background())
	if err != nil {
		t.Fatalf("ListCourses: %v", err)
	}
	if len(courses) != 2 || courses[0].Title != "Intro to Go" {
		t.Errorf("courses = %+v", courses)
	}
}

func TestAdminLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/admin/login" {
			http.NotFound(w, r)
			return
		}
		writeData(w, domain.LoginResult{
			User:         &domain.User{Email: "root@linkcode.dev", Role: domain.RoleAdmin},
			AccessToken:  "at",
			RefreshToken: "rt",
		})
	}))
	defer srv.Close()

	res, err := newTestClient(srv.URL).AdminLogin(context.Background(), "root@linkcode.dev", "secret123")
	if err != nil {
		t.Fatalf("AdminLogin: %v", err)
	}
	if res.User.Role != domain.RoleAdmin {
		t.Errorf("role = %q", res.User.Role)
	}
}
