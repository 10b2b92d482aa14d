package api

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func postForm(t *testing.T, app *fiber.App, path string, form url.Values) *http.Response {
	t.Helper()

	request := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	response, err := app.Test(request)
	if err != nil {
		t.Fatalf("post %s: %v", path, err)
	}
	return response
}

func TestRegisterSignsInImmediately(t *testing.T) {
	app, _ := newTestApp(t)

	form := url.Values{}
	form.Set("email", "mara@example.com")
	form.Set("password", "Str0ngpass")
	form.Set("confirm_password", "Str0ngpass")

	response := postForm(t, app, "/api/auth/register", form)
	defer response.Body.Close()

	if response.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected redirect after register, got %d", response.StatusCode)
	}
	if response.Header.Get("Location") != "/" {
		t.Errorf("expected redirect to dashboard, got %q", response.Header.Get("Location"))
	}
	cookie := responseCookie(response.Cookies(), authCookieName)
	if cookie == nil || cookie.Value == "" {
		t.Fatal("expected session cookie after register")
	}
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	app, _ := newTestApp(t)

	form := url.Values{}
	form.Set("email", "mara@example.com")
	form.Set("password", "short")
	form.Set("confirm_password", "short")

	response := postForm(t, app, "/api/auth/register", form)
	defer response.Body.Close()

	if response.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected redirect back to form, got %d", response.StatusCode)
	}
	if response.Header.Get("Location") != "/register" {
		t.Errorf("expected redirect to /register, got %q", response.Header.Get("Location"))
	}
	if responseCookie(response.Cookies(), authCookieName) != nil {
		t.Error("expected no session cookie on failed registration")
	}
	flash := responseCookie(response.Cookies(), flashCookieName)
	if flash == nil || flash.Value == "" {
		t.Error("expected flash cookie carrying the error")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app, database := newTestApp(t)
	createTestUser(t, database, "mara@example.com", "Str0ngpass")

	form := url.Values{}
	form.Set("email", "Mara@Example.com")
	form.Set("password", "Str0ngpass")
	form.Set("confirm_password", "Str0ngpass")

	request := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	request.Header.Set("Accept", "application/json")

	response, err := app.Test(request)
	if err != nil {
		t.Fatalf("register request: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusConflict {
		t.Fatalf("expected conflict, got %d", response.StatusCode)
	}
	if message := readAPIError(t, response.Body); message != "email already exists" {
		t.Errorf("unexpected error %q", message)
	}
}

func TestLoginAndLogout(t *testing.T) {
	app, database := newTestApp(t)
	createTestUser(t, database, "mara@example.com", "Str0ngpass")

	cookie := loginTestUser(t, app, "mara@example.com", "Str0ngpass")

	response, err := app.Test(authenticatedRequest(http.MethodGet, "/", nil, cookie))
	if err != nil {
		t.Fatalf("dashboard request: %v", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected dashboard 200, got %d", response.StatusCode)
	}

	logout, err := app.Test(authenticatedRequest(http.MethodPost, "/api/auth/logout", nil, cookie))
	if err != nil {
		t.Fatalf("logout request: %v", err)
	}
	defer logout.Body.Close()
	if logout.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected logout redirect, got %d", logout.StatusCode)
	}
	cleared := responseCookie(logout.Cookies(), authCookieName)
	if cleared == nil || cleared.Value != "" {
		t.Error("expected auth cookie to be cleared")
	}
}

func TestLoginWrongPasswordRedirectsWithFlash(t *testing.T) {
	app, database := newTestApp(t)
	createTestUser(t, database, "mara@example.com", "Str0ngpass")

	form := url.Values{}
	form.Set("email", "mara@example.com")
	form.Set("password", "wrong-password")

	response := postForm(t, app, "/api/auth/login", form)
	defer response.Body.Close()

	if response.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", response.StatusCode)
	}
	if response.Header.Get("Location") != "/login" {
		t.Errorf("expected redirect to /login, got %q", response.Header.Get("Location"))
	}
	flash := responseCookie(response.Cookies(), flashCookieName)
	if flash == nil || flash.Value == "" {
		t.Error("expected flash cookie with the error and typed email")
	}
}

func TestUnauthenticatedPageRedirectsToLogin(t *testing.T) {
	app, _ := newTestApp(t)

	response, err := app.Test(httptest.NewRequest(http.MethodGet, "/history", nil))
	if err != nil {
		t.Fatalf("history request: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", response.StatusCode)
	}
	if response.Header.Get("Location") != "/login" {
		t.Errorf("expected redirect to /login, got %q", response.Header.Get("Location"))
	}
}

func TestUnauthenticatedAPIReturns401(t *testing.T) {
	app, _ := newTestApp(t)

	response, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/episodes", nil))
	if err != nil {
		t.Fatalf("episodes request: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", response.StatusCode)
	}
}
