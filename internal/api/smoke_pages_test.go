package api

import (
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
)

func TestAuthenticatedPagesRender(t *testing.T) {
	app, _, cookie := setupEpisodeTest(t)

	response := postEpisodeJSON(t, app, cookie, map[string]any{
		"started_at": "2026-03-10T09:30:00Z",
		"ended_at":   "2026-03-10T12:00:00Z",
		"intensity":  6,
		"zones":      []string{"forehead"},
		"triggers":   []string{"stress"},
	})
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("seed episode failed with %d", response.StatusCode)
	}
	created := episodeEnvelope{}
	readJSONBody(t, response.Body, &created)
	response.Body.Close()

	paths := []string{
		"/",
		"/dashboard",
		"/history",
		"/calendar",
		"/calendar?month=2026-03&day=2026-03-10",
		"/analytics",
		"/analytics?from=2026-03-01&to=2026-03-31",
		"/settings",
		"/episodes/new",
		"/episodes/" + created.Episode.ID,
		"/episodes/" + created.Episode.ID + "/edit",
	}
	for _, path := range paths {
		pageResponse, err := app.Test(authenticatedRequest(http.MethodGet, path, nil, cookie))
		if err != nil {
			t.Fatalf("get %s: %v", path, err)
		}
		if pageResponse.StatusCode != http.StatusOK {
			t.Errorf("expected 200 for %s, got %d", path, pageResponse.StatusCode)
		}
		pageResponse.Body.Close()
	}
}

func TestPublicPagesRender(t *testing.T) {
	app, _ := newTestApp(t)

	for _, path := range []string{"/login", "/register", "/privacy"} {
		request := authenticatedRequest(http.MethodGet, path, nil, &http.Cookie{Name: languageCookieName, Value: "en"})
		response, err := app.Test(request)
		if err != nil {
			t.Fatalf("get %s: %v", path, err)
		}
		if response.StatusCode != http.StatusOK {
			t.Errorf("expected 200 for %s, got %d", path, response.StatusCode)
		}
		response.Body.Close()
	}
}

func TestEpisodeFormSubmitCreatesAndRedirects(t *testing.T) {
	app, _, cookie := setupEpisodeTest(t)

	form := url.Values{}
	form.Set("started_at", "2026-03-10T09:30")
	form.Set("ended_at", "2026-03-10T12:00")
	form.Set("intensity", "7")
	form.Set("quality", "pulsing")
	form.Add("zones", "forehead")
	form.Add("zones", "neck")
	form.Set("has_aura", "on")
	form.Add("triggers", "stress")
	form.Set("triggers_custom", "thunderstorm, deadline")
	form.Set("medication", "Ibuprofen")

	request := authenticatedRequest(http.MethodPost, "/episodes", strings.NewReader(form.Encode()), cookie)
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	response, err := app.Test(request)
	if err != nil {
		t.Fatalf("submit form: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected redirect after submit, got %d", response.StatusCode)
	}
	if response.Header.Get("Location") != "/history" {
		t.Errorf("expected redirect to /history, got %q", response.Header.Get("Location"))
	}

	list, err := app.Test(authenticatedRequest(http.MethodGet, "/api/episodes", nil, cookie))
	if err != nil {
		t.Fatalf("list episodes: %v", err)
	}
	defer list.Body.Close()
	envelope := episodeListEnvelope{}
	readJSONBody(t, list.Body, &envelope)
	if len(envelope.Episodes) != 1 {
		t.Fatalf("expected 1 episode, got %d", len(envelope.Episodes))
	}

	episode := envelope.Episodes[0]
	if episode.Intensity != 7 || !episode.HasAura {
		t.Errorf("unexpected stored episode %+v", episode)
	}
	if len(episode.Zones) != 2 {
		t.Errorf("expected 2 zones, got %v", episode.Zones)
	}
	if len(episode.Triggers) != 3 {
		t.Errorf("expected catalog trigger plus two custom ones, got %v", episode.Triggers)
	}
}

func TestEpisodeFormSubmitInvalidInputRerendersForm(t *testing.T) {
	app, _, cookie := setupEpisodeTest(t)

	form := url.Values{}
	form.Set("started_at", "2026-03-10T09:30")
	form.Set("intensity", "12")

	request := authenticatedRequest(http.MethodPost, "/episodes", strings.NewReader(form.Encode()), cookie)
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	response, err := app.Test(request)
	if err != nil {
		t.Fatalf("submit form: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected re-rendered form, got %d", response.StatusCode)
	}
	body, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !strings.Contains(string(body), "Invalid input") {
		t.Error("expected validation message in re-rendered form")
	}
}

func TestEpisodeFormResumesOpenEpisode(t *testing.T) {
	app, _, cookie := setupEpisodeTest(t)

	response := postEpisodeJSON(t, app, cookie, map[string]any{
		"started_at": "2026-03-10T09:30:00Z",
		"intensity":  6,
	})
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("seed episode failed with %d", response.StatusCode)
	}
	created := episodeEnvelope{}
	readJSONBody(t, response.Body, &created)
	response.Body.Close()

	formResponse, err := app.Test(authenticatedRequest(http.MethodGet, "/episodes/new", nil, cookie))
	if err != nil {
		t.Fatalf("get form: %v", err)
	}
	defer formResponse.Body.Close()
	body, err := io.ReadAll(formResponse.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !strings.Contains(string(body), created.Episode.ID) {
		t.Error("expected form to resume the open episode")
	}
}

func TestDeleteEpisodeFormRedirectsToHistory(t *testing.T) {
	app, _, cookie := setupEpisodeTest(t)

	response := postEpisodeJSON(t, app, cookie, map[string]any{
		"started_at": "2026-03-10T09:30:00Z",
		"ended_at":   "2026-03-10T10:30:00Z",
		"intensity":  4,
	})
	created := episodeEnvelope{}
	readJSONBody(t, response.Body, &created)
	response.Body.Close()

	deleteRequest := authenticatedRequest(http.MethodPost, "/episodes/"+created.Episode.ID+"/delete", nil, cookie)
	deleteResponse, err := app.Test(deleteRequest)
	if err != nil {
		t.Fatalf("delete form: %v", err)
	}
	defer deleteResponse.Body.Close()
	if deleteResponse.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", deleteResponse.StatusCode)
	}
	if deleteResponse.Header.Get("Location") != "/history" {
		t.Errorf("expected redirect to /history, got %q", deleteResponse.Header.Get("Location"))
	}

	check, err := app.Test(authenticatedRequest(http.MethodGet, "/api/episodes/"+created.Episode.ID, nil, cookie))
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	defer check.Body.Close()
	if check.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", check.StatusCode)
	}
}
