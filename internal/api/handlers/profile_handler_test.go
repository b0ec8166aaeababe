package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swasthly/healthassist/internal/api/handlers"
	"github.com/swasthly/healthassist/internal/application/services"
	"github.com/swasthly/healthassist/internal/domain/entities"
	apperrors "github.com/swasthly/healthassist/pkg/errors"
)

type fakeUserRepo struct {
	profiles map[string]*entities.UserProfile
	updated  *entities.UserProfile
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entities.UserProfile, error) {
	profile, ok := r.profiles[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("user profile not found")
	}
	return profile, nil
}

func (r *fakeUserRepo) Update(_ context.Context, profile *entities.UserProfile) error {
	if _, ok := r.profiles[profile.ID]; !ok {
		return apperrors.NewNotFoundError("user profile not found")
	}
	r.updated = profile
	return nil
}

func TestProfileHandler_GetProfile(t *testing.T) {
	repo := &fakeUserRepo{profiles: map[string]*entities.UserProfile{
		"user-1": {ID: "user-1", Name: "Asha Rao", Email: "asha@example.com"},
	}}
	handler := handlers.NewProfileHandler(services.NewProfileService(repo))

	t.Run("returns existing profile", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/profile/user-1", nil)
		req.SetPathValue("id", "user-1")
		w := httptest.NewRecorder()

		handler.GetProfile(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var profile entities.UserProfile
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
		assert.Equal(t, "Asha Rao", profile.Name)
	})

	t.Run("returns 404 for unknown profile", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/profile/nope", nil)
		req.SetPathValue("id", "nope")
		w := httptest.NewRecorder()

		handler.GetProfile(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestProfileHandler_UpdateProfile(t *testing.T) {
	t.Run("updates profile using path id", func(t *testing.T) {
		repo := &fakeUserRepo{profiles: map[string]*entities.UserProfile{
			"user-1": {ID: "user-1", Name: "Asha Rao", Email: "asha@example.com"},
		}}
		handler := handlers.NewProfileHandler(services.NewProfileService(repo))

		req := postJSON("/api/profile/user-1", map[string]interface{}{
			"id":    "someone-else",
			"name":  "Asha R. Rao",
			"email": "asha@example.com",
		})
		req.SetPathValue("id", "user-1")
		w := httptest.NewRecorder()

		handler.UpdateProfile(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, repo.updated)
		assert.Equal(t, "user-1", repo.updated.ID)
		assert.Equal(t, "Asha R. Rao", repo.updated.Name)
	})

	t.Run("rejects missing name", func(t *testing.T) {
		repo := &fakeUserRepo{profiles: map[string]*entities.UserProfile{
			"user-1": {ID: "user-1", Name: "Asha Rao", Email: "asha@example.com"},
		}}
		handler := handlers.NewProfileHandler(services.NewProfileService(repo))

		req := postJSON("/api/profile/user-1", map[string]interface{}{
			"email": "asha@example.com",
		})
		req.SetPathValue("id", "user-1")
		w := httptest.NewRecorder()

		handler.UpdateProfile(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
