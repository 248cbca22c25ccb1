package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"github.com/mgiannak/office-tasks/internal/models"
)

func userForm(lastName string, isAdmin bool, password string) map[string]interface{} {
	return map[string]interface{}{
		"rank":       "lgos",
		"first_name": "Nikos",
		"last_name":  lastName,
		"active":     true,
		"is_admin":   isAdmin,
		"password":   password,
	}
}

func TestAdminUserHandler_CreateAdminStoresHash(t *testing.T) {
	env := setupHandlersTestEnv(t)

	w := env.do(t, http.MethodPost, "/admin/users", userForm("Karras", true, "s3cret"))
	require.Equal(t, http.StatusCreated, w.Code)

	var user models.User
	require.NoError(t, env.db.Where("last_name = ?", "Karras").First(&user).Error)
	require.True(t, user.IsAdmin)
	require.NotNil(t, user.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte("s3cret")))
}

func TestAdminUserHandler_CreateNonAdminIgnoresPassword(t *testing.T) {
	env := setupHandlersTestEnv(t)

	// A password submitted for a non-admin is discarded
	w := env.do(t, http.MethodPost, "/admin/users", userForm("Karras", false, "s3cret"))
	require.Equal(t, http.StatusCreated, w.Code)

	var user models.User
	require.NoError(t, env.db.Where("last_name = ?", "Karras").First(&user).Error)
	require.False(t, user.IsAdmin)
	require.Nil(t, user.PasswordHash)
}

func TestAdminUserHandler_DemotionErasesHash(t *testing.T) {
	env := setupHandlersTestEnv(t)

	w := env.do(t, http.MethodPost, "/admin/users", userForm("Karras", true, "s3cret"))
	require.Equal(t, http.StatusCreated, w.Code)

	var user models.User
	require.NoError(t, env.db.Where("last_name = ?", "Karras").First(&user).Error)
	require.NotNil(t, user.PasswordHash)

	w = env.do(t, http.MethodPost, "/admin/users/2", userForm("Karras", false, ""))
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, env.db.First(&user, user.ID).Error)
	require.False(t, user.IsAdmin)
	require.Nil(t, user.PasswordHash)
}

func TestAdminUserHandler_UpdateKeepsHashWhenPasswordBlank(t *testing.T) {
	env := setupHandlersTestEnv(t)

	w := env.do(t, http.MethodPost, "/admin/users", userForm("Karras", true, "s3cret"))
	require.Equal(t, http.StatusCreated, w.Code)

	var before models.User
	require.NoError(t, env.db.Where("last_name = ?", "Karras").First(&before).Error)

	// Editing without re-typing the password keeps the stored hash
	w = env.do(t, http.MethodPost, "/admin/users/2", userForm("Karras", true, ""))
	require.Equal(t, http.StatusOK, w.Code)

	var after models.User
	require.NoError(t, env.db.First(&after, before.ID).Error)
	require.NotNil(t, after.PasswordHash)
	require.Equal(t, *before.PasswordHash, *after.PasswordHash)
}

func TestAdminUserHandler_ValidationEchoesForm(t *testing.T) {
	env := setupHandlersTestEnv(t)

	form := userForm("", true, "")
	form["rank"] = "captain"

	w := env.do(t, http.MethodPost, "/admin/users", form)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var response struct {
		Code    string `json:"code"`
		Details struct {
			Fields map[string]string      `json:"fields"`
			Form   map[string]interface{} `json:"form"`
		} `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "VALIDATION_FAILED", response.Code)
	require.Contains(t, response.Details.Fields, "rank")
	require.Contains(t, response.Details.Fields, "last_name")
	require.Equal(t, "captain", response.Details.Form["rank"])
	require.Equal(t, "Nikos", response.Details.Form["first_name"])

	var count int64
	env.db.Model(&models.User{}).Count(&count)
	require.EqualValues(t, 1, count) // only the env admin
}

func TestAdminUserHandler_UpdateMissingRedirects(t *testing.T) {
	env := setupHandlersTestEnv(t)

	w := env.do(t, http.MethodPost, "/admin/users/999", userForm("Karras", false, ""))
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/admin/users", w.Header().Get("Location"))
}

func TestAdminUserHandler_ListIncludesRanks(t *testing.T) {
	env := setupHandlersTestEnv(t)
	env.createUser(t, "Beta", "B", true)

	w := env.do(t, http.MethodGet, "/admin/users", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Users []struct {
			LastName string `json:"last_name"`
		} `json:"users"`
		Ranks []string `json:"ranks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Users, 2)
	require.Len(t, response.Ranks, 12)
}
