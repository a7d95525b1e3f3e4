package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ratil/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	env := newTestEnv(t)

	t.Run("admin credentials", func(t *testing.T) {
		resp := env.doJSON(t, http.MethodPost, "/api/login", LoginRequest{Username: "admin", Password: testAdminPassword})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body LoginResponse
		decodeJSON(t, resp, &body)
		assert.Equal(t, "success", body.Status)
		assert.Equal(t, "admin", body.User.Username)
		assert.Equal(t, models.RoleAdmin, body.User.Role)
		assert.True(t, body.User.CanAccessPortfolio)
	})

	t.Run("wrong password", func(t *testing.T) {
		resp := env.doJSON(t, http.MethodPost, "/api/login", LoginRequest{Username: "admin", Password: "nope"})
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "اسم المستخدم أو كلمة المرور غير صحيحة", decodeError(t, resp).Detail)
	})

	t.Run("unknown user fails the same way", func(t *testing.T) {
		resp := env.doJSON(t, http.MethodPost, "/api/login", LoginRequest{Username: "ghost", Password: "nope"})
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "اسم المستخدم أو كلمة المرور غير صحيحة", decodeError(t, resp).Detail)
	})

	t.Run("empty password", func(t *testing.T) {
		resp := env.doJSON(t, http.MethodPost, "/api/login", LoginRequest{Username: "admin", Password: ""})
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "اسم المستخدم أو كلمة المرور غير صحيحة", decodeError(t, resp).Detail)
	})

	t.Run("missing fields", func(t *testing.T) {
		resp := env.doJSON(t, http.MethodPost, "/api/login", map[string]string{"username": "admin"})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		blank := env.doJSON(t, http.MethodPost, "/api/login", LoginRequest{})
		assert.Equal(t, http.StatusUnauthorized, blank.StatusCode)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader("{"))
		req.Header.Set("Content-Type", "application/json")
		resp := env.do(t, req)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Invalid request body", decodeError(t, resp).Detail)
	})
}

func TestCreateAndListUsers(t *testing.T) {
	env := newTestEnv(t)

	resp := env.doJSON(t, http.MethodPost, "/api/users", CreateUserRequest{Username: "sara", Password: "s3cret"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.User
	decodeJSON(t, resp, &created)
	assert.Equal(t, "sara", created.Username)
	assert.Equal(t, models.RoleViewer, created.Role)
	assert.False(t, created.CanAccessPortfolio)

	dup := env.doJSON(t, http.MethodPost, "/api/users", CreateUserRequest{Username: "sara", Password: "other"})
	require.Equal(t, http.StatusConflict, dup.StatusCode)
	assert.Equal(t, "Username already registered", decodeError(t, dup).Detail)

	list := env.doJSON(t, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, list.StatusCode)

	var raw []map[string]interface{}
	decodeJSON(t, list, &raw)
	require.Len(t, raw, 2)
	for _, u := range raw {
		assert.NotContains(t, u, "hashed_password")
		assert.NotContains(t, u, "HashedPassword")
	}

	login := env.doJSON(t, http.MethodPost, "/api/login", LoginRequest{Username: "sara", Password: "s3cret"})
	assert.Equal(t, http.StatusOK, login.StatusCode)
}

func TestUpdateUser(t *testing.T) {
	env := newTestEnv(t)
	env.doJSON(t, http.MethodPost, "/api/users", CreateUserRequest{Username: "omar", Password: "pw"})

	role := "editor"
	access := true
	resp := env.doJSON(t, http.MethodPut, "/api/users/omar", UpdateUserRequest{Role: &role, CanAccessPortfolio: &access})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.User
	decodeJSON(t, resp, &updated)
	assert.Equal(t, "omar", updated.Username)
	assert.Equal(t, "editor", updated.Role)
	assert.True(t, updated.CanAccessPortfolio)

	missing := env.doJSON(t, http.MethodPut, "/api/users/ghost", UpdateUserRequest{Role: &role})
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestChangePassword(t *testing.T) {
	env := newTestEnv(t)
	env.doJSON(t, http.MethodPost, "/api/users", CreateUserRequest{Username: "lina", Password: "old-pass"})

	t.Run("unknown user", func(t *testing.T) {
		resp := env.doJSON(t, http.MethodPut, "/api/users/ghost/change-password",
			ChangePasswordRequest{CurrentPassword: "x", NewPassword: "y"})
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "User not found", decodeError(t, resp).Detail)
	})

	t.Run("wrong current password", func(t *testing.T) {
		resp := env.doJSON(t, http.MethodPut, "/api/users/lina/change-password",
			ChangePasswordRequest{CurrentPassword: "wrong", NewPassword: "new-pass"})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "كلمة المرور الحالية غير صحيحة", decodeError(t, resp).Detail)
	})

	t.Run("admin password by someone else", func(t *testing.T) {
		resp := env.doJSON(t, http.MethodPut, "/api/users/admin/change-password",
			ChangePasswordRequest{CurrentPassword: testAdminPassword, NewPassword: "hijack", ActingUser: "lina"})
		require.Equal(t, http.StatusForbidden, resp.StatusCode)

		login := env.doJSON(t, http.MethodPost, "/api/login", LoginRequest{Username: "admin", Password: testAdminPassword})
		assert.Equal(t, http.StatusOK, login.StatusCode)
	})

	t.Run("success", func(t *testing.T) {
		resp := env.doJSON(t, http.MethodPut, "/api/users/lina/change-password",
			ChangePasswordRequest{CurrentPassword: "old-pass", NewPassword: "new-pass"})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body StatusResponse
		decodeJSON(t, resp, &body)
		assert.Equal(t, "success", body.Status)
		assert.Equal(t, "تم تغيير كلمة المرور بنجاح", body.Message)

		oldLogin := env.doJSON(t, http.MethodPost, "/api/login", LoginRequest{Username: "lina", Password: "old-pass"})
		assert.Equal(t, http.StatusUnauthorized, oldLogin.StatusCode)
		newLogin := env.doJSON(t, http.MethodPost, "/api/login", LoginRequest{Username: "lina", Password: "new-pass"})
		assert.Equal(t, http.StatusOK, newLogin.StatusCode)
	})

	t.Run("admin changing own password", func(t *testing.T) {
		resp := env.doJSON(t, http.MethodPut, "/api/users/admin/change-password",
			ChangePasswordRequest{CurrentPassword: testAdminPassword, NewPassword: "rotated", ActingUser: "admin"})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestDeleteUser(t *testing.T) {
	env := newTestEnv(t)
	env.doJSON(t, http.MethodPost, "/api/users", CreateUserRequest{Username: "temp", Password: "pw"})

	admin := env.doJSON(t, http.MethodDelete, "/api/users/admin", nil)
	require.Equal(t, http.StatusForbidden, admin.StatusCode)

	var count int64
	require.NoError(t, env.db.Model(&models.User{}).Where("username = ?", "admin").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	missing := env.doJSON(t, http.MethodDelete, "/api/users/ghost", nil)
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)

	resp := env.doJSON(t, http.MethodDelete, "/api/users/temp", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body StatusResponse
	decodeJSON(t, resp, &body)
	assert.Equal(t, "User 'temp' deleted successfully", body.Message)

	require.NoError(t, env.db.Model(&models.User{}).Where("username = ?", "temp").Count(&count).Error)
	assert.Zero(t, count)
}
