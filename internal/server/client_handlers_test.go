package server

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"ratil/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func (e *testEnv) createClient(t *testing.T, req ClientRequest) models.Client {
	t.Helper()
	resp := e.doJSON(t, http.MethodPost, "/api/clients", req)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var client models.Client
	decodeJSON(t, resp, &client)
	return client
}

func TestCreateClient(t *testing.T) {
	env := newTestEnv(t)

	t.Run("full record", func(t *testing.T) {
		client := env.createClient(t, ClientRequest{
			Name:          strPtr("Acme Co"),
			ContactPerson: strPtr("Huda"),
			Phone:         strPtr("+966500000000"),
			Email:         strPtr("ops@acme.example"),
		})
		require.NotNil(t, client.Name)
		assert.Equal(t, "Acme Co", *client.Name)
		require.NotNil(t, client.Email)
		assert.Equal(t, "ops@acme.example", *client.Email)
		assert.NotZero(t, client.ID)
	})

	t.Run("missing name gets a placeholder", func(t *testing.T) {
		client := env.createClient(t, ClientRequest{Phone: strPtr("123")})
		require.NotNil(t, client.Name)
		assert.True(t, strings.HasPrefix(*client.Name, models.UnnamedClientPrefix))
	})

	t.Run("blank email is stored as null", func(t *testing.T) {
		first := env.createClient(t, ClientRequest{Name: strPtr("One"), Email: strPtr("  ")})
		second := env.createClient(t, ClientRequest{Name: strPtr("Two"), Email: strPtr("")})
		assert.Nil(t, first.Email)
		assert.Nil(t, second.Email)
	})

	t.Run("duplicate email", func(t *testing.T) {
		resp := env.doJSON(t, http.MethodPost, "/api/clients", ClientRequest{Name: strPtr("Other"), Email: strPtr("ops@acme.example")})
		require.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "Email already registered", decodeError(t, resp).Detail)
	})
}

func TestGetClient(t *testing.T) {
	env := newTestEnv(t)
	client := env.createClient(t, ClientRequest{Name: strPtr("Falcon Media")})

	resp := env.doJSON(t, http.MethodGet, fmt.Sprintf("/api/clients/%d", client.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got models.Client
	decodeJSON(t, resp, &got)
	assert.Equal(t, client.ID, got.ID)

	missing := env.doJSON(t, http.MethodGet, "/api/clients/9999", nil)
	require.Equal(t, http.StatusNotFound, missing.StatusCode)
	assert.Equal(t, "Client not found", decodeError(t, missing).Detail)

	bad := env.doJSON(t, http.MethodGet, "/api/clients/zero", nil)
	assert.Equal(t, http.StatusBadRequest, bad.StatusCode)
}

func TestUpdateClient(t *testing.T) {
	env := newTestEnv(t)
	client := env.createClient(t, ClientRequest{
		Name:    strPtr("Desert Events"),
		Phone:   strPtr("111"),
		Address: strPtr("Riyadh"),
		Email:   strPtr("hello@desert.example"),
	})
	env.createClient(t, ClientRequest{Name: strPtr("Taken"), Email: strPtr("taken@example.com")})

	resp := env.doJSON(t, http.MethodPut, fmt.Sprintf("/api/clients/%d", client.ID), ClientRequest{Phone: strPtr("222")})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.Client
	decodeJSON(t, resp, &updated)
	require.NotNil(t, updated.Name)
	require.NotNil(t, updated.Phone)
	require.NotNil(t, updated.Address)
	assert.Equal(t, "Desert Events", *updated.Name)
	assert.Equal(t, "222", *updated.Phone)
	assert.Equal(t, "Riyadh", *updated.Address)

	conflict := env.doJSON(t, http.MethodPut, fmt.Sprintf("/api/clients/%d", client.ID), ClientRequest{Email: strPtr("taken@example.com")})
	assert.Equal(t, http.StatusConflict, conflict.StatusCode)

	missing := env.doJSON(t, http.MethodPut, "/api/clients/9999", ClientRequest{Phone: strPtr("1")})
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestSearchClients(t *testing.T) {
	env := newTestEnv(t)
	env.createClient(t, ClientRequest{Name: strPtr("Nakheel Printing"), Address: strPtr("Dammam")})
	env.createClient(t, ClientRequest{Name: strPtr("Blue Sky"), ContactPerson: strPtr("Nora")})
	env.createClient(t, ClientRequest{Name: strPtr("Gulf Signs"), Address: strPtr("Khobar")})

	all := env.doJSON(t, http.MethodGet, "/api/clients", nil)
	require.Equal(t, http.StatusOK, all.StatusCode)
	var clients []models.Client
	decodeJSON(t, all, &clients)
	assert.Len(t, clients, 3)

	tests := []struct {
		q    string
		want string
	}{
		{"nakheel", "Nakheel Printing"},
		{"khobar", "Gulf Signs"},
		{"NORA", "Blue Sky"},
	}
	for _, tt := range tests {
		t.Run(tt.q, func(t *testing.T) {
			resp := env.doJSON(t, http.MethodGet, "/api/clients?q="+tt.q, nil)
			require.Equal(t, http.StatusOK, resp.StatusCode)

			var found []models.Client
			decodeJSON(t, resp, &found)
			require.Len(t, found, 1)
			require.NotNil(t, found[0].Name)
			assert.Equal(t, tt.want, *found[0].Name)
		})
	}
}

func TestDeleteClientCascades(t *testing.T) {
	env := newTestEnv(t)
	client := env.createClient(t, ClientRequest{Name: strPtr("Short Lived")})
	category := env.category(t, "portfolio")

	upload := env.do(t, multipartRequest(t, http.MethodPost, "/api/portfolio/upload", map[string]string{
		"title":       "Campaign",
		"category_id": fmt.Sprint(category.ID),
		"client_id":   fmt.Sprint(client.ID),
		"link_url":    "https://example.com/campaign",
	}))
	require.Equal(t, http.StatusCreated, upload.StatusCode)

	resp := env.doJSON(t, http.MethodDelete, fmt.Sprintf("/api/clients/%d", client.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body StatusResponse
	decodeJSON(t, resp, &body)
	assert.Equal(t, "Client deleted successfully", body.Message)

	var count int64
	require.NoError(t, env.db.Model(&models.PortfolioItem{}).Where("client_id = ?", client.ID).Count(&count).Error)
	assert.Zero(t, count)

	again := env.doJSON(t, http.MethodDelete, fmt.Sprintf("/api/clients/%d", client.ID), nil)
	assert.Equal(t, http.StatusNotFound, again.StatusCode)
}
