package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"ratil/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientService_CreateClient_Placeholder(t *testing.T) {
	t.Parallel()
	fixed := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)

	for _, name := range []*string{nil, strPtr(""), strPtr("   ")} {
		repo := noopClientRepo()
		svc := NewClientService(repo)
		svc.now = func() time.Time { return fixed }

		client, err := svc.CreateClient(context.Background(), ClientInput{Name: name, Email: strPtr("  ")})
		require.NoError(t, err)
		require.NotNil(t, client.Name)
		assert.True(t, strings.Contains(*client.Name, models.UnnamedClientPrefix))
		assert.Equal(t, models.UnnamedClientPrefix+" - 2024-05-01 10:30:00", *client.Name)
		assert.Nil(t, client.Email, "blank email is stored as NULL")
	}
}

func TestClientService_CreateClient_KeepsGivenName(t *testing.T) {
	t.Parallel()
	client, err := NewClientService(noopClientRepo()).CreateClient(context.Background(), ClientInput{Name: strPtr(" Acme ")})
	require.NoError(t, err)
	assert.Equal(t, "Acme", *client.Name)
}

func TestClientService_UpdateClient_OnlyPresentFields(t *testing.T) {
	t.Parallel()
	repo := noopClientRepo()
	var got map[string]interface{}
	repo.updateFieldsFn = func(_ context.Context, id uint, fields map[string]interface{}) (*models.Client, error) {
		got = fields
		return &models.Client{ID: id}, nil
	}

	_, err := NewClientService(repo).UpdateClient(context.Background(), 3, ClientInput{Phone: strPtr("0780")})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"phone": "0780"}, got)

	_, err = NewClientService(repo).UpdateClient(context.Background(), 3, ClientInput{Email: strPtr("")})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"email": nil}, got)
}
