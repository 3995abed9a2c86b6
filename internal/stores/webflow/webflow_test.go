package webflow_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/plugsync/internal/stores/webflow"
	"github.com/agentstation/plugsync/pkg/catalog"
	"github.com/agentstation/plugsync/pkg/errors"
)

func newStore(t *testing.T, handler http.Handler) (*webflow.Store, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store, err := webflow.New("token", "coll-1", webflow.WithBaseURL(srv.URL))
	require.NoError(t, err)
	return store, srv
}

func TestNewRequiresCollectionID(t *testing.T) {
	_, err := webflow.New("token", "")
	require.Error(t, err)
}

func TestListPaginates(t *testing.T) {
	// 150 items across two pages of 100.
	store, _ := newStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/collections/coll-1/items", r.URL.Path)
		require.Equal(t, "Bearer token", r.Header.Get("Authorization"))

		offset := 0
		_, _ = fmt.Sscanf(r.URL.Query().Get("offset"), "%d", &offset)

		count := 100
		if offset >= 100 {
			count = 50
		}
		items := make([]map[string]any, count)
		for i := range items {
			items[i] = map[string]any{
				"id":        fmt.Sprintf("item-%d", offset+i),
				"fieldData": map[string]any{"name": fmt.Sprintf("plugin-%d", offset+i)},
			}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"items":      items,
			"pagination": map[string]int{"limit": 100, "offset": offset, "total": 150},
		})
	}))

	items, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 150)
	assert.Equal(t, "item-0", items[0].ID)
	assert.Equal(t, "plugin-149", items[149].Fields.Name)
}

func TestCreate(t *testing.T) {
	store, _ := newStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		var payload struct {
			FieldData catalog.Fields `json:"fieldData"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "vue-router", payload.FieldData.Name)
		assert.Equal(t, 42, payload.FieldData.GitHubStars)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":        "new-item",
			"fieldData": payload.FieldData,
		})
	}))

	item, err := store.Create(context.Background(), catalog.Fields{Name: "vue-router", GitHubStars: 42})
	require.NoError(t, err)
	assert.Equal(t, "new-item", item.ID)
	assert.Equal(t, "vue-router", item.Fields.Name)
}

func TestUpdate(t *testing.T) {
	store, _ := newStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/collections/coll-1/items/item-9", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":        "item-9",
			"fieldData": map[string]any{"name": "pinia"},
		})
	}))

	item, err := store.Update(context.Background(), "item-9", catalog.Fields{Name: "pinia"})
	require.NoError(t, err)
	assert.Equal(t, "item-9", item.ID)
}

func TestDelete(t *testing.T) {
	var deleted string
	store, _ := newStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		deleted = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, store.Delete(context.Background(), "item-3"))
	assert.Equal(t, "/collections/coll-1/items/item-3", deleted)
}

func TestListServerError(t *testing.T) {
	store, _ := newStore(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := store.List(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrProviderUnavailable)
}
