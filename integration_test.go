// Integration tests that run the app against a real MongoDB preference store
// using testcontainers.
//
// Run with: go test -v -tags=integration ./...

//go:build integration

package main

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fluesternde/berggeist-theme/internal/theme"
	"github.com/fluesternde/berggeist-theme/internal/types"
)

// setupTestContainer starts a MongoDB container and returns its URI
func setupTestContainer(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err, "failed to start MongoDB container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)
	return uri
}

func TestIntegration_SelectionSurvivesRestartInMongo(t *testing.T) {
	uri := setupTestContainer(t)
	dir := t.TempDir()
	cfg := fmt.Sprintf("appearance: dark\nstorage:\n  backend: mongo\n  mongo_uri: %q\n  database: berggeist_it\n  collection: prefs\n", uri)

	app, _ := newTestApp(t, dir, cfg)
	assert.Equal(t, types.ThemeDark, app.GetThemeState().EffectiveTheme)
	require.NoError(t, app.SetTheme("schwartz-wald"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	defer client.Disconnect(context.Background())

	var doc bson.M
	err = client.Database("berggeist_it").Collection("prefs").
		FindOne(ctx, bson.M{"_id": theme.DefaultStorageKey}).Decode(&doc)
	require.NoError(t, err)
	assert.Equal(t, "schwartz-wald", doc["value"])

	again, _ := newTestApp(t, dir, "")
	assert.Equal(t, types.SelectionSchwartzWald, again.GetThemeState().Selection)
	assert.Equal(t, types.ThemeSchwartzWald, again.GetThemeState().EffectiveTheme)
}
