package storage

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"engagement-service/internal/config"
	"engagement-service/internal/services"
)

func newTestAstra(t *testing.T, handler http.HandlerFunc) *AstraSource {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewAstraSource(config.AstraConfig{
		APIEndpoint: server.URL,
		Token:       "AstraCS:test",
		Keyspace:    "default_keyspace",
		Collection:  "posts",
	}, server.Client())
}

func TestAstraFetchRecordsFollowsPages(t *testing.T) {
	calls := 0
	source := newTestAstra(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/api/json/v1/default_keyspace/posts", r.URL.Path)
		assert.Equal(t, "AstraCS:test", r.Header.Get("Token"))

		var cmd findCommand
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&cmd)) {
			return
		}
		assert.Empty(t, cmd.Find.Filter)
		assert.Equal(t, 1, cmd.Find.Projection["$vectorize"])
		assert.Equal(t, 1, cmd.Find.Projection["impressions"])
		assert.Len(t, cmd.Find.Projection, 7)

		if cmd.Find.Options == nil {
			_, _ = w.Write([]byte(`{"data":{"documents":[
				{"$vectorize":"a","likes":1,"comments":2,"views":"10"},
				{"$vectorize":"b","likes":"oops"}
			],"nextPageState":"page-2"}}`))
			return
		}
		assert.Equal(t, "page-2", cmd.Find.Options.PageState)
		_, _ = w.Write([]byte(`{"data":{"documents":[{"$vectorize":"a","shares":5}],"nextPageState":null}}`))
	})

	records, err := source.FetchRecords(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	require.Len(t, records, 3)

	assert.Equal(t, "a", records[0].ContentKey)
	assert.Equal(t, 3.0, records[0].Engagement())
	assert.Equal(t, 10.0, records[0].Reach())
	assert.Zero(t, records[1].Likes)
	assert.Equal(t, 5.0, records[2].Shares)
}

func TestAstraFetchRecordsEmptyCollection(t *testing.T) {
	source := newTestAstra(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"documents":[],"nextPageState":null}}`))
	})

	records, err := source.FetchRecords(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestAstraFetchRecordsAPIErrors(t *testing.T) {
	source := newTestAstra(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"errors":[{"message":"Collection does not exist","errorCode":"COLLECTION_NOT_EXIST"}]}`))
	})

	_, err := source.FetchRecords(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Collection does not exist")
}

func TestAstraFetchRecordsHTTPError(t *testing.T) {
	source := newTestAstra(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	})

	_, err := source.FetchRecords(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestAstraCollectionURL(t *testing.T) {
	source := NewAstraSource(config.AstraConfig{
		APIEndpoint: "https://db-id-us-east1.apps.astra.datastax.com/",
		Keyspace:    "ks",
		Collection:  "posts",
	}, nil)

	assert.Equal(t, "https://db-id-us-east1.apps.astra.datastax.com/api/json/v1/ks/posts", source.CollectionURL())
	assert.NoError(t, source.Close())
}

func TestAstraNumericKeysGroupTogether(t *testing.T) {
	source := newTestAstra(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"documents":[
			{"$vectorize":17.0,"likes":1},
			{"$vectorize":17,"likes":2}
		],"nextPageState":null}}`))
	})

	records, err := source.FetchRecords(context.Background())
	require.NoError(t, err)

	summaries := services.Aggregate(records)
	require.Len(t, summaries, 1)
	assert.Equal(t, "17", summaries[0].ContentKey)
	assert.Equal(t, 2, summaries[0].TotalPosts)
	assert.Equal(t, 3.0, summaries[0].TotalEngagement)
}
