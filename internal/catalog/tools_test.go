package catalog

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingAPI captures the last dispatched request.
type recordingAPI struct {
	authenticated bool
	err           error
	result        map[string]any

	calls    int
	method   string
	endpoint string
	params   url.Values
}

func (r *recordingAPI) Authenticated() bool { return r.authenticated }

func (r *recordingAPI) Do(ctx context.Context, method, endpoint string, body any, params url.Values) (map[string]any, error) {
	r.calls++
	r.method = method
	r.endpoint = endpoint
	r.params = params
	if r.err != nil {
		return nil, r.err
	}
	return r.result, nil
}

func TestNewServicePanicsOnNilAPI(t *testing.T) {
	assert.Panics(t, func() { NewService(nil) })
}

func TestListDatasetsBuildsSearchQuery(t *testing.T) {
	api := &recordingAPI{authenticated: true, result: map[string]any{"entities": []any{}}}
	svc := NewService(api)

	result, err := svc.run(context.Background(), ToolDatasetList, func(ctx context.Context) (map[string]any, error) {
		return svc.listDatasets(ctx, 5)
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"entities": []any{}}, result)

	assert.Equal(t, "get", api.method)
	assert.Equal(t, "/v3/entity/dataset", api.endpoint)
	assert.Equal(t, "5", api.params.Get("count"))
	assert.Equal(t, "urn", api.params.Get("sortCriteria"))
	assert.Equal(t, "ASCENDING", api.params.Get("sortOrder"))
	assert.Equal(t, "false", api.params.Get("systemMetadata"))
	assert.Equal(t, "false", api.params.Get("includeSoftDelete"))
	assert.Equal(t, "false", api.params.Get("skipCache"))
	assert.Equal(t, "datasetKey", api.params.Get("aspects"))
}

func TestGetDatasetTargetsEntityEndpoint(t *testing.T) {
	api := &recordingAPI{authenticated: true, result: map[string]any{"urn": "urn:li:dataset:one"}}
	svc := NewService(api)

	result, err := svc.run(context.Background(), ToolDatasetGetByURN, func(ctx context.Context) (map[string]any, error) {
		return svc.getDataset(ctx, "urn:li:dataset:one")
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"urn": "urn:li:dataset:one"}, result)

	assert.Equal(t, "get", api.method)
	assert.Equal(t, "/v3/entity/dataset/urn:li:dataset:one", api.endpoint)
	assert.Nil(t, api.params)
}

func TestGetDatasetRequiresURN(t *testing.T) {
	api := &recordingAPI{authenticated: true}
	svc := NewService(api)

	result, err := svc.run(context.Background(), ToolDatasetGetByURN, func(ctx context.Context) (map[string]any, error) {
		return svc.getDataset(ctx, "")
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"error": "Error in dataset_get_by_urn: urn is required"}, result)
	assert.Zero(t, api.calls)
}

func TestRunShortCircuitsUnauthenticated(t *testing.T) {
	api := &recordingAPI{authenticated: false}
	svc := NewService(api)

	result, err := svc.run(context.Background(), ToolDatasetList, func(ctx context.Context) (map[string]any, error) {
		return svc.listDatasets(ctx, 5)
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"error": "Not authenticated. Please authenticate first."}, result)
	assert.Zero(t, api.calls, "no dispatch should happen without a token")
}

func TestRunNormalizesDispatchErrors(t *testing.T) {
	api := &recordingAPI{authenticated: true, err: errors.New("datahub HTTP request failed: EOF")}
	svc := NewService(api)

	result, err := svc.run(context.Background(), ToolDatasetList, func(ctx context.Context) (map[string]any, error) {
		return svc.listDatasets(ctx, 5)
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"error": "Error in dataset_list: datahub HTTP request failed: EOF"}, result)
}

func TestRunPassesBackendErrorEnvelopeThrough(t *testing.T) {
	api := &recordingAPI{
		authenticated: true,
		result:        map[string]any{"error": "API request failed: 404 - not found"},
	}
	svc := NewService(api)

	result, err := svc.run(context.Background(), ToolDatasetGetByURN, func(ctx context.Context) (map[string]any, error) {
		return svc.getDataset(ctx, "urn:li:dataset:missing")
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"error": "API request failed: 404 - not found"}, result)
}
