package catalog

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Tool names exposed to the host, also used in the error envelope.
const (
	ToolDatasetList     = "dataset_list"
	ToolDatasetGetByURN = "dataset_get_by_urn"
)

// datasetEndpoint is the catalog's dataset entity collection.
const datasetEndpoint = "/v3/entity/dataset"

// API is the session surface the catalog tools need: an authentication check
// and one request dispatcher.
type API interface {
	// Authenticated reports whether a bearer token is attached.
	Authenticated() bool
	// Do issues one catalog request, returning either the backend's JSON
	// response or the error envelope for non-2xx statuses.
	Do(ctx context.Context, method, endpoint string, body any, params url.Values) (map[string]any, error)
}

// Service exposes the catalog query operations as MCP tools.
type Service struct {
	api API
}

// NewService creates a catalog service over the given session API.
func NewService(api API) *Service {
	if api == nil {
		panic("api cannot be nil")
	}
	return &Service{api: api}
}

// DatasetListArgs defines parameters for the dataset_list tool.
type DatasetListArgs struct {
	Count int `json:"count" jsonschema:"Number of datasets to return."`
}

// DatasetGetArgs defines parameters for the dataset_get_by_urn tool.
type DatasetGetArgs struct {
	URN string `json:"urn" jsonschema:"Dataset URN to fetch, e.g. urn:li:dataset:(urn:li:dataPlatform:hive,logging_events,PROD)"`
}

// AddTools registers all catalog tools with the MCP server.
func (s *Service) AddTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolDatasetList,
		Description: "List datasets in the DataHub catalog, sorted ascending by URN. Returns the raw result page.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args DatasetListArgs) (*mcp.CallToolResult, any, error) {
		result, _ := s.run(ctx, ToolDatasetList, func(ctx context.Context) (map[string]any, error) {
			return s.listDatasets(ctx, args.Count)
		})
		return nil, result, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolDatasetGetByURN,
		Description: "Fetch a single dataset entity from the DataHub catalog by URN. Returns the raw entity document.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args DatasetGetArgs) (*mcp.CallToolResult, any, error) {
		result, _ := s.run(ctx, ToolDatasetGetByURN, func(ctx context.Context) (map[string]any, error) {
			return s.getDataset(ctx, args.URN)
		})
		return nil, result, nil
	})
}

// run applies the two wrapping policies around op: the auth gate first, the
// error normalizer outermost. The result is always a well-formed envelope.
func (s *Service) run(ctx context.Context, name string, op operation) (map[string]any, error) {
	return normalizeErrors(name, requireAuth(s.api, op))(ctx)
}

func (s *Service) listDatasets(ctx context.Context, count int) (map[string]any, error) {
	params := url.Values{}
	params.Set("systemMetadata", "false")
	params.Set("includeSoftDelete", "false")
	params.Set("skipCache", "false")
	params.Set("aspects", "datasetKey")
	params.Set("count", strconv.Itoa(count))
	params.Set("sortCriteria", "urn")
	params.Set("sortOrder", "ASCENDING")

	return s.api.Do(ctx, "get", datasetEndpoint, nil, params)
}

func (s *Service) getDataset(ctx context.Context, urn string) (map[string]any, error) {
	if urn == "" {
		return nil, fmt.Errorf("urn is required")
	}
	return s.api.Do(ctx, "get", datasetEndpoint+"/"+url.PathEscape(urn), nil, nil)
}
