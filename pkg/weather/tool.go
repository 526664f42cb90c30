package weather

import (
	"context"
	"encoding/json"
	"strings"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	twc "github.com/mutablelogic/go-twc"
	tool "github.com/mutablelogic/go-twc/pkg/tool"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// LocationToolRequest defines the input for observations and forecasts
type LocationToolRequest struct {
	Geocode  string `json:"geocode,omitempty" jsonschema:"Latitude and longitude separated by a comma (e.g., '33.74,-84.39')"`
	Postal   string `json:"postal,omitempty" jsonschema:"Postal code, used together with country (e.g., '30303')"`
	Country  string `json:"country,omitempty" jsonschema:"Country code, used together with postal (e.g., 'US')"`
	Units    string `json:"units,omitempty" jsonschema:"Units of measure: e (english), m (metric) or h (hybrid)"`
	Language string `json:"language,omitempty" jsonschema:"Language tag (e.g., 'en-US', 'fr-FR')"`
}

// PointToolRequest defines the input for a point lookup
type PointToolRequest struct {
	Key      string `json:"key" jsonschema:"Lookup key (e.g., 'geocode', 'postalKey', 'iataCode', 'placeid')"`
	Value    string `json:"value" jsonschema:"Lookup value (e.g., '33.74,-84.39' or '30303:US')"`
	Language string `json:"language,omitempty" jsonschema:"Language tag (e.g., 'en-US', 'fr-FR')"`
}

// SearchToolRequest defines the input for a location search
type SearchToolRequest struct {
	Query        string `json:"query" jsonschema:"Free text location query (e.g., 'Atlanta')"`
	LocationType string `json:"location_type" jsonschema:"Location type filter (e.g., 'city', 'postCode', 'airport')"`
	Language     string `json:"language,omitempty" jsonschema:"Language tag (e.g., 'en-US', 'fr-FR')"`
}

type toolClient struct {
	apiKey string
	opts   []Opt
}

type locationTool struct {
	toolClient
	name        string
	description string
	method      string
}

type pointTool struct {
	toolClient
}

type searchTool struct {
	toolClient
}

var _ tool.Tool = (*locationTool)(nil)
var _ tool.Tool = (*pointTool)(nil)
var _ tool.Tool = (*searchTool)(nil)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewTools returns the weather tools for use with agents. Every run creates
// a new client with the API key and options.
func NewTools(apiKey string, opts ...Opt) ([]tool.Tool, error) {
	if apiKey == "" {
		return nil, twc.ErrMissingCredential
	}

	// Check the options before handing out any tools
	tc := toolClient{apiKey: apiKey, opts: opts}
	if _, err := tc.client("", ""); err != nil {
		return nil, err
	}

	return []tool.Tool{
		&locationTool{
			toolClient:  tc,
			name:        "twc_observations",
			description: "Get current weather observations for a location, including temperature, wind, humidity and precipitation.",
			method:      MethodObservations,
		},
		&locationTool{
			toolClient:  tc,
			name:        "twc_forecast_daily",
			description: "Get a 15 day daily weather forecast for a location.",
			method:      MethodDailyForecast,
		},
		&locationTool{
			toolClient:  tc,
			name:        "twc_forecast_hourly",
			description: "Get a 360 hour hourly weather forecast for a location.",
			method:      MethodHourlyForecast,
		},
		&pointTool{toolClient: tc},
		&searchTool{toolClient: tc},
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// LOCATION

func (t *locationTool) Name() string {
	return t.name
}

func (t *locationTool) Description() string {
	return t.description
}

// Return the JSON schema for the tool input
func (*locationTool) Schema() (*jsonschema.Schema, error) {
	schema, err := jsonschema.For[LocationToolRequest](nil)
	if err != nil {
		return nil, err
	}

	// Restrict units to the known codes
	if units, ok := schema.Properties["units"]; ok && units != nil {
		units.Enum = []any{UnitsEnglish, UnitsMetric, UnitsHybrid}
	}

	return schema, nil
}

// Run the tool with the given input
func (t *locationTool) Run(ctx context.Context, input json.RawMessage) (any, error) {
	var req LocationToolRequest
	if err := decodeToolInput(input, &req); err != nil {
		return nil, err
	}

	client, err := t.client(req.Units, req.Language)
	if err != nil {
		return nil, err
	}

	// Set the location
	switch {
	case req.Geocode != "":
		if !strings.Contains(req.Geocode, ",") {
			return nil, twc.ErrBadParameter.With("geocode should be latitude and longitude separated by a comma")
		}
		_, err = client.Geocode(req.Geocode, "")
	case req.Postal != "" && req.Country != "":
		_, err = client.Location(req.Postal, req.Country)
	default:
		return nil, twc.ErrBadParameter.With("geocode, or postal and country, are required")
	}
	if err != nil {
		return nil, err
	}

	future, err := client.Call(ctx, t.method)
	if err != nil {
		return nil, err
	}
	return future.Await(ctx)
}

///////////////////////////////////////////////////////////////////////////////
// POINT

func (*pointTool) Name() string {
	return "twc_point"
}

func (*pointTool) Description() string {
	return "Look up location metadata (name, time zone, coordinates) for a point given as a key and value, such as a geocode or postal key."
}

// Return the JSON schema for the tool input
func (*pointTool) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[PointToolRequest](nil)
}

// Run the tool with the given input
func (t *pointTool) Run(ctx context.Context, input json.RawMessage) (any, error) {
	var req PointToolRequest
	if err := decodeToolInput(input, &req); err != nil {
		return nil, err
	}
	if req.Key == "" || req.Value == "" {
		return nil, twc.ErrBadParameter.With("key and value are required")
	}

	client, err := t.client("", req.Language)
	if err != nil {
		return nil, err
	}
	future, err := client.Point(ctx, req.Key, req.Value)
	if err != nil {
		return nil, err
	}
	return future.Await(ctx)
}

///////////////////////////////////////////////////////////////////////////////
// SEARCH

func (*searchTool) Name() string {
	return "twc_search"
}

func (*searchTool) Description() string {
	return "Search for locations matching a free text query, filtered by location type."
}

// Return the JSON schema for the tool input
func (*searchTool) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[SearchToolRequest](nil)
}

// Run the tool with the given input
func (t *searchTool) Run(ctx context.Context, input json.RawMessage) (any, error) {
	var req SearchToolRequest
	if err := decodeToolInput(input, &req); err != nil {
		return nil, err
	}
	if req.Query == "" || req.LocationType == "" {
		return nil, twc.ErrBadParameter.With("query and location_type are required")
	}

	client, err := t.client("", req.Language)
	if err != nil {
		return nil, err
	}
	future, err := client.Search(ctx, req.Query, req.LocationType)
	if err != nil {
		return nil, err
	}
	return future.Await(ctx)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// client returns a new client, with units and language applied when set
func (t toolClient) client(units, language string) (*Client, error) {
	opts := make([]Opt, 0, len(t.opts)+2)
	opts = append(opts, t.opts...)
	if units != "" {
		opts = append(opts, WithUnits(units))
	}
	if language != "" {
		opts = append(opts, WithLanguage(language))
	}
	return New(t.apiKey, opts...)
}

func decodeToolInput(input json.RawMessage, v any) error {
	if len(input) == 0 {
		return nil
	}
	if err := json.Unmarshal(input, v); err != nil {
		return twc.ErrBadParameter.Withf("failed to unmarshal input: %v", err)
	}
	return nil
}
