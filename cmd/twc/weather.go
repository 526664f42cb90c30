package main

import (
	"context"
	"strings"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	types "github.com/mutablelogic/go-server/pkg/types"
	twc "github.com/mutablelogic/go-twc"
	weather "github.com/mutablelogic/go-twc/pkg/weather"
	attribute "go.opentelemetry.io/otel/attribute"
	errgroup "golang.org/x/sync/errgroup"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type WeatherCommands struct {
	Observations ObservationsCommand   `cmd:"" name:"observations" help:"Get current observations for one or more locations." group:"WEATHER"`
	Daily        DailyForecastCommand  `cmd:"" name:"daily" help:"Get a 15 day forecast for one or more locations." group:"WEATHER"`
	Hourly       HourlyForecastCommand `cmd:"" name:"hourly" help:"Get a 360 hour forecast for one or more locations." group:"WEATHER"`
}

type LocationCommands struct {
	Point  PointCommand  `cmd:"" name:"point" help:"Look up location metadata for a point." group:"LOCATION"`
	Search SearchCommand `cmd:"" name:"search" help:"Search for locations." group:"LOCATION"`
}

type LocationArgs struct {
	Location []string `arg:"" name:"location" help:"Location as lat,lng or postal:country"`
}

type ObservationsCommand struct {
	LocationArgs `embed:""`
}

type DailyForecastCommand struct {
	LocationArgs `embed:""`
}

type HourlyForecastCommand struct {
	LocationArgs `embed:""`
}

type PointCommand struct {
	Key   string `arg:"" name:"key" help:"Lookup key (geocode, postalKey, iataCode, placeid)"`
	Value string `arg:"" name:"value" help:"Lookup value"`
}

type SearchCommand struct {
	Query        string `arg:"" name:"query" help:"Free text query"`
	LocationType string `arg:"" name:"type" help:"Location type (city, postCode, airport)"`
}

// location is a parsed LOCATION argument
type location struct {
	geocode         string
	postal, country string
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *ObservationsCommand) Run(ctx *Globals) error {
	return cmd.run(ctx, "ObservationsCommand", weather.MethodObservations)
}

func (cmd *DailyForecastCommand) Run(ctx *Globals) error {
	return cmd.run(ctx, "DailyForecastCommand", weather.MethodDailyForecast)
}

func (cmd *HourlyForecastCommand) Run(ctx *Globals) error {
	return cmd.run(ctx, "HourlyForecastCommand", weather.MethodHourlyForecast)
}

func (cmd *PointCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.Client()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "PointCommand",
		attribute.String("request", types.Stringify(cmd)),
	)
	defer func() { endSpan(err) }()

	// Dispatch and wait
	future, err := client.Point(parent, cmd.Key, cmd.Value)
	if err != nil {
		return err
	}
	body, err := future.Await(parent)
	if err != nil {
		return err
	}

	// Print
	return ctx.Write(body)
}

func (cmd *SearchCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.Client()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "SearchCommand",
		attribute.String("request", types.Stringify(cmd)),
	)
	defer func() { endSpan(err) }()

	// Dispatch and wait
	future, err := client.Search(parent, cmd.Query, cmd.LocationType)
	if err != nil {
		return err
	}
	body, err := future.Await(parent)
	if err != nil {
		return err
	}

	// Print
	return ctx.Write(body)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// run calls the method for every location in parallel. A single location
// prints the response, several print a map of location to response.
func (cmd *LocationArgs) run(ctx *Globals, name, method string) (err error) {
	locations := make([]location, 0, len(cmd.Location))
	for _, arg := range cmd.Location {
		if loc, err := parseLocation(arg); err != nil {
			return err
		} else {
			locations = append(locations, loc)
		}
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, name,
		attribute.String("method", method),
		attribute.StringSlice("locations", cmd.Location),
	)
	defer func() { endSpan(err) }()

	// One client for each location, since a client holds one location
	results := make([]any, len(locations))
	g, gctx := errgroup.WithContext(parent)
	for i, loc := range locations {
		g.Go(func() error {
			body, err := loc.call(gctx, ctx, method)
			if err != nil {
				return err
			}
			results[i] = body
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	// Print
	if len(results) == 1 {
		return ctx.Write(results[0])
	}
	response := make(map[string]any, len(results))
	for i, arg := range cmd.Location {
		response[arg] = results[i]
	}
	return ctx.Write(response)
}

// parseLocation parses lat,lng or postal:country
func parseLocation(arg string) (location, error) {
	arg = strings.TrimSpace(arg)
	if postal, country, ok := strings.Cut(arg, ":"); ok {
		postal, country = strings.TrimSpace(postal), strings.TrimSpace(country)
		if postal == "" || country == "" {
			return location{}, twc.ErrBadParameter.Withf("invalid location %q", arg)
		}
		return location{postal: postal, country: country}, nil
	}
	if lat, lng, ok := strings.Cut(arg, ","); ok && strings.TrimSpace(lat) != "" && strings.TrimSpace(lng) != "" {
		return location{geocode: arg}, nil
	}
	return location{}, twc.ErrBadParameter.Withf("invalid location %q (expected lat,lng or postal:country)", arg)
}

func (loc location) call(ctx context.Context, globals *Globals, method string) (any, error) {
	client, err := globals.Client()
	if err != nil {
		return nil, err
	}
	if loc.geocode != "" {
		_, err = client.Geocode(loc.geocode, "")
	} else {
		_, err = client.Location(loc.postal, loc.country)
	}
	if err != nil {
		return nil, err
	}
	future, err := client.Call(ctx, method)
	if err != nil {
		return nil, err
	}
	return future.Await(ctx)
}
