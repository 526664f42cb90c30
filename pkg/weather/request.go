package weather

import (
	"net/url"
	"strings"

	// Packages
	twc "github.com/mutablelogic/go-twc"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Options are the query parameters sent with every request, serialized in
// field order: apiKey, format, units, language
type Options struct {
	ApiKey   string `json:"apiKey" yaml:"apiKey"`
	Format   string `json:"format" yaml:"format"`
	Units    string `json:"units" yaml:"units"`
	Language string `json:"language" yaml:"language"`
}

// request is a dispatchable request descriptor. Each terminal operation
// builds exactly one, so the version and query always agree.
type request interface {
	// Return the API version, v1 or v3
	version() string

	// Return the URL relative to the versioned endpoint
	path(opts Options, escape bool) (string, error)
}

// locationQuery is the v1 location fragment set by Geocode or Location
type locationQuery struct {
	kind          string
	first, second string
}

// locationRequest is a v1 request for a method at a geocode or postal location
type locationRequest struct {
	location locationQuery
	method   string
}

// pointRequest is a v3 point lookup
type pointRequest struct {
	key, value string
}

// searchRequest is a v3 location search
type searchRequest struct {
	text, locationType string
}

var _ request = (*locationRequest)(nil)
var _ request = (*pointRequest)(nil)
var _ request = (*searchRequest)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	versionV1 = "v1"
	versionV3 = "v3"
)

const (
	kindGeocode  = "geocode"
	kindLocation = "location"
)

const (
	// location type code for postal locations
	postalLocationType = "4"
)

const (
	MethodDailyForecast  = "forecast/daily/15day"
	MethodHourlyForecast = "forecast/hourly/360hour"
	MethodObservations   = "observations/current"
)

const (
	UnitsEnglish = "e"
	UnitsMetric  = "m"
	UnitsHybrid  = "h"
)

const (
	defaultFormat   = "json"
	defaultUnits    = UnitsEnglish
	defaultLanguage = "en-US"
)

///////////////////////////////////////////////////////////////////////////////
// OPTIONS

// Params returns the options as key=value pairs joined with '&', in field
// order, skipping any excluded keys
func (o Options) Params(escape bool, exclude ...string) string {
	pairs := [][2]string{
		{"apiKey", o.ApiKey},
		{"format", o.Format},
		{"units", o.Units},
		{"language", o.Language},
	}
	result := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		if isExcluded(pair[0], exclude) {
			continue
		}
		result = append(result, pair[0]+"="+queryValue(pair[1], escape))
	}
	return strings.Join(result, "&")
}

///////////////////////////////////////////////////////////////////////////////
// LOCATION

func (q locationQuery) fragment(escape bool) string {
	switch q.kind {
	case kindGeocode:
		return kindGeocode + "/" + pathValue(q.first, escape) + "/" + pathValue(q.second, escape)
	case kindLocation:
		return kindLocation + "/" + pathValue(q.first, escape) + ":" + postalLocationType + ":" + pathValue(q.second, escape)
	default:
		return ""
	}
}

func (*locationRequest) version() string {
	return versionV1
}

func (r *locationRequest) path(opts Options, escape bool) (string, error) {
	if r.method == "" {
		return "", twc.ErrMissingMethod
	}
	return r.location.fragment(escape) + "/" + r.method + "." + opts.Format + "?" + opts.Params(escape, "format"), nil
}

///////////////////////////////////////////////////////////////////////////////
// POINT

func (*pointRequest) version() string {
	return versionV3
}

func (r *pointRequest) query(escape bool) string {
	return "point?" + queryValue(r.key, escape) + "=" + queryValue(r.value, escape)
}

func (r *pointRequest) path(opts Options, escape bool) (string, error) {
	return "location/" + r.query(escape) + "&" + opts.Params(escape, "units"), nil
}

///////////////////////////////////////////////////////////////////////////////
// SEARCH

func (*searchRequest) version() string {
	return versionV3
}

func (r *searchRequest) query(escape bool) string {
	return "search?query=" + queryValue(r.text, escape) + "&locationType=" + queryValue(r.locationType, escape)
}

func (r *searchRequest) path(opts Options, escape bool) (string, error) {
	return "location/" + r.query(escape) + "&" + opts.Params(escape, "units"), nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func isExcluded(key string, exclude []string) bool {
	for _, e := range exclude {
		if e == key {
			return true
		}
	}
	return false
}

func isUnits(code string) bool {
	switch code {
	case UnitsEnglish, UnitsMetric, UnitsHybrid:
		return true
	default:
		return false
	}
}

func isMethod(method string) bool {
	switch method {
	case MethodDailyForecast, MethodHourlyForecast, MethodObservations:
		return true
	default:
		return false
	}
}

func queryValue(value string, escape bool) string {
	if escape {
		return url.QueryEscape(value)
	}
	return value
}

func pathValue(value string, escape bool) string {
	if escape {
		return url.PathEscape(value)
	}
	return value
}
