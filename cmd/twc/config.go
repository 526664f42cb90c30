package main

import (
	"io"

	// Packages
	kong "github.com/alecthomas/kong"
	viper "github.com/spf13/viper"
)

//////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// configLoader reads a YAML configuration file, whose keys are flag names:
//
//	key: <api key>
//	units: m
//	language: en-GB
//	timeout: 10s
//
// Values apply to flags which are not set on the command line
func configLoader(r io.Reader) (kong.Resolver, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(r); err != nil {
		return nil, err
	}
	return configResolver(v), nil
}

//////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func configResolver(v *viper.Viper) kong.ResolverFunc {
	return func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		if !v.IsSet(flag.Name) {
			return nil, nil
		}
		return v.GetString(flag.Name), nil
	}
}
