// SPDX-License-Identifier: MPL-2.0

// Package cueutil checks CUE documents against a compiled schema definition
// and formats CUE errors with the path of the offending field.
//
//	schema, err := cueutil.Compile(schemaSource, "#Config")
//	if err != nil {
//	    return err
//	}
//	values, err := cueutil.Decode[map[string]any](schema, data,
//	    cueutil.WithFilename("config.cue"),
//	    cueutil.WithConcrete(false),
//	)
package cueutil
