// Copyright (c) Microsoft. All rights reserved.

// Package settings resolves the lab programs' configuration.
//
// Values are looked up in order in the process environment, the first .env
// file found in the search directories, and the first appsettings.json
// found. Blank values count as absent. A value that only a file supplies is
// exported into the process environment so child code sees it too.
//
//	r, err := settings.NewResolver()
//	if err != nil { ... }
//	cfg, err := settings.Load(r)
package settings
