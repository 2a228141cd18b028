/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import "bennypowers.dev/identify/manifest"

// Sentinel errors for resolution. A dependency that cannot be found is not
// an error: Resolve and Identify return an empty string instead.
var (
	// ErrMalformedManifest indicates a package.json that exists but cannot be parsed.
	ErrMalformedManifest = manifest.ErrMalformed
)
