package tracentm

import "github.com/aretw0/tracentm/pkg/domain"

// Version is the library version. Overridden at build time via -ldflags.
var Version = "0.1.0-dev"

// DefaultMaxDepth is the depth bound used when the caller gives none.
const DefaultMaxDepth = domain.DefaultMaxDepth
