package common

// AuthorizationHeaderName is the HTTP header used to carry the bearer access
// token on authenticated requests.
const AuthorizationHeaderName = "Authorization"

// PlantCollectionCacheTTLSeconds is the freshness window, in seconds, shared
// by the client-side record cache and the server-side redis cache. Data older
// than (or exactly as old as) the window is stale.
const PlantCollectionCacheTTLSeconds = 120
