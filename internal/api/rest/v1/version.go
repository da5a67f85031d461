package v1

// BasePath is the prefix of every version 1 route
const BasePath = "/api/v1/theslope"

// UserIDHeader identifies the acting user on write requests
const UserIDHeader = "X-User-ID"
