package common

// DefaultEndpoint is the remote users collection queried when no endpoint is
// configured.
const DefaultEndpoint = "https://jsonplaceholder.typicode.com/users"
