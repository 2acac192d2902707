package model

// User is a row of the users table as exposed over the API.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Variables are the caller-supplied GraphQL variables. They are forwarded
// to the upstream service as-is.
type Variables map[string]any
