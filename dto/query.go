package dto

// QueryRequest is the body of the SQL proxy endpoint. Query is left untyped
// so a non-string value can be rejected with the proxy's own error.
type QueryRequest struct {
	Query  any   `json:"query"`
	Params []any `json:"params"`
}

// QueryResponse wraps the rows returned by the proxy
type QueryResponse struct {
	Data []map[string]any `json:"data"`
}
