package remote

// ---------------------------------------------------------------------------
// Notice
// ---------------------------------------------------------------------------

// Notice is a server-owned record. The id is assigned by the server.
type Notice struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ---------------------------------------------------------------------------
// Payload
// ---------------------------------------------------------------------------

// Payload is the body of an update request.
type Payload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}
