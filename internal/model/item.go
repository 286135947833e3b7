package model

// Item represents a single list entry.
//
// The ID is server-assigned and immutable: the file backend issues
// numeric timestamp strings, the keyed-store backend issues UUIDs. The
// two schemes are never mixed within one deployment.
type Item struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content,omitempty"`
	Date    string `json:"date,omitempty"`
	Done    bool   `json:"done"`
}

// ItemRequest represents the body of a create or update request.
type ItemRequest struct {
	Title   string `json:"title"`
	Content string `json:"content,omitempty"`
}

// DeleteResponse confirms a delete request.
type DeleteResponse struct {
	Success bool `json:"success"`
}
