package handler

// paginationResponse is the shared pagination block on all list responses.
type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages,omitempty"`
}
