package api

import "net/http"

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	// keyed by collection name, which is also the route segment
	adminCollections  map[string]adminCollection
	publicCollections map[string]publicCollection

	queryHandler   queryHandler
	contactHandler contactHandler
	authHandler    authHandler
	adminHandler   adminHandler
	healthHandler  healthHandler
}

// publicCollection serves the published records of one collection.
type publicCollection interface {
	list() http.HandlerFunc
	get() http.HandlerFunc
}

// adminCollection serves the full editing surface of one collection.
type adminCollection interface {
	publicCollection
	create() http.HandlerFunc
	update() http.HandlerFunc
	delete() http.HandlerFunc
	reorder() http.HandlerFunc
}

// ErrorResponse represents an error response from the API
type ErrorResponse struct {
	Error   string `json:"error" example:"Project not found"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"title"`
	Details string `json:"details,omitempty" example:"Additional error details"`
	Cause   string `json:"cause,omitempty" example:"Underlying error cause"`
}

type successResponse struct {
	Success bool `json:"success"`
}

type createResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

type uploadResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url"`
}

type sessionResponse struct {
	Authenticated bool `json:"authenticated"`
}

type healthResponse struct {
	Status    string          `json:"status"`
	Uptime    string          `json:"uptime"`
	Snapshots map[string]bool `json:"snapshots"`
}
