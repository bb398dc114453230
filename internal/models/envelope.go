package models

// APIResponse is the single-resource envelope every service responds with.
type APIResponse[T any] struct {
	Data    T      `json:"data"`
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// PaginatedResponse is the list envelope for paginated endpoints.
type PaginatedResponse[T any] struct {
	Data       []T   `json:"data"`
	Total      int64 `json:"total"`
	Page       int64 `json:"page"`
	Limit      int64 `json:"limit"`
	TotalPages int64 `json:"totalPages"`
}

// StatsTableauDeBord aggregates the figures shown on the admin dashboard.
// Revenue excludes cancelled orders.
type StatsTableauDeBord struct {
	TotalClients      int64      `json:"totalClients"`
	TotalProduits     int64      `json:"totalProduits"`
	TotalCommandes    int64      `json:"totalCommandes"`
	ChiffreAffaires   float64    `json:"chiffreAffaires"`
	CommandesRecentes []Commande `json:"commandesRecentes"`
}
