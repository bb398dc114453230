package services

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"payetonkawa/internal/apiclient"
	"payetonkawa/internal/models"
)

type Commandes struct {
	api *apiclient.Client
}

func NewCommandes(api *apiclient.Client) *Commandes {
	return &Commandes{api: api}
}

func (s *Commandes) List(ctx context.Context, page, limit int64) (models.PaginatedResponse[models.Commande], error) {
	query := url.Values{}
	query.Set("page", strconv.FormatInt(page, 10))
	query.Set("limit", strconv.FormatInt(limit, 10))

	var out models.PaginatedResponse[models.Commande]
	err := s.api.Request(ctx, apiclient.ServiceCommandes, http.MethodGet, "/api/commandes", query, nil, &out)
	return out, err
}

func (s *Commandes) Get(ctx context.Context, id string) (models.Commande, error) {
	var out models.APIResponse[models.Commande]
	err := s.api.Request(ctx, apiclient.ServiceCommandes, http.MethodGet, "/api/commandes/"+id, nil, nil, &out)
	return out.Data, err
}

func (s *Commandes) Create(ctx context.Context, commande any) (models.Commande, error) {
	var out models.APIResponse[models.Commande]
	err := s.api.Request(ctx, apiclient.ServiceCommandes, http.MethodPost, "/api/commandes", nil, commande, &out)
	return out.Data, err
}

func (s *Commandes) Update(ctx context.Context, id string, fields any) (models.Commande, error) {
	var out models.APIResponse[models.Commande]
	err := s.api.Request(ctx, apiclient.ServiceCommandes, http.MethodPut, "/api/commandes/"+id, nil, fields, &out)
	return out.Data, err
}

func (s *Commandes) Delete(ctx context.Context, id string) error {
	return s.api.Request(ctx, apiclient.ServiceCommandes, http.MethodDelete, "/api/commandes/"+id, nil, nil, nil)
}

func (s *Commandes) ByClient(ctx context.Context, clientID string) (models.PaginatedResponse[models.Commande], error) {
	query := url.Values{}
	query.Set("clientId", clientID)

	var out models.PaginatedResponse[models.Commande]
	err := s.api.Request(ctx, apiclient.ServiceCommandes, http.MethodGet, "/api/commandes", query, nil, &out)
	return out, err
}

func (s *Commandes) ByStatut(ctx context.Context, statut string) (models.PaginatedResponse[models.Commande], error) {
	query := url.Values{}
	query.Set("statut", statut)

	var out models.PaginatedResponse[models.Commande]
	err := s.api.Request(ctx, apiclient.ServiceCommandes, http.MethodGet, "/api/commandes", query, nil, &out)
	return out, err
}

func (s *Commandes) DashboardStats(ctx context.Context) (models.StatsTableauDeBord, error) {
	var out models.APIResponse[models.StatsTableauDeBord]
	err := s.api.Request(ctx, apiclient.ServiceCommandes, http.MethodGet, "/api/commandes/stats", nil, nil, &out)
	return out.Data, err
}
