// Package services maps domain operations onto the HTTP wrapper, one thin
// method per backend call. No business logic lives here and errors
// propagate untouched to the caller.
package services

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"payetonkawa/internal/apiclient"
	"payetonkawa/internal/models"
)

type Clients struct {
	api *apiclient.Client
}

func NewClients(api *apiclient.Client) *Clients {
	return &Clients{api: api}
}

func (s *Clients) List(ctx context.Context, page, limit int64) (models.PaginatedResponse[models.Client], error) {
	query := url.Values{}
	query.Set("page", strconv.FormatInt(page, 10))
	query.Set("limit", strconv.FormatInt(limit, 10))

	var out models.PaginatedResponse[models.Client]
	err := s.api.Request(ctx, apiclient.ServiceClients, http.MethodGet, "/api/clients", query, nil, &out)
	return out, err
}

func (s *Clients) Get(ctx context.Context, id string) (models.Client, error) {
	var out models.APIResponse[models.Client]
	err := s.api.Request(ctx, apiclient.ServiceClients, http.MethodGet, "/api/clients/"+id, nil, nil, &out)
	return out.Data, err
}

func (s *Clients) Create(ctx context.Context, client any) (models.Client, error) {
	var out models.APIResponse[models.Client]
	err := s.api.Request(ctx, apiclient.ServiceClients, http.MethodPost, "/api/clients", nil, client, &out)
	return out.Data, err
}

func (s *Clients) Update(ctx context.Context, id string, fields any) (models.Client, error) {
	var out models.APIResponse[models.Client]
	err := s.api.Request(ctx, apiclient.ServiceClients, http.MethodPut, "/api/clients/"+id, nil, fields, &out)
	return out.Data, err
}

func (s *Clients) Delete(ctx context.Context, id string) error {
	return s.api.Request(ctx, apiclient.ServiceClients, http.MethodDelete, "/api/clients/"+id, nil, nil, nil)
}

func (s *Clients) Search(ctx context.Context, search string) (models.PaginatedResponse[models.Client], error) {
	query := url.Values{}
	query.Set("search", search)

	var out models.PaginatedResponse[models.Client]
	err := s.api.Request(ctx, apiclient.ServiceClients, http.MethodGet, "/api/clients", query, nil, &out)
	return out, err
}
