package services

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"payetonkawa/internal/apiclient"
	"payetonkawa/internal/models"
)

type Produits struct {
	api *apiclient.Client
}

func NewProduits(api *apiclient.Client) *Produits {
	return &Produits{api: api}
}

func (s *Produits) List(ctx context.Context, page, limit int64) (models.PaginatedResponse[models.Produit], error) {
	query := url.Values{}
	query.Set("page", strconv.FormatInt(page, 10))
	query.Set("limit", strconv.FormatInt(limit, 10))

	var out models.PaginatedResponse[models.Produit]
	err := s.api.Request(ctx, apiclient.ServiceProduits, http.MethodGet, "/api/produits", query, nil, &out)
	return out, err
}

func (s *Produits) Get(ctx context.Context, id string) (models.Produit, error) {
	var out models.APIResponse[models.Produit]
	err := s.api.Request(ctx, apiclient.ServiceProduits, http.MethodGet, "/api/produits/"+id, nil, nil, &out)
	return out.Data, err
}

func (s *Produits) Create(ctx context.Context, produit any) (models.Produit, error) {
	var out models.APIResponse[models.Produit]
	err := s.api.Request(ctx, apiclient.ServiceProduits, http.MethodPost, "/api/produits", nil, produit, &out)
	return out.Data, err
}

func (s *Produits) Update(ctx context.Context, id string, fields any) (models.Produit, error) {
	var out models.APIResponse[models.Produit]
	err := s.api.Request(ctx, apiclient.ServiceProduits, http.MethodPut, "/api/produits/"+id, nil, fields, &out)
	return out.Data, err
}

func (s *Produits) Delete(ctx context.Context, id string) error {
	return s.api.Request(ctx, apiclient.ServiceProduits, http.MethodDelete, "/api/produits/"+id, nil, nil, nil)
}

func (s *Produits) Search(ctx context.Context, search string) (models.PaginatedResponse[models.Produit], error) {
	query := url.Values{}
	query.Set("search", search)

	var out models.PaginatedResponse[models.Produit]
	err := s.api.Request(ctx, apiclient.ServiceProduits, http.MethodGet, "/api/produits", query, nil, &out)
	return out, err
}

func (s *Produits) ByOrigine(ctx context.Context, origine string) (models.PaginatedResponse[models.Produit], error) {
	query := url.Values{}
	query.Set("origine", origine)

	var out models.PaginatedResponse[models.Produit]
	err := s.api.Request(ctx, apiclient.ServiceProduits, http.MethodGet, "/api/produits", query, nil, &out)
	return out, err
}
