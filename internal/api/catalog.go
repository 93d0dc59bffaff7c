package api

import (
	"context"
	"net/url"

	"CasaMoreno/internal/model"
)

const (
	PathCategories  = "/products/categories"
	PathPromotional = "/products/promotional"
	PathByCategory  = "/products/category/"
	PathAuthToken   = "/auth/token"
)

// Categories returns the category list as the backend sends it.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.Get(ctx, PathCategories, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PromotionalProducts returns the promotional product list as the backend sends it.
func (c *Client) PromotionalProducts(ctx context.Context) ([]model.Product, error) {
	var out []model.Product
	if err := c.Get(ctx, PathPromotional, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ProductsByCategory returns the products of one category.
func (c *Client) ProductsByCategory(ctx context.Context, category string) ([]model.Product, error) {
	var out []model.Product
	if err := c.Get(ctx, PathByCategory+url.PathEscape(category), &out); err != nil {
		return nil, err
	}
	return out, nil
}

type tokenRequest struct {
	Customer string `json:"customer"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// IssueToken asks the backend for a customer token (development backend only).
func (c *Client) IssueToken(ctx context.Context, customer string) (string, error) {
	var resp tokenResponse
	if err := c.Post(ctx, PathAuthToken, tokenRequest{Customer: customer}, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}
