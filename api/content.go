package api

import (
	"context"
	"net/http"

	"github.com/octabyte/bm-gateway/enums"
	"github.com/octabyte/bm-gateway/models"
)

func (c *Client) ListNotices(ctx context.Context) ([]models.Notice, error) {
	var notices []models.Notice
	if _, err := c.get(ctx, "/notices", nil, &notices); err != nil {
		return nil, err
	}
	return notices, nil
}

func (c *Client) CreateNotice(ctx context.Context, title, description string) (*models.Notice, error) {
	var notice models.Notice
	body := models.Notice{Title: title, Description: description}
	if err := c.send(ctx, http.MethodPost, "/notices", body, &notice); err != nil {
		return nil, err
	}
	return &notice, nil
}

func (c *Client) DeleteNotice(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/notices/"+id, nil, nil)
}

// ListBanners returns every banner, or only the active ones.
func (c *Client) ListBanners(ctx context.Context, activeOnly bool) ([]models.Banner, error) {
	var query map[string]string
	if activeOnly {
		query = map[string]string{"active": "true"}
	}
	var banners []models.Banner
	if _, err := c.get(ctx, "/banners", query, &banners); err != nil {
		return nil, err
	}
	return banners, nil
}

func (c *Client) CreateBanner(ctx context.Context, b models.Banner) (*models.Banner, error) {
	var banner models.Banner
	if err := c.send(ctx, http.MethodPost, "/banners", b, &banner); err != nil {
		return nil, err
	}
	return &banner, nil
}

func (c *Client) DeleteBanner(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/banners/"+id, nil, nil)
}

// ListFundEntries lists the fund ledger, optionally restricted to deposits
// or expenses.
func (c *Client) ListFundEntries(ctx context.Context, kind enums.FundEntryType) ([]models.FundEntry, error) {
	var query map[string]string
	if kind != "" {
		query = map[string]string{"type": string(kind)}
	}
	var entries []models.FundEntry
	if _, err := c.get(ctx, "/funds", query, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) RecordFundEntry(ctx context.Context, e models.FundEntry) (*models.FundEntry, error) {
	var entry models.FundEntry
	if err := c.send(ctx, http.MethodPost, "/funds", e, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (c *Client) FundSummary(ctx context.Context) (*models.FundSummary, error) {
	var summary models.FundSummary
	if _, err := c.get(ctx, "/funds/summary", nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]models.UserProfile, error) {
	var users []models.UserProfile
	if _, err := c.get(ctx, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) UpdateUserRole(ctx context.Context, id string, role enums.Role) (*models.UserProfile, error) {
	var user models.UserProfile
	if err := c.send(ctx, http.MethodPatch, "/users/"+id+"/role", map[string]string{"role": string(role)}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
