package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/octabyte/bm-gateway/enums"
	"github.com/octabyte/bm-gateway/models"
)

type ProjectQuery struct {
	Page   int
	Limit  int
	Status enums.ProjectStatus
}

func (q ProjectQuery) params() map[string]string {
	params := map[string]string{}
	if q.Page > 0 {
		params["page"] = strconv.Itoa(q.Page)
	}
	if q.Limit > 0 {
		params["limit"] = strconv.Itoa(q.Limit)
	}
	if q.Status != "" {
		params["status"] = string(q.Status)
	}
	return params
}

// ListProjects returns one page of projects and its paging metadata.
func (c *Client) ListProjects(ctx context.Context, q ProjectQuery) ([]models.Project, *models.PageMeta, error) {
	var projects []models.Project
	meta, err := c.get(ctx, "/projects", q.params(), &projects)
	if err != nil {
		return nil, nil, err
	}
	return projects, meta, nil
}

func (c *Client) GetProject(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project
	if _, err := c.get(ctx, "/projects/"+id, nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (c *Client) CreateProject(ctx context.Context, p models.Project) (*models.Project, error) {
	var created models.Project
	if err := c.send(ctx, http.MethodPost, "/projects", p, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateProject(ctx context.Context, id string, p models.Project) (*models.Project, error) {
	var updated models.Project
	if err := c.send(ctx, http.MethodPut, "/projects/"+id, p, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/projects/"+id, nil, nil)
}
