// Package http provides http transport for cases
package http

import (
	stdhttp "net/http"

	"labqc/internal/modkit/httpkit"
	"labqc/internal/services/api/cases/domain"
	svc "labqc/internal/services/api/cases/service"
)

// Register mounts case endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/", h.search)
	httpkit.PostJSON[domain.CaseInput](r, "/", h.create)
	httpkit.Get(r, "/{id}", h.get)
	httpkit.PutJSON[domain.CaseInput](r, "/{id}", h.update)
	httpkit.Delete(r, "/{id}", h.remove)
}

type handlers struct{ svc svc.Service }

// @Summary Browse cases
// @Tags Cases
// @Produce json
// @Param firstName query string false "first name contains"
// @Param lastName query string false "last initial contains"
// @Param dateFrom query string false "inclusive lower date bound (YYYY-MM-DD)"
// @Param dateTo query string false "inclusive upper date bound (YYYY-MM-DD)"
// @Param page query int false "page number, 1 based"
// @Param pageSize query int false "page size, max 200"
// @Success 200 {array} domain.Case "ok"
// @Router /cases [get]
func (h *handlers) search(r *stdhttp.Request) (any, error) {
	page, err := httpkit.QueryInt(r, "page", 1)
	if err != nil {
		return nil, err
	}
	size, err := httpkit.QueryInt(r, "pageSize", 0)
	if err != nil {
		return nil, err
	}
	list, err := h.svc.Search(r.Context(), domain.SearchInput{
		FirstName: httpkit.Query(r, "firstName"),
		LastName:  httpkit.Query(r, "lastName"),
		DateFrom:  httpkit.Query(r, "dateFrom"),
		DateTo:    httpkit.Query(r, "dateTo"),
		Page:      page,
		PageSize:  size,
	})
	if err != nil {
		return nil, err
	}
	return httpkit.List(list.Items, list.Total, list.Page, list.PageSize), nil
}

// @Summary Record a case
// @Tags Cases
// @Accept json
// @Produce json
// @Param payload body domain.CaseInput true "Case"
// @Success 201 {object} domain.Case "created"
// @Router /cases [post]
func (h *handlers) create(r *stdhttp.Request, in domain.CaseInput) (any, error) {
	c, err := h.svc.Create(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(c), nil
}

// @Summary Fetch a case
// @Tags Cases
// @Produce json
// @Param id path string true "case id"
// @Success 200 {object} domain.Case "ok"
// @Router /cases/{id} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	id, err := httpkit.Param(r, "id")
	if err != nil {
		return nil, err
	}
	return h.svc.Get(r.Context(), id)
}

// @Summary Replace a case
// @Tags Cases
// @Accept json
// @Produce json
// @Param id path string true "case id"
// @Param payload body domain.CaseInput true "Case"
// @Success 200 {object} domain.Case "ok"
// @Router /cases/{id} [put]
func (h *handlers) update(r *stdhttp.Request, in domain.CaseInput) (any, error) {
	id, err := httpkit.Param(r, "id")
	if err != nil {
		return nil, err
	}
	return h.svc.Update(r.Context(), id, in)
}

// @Summary Delete a case
// @Tags Cases
// @Produce json
// @Param id path string true "case id"
// @Success 200 {object} domain.Deleted "ok"
// @Router /cases/{id} [delete]
func (h *handlers) remove(r *stdhttp.Request) (any, error) {
	id, err := httpkit.Param(r, "id")
	if err != nil {
		return nil, err
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		return nil, err
	}
	return domain.Deleted{Message: "Case deleted successfully"}, nil
}
