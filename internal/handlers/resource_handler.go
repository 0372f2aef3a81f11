package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/scheduling-api/internal/domain/catalog"
	"github.com/BruksfildServices01/scheduling-api/internal/httperr"
	"github.com/BruksfildServices01/scheduling-api/internal/httpresp"
)

// CatalogService is what a ResourceHandler needs from the use case layer.
type CatalogService[T any] interface {
	Entity() string

	Create(ctx context.Context, rec *T) error
	Update(ctx context.Context, key uint, rec *T) error
	Delete(ctx context.Context, key uint) error

	Get(ctx context.Context, key uint) (*T, error)
	Find(ctx context.Context, f domain.Filter) ([]T, error)
	List(ctx context.Context) ([]T, error)
}

// Param is a query parameter accepted by GET. A Unique param identifies at
// most one row, so a lookup by it alone answers with an object or 404.
type Param struct {
	Name   string
	Unique bool
	Parse  func(string) (any, error)
}

func UintParam(name string) Param {
	return Param{Name: name, Parse: func(v string) (any, error) {
		return parseKey(v)
	}}
}

func StringParam(name string, unique bool) Param {
	return Param{Name: name, Unique: unique, Parse: func(v string) (any, error) {
		return v, nil
	}}
}

// Resource describes one catalog entity for the generic handler.
// C and U are the create and update request bodies, P the response shape.
type Resource[T, C, U, P any] struct {
	KeyParam string
	Params   []Param

	FromCreate func(req *C) (*T, error)
	FromUpdate func(req *U) (uint, *T, error)
	Present    func(rec *T) (P, error)

	// PresentList, when set, maps whole result sets; Present is used per row otherwise.
	PresentList func(rows []T) ([]P, error)
}

type ResourceHandler[T, C, U, P any] struct {
	svc CatalogService[T]
	res Resource[T, C, U, P]
}

func NewResourceHandler[T, C, U, P any](svc CatalogService[T], res Resource[T, C, U, P]) *ResourceHandler[T, C, U, P] {
	return &ResourceHandler[T, C, U, P]{svc: svc, res: res}
}

// requestError is a validation failure raised while building a record.
type requestError struct {
	code    string
	message string
}

func (e requestError) Error() string {
	return e.code + ": " + e.message
}

func invalidRequest(code, message string) error {
	return requestError{code: code, message: message}
}

func parseKey(v string) (uint, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
	if err != nil || n == 0 {
		return 0, errors.New("must be a positive integer")
	}
	return uint(n), nil
}

func (h *ResourceHandler[T, C, U, P]) fail(c *gin.Context, err error) {
	var re requestError
	if errors.As(err, &re) {
		httperr.BadRequest(c, re.code, re.message)
		return
	}
	httperr.Respond(c, h.svc.Entity(), err)
}

// ======================================================
// POST /<entity>
// ======================================================

func (h *ResourceHandler[T, C, U, P]) Create(c *gin.Context) {
	var req C
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	rec, err := h.res.FromCreate(&req)
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.svc.Create(c.Request.Context(), rec); err != nil {
		h.fail(c, err)
		return
	}

	out, err := h.res.Present(rec)
	if err != nil {
		h.fail(c, err)
		return
	}
	httpresp.Created(c, out)
}

// ======================================================
// PUT /<entity>
// ======================================================

func (h *ResourceHandler[T, C, U, P]) Update(c *gin.Context) {
	var req U
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	key, rec, err := h.res.FromUpdate(&req)
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.svc.Update(c.Request.Context(), key, rec); err != nil {
		h.fail(c, err)
		return
	}
	httpresp.NoContent(c)
}

// ======================================================
// DELETE /<entity>?<key>=
// ======================================================

func (h *ResourceHandler[T, C, U, P]) Delete(c *gin.Context) {
	raw, ok := c.GetQuery(h.res.KeyParam)
	if !ok {
		httperr.BadRequest(c, "missing_"+h.res.KeyParam, "Informe o parâmetro "+h.res.KeyParam+".")
		return
	}

	key, err := parseKey(raw)
	if err != nil {
		httperr.BadRequest(c, "invalid_"+h.res.KeyParam, h.res.KeyParam+" "+err.Error())
		return
	}

	if err := h.svc.Delete(c.Request.Context(), key); err != nil {
		h.fail(c, err)
		return
	}
	httpresp.NoContent(c)
}

// ======================================================
// GET /<entity>?...
// ======================================================

func (h *ResourceHandler[T, C, U, P]) Get(c *gin.Context) {
	ctx := c.Request.Context()

	if raw, ok := c.GetQuery(h.res.KeyParam); ok {
		key, err := parseKey(raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_"+h.res.KeyParam, h.res.KeyParam+" "+err.Error())
			return
		}

		rec, err := h.svc.Get(ctx, key)
		if err != nil {
			h.fail(c, err)
			return
		}
		h.one(c, rec)
		return
	}

	filter := domain.Filter{}
	unique := false
	for _, p := range h.res.Params {
		raw, ok := c.GetQuery(p.Name)
		if !ok {
			continue
		}
		v, err := p.Parse(raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_"+p.Name, p.Name+" "+err.Error())
			return
		}
		filter[p.Name] = v
		unique = p.Unique
	}

	if len(filter) == 0 {
		httperr.BadRequest(c, "missing_filter", "Informe ao menos um parâmetro de busca.")
		return
	}

	rows, err := h.svc.Find(ctx, filter)
	if err != nil {
		h.fail(c, err)
		return
	}

	if unique && len(filter) == 1 {
		if len(rows) == 0 {
			h.fail(c, httperr.ErrBusiness(httperr.CodeNotFound))
			return
		}
		h.one(c, &rows[0])
		return
	}
	h.many(c, rows)
}

// ======================================================
// GET /<entities>
// ======================================================

func (h *ResourceHandler[T, C, U, P]) List(c *gin.Context) {
	rows, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	h.many(c, rows)
}

func (h *ResourceHandler[T, C, U, P]) one(c *gin.Context, rec *T) {
	out, err := h.res.Present(rec)
	if err != nil {
		h.fail(c, err)
		return
	}
	httpresp.OK(c, out)
}

func (h *ResourceHandler[T, C, U, P]) many(c *gin.Context, rows []T) {
	if h.res.PresentList != nil {
		out, err := h.res.PresentList(rows)
		if err != nil {
			h.fail(c, err)
			return
		}
		httpresp.List(c, out)
		return
	}

	out := make([]P, 0, len(rows))
	for i := range rows {
		p, err := h.res.Present(&rows[i])
		if err != nil {
			h.fail(c, err)
			return
		}
		out = append(out, p)
	}
	httpresp.List(c, out)
}

// Register mounts the resource: GET/POST/PUT/DELETE on path and the list on
// listPath. Writes go through guard when one is given.
func (h *ResourceHandler[T, C, U, P]) Register(r gin.IRouter, path, listPath string, guard gin.HandlerFunc) {
	write := func(fn gin.HandlerFunc) []gin.HandlerFunc {
		if guard == nil {
			return []gin.HandlerFunc{fn}
		}
		return []gin.HandlerFunc{guard, fn}
	}

	r.GET(path, h.Get)
	r.GET(listPath, h.List)
	r.POST(path, write(h.Create)...)
	r.PUT(path, write(h.Update)...)
	r.DELETE(path, write(h.Delete)...)
}
