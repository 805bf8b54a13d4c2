// Package http provides http transport for reference star selection
package http

import (
	"context"
	stdhttp "net/http"

	"refstar/internal/modkit/httpkit"
	"refstar/internal/platform/logger"
	pnet "refstar/internal/platform/net"
	"refstar/internal/services/api/refstar/domain"
	svc "refstar/internal/services/api/refstar/service"
)

// Register mounts refstar endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.SelectInput](r, "/select", h.selectRef)
	httpkit.PostJSON[domain.PointingInput](r, "/pointing", h.pointing)
	httpkit.Get(r, "/catalog", h.catalog)
}

type handlers struct{ svc svc.Service }

// scoped tags the request context so service logs carry the request id and star
func scoped(r *stdhttp.Request, star string) context.Context {
	ctx := pnet.WithRequest(r.Context(), "", star)
	return logger.WithRequest(ctx, pnet.RequestID(ctx), star)
}

// swagger:route POST /refstar/select Refstar refstarSelect
// @Summary Select a reference star for a target
// @Description Constraint outcomes (target invalid, no reference found) are returned with 200 and a status
// @Tags Refstar
// @Accept json
// @Produce json
// @Param payload body domain.SelectInput true "Target and window"
// @Success 200 {object} domain.SelectOutput "ok"
// @Failure 400 {object} httpkit.Envelope "bad request"
// @Failure 404 {object} httpkit.Envelope "target not found"
// @Failure 409 {object} httpkit.Envelope "target name is not unique"
// @Router /refstar/select [post]
func (h *handlers) selectRef(r *stdhttp.Request, in domain.SelectInput) (any, error) {
	return h.svc.Select(scoped(r, in.Target), in)
}

// swagger:route POST /refstar/pointing Refstar refstarPointing
// @Summary Sun angle, pitch and yaw of one star across a window
// @Tags Refstar
// @Accept json
// @Produce json
// @Param payload body domain.PointingInput true "Star and window"
// @Success 200 {object} domain.PointingOutput "ok"
// @Failure 400 {object} httpkit.Envelope "bad request"
// @Failure 404 {object} httpkit.Envelope "star not found"
// @Router /refstar/pointing [post]
func (h *handlers) pointing(r *stdhttp.Request, in domain.PointingInput) (any, error) {
	return h.svc.Pointing(scoped(r, in.Star), in)
}

// swagger:route GET /refstar/catalog Refstar refstarCatalog
// @Summary Catalog size by quality class
// @Tags Refstar
// @Produce json
// @Success 200 {object} domain.CatalogOutput "ok"
// @Router /refstar/catalog [get]
func (h *handlers) catalog(r *stdhttp.Request) (any, error) {
	return h.svc.Catalog(r.Context())
}
