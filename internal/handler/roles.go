package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/crewdesk/staffing/backend/internal/domain"
)

func (h *Handler) GetRoleCatalog(w http.ResponseWriter, r *http.Request) {
	catalog := make([]domain.RoleInfo, 0, len(domain.AllRoleCodes()))
	for _, code := range domain.AllRoleCodes() {
		info, _ := domain.DescribeRole(code)
		catalog = append(catalog, info)
	}

	h.successResponse(w, r, "fetched role catalog", catalog)
}

func (h *Handler) DescribeRole(w http.ResponseWriter, r *http.Request) {
	code := domain.RoleCode(chi.URLParam(r, "code"))

	info, err := domain.DescribeRole(code)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched role", info)
}
