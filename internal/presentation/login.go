package presentation

import (
	"net/http"
	"strings"

	"github.com/RaikyD/digital-link/internal/presentation/helpers"
)

type Role string

const (
	RoleCompany Role = "company"
	RoleDriver  Role = "driver"
)

// RoleFor routes a login to a view. There is no authentication behind it.
func RoleFor(username, password string) Role {
	if username == "Admin" && password == "Admin" {
		return RoleCompany
	}
	if strings.Contains(username, "company") {
		return RoleCompany
	}
	return RoleDriver
}

func viewFor(r Role) string {
	if r == RoleCompany {
		return "/dashboard"
	}
	return "/driver"
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *ShipmentsHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := helpers.DecodeJSON(r.Body, &req); err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	role := RoleFor(req.Username, req.Password)
	helpers.WriteJSON(w, http.StatusOK, map[string]any{
		"role": role,
		"view": viewFor(role),
	})
}
