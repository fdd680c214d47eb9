package httpapi

import (
	"fmt"
	"net/http"

	"accessgate.dev/internal/rbac"
)

type createUserRequest struct {
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	Phone          string `json:"phone"`
	DocumentNumber string `json:"document_number"`
	Street         string `json:"street"`
	City           string `json:"city"`
	State          string `json:"state"`
	ZipCode        string `json:"zip_code"`
	RoleID         string `json:"role_id"`
	IsActive       *bool  `json:"is_active"`
}

type updateUserRequest struct {
	FullName       *string `json:"full_name"`
	Email          *string `json:"email"`
	Password       *string `json:"password"`
	Phone          *string `json:"phone"`
	DocumentNumber *string `json:"document_number"`
	Street         *string `json:"street"`
	City           *string `json:"city"`
	State          *string `json:"state"`
	ZipCode        *string `json:"zip_code"`
	RoleID         *string `json:"role_id"`
	IsActive       *bool   `json:"is_active"`
}

func (a *API) createUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	user, err := a.rbac.CreateUser(r.Context(), rbac.NewUser{
		FullName:       req.FullName,
		Email:          req.Email,
		Password:       req.Password,
		Phone:          req.Phone,
		DocumentNumber: req.DocumentNumber,
		Street:         req.Street,
		City:           req.City,
		State:          req.State,
		ZipCode:        req.ZipCode,
		RoleID:         req.RoleID,
		IsActive:       req.IsActive,
	})
	if err != nil {
		handleRBACError(w, r, err)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/v1/users/%s", user.ID))
	writeJSON(w, http.StatusCreated, user)
}

func (a *API) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := a.rbac.ListUsers(r.Context())
	if err != nil {
		handleRBACError(w, r, err)
		return
	}
	if users == nil {
		users = []rbac.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

func (a *API) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := a.rbac.GetUser(r.Context(), r.PathValue("id"))
	if err != nil {
		handleRBACError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (a *API) updateUser(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	user, err := a.rbac.UpdateUser(r.Context(), r.PathValue("id"), rbac.UserUpdate{
		FullName:       req.FullName,
		Email:          req.Email,
		Password:       req.Password,
		Phone:          req.Phone,
		DocumentNumber: req.DocumentNumber,
		Street:         req.Street,
		City:           req.City,
		State:          req.State,
		ZipCode:        req.ZipCode,
		RoleID:         req.RoleID,
		IsActive:       req.IsActive,
	})
	if err != nil {
		handleRBACError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (a *API) deleteUser(w http.ResponseWriter, r *http.Request) {
	if err := a.rbac.DeleteUser(r.Context(), r.PathValue("id")); err != nil {
		handleRBACError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
