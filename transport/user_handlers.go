package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"catalog/pkg/domain/service"
)

type userHandlers struct {
	users service.UserService
}

type userRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone"`
	IsAdmin   bool   `json:"isAdmin"`
	Street    string `json:"street"`
	Apartment string `json:"apartment"`
	Zip       string `json:"zip"`
	City      string `json:"city"`
	Country   string `json:"country"`
}

func (r userRequest) toInput() service.NewUser {
	return service.NewUser{
		Name:      r.Name,
		Email:     r.Email,
		Password:  r.Password,
		Phone:     r.Phone,
		IsAdmin:   r.IsAdmin,
		Street:    r.Street,
		Apartment: r.Apartment,
		Zip:       r.Zip,
		City:      r.City,
		Country:   r.Country,
	}
}

func (h *userHandlers) login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, "malformed request body")
		return
	}
	token, err := h.users.Login(body.Email, body.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"user": body.Email, "token": token})
}

func (h *userHandlers) register(w http.ResponseWriter, r *http.Request) {
	var body userRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, "malformed request body")
		return
	}
	// Self-registration never grants admin.
	body.IsAdmin = false
	user, err := h.users.Register(body.toInput())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newUserView(user))
}

func (h *userHandlers) create(w http.ResponseWriter, r *http.Request) {
	var body userRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, "malformed request body")
		return
	}
	user, err := h.users.Register(body.toInput())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newUserView(user))
}

func (h *userHandlers) list(w http.ResponseWriter, _ *http.Request) {
	users, err := h.users.ListUsers()
	if err != nil {
		writeError(w, err)
		return
	}
	views := make([]userView, 0, len(users))
	for _, u := range users {
		views = append(views, newUserView(u))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *userHandlers) get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	user, err := h.users.GetUser(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newUserView(user))
}

func (h *userHandlers) update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var body userRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, "malformed request body")
		return
	}
	user, err := h.users.UpdateUser(id, body.toInput())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newUserView(user))
}

func (h *userHandlers) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.users.DeleteUser(id); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "the user is deleted")
}

func (h *userHandlers) count(w http.ResponseWriter, _ *http.Request) {
	count, err := h.users.CountUsers()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"userCount": count})
}
