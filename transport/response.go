package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"catalog/pkg/domain/model"
	"catalog/pkg/domain/service"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("write response")
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeError maps domain errors to HTTP outcomes: invalid input to 400,
// unresolved identifiers to 404, anything else to a logged 500.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case isValidationError(err):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case isNotFoundError(err):
		writeMessage(w, http.StatusNotFound, err.Error())
	default:
		log.WithError(err).Error("request failed")
		writeMessage(w, http.StatusInternalServerError, "internal server error")
	}
}

func isValidationError(err error) bool {
	return errors.Is(err, service.ErrOrderIsEmpty) ||
		errors.Is(err, service.ErrInvalidQuantity) ||
		errors.Is(err, service.ErrEmptyOrderStatus) ||
		errors.Is(err, service.ErrEmptyCategoryName) ||
		errors.Is(err, service.ErrEmptyProductName) ||
		errors.Is(err, service.ErrNegativePrice) ||
		errors.Is(err, service.ErrEmptyUserFields) ||
		errors.Is(err, model.ErrEmailTaken)
}

func isNotFoundError(err error) bool {
	return errors.Is(err, model.ErrOrderNotFound) ||
		errors.Is(err, model.ErrOrderItemNotFound) ||
		errors.Is(err, model.ErrProductNotFound) ||
		errors.Is(err, model.ErrCategoryNotFound) ||
		errors.Is(err, model.ErrUserNotFound)
}
