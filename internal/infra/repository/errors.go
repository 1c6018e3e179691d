package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/rdv-service/internal/httperr"
)

// translate maps gorm failures onto the typed error kinds.
func translate(err error, notFoundCode, notFoundMessage string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrNotFound(notFoundCode, notFoundMessage)
	}
	if _, ok := httperr.As(err); ok {
		return err
	}
	return httperr.ErrTransport("db_error", err)
}
