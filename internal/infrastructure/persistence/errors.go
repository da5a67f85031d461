package persistence

import (
	"errors"

	"github.com/Mathmagicians/theslope/internal/domain/errs"

	"gorm.io/gorm"
)

// notFoundOr maps gorm's missing-record error to the domain's not found kind
func notFoundOr(err error, op, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NotFound(op, id)
	}
	return err
}
