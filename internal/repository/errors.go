package repository

import (
	"errors"

	"health_guardian/internal/domain"

	"gorm.io/gorm"
)

// translate maps gorm errors onto the domain taxonomy
func translate(err error, entity string, id uint) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.Missing(entity, id)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrConflict
	}
	return err
}
