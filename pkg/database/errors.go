package database

import (
	"errors"
	"fmt"

	"github.com/Goodnessmbakara/skillsverse/pkg/apperror"
	"gorm.io/gorm"
)

// TranslateError maps gorm errors onto the apperror sentinels. Requires
// TranslateError in the gorm config for duplicate keys to be recognised.
func TranslateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperror.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", apperror.ErrConflict, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %v", apperror.ErrInvalidInput, err)
	default:
		return err
	}
}
