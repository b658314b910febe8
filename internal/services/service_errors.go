package services

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"itinera/pkg/utils"
)

// isDomainErr reports errors that already carry a caller-facing meaning.
func isDomainErr(err error) bool {
	return errors.Is(err, utils.ErrValidation) ||
		errors.Is(err, utils.ErrNotFound) ||
		errors.Is(err, utils.ErrConflict)
}

// persistenceErr passes domain errors through and turns anything else into
// ErrDatabaseError (or keeps ErrSyncFailed), logging the cause.
func persistenceErr(log *zap.Logger, op string, err error) error {
	if err == nil || isDomainErr(err) {
		return err
	}
	if errors.Is(err, utils.ErrSyncFailed) {
		log.Error(op, zap.Error(err))
		return err
	}
	log.Error(op, zap.Error(err))
	return fmt.Errorf("%s: %w", op, utils.ErrDatabaseError)
}

// syncErr marks a failure of the derived-item engine.
func syncErr(err error) error {
	if isDomainErr(err) {
		return err
	}
	return fmt.Errorf("%w: %v", utils.ErrSyncFailed, err)
}

// notFoundAs maps a repository "no rows" error onto a domain sentinel.
func notFoundAs(err error, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
