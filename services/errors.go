package services

import (
	"github.com/rs/zerolog"
	errs "github.com/techagentng/mediahub/errors"
	"github.com/techagentng/mediahub/services/utils"
)

// storeFailure logs an unclassified store error and hands it back
// unchanged. The transport reports it as an internal error.
func storeFailure(log zerolog.Logger, op string, err error) error {
	if _, ok := errs.As(err); ok {
		return err
	}
	log.Error().Err(err).Str("op", op).Msg("store operation failed")
	return err
}

// notFoundAs turns a missing-row error into a NotFound carrying message.
func notFoundAs(log zerolog.Logger, op string, err error, message string) error {
	if utils.IsNotFound(err) {
		return errs.NotFound(message)
	}
	return storeFailure(log, op, err)
}
