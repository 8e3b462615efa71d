package repository

import (
	"errors"

	"pigeon_chat_server/pkg/errorx"

	"gorm.io/gorm"
)

// wrapDBError maps gorm errors onto errorx codes: missing records keep
// their identity as CodeNotFound, everything else becomes CodeDBError.
func wrapDBError(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errorx.Wrap(err, errorx.CodeNotFound, msg)
	}
	return errorx.Wrap(err, errorx.CodeDBError, msg)
}

func wrapDBErrorf(err error, format string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errorx.Wrapf(err, errorx.CodeNotFound, format, args...)
	}
	return errorx.Wrapf(err, errorx.CodeDBError, format, args...)
}
