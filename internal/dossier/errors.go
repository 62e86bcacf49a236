package dossier

import "errors"

var (
	ErrInvalidDate       = errors.New("invalid date, expected YYYY-MM-DD")
	ErrMissingArgument   = errors.New("missing required argument")
	ErrDuplicateProperty = errors.New("this address already exists for this faction")
	ErrNotFound          = errors.New("no matching property found")
	ErrSchemaColumns     = errors.New("column span does not match table width")
)
