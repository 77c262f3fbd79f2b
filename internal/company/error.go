package company

import "errors"

var (
	ErrCompanyNotFound = errors.New("company not found")
	ErrAlreadyOwner    = errors.New("user already owns a company")
	ErrInvalidDomain   = errors.New("invalid domain")
	ErrDomainTaken     = errors.New("domain already in use")
	ErrSlugTaken       = errors.New("slug already in use")
	ErrForbidden       = errors.New("forbidden")
)
