package page

import "lending-core/pkg/apperror"

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// Validate rejects the offset/limit pairs every list operation refuses.
func Validate(skip, limit int) error {
	if skip < 0 || limit < 1 {
		return apperror.Validationf("invalid pagination parameters: skip must be >= 0 and limit >= 1")
	}
	return nil
}
