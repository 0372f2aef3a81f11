package httperr

import "errors"

// Codes returned by the catalog layers. Anything that is not a BusinessError
// is treated as an unexpected failure.
const (
	CodeDuplicate        = "duplicate"
	CodeConflict         = "conflict"
	CodeNotFound         = "not_found"
	CodeInUse            = "in_use"
	CodeInvalidReference = "invalid_reference"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// BusinessCode returns the code carried by err, if any.
func BusinessCode(err error) (string, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code, true
	}
	return "", false
}
