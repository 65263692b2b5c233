package httperr

import "errors"

// BusinessError es un error de regla de negocio identificado por un
// código estable; los handlers lo traducen a HTTP.
type BusinessError struct {
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	if e.Message != "" {
		return e.Code + ": " + e.Message
	}
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

// ErrBusinessf agrega un mensaje legible al código, por ejemplo la
// cantidad disponible en insufficient_stock.
func ErrBusinessf(code, message string) error {
	return BusinessError{Code: code, Message: message}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// AsBusiness extrae el BusinessError si lo hay.
func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	ok := errors.As(err, &be)
	return be, ok
}
