package errors

import (
	stderrors "errors"

	"github.com/greengarden/greenery/constant"
)

type CustomError struct {
	errType constant.ErrorType
}

func (c CustomError) Error() string {
	return constant.ErrorTypeMessage[c.errType]
}

func (c CustomError) ErrorCode() string {
	return constant.ErrorTypeCode[c.errType]
}

func (c CustomError) ErrorHTTPCode() int {
	return constant.ErrorTypeHTTPCode[c.errType]
}

func SetCustomError(errorType constant.ErrorType) CustomError {
	return CustomError{
		errType: errorType,
	}
}

// ErrNoRowsAffected is returned by repositories when the store accepted a
// single-row write but changed nothing, typically because an access policy
// silently discarded its effect. Callers must not treat this as success.
var ErrNoRowsAffected = stderrors.New("no rows affected")

// RowsAffected is the result surface shared by sql.Result and sqlx wrappers.
type RowsAffected interface {
	RowsAffected() (int64, error)
}

// VerifyOneRow inspects the outcome of a write expected to touch exactly one
// row. Transport errors pass through untouched; a zero-row outcome becomes
// ErrNoRowsAffected.
func VerifyOneRow(res RowsAffected, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNoRowsAffected
	}
	return nil
}
