package serverutils

import (
	"rag-chat-be/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs struct-tag validation and maps failures to the
// invalid-input error kind so they reject before any remote call.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		return apperror.NewInvalidInput(err.Error())
	}
	return nil
}
