package handlers

import (
	"sync"

	"github.com/SscSPs/journal_workflow_app/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerValidatorsOnce sync.Once

// registerValidators adds the "role" and "entrystatus" binding tags to gin's validator.
func registerValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("role", validateRole)
		_ = v.RegisterValidation("entrystatus", validateEntryStatus)
	})
}

func validateRole(fl validator.FieldLevel) bool {
	_, err := domain.ParseRole(fl.Field().String())
	return err == nil
}

func validateEntryStatus(fl validator.FieldLevel) bool {
	return domain.EntryStatus(fl.Field().String()).IsValid()
}
