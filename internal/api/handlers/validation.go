package handlers

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/filmvibe/app-discover-api/internal/models"
)

var registerOnce sync.Once

// RegisterValidators adds the custom binding tags used by request models.
// Safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("sortkey", func(fl validator.FieldLevel) bool {
			return models.SortKey(fl.Field().String()).IsValid()
		})
	})
}
