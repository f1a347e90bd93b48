package handlers

import (
	"log"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators добавляет в валидатор gin тег hhmm (время "09:00" или "9:00").
// Вызывается до первого запроса.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		err := v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
			_, err := time.Parse("15:04", fl.Field().String())
			return err == nil
		})
		if err != nil {
			log.Fatal("Ошибка регистрации валидатора hhmm: ", err)
		}
	})
}
