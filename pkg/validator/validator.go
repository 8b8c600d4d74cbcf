package validator

import (
	"github.com/go-playground/validator/v10"

	"github.com/borderpass/borderpass-backend/internal/domain/entities"
)

// CustomValidator implements echo.Validator using go-playground/validator
type CustomValidator struct {
	v *validator.Validate
}

// New creates a new CustomValidator instance with domain rules registered
func New() *CustomValidator {
	v := validator.New()

	// session_mode: VOICE or TEXT
	_ = v.RegisterValidation("session_mode", func(fl validator.FieldLevel) bool {
		mode := entities.SessionMode(fl.Field().String())
		return mode == entities.SessionModeVoice || mode == entities.SessionModeText
	})

	// speaker: STUDENT or AI
	_ = v.RegisterValidation("speaker", func(fl validator.FieldLevel) bool {
		speaker := entities.Speaker(fl.Field().String())
		return speaker == entities.SpeakerStudent || speaker == entities.SpeakerAI
	})

	return &CustomValidator{v: v}
}

// Validate performs struct validation
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}
