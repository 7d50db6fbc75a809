package validation

import (
	"reflect"
	"strings"
	"sync"

	"cardfolio/internal/models"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	once     sync.Once
	validate *validator.Validate
	trans    ut.Translator
)

func setup() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation("mmyy", func(fl validator.FieldLevel) bool {
		return models.ValidExpiry(fl.Field().String())
	})
	_ = validate.RegisterValidation("last4", func(fl validator.FieldLevel) bool {
		return last4Regex.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation("bonus_status", func(fl validator.FieldLevel) bool {
		_, ok := models.ParseBonusStatus(fl.Field().String())
		return ok
	})

	eng := en.New()
	uni := ut.New(eng, eng)
	trans, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, trans)

	custom := map[string]string{
		"mmyy":         "{0} must be a valid expiry in MM/YY format",
		"last4":        "{0} must be exactly 4 digits",
		"bonus_status": "{0} must be one of Not Started, In Progress, Met, Received",
	}
	for tag, text := range custom {
		_ = validate.RegisterTranslation(tag, trans,
			func(ut ut.Translator) error {
				return ut.Add(tag, text, true)
			},
			func(ut ut.Translator, fe validator.FieldError) string {
				msg, _ := ut.T(fe.Tag(), fe.Field())
				return msg
			},
		)
	}
}

// Struct validates s against its `validate` tags and returns English
// messages keyed by the JSON field path. An empty map means s is valid.
func Struct(s interface{}) map[string]string {
	once.Do(setup)

	out := make(map[string]string)
	err := validate.Struct(s)
	if err == nil {
		return out
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		out["_"] = err.Error()
		return out
	}
	for _, e := range errs {
		out[fieldPath(e.Namespace())] = e.Translate(trans)
	}
	return out
}

// fieldPath drops the struct name from "CardInput.tags[0]".
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
