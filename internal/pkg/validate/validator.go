package validate

import (
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/gofiber/fiber/v2"
)

type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

func NewValidator() *Validator {
	validator := validator.New(validator.WithRequiredStructEnabled())

	// Registering english translator
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	en_translations.RegisterDefaultTranslations(validator, trans)

	// Registering field name translation
	validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerNotBlank(validator, trans)
	registerOneOfCI(validator, trans)

	return &Validator{
		validate: validator,
		trans:    trans,
	}
}

// notblank rejects strings that are empty after trimming whitespace.
func registerNotBlank(v *validator.Validate, trans ut.Translator) {
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterTranslation("notblank", trans,
		func(ut ut.Translator) error {
			return ut.Add("notblank", "{0} must not be blank", true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T("notblank", fe.Field())
			return t
		},
	)
}

// oneofci reads like oneof in error messages.
func registerOneOfCI(v *validator.Validate, trans ut.Translator) {
	_ = v.RegisterTranslation("oneofci", trans,
		func(ut ut.Translator) error {
			return ut.Add("oneofci", "{0} must be one of [{1}]", true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T("oneofci", fe.Field(), fe.Param())
			return t
		},
	)
}

func (v *Validator) ParseAndValidate(ctx *fiber.Ctx, req interface{}) error {
	if err := ctx.BodyParser(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Request body is not valid JSON")
	}

	return v.Validate(req)
}

func (v *Validator) Validate(req interface{}) error {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	errors, ok := err.(validator.ValidationErrors)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "Request body is not valid")
	}

	fields := v.translateError(errors)
	return NewFieldsError(fields)
}

func (v *Validator) translateError(errs validator.ValidationErrors) (fields map[string]string) {
	fields = make(map[string]string)
	for _, e := range errs {
		fields[e.Field()] = e.Translate(v.trans)
	}
	return fields
}
