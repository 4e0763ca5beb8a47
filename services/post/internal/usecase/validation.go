package usecase

import (
	"errors"
	"reflect"
	"strings"

	"newsdesk/services/post/internal/entity"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

type postValidator struct {
	validate   *validator.Validate
	translator ut.Translator
}

func newPostValidator() *postValidator {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	english := en.New()
	translator, _ := ut.New(english, english).GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, translator)

	return &postValidator{
		validate:   validate,
		translator: translator,
	}
}

// Validate expects a normalized post with its slug already derived.
func (v *postValidator) Validate(post *entity.Post) error {
	fields := make(map[string]string)

	if !post.Type.Valid() {
		fields["type"] = "type must be one of featured, market-watch, opinion, latest, exclusive, analysis"
	}
	if post.Title != "" && post.Slug == "" {
		fields["title"] = "title must contain at least one letter or digit"
	}

	if err := v.validate.Struct(post); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return err
		}
		for namespace, message := range validationErrors.Translate(v.translator) {
			key := fieldKey(namespace)
			if _, exists := fields[key]; !exists {
				fields[key] = message
			}
		}
	}

	if len(fields) > 0 {
		return &entity.ValidationError{Fields: fields}
	}
	return nil
}

// fieldKey turns "Post.MarketWatch.dataPoints[0].label" into
// "dataPoints[0].label".
func fieldKey(namespace string) string {
	parts := strings.Split(namespace, ".")
	out := parts[:0]
	for i, part := range parts {
		if i == 0 || part == "MarketWatch" || part == "Opinion" {
			continue
		}
		out = append(out, part)
	}
	return strings.Join(out, ".")
}
