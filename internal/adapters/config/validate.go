package config

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.trai.ch/ormwire/internal/core/domain"
	"go.trai.ch/zerr"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("regexp", func(fl validator.FieldLevel) bool {
		_, _, ok := domain.SplitPattern(fl.Field().String())
		return ok
	})
	return v
}

func (l *Loader) validateFile(file *File) error {
	err := l.validate.Struct(file)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return zerr.Wrap(err, domain.ErrInvalidConfiguration.Error())
	}

	first := verrs[0]
	out := zerr.With(domain.ErrInvalidConfiguration, "field", fieldPath(first.Namespace()))
	out = zerr.With(out, "rule", first.Tag())
	if first.Param() != "" {
		out = zerr.With(out, "allowed", first.Param())
	}
	return out
}

// fieldPath turns a validator namespace into the dotted path of the config key.
func fieldPath(namespace string) string {
	path := strings.TrimPrefix(namespace, "File.")
	path = strings.ReplaceAll(path, ".Value", "")
	path = strings.ReplaceAll(path, ".ParamsDTO", "")
	return path
}
