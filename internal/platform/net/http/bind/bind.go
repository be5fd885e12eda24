// Package bind provides query string bind and validation helpers for handlers
package bind

import (
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"sync"

	perr "paydash/internal/platform/errors"
	"paydash/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// FieldError aliases validator.FieldError
type FieldError = validator.FieldError

// ValidatorSvc holds a singleton validator and translator
type ValidatorSvc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	vOnce sync.Once
	vSvc  *ValidatorSvc
)

// Init initializes the singleton validator with english translations and query tag names
func Init() *ValidatorSvc {
	vOnce.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		trans, _ := uni.GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())

		// messages name the query parameter, not the Go field
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			if name := tagName(fld); name != "" {
				return name
			}
			return fld.Name
		})

		_ = en_translations.RegisterDefaultTranslations(v, trans)

		registerShortMin(v, trans)
		registerShortMax(v, trans)

		vSvc = &ValidatorSvc{Validator: v, Translator: trans}
	})
	return vSvc
}

// Get returns the validator singleton, initializing on first use
func Get() *ValidatorSvc { return Init() }

// tagName returns the query name of a field, falling back to its json name
func tagName(fld reflect.StructField) string {
	for _, key := range []string{"query", "json"} {
		tag := fld.Tag.Get(key)
		if tag == "-" {
			return ""
		}
		if idx := strings.Index(tag, ","); idx >= 0 {
			tag = tag[:idx]
		}
		if tag != "" {
			return tag
		}
	}
	return ""
}

// ParseQuery binds r's query string into T and validates it
// fields are matched by their query tag; string, int, bool and []string are supported
// a value that does not parse is a Validation error naming the parameter
func ParseQuery[T any](r *http.Request) (T, error) {
	var zero, dst T
	if err := Values(r.URL.Query(), &dst); err != nil {
		return zero, err
	}
	if err := Validate(dst); err != nil {
		return zero, err
	}
	return dst, nil
}

// Values copies q into the struct pointed to by dst
func Values(q url.Values, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return perr.Newf(perr.ErrorCodeUnknown, "bind: %T is not a pointer to struct", dst)
	}
	rv = rv.Elem()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		fld := rt.Field(i)
		name := fld.Tag.Get("query")
		if idx := strings.Index(name, ","); idx >= 0 {
			name = name[:idx]
		}
		if name == "" || name == "-" || !fld.IsExported() {
			continue
		}
		vals := q[name]
		if len(vals) == 0 {
			vals = q[name+"[]"]
		}
		if len(vals) == 0 {
			continue
		}
		if err := set(rv.Field(i), vals); err != nil {
			return perr.WithField(perr.Validationf("%s %s", name, err.Error()), name)
		}
	}
	return nil
}

type bindErr string

func (e bindErr) Error() string { return string(e) }

func set(f reflect.Value, vals []string) error {
	first := strings.TrimSpace(vals[0])
	switch f.Kind() {
	case reflect.String:
		f.SetString(first)
	case reflect.Int, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(first, 10, 64)
		if err != nil {
			return bindErr("must be an integer")
		}
		f.SetInt(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(first)
		if err != nil {
			return bindErr("must be true or false")
		}
		f.SetBool(b)
	case reflect.Slice:
		if f.Type().Elem().Kind() != reflect.String {
			return bindErr("has an unsupported list type")
		}
		out := reflect.MakeSlice(f.Type(), 0, len(vals))
		for _, v := range vals {
			out = reflect.Append(out, reflect.ValueOf(strings.TrimSpace(v)))
		}
		f.Set(out)
	default:
		return bindErr("has an unsupported type")
	}
	return nil
}

// Validate runs struct validation and maps failures to project errors
func Validate(v any) error {
	err := Get().Validator.Struct(v)
	if err == nil {
		return nil
	}
	if inv, ok := err.(*validator.InvalidValidationError); ok {
		logger.Get().Error().Err(inv).Msg("validator internal error")
		return perr.Newf(perr.ErrorCodeUnknown, "validation error")
	}
	field, msg := ValidationFieldAndMessage(err)
	return perr.WithField(perr.Validationf("%s", msg), field)
}

// ValidationFieldAndMessage returns the first field and translated message
func ValidationFieldAndMessage(err error) (field, message string) {
	if err == nil {
		return "", ""
	}
	if inv, ok := err.(*validator.InvalidValidationError); ok {
		return "", inv.Error()
	}
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			return fe.Field(), fe.Translate(Get().Translator)
		}
	}
	return "", err.Error()
}

// custom translations with short messages

func registerShortMin(v *validator.Validate, trans ut.Translator) {
	_ = v.RegisterTranslation("min", trans,
		func(ut ut.Translator) error {
			return ut.Add("min", "{0} must be at least {1}", true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T("min", fe.Field(), fe.Param())
			return msg
		},
	)
}

func registerShortMax(v *validator.Validate, trans ut.Translator) {
	_ = v.RegisterTranslation("max", trans,
		func(ut ut.Translator) error {
			return ut.Add("max", "{0} must be at most {1}", true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T("max", fe.Field(), fe.Param())
			return msg
		},
	)
}
