// Package bind decodes and validates request bodies, mapping every failure to
// a coded platform error
package bind

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	perr "parachute/internal/platform/errors"
	"parachute/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// FieldLevel aliases validator.FieldLevel for custom tags
type FieldLevel = validator.FieldLevel

// ValidatorSvc holds the validator and its english translator
type ValidatorSvc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	vOnce    sync.Once
	vSvc     *ValidatorSvc
	jsonMore = func(dec *json.Decoder) bool { return dec.More() } // seam
)

// Get returns the validator singleton. Messages name fields by their json tag
func Get() *ValidatorSvc {
	vOnce.Do(func() {
		enLoc := en.New()
		trans, _ := ut.New(enLoc, enLoc).GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
		_ = en_translations.RegisterDefaultTranslations(v, trans)

		svc := &ValidatorSvc{Validator: v, Translator: trans}
		svc.translate("min", "{0} must be at least {1}", true)
		svc.translate("max", "{0} must be at most {1}", true)
		vSvc = svc
	})
	return vSvc
}

// RegisterTag adds a custom validation tag and the message reported when it fails.
// message may use {0} for the field name and {1} for the tag parameter
func RegisterTag(tag, message string, fn validator.Func) error {
	s := Get()
	if err := s.Validator.RegisterValidation(tag, fn); err != nil {
		return err
	}
	s.translate(tag, message, true)
	return nil
}

func (s *ValidatorSvc) translate(tag, message string, override bool) {
	_ = s.Validator.RegisterTranslation(tag, s.Translator,
		func(t ut.Translator) error { return t.Add(tag, message, override) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(tag, fe.Field(), fe.Param())
			return msg
		},
	)
}

// JSONOptions controls parsing. Passing options replaces the defaults entirely
type JSONOptions struct {
	MaxBytes        int64 // 0 means unlimited
	DisallowUnknown bool
	AllowEmptyBody  bool
}

// DefaultJSONOptions is used when ParseJSON gets no options
func DefaultJSONOptions() JSONOptions {
	return JSONOptions{MaxBytes: 1 << 20, DisallowUnknown: true}
}

// limited wraps r so reading past max is detectable; max <= 0 is unlimited
func limited(r io.Reader, max int64) *io.LimitedReader {
	if max <= 0 {
		max = 1<<63 - 2
	}
	return &io.LimitedReader{R: r, N: max + 1}
}

func over(lr *io.LimitedReader, max int64) error {
	if max > 0 && lr.N <= 0 {
		return perr.TooLargef("request body exceeds %d bytes", max)
	}
	return nil
}

func closeBody(r *http.Request) {
	if err := r.Body.Close(); err != nil {
		logger.C(r.Context()).Error().Err(err).Msg("failed to close request body")
	}
}

// ParseJSON decodes the body into T and validates it
func ParseJSON[T any](r *http.Request, opts ...JSONOptions) (T, error) {
	var zero T
	o := DefaultJSONOptions()
	if len(opts) > 0 {
		o = opts[0]
	}
	defer closeBody(r)

	// peek one byte so an empty body is reported as such and not as EOF
	head := make([]byte, 1)
	n, _ := io.ReadFull(r.Body, head)
	if n == 0 {
		if o.AllowEmptyBody {
			return zero, nil
		}
		return zero, perr.JSONErrf("empty body")
	}

	lr := limited(io.MultiReader(bytes.NewReader(head), r.Body), o.MaxBytes)
	dec := json.NewDecoder(lr)
	if o.DisallowUnknown {
		dec.DisallowUnknownFields()
	}

	var dst T
	if err := dec.Decode(&dst); err != nil {
		if tooBig := over(lr, o.MaxBytes); tooBig != nil {
			return zero, tooBig
		}
		return zero, perr.JSONErrf("invalid JSON: %v", err)
	}
	if jsonMore(dec) {
		return zero, perr.JSONErrf("unexpected trailing data")
	}
	if err := over(lr, o.MaxBytes); err != nil {
		return zero, err
	}

	if err := Get().Validator.Struct(dst); err != nil {
		var inv *validator.InvalidValidationError
		if errors.As(err, &inv) {
			logger.C(r.Context()).Error().Err(inv).Msg("validator internal error")
			return zero, perr.Internalf("validation error")
		}
		field, msg := ValidationFieldAndMessage(err)
		return zero, perr.WithField(perr.New(perr.ErrorCodeValidation, msg), field)
	}
	return dst, nil
}

// ReadBody reads a raw body of at most max bytes (0 is unlimited)
func ReadBody(r *http.Request, max int64) ([]byte, error) {
	defer closeBody(r)
	lr := limited(r.Body, max)
	b, err := io.ReadAll(lr)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "read body")
	}
	if err := over(lr, max); err != nil {
		return nil, err
	}
	return b, nil
}

// Validate runs struct validation on v outside of a request
func Validate(v any) error {
	if err := Get().Validator.Struct(v); err != nil {
		field, msg := ValidationFieldAndMessage(err)
		return perr.WithField(perr.New(perr.ErrorCodeValidation, msg), field)
	}
	return nil
}

// ValidationFieldAndMessage returns the namespaced field and translated
// message of the first failure
func ValidationFieldAndMessage(err error) (field, message string) {
	if err == nil {
		return "", ""
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		ns := fe.Namespace()
		if _, rest, ok := strings.Cut(ns, "."); ok {
			ns = rest
		}
		return ns, fe.Translate(Get().Translator)
	}
	return "", err.Error()
}
