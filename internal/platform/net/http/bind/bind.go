// Package bind provides JSON bind and validation helpers for handlers
package bind

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	perr "codefence/internal/platform/errors"
)

// ValidatorSvc holds a singleton validator and translator
type ValidatorSvc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	vOnce sync.Once
	vSvc  *ValidatorSvc
)

// Init initializes the singleton validator with english translations and
// json tag names
func Init() *ValidatorSvc {
	vOnce.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		trans, _ := uni.GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())

		// prefer json tag names in messages
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("json")
			if tag == "-" || tag == "" {
				return fld.Name
			}
			if idx := strings.Index(tag, ","); idx >= 0 {
				tag = tag[:idx]
			}
			return tag
		})

		_ = en_translations.RegisterDefaultTranslations(v, trans)

		vSvc = &ValidatorSvc{Validator: v, Translator: trans}
	})
	return vSvc
}

// Get returns the validator singleton, initializing on first use
func Get() *ValidatorSvc {
	if vSvc == nil {
		return Init()
	}
	return vSvc
}

const maxBodyBytes = 1 << 20

// ParseJSON decodes JSON into T, validates it, and maps failures to project
// errors (ErrorCodeJSON for malformed bodies, ErrorCodeValidation with the
// offending field for constraint failures)
func ParseJSON[T any](r *http.Request) (T, error) {
	var out T

	body := http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&out); err != nil {
		switch {
		case errors.Is(err, io.EOF):
			return out, perr.JSONErrf("empty request body")
		default:
			return out, perr.JSONErrf("malformed json: %v", err)
		}
	}
	// reject trailing garbage after the first value
	if dec.More() {
		return out, perr.JSONErrf("unexpected trailing data")
	}

	svc := Get()
	if err := svc.Validator.Struct(out); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return out, perr.WithField(
				perr.Newf(perr.ErrorCodeValidation, "%s", fe.Translate(svc.Translator)),
				fe.Field(),
			)
		}
		return out, perr.Newf(perr.ErrorCodeValidation, "invalid payload")
	}

	return out, nil
}
