package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator adapts validator/v10 to echo's Validator interface.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	return &Validator{v: validator.New()}
}

func (v *Validator) Validate(i interface{}) error {
	return v.v.Struct(i)
}

// Fields flattens a validator error into field → failed rule, for 400
// response bodies. Non-validation errors yield an empty map.
func Fields(err error) map[string]string {
	out := map[string]string{}
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return out
	}
	for _, fe := range ve {
		tag := fe.Tag()
		if p := fe.Param(); p != "" {
			tag += " " + p
		}
		out[strings.ToLower(fe.Field())] = tag
	}
	return out
}
