package domain

import (
	"parachute/internal/core/inference"
	"parachute/internal/platform/net/http/bind"
)

// the buffer_kind tag has to exist before any DTO here is validated
func init() {
	err := bind.RegisterTag("buffer_kind", "{0} must be one of segment, history or view", func(fl bind.FieldLevel) bool {
		_, err := inference.ParseKind(fl.Field().String())
		return err == nil
	})
	if err != nil {
		panic(err)
	}
}
