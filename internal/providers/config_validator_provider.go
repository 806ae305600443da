package providers

import (
	"errors"

	"github.com/gookit/validate"

	"surveysync/internal/structures"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return v.Errors
	}
	if cv.conf.Persistence.FilePath != "" && cv.conf.Persistence.SaveInterval <= 0 {
		return errors.New("persistence.saveInterval must be positive when persistence.filePath is set")
	}
	return nil
}
