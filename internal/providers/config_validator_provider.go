package providers

import (
	"strings"

	"github.com/gookit/validate"

	"addrbook/internal/structures"
)

func init() {
	validate.AddValidator("filePath", func(val any) bool {
		s, ok := val.(string)
		return ok && strings.TrimSpace(s) != "" && !strings.ContainsRune(s, 0)
	})
}

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (c *CnfValidator) Validate() error {
	v := validate.Struct(c.conf)
	if v.Validate() {
		return nil
	}
	return v.Errors
}
