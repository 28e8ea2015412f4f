package user

import (
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/lewisTech25code/lewis/core"
)

var (
	pwdMaxSim      = .7
	pwdAttrSimTag  = "pwdtoosim"
	pwdAttrSimText = "password cannot be similar to the username"

	// bcrypt ignores anything past 72 bytes
	pwdMaxBytes    = 72
	pwdTooLongTag  = "pwdtoolong"
	pwdTooLongText = "password cannot be longer than 72 bytes"
)

// InitValidators registers the user validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	validate.RegisterStructValidation(userStructValidation, NewUser{})
	core.RegisterCustomTranslation(validate, translator, pwdAttrSimTag, pwdAttrSimText)
	core.RegisterCustomTranslation(validate, translator, pwdTooLongTag, pwdTooLongText)
}

func userStructValidation(sl validator.StructLevel) {
	if nu, ok := sl.Current().Interface().(NewUser); ok {
		validatePassword(nu.Password, nu.Username, sl)
	}
}

// validatePassword rejects a password bcrypt cannot hash or too similar to the username.
func validatePassword(pwd, uname string, sl validator.StructLevel) {
	if len(pwd) > pwdMaxBytes {
		sl.ReportError(pwd, "password", "Password", pwdTooLongTag, "")
		return
	}
	if pwd == "" || uname == "" {
		return
	}
	ratio := difflib.NewMatcher(strings.Split(strings.ToLower(pwd), ""), strings.Split(uname, "")).QuickRatio()
	if ratio >= pwdMaxSim {
		sl.ReportError(pwd, "password", "Password", pwdAttrSimTag, "")
	}
}
