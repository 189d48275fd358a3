package translation

type Locale string

const (
	LocaleEN Locale = "en"
	LocalePL Locale = "pl"

	// DefaultLocale is the fallback for any unsupported locale.
	DefaultLocale = LocaleEN
)

type Key string

const (
	KeyProblemValidate Key = "reset_password.problem_validate"
	KeySuccess         Key = "reset_password.success"
)

// ReasonKey maps an opaque token error reason code onto a message key.
func ReasonKey(reason string) Key {
	return Key("reset_password.reason." + reason)
}

type Translator interface {
	Trans(key Key, locale Locale) string
}
