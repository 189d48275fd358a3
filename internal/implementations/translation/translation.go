package translation

import (
	"resetme/internal/core/domain/translation"
)

// messages holds the per-locale catalog. A key missing from a locale falls
// back to the default locale, then to the raw key.
var messages = map[translation.Locale]map[translation.Key]string{
	translation.LocaleEN: {
		translation.KeyProblemValidate:   "There was a problem validating your reset request",
		translation.KeySuccess:           "Password has been changed successfully",
		translation.ReasonKey("invalid"): "The reset password link is invalid. Please try to reset your password again.",
		translation.ReasonKey("expired"): "The link in your email is expired. Please try to reset your password again.",
		translation.ReasonKey("used"):    "This reset password link has already been used. Please try to reset your password again.",
	},
	translation.LocalePL: {
		translation.KeyProblemValidate:   "Wystąpił problem z weryfikacją żądania resetowania hasła",
		translation.KeySuccess:           "Hasło zostało pomyślnie zmienione",
		translation.ReasonKey("invalid"): "Link do resetowania hasła jest nieprawidłowy. Spróbuj ponownie zresetować hasło.",
		translation.ReasonKey("expired"): "Link w Twoim e-mailu wygasł. Spróbuj ponownie zresetować hasło.",
		translation.ReasonKey("used"):    "Ten link do resetowania hasła został już wykorzystany. Spróbuj ponownie zresetować hasło.",
	},
}

type InMemory struct{}

func NewInMemory() *InMemory {
	return &InMemory{}
}

func (t *InMemory) Trans(key translation.Key, locale translation.Locale) string {
	if catalog, ok := messages[locale]; ok {
		if msg, ok := catalog[key]; ok {
			return msg
		}
	}
	if msg, ok := messages[translation.DefaultLocale][key]; ok {
		return msg
	}
	return string(key)
}
