package translation

import "fmt"

// FakeTranslator echoes the key and locale so tests can assert exactly
// which message was requested.
type FakeTranslator struct{}

func NewFakeTranslator() *FakeTranslator {
	return &FakeTranslator{}
}

func (t *FakeTranslator) Trans(key Key, locale Locale) string {
	return fmt.Sprintf("%s:%s", key, locale)
}
