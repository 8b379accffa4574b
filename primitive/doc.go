// Package primitive provides ready-made named converters for XML text that the
// built-in scalar kinds don't cover: textual and numeric booleans, dates and
// times, and durations.
//
// Converters are grouped in categories. Fields refer to them by name, from a
// mapping file (`converter: datetime`) or a struct tag (`xmlconv:"datetime"`),
// and a runtime configuration gets them with Register or Option:
//
//	cfg := xmlbind.NewConfig(primitive.Option(primitive.CategoryDatetime | primitive.CategoryTextualBool))
//
// A converter registered by the application under the same name takes precedence
// when it is registered after the standard ones.
package primitive
