package interpreter

import (
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// formPrinter renders "<n> <form>" with the noun pluralized for n != 1, via
// golang.org/x/text/message's plural-selecting catalog rather than a
// hand-rolled "if n == 1" - the same shape the teacher's user-facing
// strings would extend to if they needed pluralization, since no plain
// fmt.Sprintf message in the pack does its own noun inflection.
var formPrinter = message.NewPrinter(language.English)

func init() {
	forms := []string{"brick", "plank", "ball", "pyramid", "box", "table", "floor"}
	for _, f := range forms {
		message.Set(language.English, f, plural.Selectf(1, "%d",
			plural.One, "%[1]d "+f,
			plural.Other, "%[1]d "+f+"s",
		))
	}
}

// countedForm renders n objects of the given form, e.g. "1 ball" or
// "3 balls". form must be one of the registered world.Form values; any
// other string is rendered as a plain "<n> <form>s" by the catalog's
// fallback behavior for an unregistered key.
func countedForm(n int, form string) string {
	return formPrinter.Sprintf(form, n)
}
