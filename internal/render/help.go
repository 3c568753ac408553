// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package render

import (
	"strings"

	"sqb/cli/internal/shortcode"
)

// Help renders the usage panel shown in place of a shortcode that failed
// validation. Error messages are escaped.
func Help(schema *shortcode.Schema, errs []string) string {
	return HelpFor(shortcode.DefaultTag, schema, errs)
}

// HelpFor renders the usage panel for a custom tag name.
func HelpFor(tag string, schema *shortcode.Schema, errs []string) string {
	var b strings.Builder

	if len(errs) > 0 {
		escaped := make([]string, len(errs))
		for i, e := range errs {
			escaped[i] = Escape(e)
		}
		b.WriteString("<h3>Errors from Plugin Shortcode Query Builder</h3>\n")
		b.WriteString(`<div class="errors"><p>` + strings.Join(escaped, "</p><p>") + "</p></div>")
	}

	b.WriteString("<h3>Help for Plugin Shortcode Query Builder</h3>\n")
	b.WriteString("<p><strong>Some attributes are not correct.</strong></p>\n")
	b.WriteString("<h4>Syntax:</h4>\n")
	b.WriteString("<p>&lbrack;" + tag + " &lt;attributes&gt;=...&rbrack;</p>\n")

	b.WriteString("<h4>Available attributes</h4>\n")
	b.WriteString("<ul>\n")
	for _, def := range schema.Definitions() {
		b.WriteString("<li><strong>" + Escape(def.Name) + "</strong>: " + Escape(def.Description) + "</li>\n")
	}
	b.WriteString("</ul>\n")

	b.WriteString("<h4>Examples</h4>\n")
	b.WriteString("<p>&lbrack;" + tag + ` table="em_events" cols="DATE_FORMAT(event_start_date, '%e.') AS start, DATE_FORMAT(event_end_date, '%e.%m.%Y') AS end, event_name" where="event_start_date > DATE(NOW())" order-by="event_start_date" limit="5" wrapper="ul" format="%s bis %s: %s" no-data-msg="Keine Seminare gefunden."&rbrack;</p>` + "\n")
	b.WriteString("<p>&lbrack;" + tag + ` table="em_events" cols="DATE_FORMAT(event_start_date, '%e.%m.%Y') AS start, DATE_FORMAT(event_end_date, '%e.%m.%Y') AS end, event_name" order-by="event_start_date" limit="5" wrapper="table" table-head="Von|Bis|Veranstaltung" no-data-msg="Keine Seminare gefunden."&rbrack;</p>` + "\n")

	return b.String()
}
