package pbexport

import (
	"bytes"
	"fmt"
	"html/template"
)

// navTemplate is self-contained (inline styles, no external resources)
// so the unzipped package stays browsable offline.
const navTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Heading}}</title>
<style>
body { font-family: Georgia, 'Times New Roman', serif; max-width: 720px; margin: 40px auto; padding: 0 16px; color: #1a1a1a; }
h1 { border-bottom: 2px solid #1a1a1a; padding-bottom: 8px; }
h2 { margin-top: 32px; }
ul { list-style: none; padding-left: 0; }
li { margin: 6px 0; }
a { color: #0a58ca; text-decoration: none; }
a:hover { text-decoration: underline; }
.tagline { color: #555; }
</style>
</head>
<body>
<h1>{{.Heading}}</h1>
<p class="tagline">{{.Tagline}}</p>
{{range .Groups}}<h2>{{.Title}}</h2>
<ul>
{{range .Units}}<li><a href="{{.Path}}">{{.Title}}</a></li>
{{end}}</ul>
{{end}}</body>
</html>
`

var navTmpl = template.Must(template.New("navigation").Parse(navTemplate))

// NavigationHTML renders the offline index for a materialized playbook.
// Every href equals, byte for byte, the path the batch exporter used
// when inserting that file into the archive: both read the same
// manifest.
func NavigationHTML(p *Playbook, biz BusinessContext) (string, error) {
	heading := "Business Playbook"
	if biz.BusinessName != "" {
		heading = biz.BusinessName + " Business Playbook"
	}
	tagline := "Your complete business playbook, ready to use offline."
	if biz.Industry != "" {
		tagline = fmt.Sprintf("Your complete %s playbook, ready to use offline.", biz.Industry)
	}

	data := struct {
		Heading string
		Tagline string
		Groups  []ManifestGroup
	}{
		Heading: heading,
		Tagline: tagline,
		Groups:  Manifest(p),
	}

	var buf bytes.Buffer
	if err := navTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrNavigationRender, err)
	}
	return buf.String(), nil
}
