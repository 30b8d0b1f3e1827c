package publisher

import (
	"bytes"
	"html/template"

	"github.com/Gyro1978/Dacoola-sub001/pkg/article"
)

// pageTemplate renders the published article page. It is intentionally
// minimal: the pipeline's job is to produce the record and its structured
// data correctly, not to own a full front-end design system.
var pageTemplate = template.Must(template.New("article").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.TitleTag}}</title>
<meta name="description" content="{{.MetaDescription}}">
<link rel="canonical" href="{{.CanonicalURL}}">
<script type="application/ld+json">
{{.JSONLD}}
</script>
</head>
<body>
<article>
<h1>{{.H1}}</h1>
{{if .AudioURL}}<audio controls src="{{.AudioURL}}"></audio>{{end}}
<div class="article-body">{{.Body}}</div>
</article>
</body>
</html>
`))

type pageData struct {
	TitleTag        string
	MetaDescription string
	CanonicalURL    string
	JSONLD          template.JS
	H1              string
	AudioURL        string
	Body            template.HTML
}

// RenderPage renders rec as a standalone HTML document, given its
// already-computed canonical URL and JSON-LD script body (as raw JSON
// text, not yet wrapped in a <script> tag).
func RenderPage(rec *article.Record, canonicalURL, jsonLDText string) (string, error) {
	var buf bytes.Buffer
	data := pageData{
		TitleTag:        rec.GeneratedTitleTag,
		MetaDescription: rec.GeneratedMetaDesc,
		CanonicalURL:    canonicalURL,
		JSONLD:          template.JS(jsonLDText),
		H1:              rec.FinalPageH1,
		AudioURL:        rec.AudioURL,
		Body:            template.HTML(rec.GeneratedArticleBodyFinal),
	}
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
