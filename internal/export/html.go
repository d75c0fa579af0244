package export

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/park285/paperforge-go/internal/paper"
)

// 인쇄용 HTML 레이아웃. 브라우저의 인쇄 기능으로 PDF를 만든다.
const htmlLayout = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; margin: 40px; }
    h1 { font-size: 18pt; text-align: center; margin-bottom: 30px; }
    h2 { font-size: 14pt; margin-top: 25px; margin-bottom: 10px; }
    .abstract { font-style: italic; margin: 20px 0; }
    .keywords { margin-bottom: 20px; }
    p { text-align: justify; margin-bottom: 12px; }
    .references { font-size: 10pt; }
    .ref-item { margin-bottom: 8px; }
  </style>
</head>
<body>
  <h1>{{.Title}}</h1>

  <h2>Abstract</h2>
  <div class="abstract">{{.Abstract}}</div>

  <div class="keywords"><strong>Keywords:</strong> {{.Keywords}}</div>
{{range .Sections}}
  <h2>{{.Heading}}</h2>
  <p>{{.Body}}</p>
{{end}}
  <h2>References</h2>
  <div class="references">
{{range .References}}    <div class="ref-item">{{.}}</div>
{{end}}  </div>
</body>
</html>`

var htmlTemplate = template.Must(template.New("paper").Parse(htmlLayout))

type htmlData struct {
	Title      string
	Abstract   string
	Keywords   string
	Sections   []section
	References []string
}

func renderHTML(content *paper.Paper) (File, error) {
	refs := make([]string, 0, len(content.References))
	for i, ref := range content.References {
		refs = append(refs, fmt.Sprintf("[%d] %s", i+1, ref))
	}

	data := htmlData{
		Title:      content.Title,
		Abstract:   content.Abstract,
		Keywords:   strings.Join(content.Keywords, ", "),
		Sections:   sections(content),
		References: refs,
	}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return File{}, fmt.Errorf("render html: %w", err)
	}

	return File{
		Name:        "research-paper.html",
		ContentType: "text/html",
		Data:        buf.Bytes(),
	}, nil
}
