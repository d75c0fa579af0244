package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fumiama/go-docx"

	"github.com/park285/paperforge-go/internal/paper"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

func renderDOCX(content *paper.Paper) (File, error) {
	doc := docx.New().WithDefaultTheme()

	title := doc.AddParagraph()
	title.AddText(content.Title).Size("36").Bold()
	title.Justification("center")

	doc.AddParagraph()
	doc.AddParagraph().AddText("Abstract").Bold()
	doc.AddParagraph().AddText(content.Abstract)

	doc.AddParagraph()
	keywords := doc.AddParagraph()
	keywords.AddText("Keywords: ").Bold()
	keywords.AddText(strings.Join(content.Keywords, ", "))

	for _, part := range sections(content) {
		doc.AddParagraph()
		doc.AddParagraph().AddText(part.Heading).Size("28").Bold()
		doc.AddParagraph().AddText(part.Body)
	}

	doc.AddParagraph()
	doc.AddParagraph().AddText("References").Size("28").Bold()
	for i, ref := range content.References {
		doc.AddParagraph().AddText(fmt.Sprintf("[%d] %s", i+1, ref))
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return File{}, fmt.Errorf("render docx: %w", err)
	}

	return File{
		Name:        "research-paper.docx",
		ContentType: docxContentType,
		Data:        buf.Bytes(),
	}, nil
}
