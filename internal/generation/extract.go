// internal/generation/extract.go
package generation

import (
	"bytes"
	"fmt"
	"log"

	"github.com/ledongthuc/pdf"
)

// ExtractPDFText returns the plain text of every readable page.
func ExtractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var text bytes.Buffer
	pages := reader.NumPage()
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			log.Printf("Skipping unreadable PDF page %d: %v", i, err)
			continue
		}
		text.WriteString(content)
		text.WriteByte('\n')
	}
	return text.String(), nil
}
