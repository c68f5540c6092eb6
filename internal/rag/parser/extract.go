package parser

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dslipak/pdf"
	"github.com/lu4p/cat"
	"github.com/svalluru/MeetingsAPI/pkg/logger_i"
)

type docType string

const (
	docPDF  docType = "PDF"
	docText docType = "TEXT" //txt, docx, rtf, odt - all handled by cat
	docErr  docType = "ERROR"
)

var logger = logger_i.NewLogger("transcript_extraction")

// ExtractText pulls plain text out of an uploaded transcript file.
func ExtractText(path string) (string, error) {
	switch getDocType(path) {
	case docPDF:
		return extractPDF(path)
	case docText:
		return extractWithCat(path)
	default:
		return "", fmt.Errorf("unsupported transcript format: %s", filepath.Ext(path))
	}
}

func getDocType(path string) docType {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".pdf":
		return docPDF
	case ".docx", ".txt", ".rtf":
		return docText
	default:
		return docErr
	}
}

func extractPDF(path string) (string, error) {
	f, err := pdf.Open(path)
	if err != nil {
		logger.Error("failed opening of pdf file", "path", path)
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	var pages []string
	numPages := f.NumPage()
	for i := 1; i <= numPages; i++ {
		page := f.Page(i)
		if page.V.IsNull() {
			continue
		}

		content, err := protectExtract(page)
		if err != nil {
			// one bad page should not sink the whole transcript
			logger.Error("Error parsing page content", "page", i, "error", err)
			continue
		}
		pages = append(pages, content)
	}
	return strings.Join(pages, "\n"), nil
}

// cat reads .odt, .docx, .rtf or plaintext and returns the content as a string
func extractWithCat(path string) (string, error) {
	text, err := cat.File(path)
	if err != nil {
		logger.Error("Error extracting content from doc", "path", path)
		return "", fmt.Errorf("failed to extract document: %w", err)
	}
	return text, nil
}

func protectExtract(page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()
	select {
	case r := <-resChan:
		return r.content, r.err
	case <-time.After(time.Second * 10):
		logger.Error("pageExtract", "timeout")
		return "", errors.New("timeout")
	}
}
