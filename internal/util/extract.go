package util

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
	"go.uber.org/zap"
)

var ErrNoText = errors.New("no text found in PDF")

// ExtractPDFText returns the text layer of every page of a PDF, pages
// separated by a blank line.
func ExtractPDFText(data []byte, log *zap.Logger) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	pages := make([]string, 0, doc.NumPage())
	for n := 0; n < doc.NumPage(); n++ {
		text, err := doc.Text(n)
		if err != nil {
			log.Warn("failed to extract page text", zap.Int("page", n+1), zap.Error(err))
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			pages = append(pages, text)
		}
	}

	result := strings.Join(pages, "\n\n")
	if result == "" {
		return "", ErrNoText
	}
	log.Debug("extracted PDF text", zap.Int("pages", doc.NumPage()), zap.Int("chars", len(result)))
	return result, nil
}
