// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PageTextBackend is the primary backend. It iterates pages with
// ledongthuc/pdf, skips pages whose extraction fails, and joins page texts
// with newlines. The library panics on some malformed documents, so every
// call into it is recover-guarded.
type PageTextBackend struct{}

func (PageTextBackend) Name() string { return "pagetext" }

func (PageTextBackend) Available() bool { return true }

func (b PageTextBackend) Extract(ctx context.Context, path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("pagetext: panic reading %s: %v", filepath.Base(path), r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("pagetext: %w", err)
	}
	defer f.Close()

	numPages := reader.NumPage()

	var parts []string
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("pagetext: %w", err)
		}
		// A page that fails to extract is treated as empty, not fatal.
		if pageText := extractPage(reader, i); pageText != "" {
			parts = append(parts, pageText)
		}
	}

	return strings.Join(parts, "\n"), nil
}

// extractPage pulls plain text from one page, swallowing per-page errors and
// panics.
func extractPage(reader *pdf.Reader, pageNum int) (text string) {
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()

	page := reader.Page(pageNum)
	if page.V.IsNull() {
		return ""
	}
	text, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return text
}
