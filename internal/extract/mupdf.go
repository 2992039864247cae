// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

//go:build fitz

package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// MuPDFBackend is the tertiary backend, rendering pages through MuPDF via
// go-fitz. Per-page text is concatenated with no separator. Requires the
// "fitz" build tag (cgo); default builds get the stub in mupdf_stub.go.
type MuPDFBackend struct{}

func (MuPDFBackend) Name() string { return "mupdf" }

func (MuPDFBackend) Available() bool { return true }

func (MuPDFBackend) Extract(ctx context.Context, path string) (string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return "", fmt.Errorf("mupdf: %w", err)
	}
	defer doc.Close()

	var sb strings.Builder
	for i := 0; i < doc.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("mupdf: %w", err)
		}
		pageText, err := doc.Text(i)
		if err != nil {
			continue
		}
		sb.WriteString(pageText)
	}

	return sb.String(), nil
}
