// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ContentStreamBackend is the secondary backend. It reads the document with
// pdfcpu and scrapes text-show operators (Tj, ', TJ) out of each page's
// decoded content stream. Cruder than the primary backend but tolerant of
// documents the primary cannot open.
type ContentStreamBackend struct{}

func (ContentStreamBackend) Name() string { return "contentstream" }

func (ContentStreamBackend) Available() bool { return true }

func (b ContentStreamBackend) Extract(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("contentstream: %w", err)
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	pdfCtx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return "", fmt.Errorf("contentstream: %w", err)
	}

	var parts []string
	for pageNr := 1; pageNr <= pdfCtx.PageCount; pageNr++ {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("contentstream: %w", err)
		}
		pageText := contentStreamPageText(pdfCtx, pageNr)
		if pageText != "" {
			parts = append(parts, pageText)
		}
	}

	return strings.Join(parts, "\n"), nil
}

// contentStreamPageText returns the text shown on one page, or "" when the
// page's content stream cannot be read.
func contentStreamPageText(pdfCtx *model.Context, pageNr int) string {
	r, err := pdfcpu.ExtractPageContent(pdfCtx, pageNr)
	if err != nil || r == nil {
		return ""
	}
	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return ""
	}
	return parseContentStream(data)
}

// showTextRe matches the text-show operators in a decoded content stream:
// a string literal followed by Tj or ', or an array followed by TJ.
var showTextRe = regexp.MustCompile(`\(((?:\\.|[^\\()])*)\)\s*(?:Tj|')|\[((?:\\.|[^\]])*)\]\s*TJ`)

// literalRe matches string literals inside a TJ array.
var literalRe = regexp.MustCompile(`\(((?:\\.|[^\\()])*)\)`)

// parseContentStream collects the text arguments of show operators in stream
// order. Literals within one TJ array are concatenated directly (they are
// kerned fragments of one run); separate show operators are joined with
// newlines.
func parseContentStream(data []byte) string {
	var runs []string
	for _, m := range showTextRe.FindAllSubmatch(data, -1) {
		if m[2] != nil {
			// TJ array: concatenate its kerned fragments.
			var sb strings.Builder
			for _, lit := range literalRe.FindAllSubmatch(m[2], -1) {
				sb.WriteString(decodeLiteralString(lit[1]))
			}
			if sb.Len() > 0 {
				runs = append(runs, sb.String())
			}
			continue
		}
		if s := decodeLiteralString(m[1]); s != "" {
			runs = append(runs, s)
		}
	}
	return strings.Join(runs, "\n")
}

// decodeLiteralString resolves PDF string-literal escapes, including octal
// sequences.
func decodeLiteralString(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			sb.WriteByte(raw[i])
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '\\', '(', ')':
			sb.WriteByte(raw[i])
		default:
			if raw[i] >= '0' && raw[i] <= '7' {
				val := int(raw[i] - '0')
				for n := 0; n < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; n++ {
					i++
					val = val*8 + int(raw[i]-'0')
				}
				sb.WriteByte(byte(val))
			} else {
				sb.WriteByte(raw[i])
			}
		}
	}
	return sb.String()
}
