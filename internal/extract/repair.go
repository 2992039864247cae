// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"context"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// DecryptRepairer writes a decrypted copy of a document beside the original
// using pdfcpu. The copy's name ends in "_decrypted", not ".pdf", so document
// discovery never treats it as an input; it is left on disk after the scan.
type DecryptRepairer struct{}

func (DecryptRepairer) Available() bool { return true }

func (DecryptRepairer) Repair(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	copyPath := path + "_decrypted"
	conf := model.NewDefaultConfiguration()
	if err := api.DecryptFile(path, copyPath, conf); err != nil {
		return "", fmt.Errorf("decrypt: %w", err)
	}
	return copyPath, nil
}
