// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

//go:build !fitz

package extract

import "context"

// MuPDFBackend stub for builds without the "fitz" tag. Reports itself
// unavailable so the chain skips it silently.
type MuPDFBackend struct{}

func (MuPDFBackend) Name() string { return "mupdf" }

func (MuPDFBackend) Available() bool { return false }

func (MuPDFBackend) Extract(ctx context.Context, path string) (string, error) {
	return "", ErrBackendUnavailable
}
