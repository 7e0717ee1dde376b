// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package benchmark

import "errors"

var (
	// ErrInvalidArgument indicates a non-positive repeat count, an empty
	// sample, or an otherwise invalid configuration.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrContractViolation indicates a subject that does not provide a
	// usable zero-argument constructor or operation.
	ErrContractViolation = errors.New("subject contract violation")

	// ErrNotFound is returned when a subject name is not registered.
	ErrNotFound = errors.New("subject not found")

	// ErrAlreadyRegistered is returned when registering a duplicate name.
	ErrAlreadyRegistered = errors.New("subject already registered")
)
