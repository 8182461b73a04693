// Copyright (c) 2026, The AFC Engine Authors.
// All rights reserved.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions are met:
// 1. Redistributions of source code must retain the above copyright
//    notice, this list of conditions and the following disclaimer.
// 2. Redistributions in binary form must reproduce the above copyright
//    notice, this list of conditions and the following disclaimer in the
//    documentation and/or other materials provided with the distribution.
// 3. Neither the name of the copyright holder nor the
//    names of its contributors may be used to endorse or promote products
//    derived from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
// AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
// IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE
// ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE
// LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR
// CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF
// SUBSTITUTE GOODS OR SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
// INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN
// CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE)
// ARISING IN ANY WAY OUT OF THE USE OF THIS SOFTWARE, EVEN IF ADVISED OF THE
// POSSIBILITY OF SUCH DAMAGE.

// Package afcerr defines the fatal-error categories surfaced by the
// interference engine (see spec §7) and a response-code mapping for them.
package afcerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Category is one of the enumerated error categories the engine raises.
type Category int

const (
	// InvalidRequest covers malformed JSON, missing fields, unsupported
	// location variants, out-of-range CFI, or frequency ranges outside the band.
	InvalidRequest Category = iota
	// UnsupportedSpectrum covers operating classes/CFI bit patterns the
	// channel plan builder cannot expand.
	UnsupportedSpectrum
	// ConfigError covers unknown model kinds or invalid region strings.
	ConfigError
	// DataError covers corrupted/missing incumbent, RAS or terrain data.
	DataError
	// GeometryError covers RLAN heights or height types that violate
	// the geometry invariants.
	GeometryError
	// ComputationError covers NaN propagation results or a non-converging
	// exclusion-zone bisection.
	ComputationError
)

func (c Category) String() string {
	switch c {
	case InvalidRequest:
		return "InvalidRequest"
	case UnsupportedSpectrum:
		return "UnsupportedSpectrum"
	case ConfigError:
		return "ConfigError"
	case DataError:
		return "DataError"
	case GeometryError:
		return "GeometryError"
	case ComputationError:
		return "ComputationError"
	default:
		return "UnknownError"
	}
}

// Error is a fatal, categorized error. It is the only error type the engine's
// public operations return; everything else is a programming-error panic.
type Error struct {
	Category Category
	cause    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Category, e.cause)
}

// Unwrap exposes the wrapped cause for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.cause
}

// New builds a categorized error from a format string, wrapped with a stack
// trace via pkg/errors the way dispatcher and simulation do for their own
// contextual errors.
func New(cat Category, format string, args ...interface{}) *Error {
	return &Error{Category: cat, cause: errors.Errorf(format, args...)}
}

// Wrap attaches a category to an existing error, preserving its message.
func Wrap(cat Category, err error, msg string) *Error {
	if err == nil {
		return nil
	}
	return &Error{Category: cat, cause: errors.Wrap(err, msg)}
}

// As reports whether err is (or wraps) an *Error, returning it if so.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// ResponseCode maps a category to the RAT-AFC response code used in §6's
// response.responseCode field. 0 is reserved for success; every category
// here is therefore non-zero.
func (c Category) ResponseCode() int {
	return int(c) + 100
}

// ShortDescription returns a human-readable description suitable for the
// response.shortDescription field.
func (c Category) ShortDescription() string {
	switch c {
	case InvalidRequest:
		return "invalid request"
	case UnsupportedSpectrum:
		return "unsupported spectrum inquiry"
	case ConfigError:
		return "invalid configuration"
	case DataError:
		return "incumbent or terrain data error"
	case GeometryError:
		return "invalid request geometry"
	case ComputationError:
		return "computation failed to converge"
	default:
		return "unknown error"
	}
}
