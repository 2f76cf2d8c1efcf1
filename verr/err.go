// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package verr implements the verification engine's single error type,
// VerifErr, and its constructors (spec.md §7). Every in-band check the
// proof and unify interpreters perform fails through one of these
// constructors, which captures the call site so a formatted error can
// point back at the exact assertion that tripped, the way the
// original's `make_sure!`/`Local` wrapping does.
package verr

import (
	"fmt"
	"runtime"
)

// Kind discriminates VerifErr's cases.
type Kind int

const (
	KindMakeSure Kind = iota
	KindNoneErr
	KindConvErr
	KindMsg
	KindLocalMsg
	KindLocal
	KindUnreachable
	KindIoErr
)

// VerifErr is the engine's only error type. Location is always
// populated by the constructor that created it; Inner is populated
// only by Local (a wrapped lower error, for back-traces) and IoErr (an
// external I/O cause).
type VerifErr struct {
	Kind     Kind
	Location string
	Text     string
	Inner    error
}

func (e *VerifErr) Error() string {
	switch e.Kind {
	case KindMakeSure:
		return fmt.Sprintf("%s: assertion failed", e.Location)
	case KindNoneErr:
		return fmt.Sprintf("%s: expected value, found none", e.Location)
	case KindConvErr:
		return fmt.Sprintf("%s: conversion mismatch", e.Location)
	case KindMsg:
		return e.Text
	case KindLocalMsg:
		return fmt.Sprintf("%s: %s", e.Location, e.Text)
	case KindLocal:
		return fmt.Sprintf("%s: %v", e.Location, e.Inner)
	case KindUnreachable:
		return fmt.Sprintf("%s: unreachable branch taken", e.Location)
	case KindIoErr:
		return fmt.Sprintf("%s: io error: %v", e.Location, e.Inner)
	default:
		return "verr: unknown error kind"
	}
}

// Unwrap exposes Inner for errors.Is/errors.As over Local and IoErr.
func (e *VerifErr) Unwrap() error { return e.Inner }

func caller(skip int) string {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", file, line)
}

// MakeSure reports a failed invariant check at the caller's location.
func MakeSure() error {
	return &VerifErr{Kind: KindMakeSure, Location: caller(1)}
}

// NoneErr reports a lookup that unexpectedly returned absent.
func NoneErr() error {
	return &VerifErr{Kind: KindNoneErr, Location: caller(1)}
}

// ConvErr reports a conversion-side mismatch (Unfold's re-derived
// application not matching its original).
func ConvErr() error {
	return &VerifErr{Kind: KindConvErr, Location: caller(1)}
}

// Msg reports a free-text error with no captured location.
func Msg(format string, args ...interface{}) error {
	return &VerifErr{Kind: KindMsg, Text: fmt.Sprintf(format, args...)}
}

// LocalMsg reports a free-text error at the caller's location.
func LocalMsg(format string, args ...interface{}) error {
	return &VerifErr{Kind: KindLocalMsg, Location: caller(1), Text: fmt.Sprintf(format, args...)}
}

// Local wraps inner with the caller's location, for back-traces through
// several stack frames.
func Local(inner error) error {
	if inner == nil {
		return nil
	}
	return &VerifErr{Kind: KindLocal, Location: caller(1), Inner: inner}
}

// Unreachable reports that a branch assumed impossible by prior checks
// was taken anyway.
func Unreachable() error {
	return &VerifErr{Kind: KindUnreachable, Location: caller(1)}
}

// IoErr wraps an external I/O failure. The core itself never produces
// one; it exists so driver-level collaborators can surface I/O
// failures through the same error type.
func IoErr(cause error) error {
	return &VerifErr{Kind: KindIoErr, Location: caller(1), Inner: cause}
}
