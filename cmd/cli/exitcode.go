package main

import (
	"errors"

	"github.com/yaobinwen/netplan/internal/config"
	"github.com/yaobinwen/netplan/pkg/nperrors"
)

// Exit codes for netplan-nm
const (
	ExitSuccess        = 0
	ExitGeneralError   = 1
	ExitNotFound       = 2
	ExitMalformedInput = 3
	ExitMissingField   = 4
	ExitIOError        = 5
	ExitConfigError    = 6
)

// errNotApplicable reports a negative resolve-id result.
var errNotApplicable = errors.New("file name does not embed a netplan id")

func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var cfgErr *config.Error
	if errors.As(err, &cfgErr) {
		return ExitConfigError
	}
	if errors.Is(err, errNotApplicable) {
		return ExitNotFound
	}
	switch nperrors.KindOf(err) {
	case nperrors.KindNotFound:
		return ExitNotFound
	case nperrors.KindMalformedInput:
		return ExitMalformedInput
	case nperrors.KindMissingField:
		return ExitMissingField
	case nperrors.KindIO:
		return ExitIOError
	}
	return ExitGeneralError
}
