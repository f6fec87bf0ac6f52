package out

import (
	"context"

	"lernova/internal/modules/oracle/domain"
	oracleout "lernova/internal/modules/oracle/port/out"
)

// DisabledProvider fails every call so classifiers fall back to strict mode.
type DisabledProvider struct{}

func NewDisabledProvider() oracleout.Provider {
	return DisabledProvider{}
}

func (DisabledProvider) Metadata(context.Context) (domain.Metadata, error) {
	return domain.Metadata{Name: "none"}, nil
}

func (DisabledProvider) Complete(context.Context, domain.CompletionRequest) (string, error) {
	return "", domain.ErrProviderUnavailable
}

func (DisabledProvider) Close() error { return nil }
