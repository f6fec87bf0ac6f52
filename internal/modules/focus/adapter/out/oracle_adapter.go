package out

import (
	"context"

	focusout "lernova/internal/modules/focus/port/out"
	oracledto "lernova/internal/modules/oracle/dto"
	oraclein "lernova/internal/modules/oracle/port/in"
)

// OracleAdapter lets the focus classifier use the oracle module.
type OracleAdapter struct {
	oracle oraclein.Usecase
}

func NewOracleAdapter(oracle oraclein.Usecase) focusout.Oracle {
	return &OracleAdapter{oracle: oracle}
}

func (a *OracleAdapter) Complete(ctx context.Context, system, prompt string, temperature float64, maxTokens int) (string, error) {
	out, err := a.oracle.Complete(ctx, oracledto.CompleteInput{
		System:      system,
		Prompt:      prompt,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", err
	}
	return out.Text, nil
}
