package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	apperrors "rentier/internal/errors"
	"rentier/internal/model"
	"rentier/internal/oracle"
	"rentier/internal/repository"
)

// PredictionService runs the prediction pipeline: validate the candidate
// features, ask the oracle for a price, and persist one immutable Entry under
// the caller's user. Every invocation writes exactly one record on success
// and zero records on any failure.
type PredictionService interface {
	Predict(ctx context.Context, userID uint, in model.EntryInput) (*model.Entry, error)
}

type predictionService struct {
	entries repository.EntryRepository
	oracle  oracle.Oracle
	log     zerolog.Logger
}

// NewPredictionService creates a new prediction service.
func NewPredictionService(entries repository.EntryRepository, o oracle.Oracle, log zerolog.Logger) PredictionService {
	return &predictionService{entries: entries, oracle: o, log: log}
}

// Predict validates first so an invalid candidate never costs an oracle call,
// then invokes the estimator and stores the result. The three failure stages
// surface as distinct kinds: ValidationError, OracleError, StorageError. The
// last one matters because the prediction was computed but not recorded.
func (s *predictionService) Predict(ctx context.Context, userID uint, in model.EntryInput) (*model.Entry, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	price, err := s.oracle.Predict(ctx, oracle.FeaturesFromInput(in))
	if err != nil {
		return nil, err
	}

	entry, err := model.NewEntry(userID, in, price, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, &apperrors.StorageError{Op: "create entry", Err: err}
	}

	s.log.Info().
		Uint("user_id", userID).
		Uint("entry_id", entry.ID).
		Float64("prediction", entry.Prediction).
		Msg("prediction recorded")
	return entry, nil
}
