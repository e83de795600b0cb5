package service

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"health_guardian/internal/domain"
	"health_guardian/internal/repository"
	"health_guardian/internal/scorer"

	"github.com/sirupsen/logrus"
)

// Scorer turns an occurrence CSV into disease predictions
type Scorer interface {
	Score(ctx context.Context, path string) ([]domain.Prediction, error)
}

// Archiver keeps a copy of a raw upload
type Archiver interface {
	Archive(ctx context.Context, key, path, contentType string) error
}

// PredictionService ingests scorer output into the disease store
type PredictionService struct {
	diseases  repository.DiseaseRepository
	scorer    Scorer
	archiver  Archiver // nil disables archival
	threshold float64
	timeout   time.Duration
}

// NewPredictionService creates a PredictionService. Predictions with probability above threshold are kept.
func NewPredictionService(diseases repository.DiseaseRepository, scorer Scorer, archiver Archiver, threshold float64, timeout time.Duration) *PredictionService {
	return &PredictionService{diseases: diseases, scorer: scorer, archiver: archiver, threshold: threshold, timeout: timeout}
}

// Upload is an occurrence file already staged on disk
type Upload struct {
	Path string // Staged file
	Name string // Client supplied file name
	Key  string // Unique archive key
}

// IngestResult is the scorer output and what of it was persisted
type IngestResult struct {
	Predictions []domain.Prediction `json:"predictions"`
	Saved       []domain.Disease    `json:"saved"`
}

// RecordPredictions persists the significant entries of one scorer batch.
// A malformed entry anywhere in the batch aborts it with nothing written.
func (s *PredictionService) RecordPredictions(ctx context.Context, p domain.Principal, predictions []domain.Prediction) ([]domain.Disease, error) {
	if err := p.Require(domain.RoleAdmin); err != nil {
		return nil, err
	}
	var keep []domain.Disease
	for i, pr := range predictions {
		if strings.TrimSpace(pr.Disease) == "" {
			return nil, domain.Upstream(fmt.Errorf("entry %d: missing disease name", i))
		}
		if pr.Probability == nil {
			return nil, domain.Upstream(fmt.Errorf("entry %d: missing probability", i))
		}
		prob := *pr.Probability
		if math.IsNaN(prob) || math.IsInf(prob, 0) || prob < 0 || prob > 1 {
			return nil, domain.Upstream(fmt.Errorf("entry %d: probability %v out of range", i, prob))
		}
		if prob <= s.threshold {
			continue
		}
		keep = append(keep, domain.Disease{
			Name:        strings.TrimSpace(pr.Disease),
			Probability: prob,
			Location:    pr.Location,
		})
	}
	if err := s.diseases.CreateBatch(ctx, keep); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"received":  len(predictions),
		"persisted": len(keep),
		"threshold": s.threshold,
	}).Info("Predictions recorded")
	return keep, nil
}

// Ingest scores a staged CSV or XLSX upload and records the result. Staged files are removed.
func (s *PredictionService) Ingest(ctx context.Context, p domain.Principal, up Upload) (*IngestResult, error) {
	defer os.Remove(up.Path)
	if err := p.Require(domain.RoleAdmin); err != nil {
		return nil, err
	}
	ext := strings.ToLower(filepath.Ext(up.Name))
	contentType := "text/csv"
	csvPath := up.Path
	switch ext {
	case ".csv":
	case ".xlsx":
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		converted, err := scorer.XLSXToCSV(up.Path)
		if err != nil {
			return nil, domain.Invalid("file", err.Error())
		}
		defer os.Remove(converted)
		csvPath = converted
	default:
		return nil, domain.Invalid("file", "only CSV or XLSX files are allowed")
	}

	if s.archiver != nil {
		if err := s.archiver.Archive(ctx, up.Key, up.Path, contentType); err != nil {
			logrus.WithFields(logrus.Fields{"key": up.Key, "error": err.Error()}).Warn("Upload archival failed")
		}
	}

	scoreCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	predictions, err := s.scorer.Score(scoreCtx, csvPath)
	if err != nil {
		logrus.WithFields(logrus.Fields{"file": up.Name, "error": err.Error()}).Error("Prediction model failed")
		return nil, domain.Upstream(err)
	}
	saved, err := s.RecordPredictions(ctx, p, predictions)
	if err != nil {
		return nil, err
	}
	return &IngestResult{Predictions: predictions, Saved: saved}, nil
}

// ListDiseases returns stored predictions newest first
func (s *PredictionService) ListDiseases(ctx context.Context) ([]domain.Disease, error) {
	return s.diseases.List(ctx)
}
