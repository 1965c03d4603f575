package storage

import "fundpool/internal/model"

// ResultSink is a sink for replay outcome records.
type ResultSink interface {
	PutOutcomeBatch(outcomes []model.OutcomeRecord) error
}
