/*
 *     Copyright 2024 The Dragonfly Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

//go:generate mockgen -destination mocks/service_mock.go -source service.go -package mocks

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	logger "d7y.io/stacklearn/internal/dflog"
	"d7y.io/stacklearn/learner"
	"d7y.io/stacklearn/learner/extratrees"
	"d7y.io/stacklearn/metrics"
	"d7y.io/stacklearn/server/types"
)

var (
	// ErrModelNotFound is returned when no fitted model has the requested id.
	ErrModelNotFound = errors.New("model not found")

	// ErrInvalidLearner is returned when the learner is not registered or its options are invalid.
	ErrInvalidLearner = errors.New("invalid learner")
)

// Service fits base learners and serves predictions of fitted models.
type Service interface {
	CreateModel(context.Context, types.CreateModelRequest) (*types.Model, error)
	GetModel(context.Context, string) (*types.Model, error)
	DestroyModel(context.Context, string) error
	Predict(context.Context, string, types.PredictRequest) (*types.PredictResponse, error)
	CrossValidate(context.Context, types.CrossValidateRequest) (*types.CrossValidateResponse, error)
}

// quantileModel is implemented by models serving quantile predictions.
type quantileModel interface {
	PredictQuantile(context.Context, *learner.Table, float64) ([]float64, error)
}

type fittedModel struct {
	learner    string
	model      learner.Model
	numRows    int
	numColumns int
	createdAt  time.Time
}

type service struct {
	defaultOptions map[string]any
	models         *lru.Cache[string, *fittedModel]
}

// New returns a service holding at most size fitted models, defaultOptions
// are used by requests without options.
func New(size int, defaultOptions map[string]any) (Service, error) {
	models, err := lru.NewWithEvict[string, *fittedModel](size, func(id string, _ *fittedModel) {
		logger.WithModelID(id).Info("model removed from cache")
	})
	if err != nil {
		return nil, err
	}

	return &service{
		defaultOptions: defaultOptions,
		models:         models,
	}, nil
}

func (s *service) newLearner(name string, options map[string]any) (learner.Learner, error) {
	if name == "" {
		name = extratrees.Name
	}

	if options == nil {
		options = s.defaultOptions
	}

	l, err := learner.New(name, options)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidLearner, err.Error())
	}

	return l, nil
}

func (s *service) CreateModel(ctx context.Context, json types.CreateModelRequest) (*types.Model, error) {
	family, err := learner.ParseFamily(json.Family)
	if err != nil {
		return nil, err
	}

	l, err := s.newLearner(json.Learner, json.Options)
	if err != nil {
		return nil, err
	}

	out, err := l.Fit(ctx, &learner.Input{
		Y:       json.Y,
		X:       json.X,
		NewX:    json.NewX,
		Family:  family,
		Weights: json.Weights,
		ID:      json.ID,
	})
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	m := &fittedModel{
		learner:    l.Name(),
		model:      out.Fit,
		numRows:    json.X.NRow(),
		numColumns: json.X.NCol(),
		createdAt:  time.Now(),
	}
	s.models.Add(id, m)
	metrics.CachedModelGauge.Set(float64(s.models.Len()))
	logger.WithModelID(id).Infof("model created by %s", l.Name())

	model := m.summary(id)
	model.Pred = out.Pred
	return model, nil
}

func (s *service) GetModel(ctx context.Context, id string) (*types.Model, error) {
	m, ok := s.models.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrModelNotFound, id)
	}

	return m.summary(id), nil
}

func (s *service) DestroyModel(ctx context.Context, id string) error {
	if !s.models.Remove(id) {
		return fmt.Errorf("%w: %s", ErrModelNotFound, id)
	}

	metrics.CachedModelGauge.Set(float64(s.models.Len()))
	logger.WithModelID(id).Info("model destroyed")
	return nil
}

func (s *service) Predict(ctx context.Context, id string, json types.PredictRequest) (*types.PredictResponse, error) {
	m, ok := s.models.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrModelNotFound, id)
	}

	family, err := learner.ParseFamily(json.Family)
	if err != nil {
		return nil, err
	}

	if json.Quantile == nil {
		pred, err := learner.Predict(ctx, m.model, family, json.X)
		if err != nil {
			return nil, err
		}

		return &types.PredictResponse{Pred: pred}, nil
	}

	if m.model.Family() != family {
		return nil, fmt.Errorf("%w: model fitted as %s, predicting as %s", learner.ErrFamilyMismatch, m.model.Family(), family)
	}

	qm, ok := m.model.(quantileModel)
	if !ok {
		return nil, fmt.Errorf("%w: %s models", extratrees.ErrQuantileUnavailable, m.learner)
	}

	pred, err := qm.PredictQuantile(ctx, json.X, *json.Quantile)
	if err != nil {
		return nil, err
	}

	return &types.PredictResponse{Pred: pred}, nil
}

func (s *service) CrossValidate(ctx context.Context, json types.CrossValidateRequest) (*types.CrossValidateResponse, error) {
	family, err := learner.ParseFamily(json.Family)
	if err != nil {
		return nil, err
	}

	l, err := s.newLearner(json.Learner, json.Options)
	if err != nil {
		return nil, err
	}

	res, err := learner.CrossValidate(ctx, l, &learner.Input{
		Y:       json.Y,
		X:       json.X,
		Family:  family,
		Weights: json.Weights,
		ID:      json.ID,
	}, json.Folds, json.Seed)
	if err != nil {
		return nil, err
	}

	return &types.CrossValidateResponse{
		Pred:  res.Pred,
		Folds: res.Folds,
		Eval:  res.Eval,
	}, nil
}

func (m *fittedModel) summary(id string) *types.Model {
	return &types.Model{
		ID:         id,
		Learner:    m.learner,
		Family:     m.model.Family().String(),
		NumRows:    m.numRows,
		NumColumns: m.numColumns,
		CreatedAt:  m.createdAt,
	}
}
