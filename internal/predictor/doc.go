// Package predictor talks to the remote book classification service.
// It exposes the /predict and /suggest endpoints as blocking, context-aware
// calls and maps every failure onto the NetworkError, ServiceError and
// MalformedResponseError types.
package predictor
