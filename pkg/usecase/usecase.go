package usecase

import (
	"github.com/ccimar11/riskmap/pkg/domain/interfaces"
)

type UseCases struct {
	repo     interfaces.Repository
	workbook interfaces.WorkbookService
	state    *state

	Criteria *CriteriaUseCase
	Scoring  *ScoringUseCase
	Object   *ObjectUseCase
	Workbook *WorkbookUseCase
}

type Option func(*UseCases)

// WithWorkbookService enables spreadsheet import and export
func WithWorkbookService(svc interfaces.WorkbookService) Option {
	return func(uc *UseCases) {
		uc.workbook = svc
	}
}

// New builds the use cases on top of repo. Persisted data is read on the
// first call of any operation.
func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.state = newState(repo)
	uc.Criteria = &CriteriaUseCase{state: uc.state}
	uc.Scoring = &ScoringUseCase{state: uc.state}
	uc.Object = &ObjectUseCase{state: uc.state}
	uc.Workbook = &WorkbookUseCase{state: uc.state, svc: uc.workbook}

	return uc
}
