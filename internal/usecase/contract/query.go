package contract

import (
	"context"
	"fmt"

	domain "github.com/BruksfildServices01/rdv-service/internal/domain/contract"
	"github.com/BruksfildServices01/rdv-service/internal/document"
	"github.com/BruksfildServices01/rdv-service/internal/httperr"
	"github.com/BruksfildServices01/rdv-service/internal/models"
)

type QueryContracts struct {
	contracts domain.Repository
	docs      document.Store
}

func NewQueryContracts(contracts domain.Repository, docs document.Store) *QueryContracts {
	return &QueryContracts{contracts: contracts, docs: docs}
}

func (uc *QueryContracts) Get(ctx context.Context, id uint) (*models.Contract, error) {
	return uc.contracts.GetContract(ctx, id)
}

func (uc *QueryContracts) List(ctx context.Context) ([]models.Contract, error) {
	out, err := uc.contracts.ListContracts(ctx)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Contract{}
	}
	return out, nil
}

// Document returns the last generated PDF and a download file name.
func (uc *QueryContracts) Document(ctx context.Context, id uint) ([]byte, string, error) {
	c, err := uc.contracts.GetContract(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if c.DocumentKey == "" {
		return nil, "", httperr.ErrNotFound("document_not_found", "Aucun document généré pour ce contrat.")
	}

	data, err := uc.docs.Get(ctx, c.DocumentKey)
	if err != nil {
		return nil, "", err
	}
	return data, fmt.Sprintf("contrat-%d.pdf", c.ID), nil
}
