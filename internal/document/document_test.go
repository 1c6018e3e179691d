package document

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/rdv-service/internal/httperr"
	"github.com/BruksfildServices01/rdv-service/internal/models"
)

func TestContractKey_IsUniquePerRender(t *testing.T) {
	a := ContractKey(12)
	b := ContractKey(12)

	assert.True(t, strings.HasPrefix(a, "contracts/12/"))
	assert.True(t, strings.HasSuffix(a, ".pdf"))
	assert.NotEqual(t, a, b)
}

func TestRenderContract(t *testing.T) {
	c := &models.Contract{
		ID:         4,
		Cabinet:    "Cabinet Dentaire Lefèvre",
		Address:    "12 rue des Écoles",
		PostalCode: "69003",
		City:       "Lyon",
		Price:      1450.5,
	}

	data, err := RenderContract(c, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestFormatEUR(t *testing.T) {
	assert.Equal(t, "1450,50 €", formatEUR(1450.5))
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	payload := []byte("pdf")
	require.NoError(t, s.Put(ctx, "k", payload))
	payload[0] = 'x'

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("pdf"), got)

	_, err = s.Get(ctx, "missing")
	assert.Equal(t, httperr.KindNotFound, httperr.KindOf(err))
}
