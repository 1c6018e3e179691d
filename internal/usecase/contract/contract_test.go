package contract

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/rdv-service/internal/cache"
	apdomain "github.com/BruksfildServices01/rdv-service/internal/domain/appointment"
	"github.com/BruksfildServices01/rdv-service/internal/document"
	"github.com/BruksfildServices01/rdv-service/internal/httperr"
	"github.com/BruksfildServices01/rdv-service/internal/infra/repository"
	"github.com/BruksfildServices01/rdv-service/internal/logger"
	"github.com/BruksfildServices01/rdv-service/internal/models"
	"github.com/BruksfildServices01/rdv-service/internal/testutil"
)

type fixture struct {
	db        *gorm.DB
	docs      *document.MemoryStore
	create    *CreateContract
	regen     *RegenerateContract
	status    *UpdateContractStatus
	query     *QueryContracts
	contracts *repository.ContractGormRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewDB(t)
	appointments := repository.NewAppointmentGormRepository(db)
	contracts := repository.NewContractGormRepository(db)
	docs := document.NewMemoryStore()

	return &fixture{
		db:        db,
		docs:      docs,
		create:    NewCreateContract(appointments, contracts, docs, nil),
		regen:     NewRegenerateContract(appointments, contracts, docs, nil),
		status:    NewUpdateContractStatus(contracts, nil),
		query:     NewQueryContracts(contracts, docs),
		contracts: contracts,
	}
}

func (f *fixture) serverInstall(t *testing.T) models.Appointment {
	return testutil.Appointment(t, f.db, models.Appointment{
		Type:       "Installation serveur",
		Address:    "8 avenue Foch",
		PostalCode: "75016",
		City:       "Paris",
		Praticiens: testutil.Practitioners("Claire Martin"),
	})
}

func (f *fixture) contractCount(t *testing.T) int64 {
	var n int64
	require.NoError(t, f.db.Model(&models.Contract{}).Count(&n).Error)
	return n
}

func TestCreateContract(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ap := f.serverInstall(t)

	c, err := f.create.Execute(ctx, ap.ID, CreateInput{Price: 1200})
	require.NoError(t, err)

	assert.Equal(t, "Brouillon", c.Status)
	assert.Equal(t, "Paris", c.City)
	assert.Equal(t, "Claire", c.Praticiens[0].Prenom)
	assert.NotEmpty(t, c.DocumentKey)
	assert.NotNil(t, c.GeneratedAt)
	assert.Equal(t, 1, f.docs.Len())

	var linked models.Appointment
	require.NoError(t, f.db.First(&linked, ap.ID).Error)
	require.NotNil(t, linked.ContractID)
	assert.Equal(t, c.ID, *linked.ContractID)

	data, name, err := f.query.Document(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("contrat-%d.pdf", c.ID), name)
	assert.NotEmpty(t, data)
}

func TestCreateContract_AlreadyLinked(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ap := f.serverInstall(t)

	_, err := f.create.Execute(ctx, ap.ID, CreateInput{Price: 1200})
	require.NoError(t, err)

	_, err = f.create.Execute(ctx, ap.ID, CreateInput{Price: 800})
	assert.True(t, httperr.Is(err, "contract_already_linked"))
	assert.Equal(t, int64(1), f.contractCount(t))
}

func TestCreateContract_ConcurrentRequestsLinkOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ap := f.serverInstall(t)

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.create.Execute(ctx, ap.ID, CreateInput{Price: 100})
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.Equal(t, httperr.KindConflict, httperr.KindOf(err))
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, int64(1), f.contractCount(t))
}

func TestCreateContract_MissingAddressThenResume(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ap := testutil.Appointment(t, f.db, models.Appointment{Type: "Installation serveur", City: "Lille"})

	_, err := f.create.Execute(ctx, ap.ID, CreateInput{Price: 500})
	e, ok := httperr.As(err)
	require.True(t, ok)
	assert.Equal(t, httperr.KindValidation, e.Kind)
	assert.ElementsMatch(t, []string{"address", "postal_code"}, e.Fields)
	assert.Zero(t, f.contractCount(t))

	bad := "59O00"
	_, err = f.create.Execute(ctx, ap.ID, CreateInput{Price: 500, PostalCode: &bad})
	assert.True(t, httperr.Is(err, "invalid_postal_code"))

	address, cp := "1 rue Nationale", "59000"
	c, err := f.create.Execute(ctx, ap.ID, CreateInput{Price: 500, Address: &address, PostalCode: &cp})
	require.NoError(t, err)
	assert.Equal(t, "59000", c.PostalCode)

	var got models.Appointment
	require.NoError(t, f.db.First(&got, ap.ID).Error)
	assert.Equal(t, "1 rue Nationale", got.Address)
}

func TestCreateContract_RejectsNegativePrice(t *testing.T) {
	f := newFixture(t)
	ap := f.serverInstall(t)

	_, err := f.create.Execute(context.Background(), ap.ID, CreateInput{Price: -1})
	assert.True(t, httperr.Is(err, "invalid_price"))
}

func TestRegenerateContract_KeepsID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ap := f.serverInstall(t)

	first, err := f.create.Execute(ctx, ap.ID, CreateInput{Price: 1200})
	require.NoError(t, err)

	require.NoError(t, f.db.Model(&models.Appointment{}).Where("id = ?", ap.ID).Update("city", "Versailles").Error)

	second, err := f.regen.Execute(ctx, ap.ID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.NotEqual(t, first.DocumentKey, second.DocumentKey)
	assert.Equal(t, "Versailles", second.City)
	assert.Equal(t, 1200.0, second.Price)
	assert.Equal(t, int64(1), f.contractCount(t))
	assert.Equal(t, 2, f.docs.Len())
}

func TestRegenerateContract_WithoutContract(t *testing.T) {
	f := newFixture(t)
	ap := f.serverInstall(t)

	_, err := f.regen.Execute(context.Background(), ap.ID)
	assert.True(t, httperr.Is(err, "contract_not_linked"))
}

func TestUpdateContractStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ap := f.serverInstall(t)

	c, err := f.create.Execute(ctx, ap.ID, CreateInput{Price: 1200})
	require.NoError(t, err)

	fixed := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	f.status.now = func() time.Time { return fixed }

	sent, err := f.status.Execute(ctx, c.ID, "Envoyé")
	require.NoError(t, err)
	require.NotNil(t, sent.SentAt)
	assert.True(t, sent.SentAt.Equal(fixed))

	_, err = f.status.Execute(ctx, c.ID, "Brouillon")
	assert.Equal(t, httperr.KindConflict, httperr.KindOf(err))

	_, err = f.status.Execute(ctx, c.ID, "Signé")
	require.NoError(t, err)

	received, err := f.status.Execute(ctx, c.ID, "Reçu")
	require.NoError(t, err)
	assert.NotNil(t, received.ReceivedAt)

	_, err = f.status.Execute(ctx, c.ID, "Perdu")
	assert.Equal(t, httperr.KindValidation, httperr.KindOf(err))
}

func TestCreateContract_InvalidatesCachedLists(t *testing.T) {
	db := testutil.NewDB(t)
	store := cache.NewMemory()
	appointments := repository.NewCachedAppointmentRepository(
		repository.NewAppointmentGormRepository(db), store, time.Minute, logger.Discard(),
	)
	uc := NewCreateContract(appointments, repository.NewContractGormRepository(db), document.NewMemoryStore(), nil)
	ctx := context.Background()

	ap := testutil.Appointment(t, db, models.Appointment{
		Type: "Installation serveur", Address: "a", PostalCode: "75001", City: "Paris",
	})

	_, err := appointments.ListAppointments(ctx, apdomain.ListFilter{})
	require.NoError(t, err)
	require.Equal(t, 1, store.Len())

	_, err = uc.Execute(ctx, ap.ID, CreateInput{Price: 10})
	require.NoError(t, err)
	assert.Equal(t, 0, store.Len())
}

type unavailableStore struct{}

func (unavailableStore) Put(context.Context, string, []byte) error {
	return httperr.ErrTransport("document_store_failed", errors.New("bucket unreachable"))
}

func (unavailableStore) Get(context.Context, string) ([]byte, error) {
	return nil, httperr.ErrTransport("document_store_failed", errors.New("bucket unreachable"))
}

func TestCreateContract_DocumentFailureLeavesLinkedContract(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ap := f.serverInstall(t)

	appointments := repository.NewAppointmentGormRepository(f.db)
	create := NewCreateContract(appointments, f.contracts, unavailableStore{}, nil)

	c, err := create.Execute(ctx, ap.ID, CreateInput{Price: 700})
	assert.True(t, httperr.Is(err, "contract_document_pending"))
	assert.Equal(t, httperr.KindTransport, httperr.KindOf(err))
	require.NotNil(t, c)
	assert.NotZero(t, c.ID)
	assert.Empty(t, c.DocumentKey)

	var linked models.Appointment
	require.NoError(t, f.db.First(&linked, ap.ID).Error)
	require.NotNil(t, linked.ContractID)
	assert.Equal(t, c.ID, *linked.ContractID)

	regenerated, err := f.regen.Execute(ctx, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, regenerated.ID)
	assert.NotEmpty(t, regenerated.DocumentKey)
	assert.Equal(t, int64(1), f.contractCount(t))
}
