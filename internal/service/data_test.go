package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"data_service/internal/models"
)

// fakeDataRepository 以記憶體模擬具唯一索引的 data 表
type fakeDataRepository struct {
	records []models.Data
	nextID  uint
	err     error
}

func (r *fakeDataRepository) Create(data *models.Data) error {
	if r.err != nil {
		return r.err
	}
	for _, existing := range r.records {
		if existing.Name == data.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	r.nextID++
	data.ID = r.nextID
	r.records = append(r.records, *data)
	return nil
}

func (r *fakeDataRepository) FindAll() ([]models.Data, error) {
	if r.err != nil {
		return nil, r.err
	}
	return append([]models.Data{}, r.records...), nil
}

func (r *fakeDataRepository) Delete(id uint) (*models.Data, error) {
	if r.err != nil {
		return nil, r.err
	}
	for i, existing := range r.records {
		if existing.ID == id {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return &existing, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type recordingPublisher struct {
	events []*Event
}

func (p *recordingPublisher) Publish(event *Event) {
	p.events = append(p.events, event)
}

func newTestDataService() (*DataService, *fakeDataRepository, *recordingPublisher) {
	repo := &fakeDataRepository{}
	pub := &recordingPublisher{}
	return NewDataService(repo, pub), repo, pub
}

func TestDataService_CreateData(t *testing.T) {
	svc, _, pub := newTestDataService()

	data, err := svc.CreateData("TestName")
	require.NoError(t, err)
	assert.Equal(t, uint(1), data.ID)
	assert.Equal(t, "TestName", data.Name)

	records, err := svc.ListData()
	require.NoError(t, err)
	assert.Equal(t, []models.Data{{ID: 1, Name: "TestName"}}, records)

	require.Len(t, pub.events, 1)
	assert.Equal(t, EventDataCreated, pub.events[0].Type)
	assert.Equal(t, models.Data{ID: 1, Name: "TestName"}, pub.events[0].Data)
}

func TestDataService_CreateDuplicate(t *testing.T) {
	svc, repo, pub := newTestDataService()

	_, err := svc.CreateData("TestName")
	require.NoError(t, err)

	_, err = svc.CreateData("TestName")
	assert.ErrorIs(t, err, ErrDataExists)
	assert.Len(t, repo.records, 1)
	assert.Len(t, pub.events, 1)
}

func TestDataService_ListInCreationOrder(t *testing.T) {
	svc, _, _ := newTestDataService()

	for _, name := range []string{"TestName1", "TestName2", "TestName3"} {
		_, err := svc.CreateData(name)
		require.NoError(t, err)
	}

	records, err := svc.ListData()
	require.NoError(t, err)
	assert.Equal(t, []models.Data{
		{ID: 1, Name: "TestName1"},
		{ID: 2, Name: "TestName2"},
		{ID: 3, Name: "TestName3"},
	}, records)
}

func TestDataService_DeleteData(t *testing.T) {
	svc, _, pub := newTestDataService()

	_, err := svc.CreateData("TestName")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteData(1))

	records, err := svc.ListData()
	require.NoError(t, err)
	assert.Empty(t, records)

	require.Len(t, pub.events, 2)
	assert.Equal(t, EventDataDeleted, pub.events[1].Type)
	assert.Equal(t, uint(1), pub.events[1].Data.ID)
}

func TestDataService_DeleteMissing(t *testing.T) {
	svc, repo, pub := newTestDataService()

	_, err := svc.CreateData("TestName")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteData(42), ErrDataNotFound)
	assert.Len(t, repo.records, 1)
	assert.Len(t, pub.events, 1)
}

func TestDataService_StorageError(t *testing.T) {
	svc, repo, _ := newTestDataService()
	boom := errors.New("connection refused")
	repo.err = boom

	_, err := svc.CreateData("TestName")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrDataExists)

	_, err = svc.ListData()
	assert.ErrorIs(t, err, boom)

	err = svc.DeleteData(1)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrDataNotFound)
}

func TestDataService_NilPublisher(t *testing.T) {
	svc := NewDataService(&fakeDataRepository{}, nil)

	_, err := svc.CreateData("TestName")
	require.NoError(t, err)
	assert.NoError(t, svc.DeleteData(1))
}
