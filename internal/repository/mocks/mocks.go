package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/fieldstack/snaglist/internal/domain/entry"
	"github.com/fieldstack/snaglist/internal/domain/project"
	"github.com/fieldstack/snaglist/internal/domain/recording"
)

// ProjectRepository is a mock for project.Repository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	args := m.Called(ctx, id)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) GetByName(ctx context.Context, name string) (*project.Project, error) {
	args := m.Called(ctx, name)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) List(ctx context.Context) ([]project.Summary, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]project.Summary); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) Delete(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// EntryRepository is a mock for entry.Repository.
type EntryRepository struct {
	mock.Mock
}

func (m *EntryRepository) Create(ctx context.Context, e *entry.Entry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *EntryRepository) Get(ctx context.Context, id string) (*entry.Entry, error) {
	args := m.Called(ctx, id)
	if e, ok := args.Get(0).(*entry.Entry); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EntryRepository) GetBySnagNumber(ctx context.Context, projectName string, number int64) (*entry.Entry, error) {
	args := m.Called(ctx, projectName, number)
	if e, ok := args.Get(0).(*entry.Entry); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EntryRepository) Update(ctx context.Context, e *entry.Entry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *EntryRepository) UpdateAnnotations(ctx context.Context, id string, annotations []entry.Annotation, updatedAt time.Time) error {
	args := m.Called(ctx, id, annotations, updatedAt)
	return args.Error(0)
}

func (m *EntryRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *EntryRepository) ListByProject(ctx context.Context, projectName string) ([]entry.Entry, error) {
	args := m.Called(ctx, projectName)
	if list, ok := args.Get(0).([]entry.Entry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EntryRepository) List(ctx context.Context, opts entry.ListOptions) ([]entry.Entry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]entry.Entry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// RecordingRepository is a mock for recording.Repository.
type RecordingRepository struct {
	mock.Mock
}

func (m *RecordingRepository) Create(ctx context.Context, rec *recording.Recording) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *RecordingRepository) Get(ctx context.Context, id string) (*recording.Recording, error) {
	args := m.Called(ctx, id)
	if rec, ok := args.Get(0).(*recording.Recording); ok {
		return rec, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RecordingRepository) ListByProject(ctx context.Context, projectName string) ([]recording.Recording, error) {
	args := m.Called(ctx, projectName)
	if list, ok := args.Get(0).([]recording.Recording); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RecordingRepository) SetTranscription(ctx context.Context, id, transcription string) error {
	args := m.Called(ctx, id, transcription)
	return args.Error(0)
}

func (m *RecordingRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
