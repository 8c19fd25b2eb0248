package project_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fieldstack/snaglist/internal/domain/project"
	"github.com/fieldstack/snaglist/internal/repository"
	"github.com/fieldstack/snaglist/internal/repository/mocks"
)

func TestCreateProject(t *testing.T) {
	repo := new(mocks.ProjectRepository)
	svc := project.NewService(repo, nil)
	ctx := context.Background()

	repo.On("Create", ctx, mock.AnythingOfType("*project.Project")).Return(nil)

	proj, err := svc.Create(ctx, "  Site A  ")
	require.NoError(t, err)
	require.NotEmpty(t, proj.ID)
	require.Equal(t, "Site A", proj.Name, "name is trimmed")
	require.False(t, proj.CreatedAt.IsZero())
	repo.AssertExpectations(t)
}

func TestCreateProjectEmptyName(t *testing.T) {
	repo := new(mocks.ProjectRepository)
	svc := project.NewService(repo, nil)

	_, err := svc.Create(context.Background(), "   ")
	require.ErrorIs(t, err, project.ErrInvalidInput)
	repo.AssertNotCalled(t, "Create")
}

func TestCreateProjectNameTaken(t *testing.T) {
	repo := new(mocks.ProjectRepository)
	svc := project.NewService(repo, nil)
	ctx := context.Background()

	repo.On("Create", ctx, mock.AnythingOfType("*project.Project")).
		Return(repository.ErrNotUnique)

	_, err := svc.Create(ctx, "Site A")
	require.ErrorIs(t, err, project.ErrNameTaken)
}

func TestGetProjectNotFound(t *testing.T) {
	repo := new(mocks.ProjectRepository)
	svc := project.NewService(repo, nil)
	ctx := context.Background()

	repo.On("Get", ctx, "missing").Return(nil, repository.ErrNotFound)
	repo.On("GetByName", ctx, "Nowhere").Return(nil, repository.ErrNotFound)

	_, err := svc.Get(ctx, "missing")
	require.ErrorIs(t, err, project.ErrProjectNotFound)

	_, err = svc.GetByName(ctx, "Nowhere")
	require.ErrorIs(t, err, project.ErrProjectNotFound)
}

func TestDeleteProjectReportsCascade(t *testing.T) {
	repo := new(mocks.ProjectRepository)
	svc := project.NewService(repo, nil)
	ctx := context.Background()

	repo.On("Delete", ctx, "p1").Return(int64(4), nil)

	removed, err := svc.Delete(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, int64(4), removed)
}

func TestDeleteProjectNotFound(t *testing.T) {
	repo := new(mocks.ProjectRepository)
	svc := project.NewService(repo, nil)
	ctx := context.Background()

	repo.On("Delete", ctx, "missing").Return(int64(0), repository.ErrNotFound)

	_, err := svc.Delete(ctx, "missing")
	require.ErrorIs(t, err, project.ErrProjectNotFound)
}
