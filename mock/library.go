package mock

import (
	"context"

	"shelfread"
)

var _ shelfread.LibraryService = (*LibraryService)(nil)

// LibraryService is a mock implementation of shelfread.LibraryService.
type LibraryService struct {
	SaveLibraryFn         func(ctx context.Context, lib *shelfread.Library) error
	FindLibraryByUserIDFn func(ctx context.Context, userID int64) (*shelfread.Library, error)
	ListLibrariesFn       func(ctx context.Context) ([]*shelfread.LibraryInfo, error)
	DeleteLibraryFn       func(ctx context.Context, userID int64) error
}

func (s *LibraryService) SaveLibrary(ctx context.Context, lib *shelfread.Library) error {
	return s.SaveLibraryFn(ctx, lib)
}

func (s *LibraryService) FindLibraryByUserID(ctx context.Context, userID int64) (*shelfread.Library, error) {
	return s.FindLibraryByUserIDFn(ctx, userID)
}

func (s *LibraryService) ListLibraries(ctx context.Context) ([]*shelfread.LibraryInfo, error) {
	return s.ListLibrariesFn(ctx)
}

func (s *LibraryService) DeleteLibrary(ctx context.Context, userID int64) error {
	return s.DeleteLibraryFn(ctx, userID)
}
