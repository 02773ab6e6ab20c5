package business

import (
	"context"

	"github.com/openrelay/service-filerelay/service/storage/repository"
	"github.com/openrelay/service-filerelay/service/types"
)

// Totals is the reporting snapshot behind the stats command.
type Totals struct {
	Users int64
	Files int64
}

// Stats reports registry and directory counts to administrators.
type Stats struct {
	admission *Admission
	users     repository.UserRepository
	files     repository.FileRepository
}

func NewStats(admission *Admission, users repository.UserRepository, files repository.FileRepository) *Stats {
	return &Stats{
		admission: admission,
		users:     users,
		files:     files,
	}
}

func (s *Stats) Totals(ctx context.Context, actor types.UserID) (*Totals, error) {
	if !s.admission.IsAdmin(actor) {
		return nil, ErrPermissionDenied
	}

	userCount, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}

	fileCount, err := s.files.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &Totals{Users: userCount, Files: fileCount}, nil
}
