package shadow

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/mvoronin/authgate/internal/authority"
	"github.com/mvoronin/authgate/internal/dbx"
	"github.com/mvoronin/authgate/internal/logging"
)

// ErrSchemaMissing is returned when the shadow_users table does not exist
// yet. That is a migration-ordering problem, not a transient one, and the
// sync job refuses to touch anything.
var ErrSchemaMissing = errors.New("shadow_users table does not exist, run migrations first")

// SyncReport is the outcome of one convergence run.
type SyncReport struct {
	RunID      string
	Created    int
	Deleted    int
	CreatedIDs []uint32
	DeletedIDs []uint32
}

// Syncer converges the local id set onto the authority's membership set.
// One run is one-shot and idempotent; concurrent runs against the same
// store are not supported and must be serialized by the caller.
type Syncer struct {
	db     *sql.DB
	remote RemoteDirectory
	log    logging.Logger

	// newRepo is a seam so transactional and test repositories can be
	// substituted
	newRepo func(db dbx.DBTX) Repository
}

func NewSyncer(db *sql.DB, remote RemoteDirectory, log logging.Logger) *Syncer {
	return &Syncer{
		db:     db,
		remote: remote,
		log:    log,
		newRepo: func(db dbx.DBTX) Repository {
			return NewPostgresRepository(db)
		},
	}
}

// Run fetches the full remote and local id sets, computes the diff, and
// applies creates and deletes in one transaction. It either returns a
// complete report or an error, never both.
func (s *Syncer) Run(ctx context.Context) (*SyncReport, error) {
	repo := s.newRepo(s.db)

	exists, err := repo.TableExists(ctx)
	if err != nil {
		return nil, fmt.Errorf("schema check: %w", err)
	}
	if !exists {
		return nil, ErrSchemaMissing
	}

	res, err := s.remote.FilterUsers(ctx, authority.FilterQuery{})
	if err != nil {
		return nil, fmt.Errorf("fetch remote id set: %w", err)
	}
	remoteIDs := res[userIDCriterion]

	localIDs, err := repo.IDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch local id set: %w", err)
	}

	toCreate := difference(remoteIDs, localIDs)
	toDelete := difference(localIDs, remoteIDs)

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		txRepo := s.newRepo(tx)
		for _, id := range toCreate {
			if err := txRepo.CreateMinimal(ctx, id); err != nil {
				return fmt.Errorf("create shadow row %d: %w", id, err)
			}
		}
		if len(toDelete) > 0 {
			if _, err := txRepo.DeleteByIDs(ctx, toDelete); err != nil {
				return fmt.Errorf("delete shadow rows: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	syncCreated.Add(float64(len(toCreate)))
	syncDeleted.Add(float64(len(toDelete)))

	report := &SyncReport{
		RunID:      uuid.NewString(),
		Created:    len(toCreate),
		Deleted:    len(toDelete),
		CreatedIDs: toCreate,
		DeletedIDs: toDelete,
	}

	s.log.Info(ctx, "shadow sync finished",
		"run_id", report.RunID, "created", report.Created, "deleted", report.Deleted)
	return report, nil
}

// difference returns the ids present in a but not in b, ascending.
func difference(a, b []uint32) []uint32 {
	inB := make(map[uint32]struct{}, len(b))
	for _, id := range b {
		inB[id] = struct{}{}
	}

	out := []uint32{}
	for _, id := range a {
		if _, ok := inB[id]; !ok {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
