package shadow

import (
	"context"
	"fmt"
	"sort"

	"github.com/mvoronin/authgate/internal/authority"
	"github.com/mvoronin/authgate/internal/logging"
	"github.com/mvoronin/authgate/internal/models"
)

// RemoteDirectory is the slice of the authority client the shadow layer
// needs. *authority.Client satisfies it.
type RemoteDirectory interface {
	FetchUser(ctx context.Context, q authority.FetchQuery) (*models.UserRecord, error)
	FilterUsers(ctx context.Context, q authority.FilterQuery) (map[string][]uint32, error)
}

// userIDCriterion is the criterion name under which FilterUser returns the
// matching id set.
const userIDCriterion = "user_id"

// Reconciler answers shadow-user queries, falling back to the authority
// when the local schema cannot resolve the criteria, and keeps returned
// rows consistent with the remote record via the field-merge policy. The
// remote is authoritative; local rows are a cache of it, not a source.
type Reconciler struct {
	repo   Repository
	remote RemoteDirectory
	log    logging.Logger
}

func NewReconciler(repo Repository, remote RemoteDirectory, log logging.Logger) *Reconciler {
	return &Reconciler{repo: repo, remote: remote, log: log}
}

// GetUser returns the single shadow user matching c, refreshed from the
// authority. Criteria the local schema cannot answer are first resolved
// remotely and the local lookup restricted to the returned id set. A
// failed refresh never fails the read: the local row is returned as last
// known state.
func (r *Reconciler) GetUser(ctx context.Context, c Criteria) (*models.ShadowUser, error) {
	var u *models.ShadowUser

	if c.RemoteOnly() {
		ids, err := r.remoteIDs(ctx, c)
		if err != nil {
			return nil, err
		}
		users, err := r.repo.FindAllByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		if len(users) == 0 {
			return nil, ErrNotFound
		}
		u = users[0]
	} else {
		var err error
		u, err = r.repo.Find(ctx, c)
		if err != nil {
			return nil, err
		}
	}

	r.refresh(ctx, u)
	return u, nil
}

// Users returns every shadow user matching c, each refreshed best-effort
// from the authority.
func (r *Reconciler) Users(ctx context.Context, c Criteria) ([]*models.ShadowUser, error) {
	var users []*models.ShadowUser
	var err error

	if c.RemoteOnly() {
		var ids []uint32
		ids, err = r.remoteIDs(ctx, c)
		if err != nil {
			return nil, err
		}
		users, err = r.repo.FindAllByIDs(ctx, ids)
	} else {
		users, err = r.repo.FindAll(ctx, c)
	}
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		r.refresh(ctx, u)
	}
	return users, nil
}

// Refresh fetches the authoritative record for u and merges it in. Unlike
// the read paths, the error is reported so callers that need a guaranteed
// fresh record can tell.
func (r *Reconciler) Refresh(ctx context.Context, u *models.ShadowUser) error {
	rec, err := r.remote.FetchUser(ctx, authority.FetchQuery{ID: u.ID})
	if err != nil {
		return fmt.Errorf("fetch user %d: %w", u.ID, err)
	}
	if _, err := r.MergeRemoteFields(ctx, u, rec); err != nil {
		return fmt.Errorf("merge user %d: %w", u.ID, err)
	}
	return nil
}

func (r *Reconciler) refresh(ctx context.Context, u *models.ShadowUser) {
	if err := r.Refresh(ctx, u); err != nil {
		refreshFailures.Inc()
		r.log.Warn(ctx, "remote refresh failed, returning last known state", "user_id", u.ID, "error", err)
	}
}

// MergeRemoteFields applies the authoritative record onto the local row
// and persists the result as one batched write. Three designated columns
// (national id, staff flag, superuser flag) are written only when they
// differ, so admin-error overwrite loops cannot churn them; every other
// writable column takes the remote value unconditionally. Remote fields
// without a local column become in-memory attributes only. Returns the
// persisted column names, alphabetically.
func (r *Reconciler) MergeRemoteFields(ctx context.Context, u *models.ShadowUser, rec *models.UserRecord) ([]string, error) {
	cols := make(map[string]any)

	if u.NationalID != rec.NationalID {
		u.NationalID = rec.NationalID
		cols["national_id"] = rec.NationalID
	}
	if u.IsStaff != rec.IsStaff {
		u.IsStaff = rec.IsStaff
		cols["is_staff"] = rec.IsStaff
	}
	if u.IsSuperuser != rec.IsSuperuser {
		u.IsSuperuser = rec.IsSuperuser
		cols["is_superuser"] = rec.IsSuperuser
	}

	u.Username = rec.Username
	cols["username"] = rec.Username
	u.Email = rec.Email
	cols["email"] = rec.Email
	u.Phone = rec.Phone
	cols["phone"] = rec.Phone
	u.FirstName = rec.FirstName
	cols["first_name"] = rec.FirstName
	u.LastName = rec.LastName
	cols["last_name"] = rec.LastName

	// in-memory attributes, no persistence
	u.Service = rec.Service
	u.SubServices = rec.SubServices
	u.Roles = rec.Roles
	u.Departments = rec.Departments
	u.Image = rec.Image
	u.IsVerified = rec.IsVerified

	if err := r.repo.UpdateColumns(ctx, u.ID, cols); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(cols))
	for name := range cols {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (r *Reconciler) remoteIDs(ctx context.Context, c Criteria) ([]uint32, error) {
	res, err := r.remote.FilterUsers(ctx, authority.FilterQuery{
		NationalID: c.NationalID,
		Username:   c.Username,
		Email:      c.Email,
		Phone:      c.Phone,
		Role:       c.Role,
		Department: c.Department,
	})
	if err != nil {
		return nil, err
	}
	return res[userIDCriterion], nil
}
