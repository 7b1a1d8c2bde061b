package authority

import (
	"context"
	"time"

	"github.com/mvoronin/authgate/internal/authority/pb"
	"github.com/mvoronin/authgate/internal/cache"
	"github.com/mvoronin/authgate/internal/logging"
	"github.com/mvoronin/authgate/internal/models"
	"github.com/mvoronin/authgate/internal/remoterr"
)

// Client is the public operation surface of the authority. All operations
// are synchronous and translate every failure through remoterr; none of
// them swallows a caller-visible error.
type Client struct {
	inv   Invoker
	store cache.Cache
	ttl   time.Duration
	svc   string
	sub   string
	log   logging.Logger
}

// NewClient wires the operation surface over an Invoker (normally *Conn)
// and a cache. A ttl <= 0 caches records without expiry.
func NewClient(inv Invoker, cfg Config, store cache.Cache, ttl time.Duration, log logging.Logger) *Client {
	return &Client{
		inv:   inv,
		store: store,
		ttl:   ttl,
		svc:   cfg.ServiceName,
		sub:   cfg.SubServiceName,
		log:   log,
	}
}

// FetchQuery selects one user, either by the authority-assigned id or by
// an alternate identifier. Exactly the set fields are sent as criteria.
type FetchQuery struct {
	ID         uint32
	NationalID string
	Username   string
	Email      string
	Phone      string
}

// FilterQuery narrows the authority's membership set. The zero value
// matches every user of the calling service.
type FilterQuery struct {
	NationalID string
	Username   string
	Email      string
	Phone      string
	Role       string
	Department string
}

// UserParams carries the fields of a create or update call. Nil pointer
// fields are not sent, meaning "no change" rather than "set to empty";
// nil slices likewise.
type UserParams struct {
	NationalID  *string
	Phone       *string
	Email       *string
	FirstName   *string
	LastName    *string
	Username    *string
	IsVerified  *bool
	Roles       []string
	Departments []string
}

// FetchUser returns one user record. Lookups by id consult the cache
// first and populate it on miss; lookups by alternate identifier always
// go remote, then cache under the record's id.
func (c *Client) FetchUser(ctx context.Context, q FetchQuery) (*models.UserRecord, error) {
	if q.ID != 0 {
		if rec := c.cached(ctx, q.ID); rec != nil {
			cacheHits.Inc()
			return rec, nil
		}
		cacheMisses.Inc()
	}

	var resp *pb.UserData
	err := c.inv.Invoke(ctx, func(stub pb.AuthorityServiceClient) error {
		var err error
		resp, err = stub.GetUserData(ctx, c.fetchQuery(q))
		return err
	})
	if err != nil {
		return nil, remoterr.Translate(err)
	}

	rec := decodeUser(resp)
	c.cacheSet(ctx, rec)
	return rec, nil
}

// FilterUsers resolves q against the authority and returns id sets keyed
// by criterion name (e.g. "user_id"). Results are never cached: they vary
// with the criteria.
func (c *Client) FilterUsers(ctx context.Context, q FilterQuery) (map[string][]uint32, error) {
	var resp *pb.FilterUserResponse
	err := c.inv.Invoke(ctx, func(stub pb.AuthorityServiceClient) error {
		var err error
		resp, err = stub.FilterUser(ctx, c.filterQuery(q))
		return err
	})
	if err != nil {
		return nil, remoterr.Translate(err)
	}

	out := make(map[string][]uint32, len(resp.Results))
	for name, ids := range resp.Results {
		if ids == nil {
			out[name] = []uint32{}
			continue
		}
		out[name] = append([]uint32{}, ids.Values...)
	}
	return out, nil
}

// FilterUsersSerialized is the serialized-mode variant of FilterUsers:
// the authority returns a pre-serialized payload instead of id sets.
func (c *Client) FilterUsersSerialized(ctx context.Context, q FilterQuery) (string, error) {
	var resp *pb.FilterUserSerializedResponse
	err := c.inv.Invoke(ctx, func(stub pb.AuthorityServiceClient) error {
		var err error
		resp, err = stub.FilterUserSerialized(ctx, c.filterQuery(q))
		return err
	})
	if err != nil {
		return "", remoterr.Translate(err)
	}
	return resp.Payload, nil
}

// VerifyLogin asks the authority whether token is valid and returns the
// user id it belongs to. The authority, not this client, is the source of
// truth for token validity.
func (c *Client) VerifyLogin(ctx context.Context, token string) (uint32, error) {
	var resp *pb.VerifyLoginResponse
	err := c.inv.Invoke(ctx, func(stub pb.AuthorityServiceClient) error {
		var err error
		resp, err = stub.VerifyLogin(ctx, &pb.VerifyLoginRequest{
			ServiceName:    c.svc,
			SubServiceName: c.sub,
			Token:          token,
		})
		return err
	})
	if err != nil {
		return 0, remoterr.Translate(err)
	}
	return resp.UserId, nil
}

// CreateUser registers a new user with the authority, sending only the
// fields set in p.
func (c *Client) CreateUser(ctx context.Context, p UserParams) (*models.UserRecord, error) {
	req := &pb.CreateUserRequest{
		ServiceName:    c.svc,
		SubServiceName: c.sub,
		NationalId:     p.NationalID,
		Phone:          p.Phone,
		Email:          p.Email,
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		Username:       p.Username,
		IsVerified:     p.IsVerified,
		Roles:          p.Roles,
		Departments:    p.Departments,
	}

	var resp *pb.UserData
	err := c.inv.Invoke(ctx, func(stub pb.AuthorityServiceClient) error {
		var err error
		resp, err = stub.CreateUser(ctx, req)
		return err
	})
	if err != nil {
		return nil, remoterr.Translate(err)
	}

	rec := decodeUser(resp)
	c.cacheSet(ctx, rec)
	return rec, nil
}

// UpdateUser changes the given fields of one user and synchronously
// refreshes the cache entry for that id, so a fetch right after sees the
// updated values without another remote call.
func (c *Client) UpdateUser(ctx context.Context, id uint32, p UserParams) (*models.UserRecord, error) {
	req := &pb.UpdateUserRequest{
		ServiceName:    c.svc,
		SubServiceName: c.sub,
		Id:             id,
		NationalId:     p.NationalID,
		Phone:          p.Phone,
		Email:          p.Email,
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		Username:       p.Username,
		IsVerified:     p.IsVerified,
		Roles:          p.Roles,
		Departments:    p.Departments,
	}

	var resp *pb.UserData
	err := c.inv.Invoke(ctx, func(stub pb.AuthorityServiceClient) error {
		var err error
		resp, err = stub.UpdateUser(ctx, req)
		return err
	})
	if err != nil {
		return nil, remoterr.Translate(err)
	}

	rec := decodeUser(resp)
	c.cacheSet(ctx, rec)
	return rec, nil
}

// ListRoles returns the authority's canonical role vocabulary.
func (c *Client) ListRoles(ctx context.Context) ([]string, error) {
	var resp *pb.RolesResponse
	err := c.inv.Invoke(ctx, func(stub pb.AuthorityServiceClient) error {
		var err error
		resp, err = stub.GetRoles(ctx, &pb.VocabularyRequest{ServiceName: c.svc, SubServiceName: c.sub})
		return err
	})
	if err != nil {
		return nil, remoterr.Translate(err)
	}
	return emptyIfNil(resp.Roles), nil
}

// ListDepartments returns the authority's canonical department vocabulary.
func (c *Client) ListDepartments(ctx context.Context) ([]string, error) {
	var resp *pb.DepartmentsResponse
	err := c.inv.Invoke(ctx, func(stub pb.AuthorityServiceClient) error {
		var err error
		resp, err = stub.GetDepartments(ctx, &pb.VocabularyRequest{ServiceName: c.svc, SubServiceName: c.sub})
		return err
	})
	if err != nil {
		return nil, remoterr.Translate(err)
	}
	return emptyIfNil(resp.Departments), nil
}

// InvalidateUser drops the cached record for one user id.
func (c *Client) InvalidateUser(ctx context.Context, id uint32) error {
	return c.store.Delete(ctx, cache.UserKey(id))
}

// InvalidateUsers drops the cached records for several user ids.
func (c *Client) InvalidateUsers(ctx context.Context, ids []uint32) error {
	for _, id := range ids {
		if err := c.store.Delete(ctx, cache.UserKey(id)); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) fetchQuery(q FetchQuery) *pb.UserQuery {
	return &pb.UserQuery{
		ServiceName:    c.svc,
		SubServiceName: c.sub,
		Id:             q.ID,
		NationalId:     q.NationalID,
		Username:       q.Username,
		Email:          q.Email,
		Phone:          q.Phone,
	}
}

func (c *Client) filterQuery(q FilterQuery) *pb.UserQuery {
	return &pb.UserQuery{
		ServiceName:    c.svc,
		SubServiceName: c.sub,
		NationalId:     q.NationalID,
		Username:       q.Username,
		Email:          q.Email,
		Phone:          q.Phone,
		Role:           q.Role,
		Department:     q.Department,
	}
}

func (c *Client) cached(ctx context.Context, id uint32) *models.UserRecord {
	rec, ok, err := c.store.Get(ctx, cache.UserKey(id))
	if err != nil {
		// a broken cache must not break the fetch; fall through to remote
		c.log.Warn(ctx, "cache read failed", "user_id", id, "error", err)
		return nil
	}
	if !ok {
		return nil
	}
	return rec
}

func (c *Client) cacheSet(ctx context.Context, rec *models.UserRecord) {
	if err := c.store.Set(ctx, cache.UserKey(rec.ID), rec, c.ttl); err != nil {
		c.log.Warn(ctx, "cache write failed", "user_id", rec.ID, "error", err)
	}
}

// decodeUser maps the wire message onto the record type. Structurally
// absent fields come out as zero values and absent lists as empty slices,
// so every declared field is present in the result.
func decodeUser(u *pb.UserData) *models.UserRecord {
	return &models.UserRecord{
		ID:          u.Id,
		NationalID:  u.NationalId,
		Phone:       u.Phone,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Username:    u.Username,
		Service:     u.Service,
		SubServices: emptyIfNil(u.SubServices),
		Roles:       emptyIfNil(u.Roles),
		Departments: emptyIfNil(u.Departments),
		Image:       u.Image,
		IsVerified:  u.IsVerified,
		IsStaff:     u.IsStaff,
		IsSuperuser: u.IsSuperuser,
	}
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
