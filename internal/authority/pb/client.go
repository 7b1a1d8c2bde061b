package pb

import (
	"context"

	"google.golang.org/grpc"
)

const serviceName = "/authority.AuthorityService/"

// AuthorityServiceClient is the client surface of the authority's RPC
// contract. Fakes implement it directly in tests.
type AuthorityServiceClient interface {
	GetUserData(ctx context.Context, in *UserQuery, opts ...grpc.CallOption) (*UserData, error)
	FilterUser(ctx context.Context, in *UserQuery, opts ...grpc.CallOption) (*FilterUserResponse, error)
	FilterUserSerialized(ctx context.Context, in *UserQuery, opts ...grpc.CallOption) (*FilterUserSerializedResponse, error)
	VerifyLogin(ctx context.Context, in *VerifyLoginRequest, opts ...grpc.CallOption) (*VerifyLoginResponse, error)
	CreateUser(ctx context.Context, in *CreateUserRequest, opts ...grpc.CallOption) (*UserData, error)
	UpdateUser(ctx context.Context, in *UpdateUserRequest, opts ...grpc.CallOption) (*UserData, error)
	GetRoles(ctx context.Context, in *VocabularyRequest, opts ...grpc.CallOption) (*RolesResponse, error)
	GetDepartments(ctx context.Context, in *VocabularyRequest, opts ...grpc.CallOption) (*DepartmentsResponse, error)
}

type authorityServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewAuthorityServiceClient(cc grpc.ClientConnInterface) AuthorityServiceClient {
	return &authorityServiceClient{cc: cc}
}

func (c *authorityServiceClient) GetUserData(ctx context.Context, in *UserQuery, opts ...grpc.CallOption) (*UserData, error) {
	out := new(UserData)
	if err := c.cc.Invoke(ctx, serviceName+"GetUserData", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *authorityServiceClient) FilterUser(ctx context.Context, in *UserQuery, opts ...grpc.CallOption) (*FilterUserResponse, error) {
	out := new(FilterUserResponse)
	if err := c.cc.Invoke(ctx, serviceName+"FilterUser", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *authorityServiceClient) FilterUserSerialized(ctx context.Context, in *UserQuery, opts ...grpc.CallOption) (*FilterUserSerializedResponse, error) {
	out := new(FilterUserSerializedResponse)
	if err := c.cc.Invoke(ctx, serviceName+"FilterUserSerialized", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *authorityServiceClient) VerifyLogin(ctx context.Context, in *VerifyLoginRequest, opts ...grpc.CallOption) (*VerifyLoginResponse, error) {
	out := new(VerifyLoginResponse)
	if err := c.cc.Invoke(ctx, serviceName+"VerifyLogin", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *authorityServiceClient) CreateUser(ctx context.Context, in *CreateUserRequest, opts ...grpc.CallOption) (*UserData, error) {
	out := new(UserData)
	if err := c.cc.Invoke(ctx, serviceName+"CreateUser", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *authorityServiceClient) UpdateUser(ctx context.Context, in *UpdateUserRequest, opts ...grpc.CallOption) (*UserData, error) {
	out := new(UserData)
	if err := c.cc.Invoke(ctx, serviceName+"UpdateUser", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *authorityServiceClient) GetRoles(ctx context.Context, in *VocabularyRequest, opts ...grpc.CallOption) (*RolesResponse, error) {
	out := new(RolesResponse)
	if err := c.cc.Invoke(ctx, serviceName+"GetRoles", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *authorityServiceClient) GetDepartments(ctx context.Context, in *VocabularyRequest, opts ...grpc.CallOption) (*DepartmentsResponse, error) {
	out := new(DepartmentsResponse)
	if err := c.cc.Invoke(ctx, serviceName+"GetDepartments", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
