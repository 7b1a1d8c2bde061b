// Package pb mirrors the identity authority's proto contract (see
// authority.proto). The authority owns the proto and its codegen; these
// message definitions are maintained by hand as legacy-form messages whose
// descriptors the protobuf runtime derives from struct tags, which keeps
// the consumed subset reviewable in one place.
package pb

import (
	"google.golang.org/protobuf/encoding/prototext"
	"google.golang.org/protobuf/protoadapt"
)

func format(m protoadapt.MessageV1) string {
	return prototext.Format(protoadapt.MessageV2Of(m))
}

// UserQuery identifies the calling service and carries lookup criteria.
type UserQuery struct {
	ServiceName    string `protobuf:"bytes,1,opt,name=service_name,json=serviceName,proto3" json:"service_name,omitempty"`
	SubServiceName string `protobuf:"bytes,2,opt,name=sub_service_name,json=subServiceName,proto3" json:"sub_service_name,omitempty"`
	Id             uint32 `protobuf:"varint,3,opt,name=id,proto3" json:"id,omitempty"`
	NationalId     string `protobuf:"bytes,4,opt,name=national_id,json=nationalId,proto3" json:"national_id,omitempty"`
	Username       string `protobuf:"bytes,5,opt,name=username,proto3" json:"username,omitempty"`
	Email          string `protobuf:"bytes,6,opt,name=email,proto3" json:"email,omitempty"`
	Phone          string `protobuf:"bytes,7,opt,name=phone,proto3" json:"phone,omitempty"`
	Role           string `protobuf:"bytes,8,opt,name=role,proto3" json:"role,omitempty"`
	Department     string `protobuf:"bytes,9,opt,name=department,proto3" json:"department,omitempty"`
}

func (m *UserQuery) Reset()         { *m = UserQuery{} }
func (m *UserQuery) String() string { return format(m) }
func (*UserQuery) ProtoMessage()    {}

type UserData struct {
	Id          uint32   `protobuf:"varint,1,opt,name=id,proto3" json:"id,omitempty"`
	NationalId  string   `protobuf:"bytes,2,opt,name=national_id,json=nationalId,proto3" json:"national_id,omitempty"`
	Phone       string   `protobuf:"bytes,3,opt,name=phone,proto3" json:"phone,omitempty"`
	Email       string   `protobuf:"bytes,4,opt,name=email,proto3" json:"email,omitempty"`
	FirstName   string   `protobuf:"bytes,5,opt,name=first_name,json=firstName,proto3" json:"first_name,omitempty"`
	LastName    string   `protobuf:"bytes,6,opt,name=last_name,json=lastName,proto3" json:"last_name,omitempty"`
	Username    string   `protobuf:"bytes,7,opt,name=username,proto3" json:"username,omitempty"`
	Service     string   `protobuf:"bytes,8,opt,name=service,proto3" json:"service,omitempty"`
	SubServices []string `protobuf:"bytes,9,rep,name=sub_services,json=subServices,proto3" json:"sub_services,omitempty"`
	Roles       []string `protobuf:"bytes,10,rep,name=roles,proto3" json:"roles,omitempty"`
	Departments []string `protobuf:"bytes,11,rep,name=departments,proto3" json:"departments,omitempty"`
	Image       string   `protobuf:"bytes,12,opt,name=image,proto3" json:"image,omitempty"`
	IsVerified  bool     `protobuf:"varint,13,opt,name=is_verified,json=isVerified,proto3" json:"is_verified,omitempty"`
	IsStaff     bool     `protobuf:"varint,14,opt,name=is_staff,json=isStaff,proto3" json:"is_staff,omitempty"`
	IsSuperuser bool     `protobuf:"varint,15,opt,name=is_superuser,json=isSuperuser,proto3" json:"is_superuser,omitempty"`
}

func (m *UserData) Reset()         { *m = UserData{} }
func (m *UserData) String() string { return format(m) }
func (*UserData) ProtoMessage()    {}

type IDList struct {
	Values []uint32 `protobuf:"varint,1,rep,packed,name=values,proto3" json:"values,omitempty"`
}

func (m *IDList) Reset()         { *m = IDList{} }
func (m *IDList) String() string { return format(m) }
func (*IDList) ProtoMessage()    {}

type FilterUserResponse struct {
	// Keyed by criterion name, e.g. "user_id".
	Results map[string]*IDList `protobuf:"bytes,1,rep,name=results,proto3" json:"results,omitempty" protobuf_key:"bytes,1,opt,name=key,proto3" protobuf_val:"bytes,2,opt,name=value,proto3"`
}

func (m *FilterUserResponse) Reset()         { *m = FilterUserResponse{} }
func (m *FilterUserResponse) String() string { return format(m) }
func (*FilterUserResponse) ProtoMessage()    {}

type FilterUserSerializedResponse struct {
	Payload string `protobuf:"bytes,1,opt,name=payload,proto3" json:"payload,omitempty"`
}

func (m *FilterUserSerializedResponse) Reset()         { *m = FilterUserSerializedResponse{} }
func (m *FilterUserSerializedResponse) String() string { return format(m) }
func (*FilterUserSerializedResponse) ProtoMessage()    {}

type VerifyLoginRequest struct {
	ServiceName    string `protobuf:"bytes,1,opt,name=service_name,json=serviceName,proto3" json:"service_name,omitempty"`
	SubServiceName string `protobuf:"bytes,2,opt,name=sub_service_name,json=subServiceName,proto3" json:"sub_service_name,omitempty"`
	Token          string `protobuf:"bytes,3,opt,name=token,proto3" json:"token,omitempty"`
}

func (m *VerifyLoginRequest) Reset()         { *m = VerifyLoginRequest{} }
func (m *VerifyLoginRequest) String() string { return format(m) }
func (*VerifyLoginRequest) ProtoMessage()    {}

type VerifyLoginResponse struct {
	UserId uint32 `protobuf:"varint,1,opt,name=user_id,json=userId,proto3" json:"user_id,omitempty"`
}

func (m *VerifyLoginResponse) Reset()         { *m = VerifyLoginResponse{} }
func (m *VerifyLoginResponse) String() string { return format(m) }
func (*VerifyLoginResponse) ProtoMessage()    {}

// CreateUserRequest carries only the fields the caller explicitly set; a
// nil optional field means "no change", never "set to empty".
type CreateUserRequest struct {
	ServiceName    string   `protobuf:"bytes,1,opt,name=service_name,json=serviceName,proto3" json:"service_name,omitempty"`
	SubServiceName string   `protobuf:"bytes,2,opt,name=sub_service_name,json=subServiceName,proto3" json:"sub_service_name,omitempty"`
	NationalId     *string  `protobuf:"bytes,3,opt,name=national_id,json=nationalId,proto3,oneof" json:"national_id,omitempty"`
	Phone          *string  `protobuf:"bytes,4,opt,name=phone,proto3,oneof" json:"phone,omitempty"`
	Email          *string  `protobuf:"bytes,5,opt,name=email,proto3,oneof" json:"email,omitempty"`
	FirstName      *string  `protobuf:"bytes,6,opt,name=first_name,json=firstName,proto3,oneof" json:"first_name,omitempty"`
	LastName       *string  `protobuf:"bytes,7,opt,name=last_name,json=lastName,proto3,oneof" json:"last_name,omitempty"`
	Username       *string  `protobuf:"bytes,8,opt,name=username,proto3,oneof" json:"username,omitempty"`
	IsVerified     *bool    `protobuf:"varint,9,opt,name=is_verified,json=isVerified,proto3,oneof" json:"is_verified,omitempty"`
	Roles          []string `protobuf:"bytes,10,rep,name=roles,proto3" json:"roles,omitempty"`
	Departments    []string `protobuf:"bytes,11,rep,name=departments,proto3" json:"departments,omitempty"`
}

func (m *CreateUserRequest) Reset()         { *m = CreateUserRequest{} }
func (m *CreateUserRequest) String() string { return format(m) }
func (*CreateUserRequest) ProtoMessage()    {}

// UpdateUserRequest: see CreateUserRequest for unset-field semantics.
type UpdateUserRequest struct {
	ServiceName    string   `protobuf:"bytes,1,opt,name=service_name,json=serviceName,proto3" json:"service_name,omitempty"`
	SubServiceName string   `protobuf:"bytes,2,opt,name=sub_service_name,json=subServiceName,proto3" json:"sub_service_name,omitempty"`
	Id             uint32   `protobuf:"varint,3,opt,name=id,proto3" json:"id,omitempty"`
	NationalId     *string  `protobuf:"bytes,4,opt,name=national_id,json=nationalId,proto3,oneof" json:"national_id,omitempty"`
	Phone          *string  `protobuf:"bytes,5,opt,name=phone,proto3,oneof" json:"phone,omitempty"`
	Email          *string  `protobuf:"bytes,6,opt,name=email,proto3,oneof" json:"email,omitempty"`
	FirstName      *string  `protobuf:"bytes,7,opt,name=first_name,json=firstName,proto3,oneof" json:"first_name,omitempty"`
	LastName       *string  `protobuf:"bytes,8,opt,name=last_name,json=lastName,proto3,oneof" json:"last_name,omitempty"`
	Username       *string  `protobuf:"bytes,9,opt,name=username,proto3,oneof" json:"username,omitempty"`
	IsVerified     *bool    `protobuf:"varint,10,opt,name=is_verified,json=isVerified,proto3,oneof" json:"is_verified,omitempty"`
	Roles          []string `protobuf:"bytes,11,rep,name=roles,proto3" json:"roles,omitempty"`
	Departments    []string `protobuf:"bytes,12,rep,name=departments,proto3" json:"departments,omitempty"`
}

func (m *UpdateUserRequest) Reset()         { *m = UpdateUserRequest{} }
func (m *UpdateUserRequest) String() string { return format(m) }
func (*UpdateUserRequest) ProtoMessage()    {}

type VocabularyRequest struct {
	ServiceName    string `protobuf:"bytes,1,opt,name=service_name,json=serviceName,proto3" json:"service_name,omitempty"`
	SubServiceName string `protobuf:"bytes,2,opt,name=sub_service_name,json=subServiceName,proto3" json:"sub_service_name,omitempty"`
}

func (m *VocabularyRequest) Reset()         { *m = VocabularyRequest{} }
func (m *VocabularyRequest) String() string { return format(m) }
func (*VocabularyRequest) ProtoMessage()    {}

type RolesResponse struct {
	Roles []string `protobuf:"bytes,1,rep,name=roles,proto3" json:"roles,omitempty"`
}

func (m *RolesResponse) Reset()         { *m = RolesResponse{} }
func (m *RolesResponse) String() string { return format(m) }
func (*RolesResponse) ProtoMessage()    {}

type DepartmentsResponse struct {
	Departments []string `protobuf:"bytes,1,rep,name=departments,proto3" json:"departments,omitempty"`
}

func (m *DepartmentsResponse) Reset()         { *m = DepartmentsResponse{} }
func (m *DepartmentsResponse) String() string { return format(m) }
func (*DepartmentsResponse) ProtoMessage()    {}
