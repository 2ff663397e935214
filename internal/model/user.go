package model

import "time"

// Staff roles
const (
	RoleAdmin        = "admin"
	RoleDoctor       = "doctor"
	RoleReceptionist = "receptionist"
	RolePharmacist   = "pharmacist"
	RoleNurse        = "nurse"
)

var Roles = []string{RoleAdmin, RoleDoctor, RoleReceptionist, RolePharmacist, RoleNurse}

// User is a staff login. PasswordHash never leaves the server.
type User struct {
	ID            int64     `json:"id" db:"id"`
	Username      string    `json:"username" db:"username"`
	PasswordHash  string    `json:"-" db:"password"`
	Role          string    `json:"role" db:"role"`
	FullName      *string   `json:"full_name" db:"full_name"`
	Email         *string   `json:"email" db:"email"`
	Phone         *string   `json:"phone" db:"phone"`
	Address       *string   `json:"address,omitempty" db:"address"`
	BankName      *string   `json:"bank_name,omitempty" db:"bank_name"`
	BankAccountNo *string   `json:"bank_account_no,omitempty" db:"bank_account_no"`
	BankIFSC      *string   `json:"bank_ifsc,omitempty" db:"bank_ifsc"`
	AadhaarNumber *string   `json:"aadhaar_number,omitempty" db:"aadhaar_number"`
	Designation   *string   `json:"designation,omitempty" db:"designation"`
	IsVerified    bool      `json:"is_verified" db:"is_verified"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// UserSummary is the staff list row.
type UserSummary struct {
	ID        int64     `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Role      string    `json:"role" db:"role"`
	FullName  *string   `json:"full_name" db:"full_name"`
	Email     *string   `json:"email" db:"email"`
	Phone     *string   `json:"phone" db:"phone"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type CreateUserRequest struct {
	Username      string `json:"username"`
	Password      string `json:"password"`
	Role          string `json:"role"`
	FullName      string `json:"fullName"`
	Email         string `json:"email" binding:"omitempty,email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	BankName      string `json:"bankName"`
	BankAccountNo string `json:"bankAccountNo"`
	BankIFSC      string `json:"bankIfsc"`
	AadhaarNumber string `json:"aadhaarNumber"`
	Designation   string `json:"designation"`
}

func (r *CreateUserRequest) ToModel() *User {
	return &User{
		Username:      r.Username,
		Role:          r.Role,
		FullName:      StringPtr(r.FullName),
		Email:         StringPtr(r.Email),
		Phone:         StringPtr(r.Phone),
		Address:       StringPtr(r.Address),
		BankName:      StringPtr(r.BankName),
		BankAccountNo: StringPtr(r.BankAccountNo),
		BankIFSC:      StringPtr(r.BankIFSC),
		AadhaarNumber: StringPtr(r.AadhaarNumber),
		Designation:   StringPtr(r.Designation),
	}
}

// UpdateUserRequest is the profile update sent by the settings page. Omitted
// fields keep their stored value, a blank one clears it, and a blank password
// is left unchanged.
type UpdateUserRequest struct {
	FullName      *string `json:"full_name"`
	FullNameCamel *string `json:"fullName"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	Password      string  `json:"password"`
}

// Name prefers full_name over the camelCase alias.
func (r *UpdateUserRequest) Name() *string {
	if r.FullName != nil {
		return r.FullName
	}
	return r.FullNameCamel
}

type UserUpdate struct {
	ID           int64
	FullName     *string
	Email        *string
	Phone        *string
	PasswordHash *string
}

// ApplyTo merges the supplied fields over the stored profile.
func (r *UpdateUserRequest) ApplyTo(u *User) *UserUpdate {
	update := &UserUpdate{ID: u.ID, FullName: u.FullName, Email: u.Email, Phone: u.Phone}
	if name := r.Name(); name != nil {
		update.FullName = StringPtr(*name)
	}
	if r.Email != nil {
		update.Email = StringPtr(*r.Email)
	}
	if r.Phone != nil {
		update.Phone = StringPtr(*r.Phone)
	}
	return update
}
