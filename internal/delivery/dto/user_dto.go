package dto

// Admin-only account provisioning payloads. Each creates the user row plus
// the matching profile row in one transaction.

type CreateDoctorUserRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=50"`
	Password    string `json:"password" validate:"required,min=6"`
	FullName    string `json:"full_name" validate:"required,min=2"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,min=10,max=20"`
	Specialty   string `json:"specialty" validate:"omitempty,max=100"`
	SIPNumber   string `json:"sip_number" validate:"omitempty,max=50"`
	STRNumber   string `json:"str_number" validate:"omitempty,max=50"`
}

type CreateStaffUserRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=50"`
	Password    string `json:"password" validate:"required,min=6"`
	FullName    string `json:"full_name" validate:"required,min=2"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,min=10,max=20"`
	Department  string `json:"department" validate:"required,oneof=Registration Pharmacy Laboratory Cashier"`
}

type CreatePatientUserRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=50"`
	Password    string `json:"password" validate:"required,min=6"`
	FullName    string `json:"full_name" validate:"required,min=2"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,min=10,max=20"`
	NIK         string `json:"nik" validate:"required,len=16"`
	DateOfBirth string `json:"date_of_birth" validate:"required"` // Format: YYYY-MM-DD
	Gender      string `json:"gender" validate:"required,oneof=L P"`
	BloodType   string `json:"blood_type" validate:"omitempty,max=3"`
	BPJSNumber  string `json:"bpjs_number" validate:"omitempty,max=20"`
	Address     string `json:"address" validate:"omitempty"`
}
