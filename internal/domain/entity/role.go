package entity

// Role identifies which profile variant, if any, a user carries.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RoleStaff   Role = "staff"
	RolePatient Role = "patient"
)

// Department scopes staff members; other roles carry none.
type Department string

const (
	DepartmentRegistration Department = "Registration"
	DepartmentPharmacy     Department = "Pharmacy"
	DepartmentLaboratory   Department = "Laboratory"
	DepartmentCashier      Department = "Cashier"
)

// Gender constants (L = male, P = female)
const (
	GenderMale   = "L"
	GenderFemale = "P"
)
