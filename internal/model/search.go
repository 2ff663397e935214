package model

// SearchMinLength is measured in runes.
const (
	SearchMinLength = 2
	SearchLimit     = 5
)

type PatientHit struct {
	ID        int64  `json:"id" db:"id"`
	FirstName string `json:"first_name" db:"first_name"`
	LastName  string `json:"last_name" db:"last_name"`
	Phone     string `json:"phone" db:"phone"`
}

type DoctorHit struct {
	ID             int64  `json:"id" db:"id"`
	Name           string `json:"name" db:"name"`
	Specialization string `json:"specialization" db:"specialization"`
}

type MedicineHit struct {
	ID       int64   `json:"id" db:"id"`
	Name     string  `json:"name" db:"name"`
	Category *string `json:"category" db:"category"`
	Stock    int     `json:"stock" db:"stock"`
}

type SearchResult struct {
	Patients  []PatientHit  `json:"patients"`
	Doctors   []DoctorHit   `json:"doctors"`
	Medicines []MedicineHit `json:"medicines"`
}

// EmptySearchResult serializes every bucket as [] rather than null.
func EmptySearchResult() *SearchResult {
	return &SearchResult{
		Patients:  []PatientHit{},
		Doctors:   []DoctorHit{},
		Medicines: []MedicineHit{},
	}
}
