package domain

// Patient is the slice of patient identity the ledger needs: name resolution
// for debtor reports. Patient records themselves are owned by the clinical
// side of the system.
type Patient struct {
	PatientID string `json:"patientID"`
	FullName  string `json:"fullName"`
}
