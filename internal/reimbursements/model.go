package reimbursements

import "time"

// Record is one reimbursement claim. Reference holds the spreadsheet-sourced
// values (the *_excel columns) and is only populated by seeding; Submitted holds
// the claimant's values (the *_user columns). The two are never merged.
type Record struct {
	ID                      string
	SNo                     *int
	Reference               Fields
	Submitted               Fields
	SupportingDocumentBills *string
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// Fields is one column of a record. A nil pointer means the value is unset.
type Fields struct {
	Basic  BasicInfo
	Bank   BankDetails
	Claims ClaimAmounts
}

// BasicInfo identifies the assignee and their posting.
type BasicInfo struct {
	CityCode       *string
	Name           *string
	State          *string
	CityAssigned   *string
	Mobile         *string
	Email          *string
	NumExamCentres *int
}

// BankDetails is where the reimbursement is paid.
type BankDetails struct {
	BankName          *string
	IFSC              *string
	BeneficiaryName   *string
	BankAccountNumber *string
}

// ClaimAmounts lists per-category claim amounts and headcounts.
type ClaimAmounts struct {
	CityCoordinatorClaim          *float64
	AdminStaffClaim               *float64
	SupportStaffClaim             *float64
	RefreshmentClaim              *float64
	ObserverClaim                 *float64
	NumObservers                  *int
	ClaimDistrictPersonnel        *float64
	AssistantStaffDistrict        *float64
	SupportStaffDistrict          *float64
	ClaimPolicePersonnel          *float64
	SupportStaffPolice            *float64
	DutyMagistrateClaim           *float64
	NumDutyMagistrates            *int
	TeamLeaderClaim               *float64
	NumTeamLeaders                *int
	PoliceEscortClaim             *float64
	NumPoliceEscort               *int
	PoliceFriskingClaim           *float64
	NumPoliceFrisking             *int
	SecurityPersonnelClaim        *float64
	NumSecurityPersonnel          *int
	BankCustodianClaim            *float64
	DistrictEducationOfficerClaim *float64
	SupportStaffDEOClaim          *float64
}

// Clone returns a deep copy of r.
func (r Record) Clone() Record {
	out := Record{
		ID:        r.ID,
		SNo:       clonePtr(r.SNo),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	out.SupportingDocumentBills = clonePtr(r.SupportingDocumentBills)
	for _, f := range fieldDefs {
		f.set(&out.Reference, f.get(&r.Reference))
		f.set(&out.Submitted, f.get(&r.Submitted))
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Ptr returns a pointer to v. Handy when building Fields literals.
func Ptr[T any](v T) *T {
	return &v
}
