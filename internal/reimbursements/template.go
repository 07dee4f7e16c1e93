package reimbursements

import "context"

// TemplateSource supplies the spreadsheet-derived reference values shown to
// a claimant before they fill in their own.
type TemplateSource interface {
	Template(ctx context.Context) (Fields, error)
}

// StaticTemplate serves fixed sample values in place of a spreadsheet feed.
type StaticTemplate struct{}

func (StaticTemplate) Template(ctx context.Context) (Fields, error) {
	if err := ctx.Err(); err != nil {
		return Fields{}, err
	}
	return Fields{
		Basic: BasicInfo{
			CityCode:       Ptr("MUM001"),
			Name:           Ptr("John Doe"),
			State:          Ptr("Maharashtra"),
			CityAssigned:   Ptr("Mumbai"),
			Mobile:         Ptr("9876543210"),
			Email:          Ptr("john.doe@nta.gov.in"),
			NumExamCentres: Ptr(5),
		},
		Bank: BankDetails{
			BankName:          Ptr("State Bank of India"),
			IFSC:              Ptr("SBIN0001234"),
			BeneficiaryName:   Ptr("John Doe"),
			BankAccountNumber: Ptr("12345678901"),
		},
		Claims: ClaimAmounts{
			CityCoordinatorClaim:          Ptr(5000.0),
			AdminStaffClaim:               Ptr(3000.0),
			SupportStaffClaim:             Ptr(2000.0),
			RefreshmentClaim:              Ptr(1500.0),
			ObserverClaim:                 Ptr(4000.0),
			NumObservers:                  Ptr(3),
			ClaimDistrictPersonnel:        Ptr(2500.0),
			AssistantStaffDistrict:        Ptr(2000.0),
			SupportStaffDistrict:          Ptr(1800.0),
			ClaimPolicePersonnel:          Ptr(3000.0),
			SupportStaffPolice:            Ptr(2200.0),
			DutyMagistrateClaim:           Ptr(4500.0),
			NumDutyMagistrates:            Ptr(2),
			TeamLeaderClaim:               Ptr(3500.0),
			NumTeamLeaders:                Ptr(4),
			PoliceEscortClaim:             Ptr(2800.0),
			NumPoliceEscort:               Ptr(6),
			PoliceFriskingClaim:           Ptr(2600.0),
			NumPoliceFrisking:             Ptr(8),
			SecurityPersonnelClaim:        Ptr(3200.0),
			NumSecurityPersonnel:          Ptr(10),
			BankCustodianClaim:            Ptr(2400.0),
			DistrictEducationOfficerClaim: Ptr(5500.0),
			SupportStaffDEOClaim:          Ptr(2800.0),
		},
	}, nil
}
