package main

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"nta-reimbursement/internal/reimbursements"
)

type sampleAssignee struct {
	cityCode string
	name     string
	state    string
	city     string
	mobile   string
	email    string
	centres  int
	bank     string
	ifsc     string
	account  string
}

var sampleAssignees = []sampleAssignee{
	{"NTA001", "Rajesh Kumar", "Delhi", "New Delhi", "9876543210", "rajesh.kumar@nta.gov.in", 5, "State Bank of India", "SBIN0001234", "12345678901"},
	{"NTA002", "Priya Sharma", "Maharashtra", "Mumbai", "9876543211", "priya.sharma@nta.gov.in", 8, "HDFC Bank", "HDFC0001234", "12345678902"},
	{"NTA003", "Suresh Patel", "Gujarat", "Ahmedabad", "9876543212", "suresh.patel@nta.gov.in", 6, "Bank of Baroda", "BARB0001234", "12345678903"},
	{"NTA004", "Lakshmi Nair", "Kerala", "Kochi", "9876543213", "lakshmi.nair@nta.gov.in", 4, "Canara Bank", "CNRB0001234", "12345678904"},
	{"NTA005", "Anil Singh", "Uttar Pradesh", "Lucknow", "9876543214", "anil.singh@nta.gov.in", 7, "Punjab National Bank", "PUNB0001234", "12345678905"},
}

// sampleRecords builds one record per sample assignee with only the
// reference columns populated.
func sampleRecords() []reimbursements.Record {
	now := time.Now().UTC().Truncate(time.Millisecond)
	out := make([]reimbursements.Record, 0, len(sampleAssignees))
	for i, a := range sampleAssignees {
		out = append(out, reimbursements.Record{
			ID:  uuid.NewString(),
			SNo: reimbursements.Ptr(i + 1),
			Reference: reimbursements.Fields{
				Basic: reimbursements.BasicInfo{
					CityCode:       reimbursements.Ptr(a.cityCode),
					Name:           reimbursements.Ptr(a.name),
					State:          reimbursements.Ptr(a.state),
					CityAssigned:   reimbursements.Ptr(a.city),
					Mobile:         reimbursements.Ptr(a.mobile),
					Email:          reimbursements.Ptr(a.email),
					NumExamCentres: reimbursements.Ptr(a.centres),
				},
				Bank: reimbursements.BankDetails{
					BankName:          reimbursements.Ptr(a.bank),
					IFSC:              reimbursements.Ptr(a.ifsc),
					BeneficiaryName:   reimbursements.Ptr(a.name),
					BankAccountNumber: reimbursements.Ptr(a.account),
				},
			},
			// Spread creation times so listing order follows sno.
			CreatedAt: now.Add(time.Duration(i) * time.Millisecond),
			UpdatedAt: now.Add(time.Duration(i) * time.Millisecond),
		})
	}
	return out
}

type seedResult struct {
	Removed  int64
	Inserted int
	Cities   []string
}

// seedRecords replaces every stored record with recs.
func seedRecords(ctx context.Context, repo reimbursements.Repo, recs []reimbursements.Record) (seedResult, error) {
	removed, err := repo.DeleteAll(ctx)
	if err != nil {
		return seedResult{}, fmt.Errorf("clear records: %w", err)
	}

	res := seedResult{Removed: removed}
	cities := map[string]struct{}{}
	for _, rec := range recs {
		if err := repo.Create(ctx, rec); err != nil {
			return res, fmt.Errorf("insert record %s: %w", rec.ID, err)
		}
		res.Inserted++
		if c := rec.Reference.Basic.CityAssigned; c != nil {
			cities[*c] = struct{}{}
		}
	}
	for c := range cities {
		res.Cities = append(res.Cities, c)
	}
	sort.Strings(res.Cities)
	return res, nil
}
