package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/klinikore/klinik-ledger/internal/core/domain"
)

// Turkish month names, indexed by time.Month - 1. The finance endpoints keep
// the operator-facing Turkish field names of the clinic UI.
var monthNamesTR = [12]string{
	"Ocak", "Şubat", "Mart", "Nisan", "Mayıs", "Haziran",
	"Temmuz", "Ağustos", "Eylül", "Ekim", "Kasım", "Aralık",
}

// SummaryParams defines query parameters for the finance summary.
type SummaryParams struct {
	DateFrom *time.Time `form:"date_from" time_format:"2006-01-02"`
	DateTo   *time.Time `form:"date_to" time_format:"2006-01-02"`
}

// SummaryResponse is the dashboard rollup.
type SummaryResponse struct {
	ToplamGelir          decimal.Decimal `json:"toplam_gelir"`
	ToplamGider          decimal.Decimal `json:"toplam_gider"`
	NetBakiye            decimal.Decimal `json:"net_bakiye"`
	BugunGelir           decimal.Decimal `json:"bugun_gelir"`
	BugunGider           decimal.Decimal `json:"bugun_gider"`
	BekleyenTahsilat     decimal.Decimal `json:"bekleyen_tahsilat"`
	VadesiGecmisIslemSay int             `json:"vadesi_gecmis_islem_sayisi"`
}

// DebtorsParams defines query parameters for the patient debtors list.
type DebtorsParams struct {
	MinDebt decimal.Decimal `form:"min_debt"`
}

// PatientDebtResponse is one row of the patient debtor list.
type PatientDebtResponse struct {
	HastaID    string          `json:"hasta_id"`
	HastaAdi   string          `json:"hasta_adi"`
	ToplamBorc decimal.Decimal `json:"toplam_borc"`
	ToplamOdem decimal.Decimal `json:"toplam_odeme"`
	Bakiye     decimal.Decimal `json:"bakiye"`
}

// CompanyDebtResponse is the outstanding payable toward one company.
type CompanyDebtResponse struct {
	CompanyID  string          `json:"id"`
	Name       string          `json:"name"`
	ToplamBorc decimal.Decimal `json:"toplam_borc"`
}

// MonthlySummaryParams defines query parameters for the monthly rollup.
type MonthlySummaryParams struct {
	MonthsBack int `form:"months,default=12"`
}

// MonthlySummaryResponse is one month's bucket.
type MonthlySummaryResponse struct {
	Yil   int             `json:"yil"`
	Ay    int             `json:"ay"`
	AyAdi string          `json:"ay_adi"`
	Gelir decimal.Decimal `json:"gelir"`
	Gider decimal.Decimal `json:"gider"`
	Net   decimal.Decimal `json:"net"`
}

// ToSummaryResponse converts a domain.FinanceSummary.
func ToSummaryResponse(s *domain.FinanceSummary) SummaryResponse {
	return SummaryResponse{
		ToplamGelir:          s.TotalIncome,
		ToplamGider:          s.TotalExpense,
		NetBakiye:            s.Net,
		BugunGelir:           s.TodayIncome,
		BugunGider:           s.TodayExpense,
		BekleyenTahsilat:     s.PendingDue,
		VadesiGecmisIslemSay: s.OverdueCount,
	}
}

// ToPatientDebtResponses converts domain patient debt rows.
func ToPatientDebtResponses(rows []domain.PatientDebt) []PatientDebtResponse {
	res := make([]PatientDebtResponse, len(rows))
	for i, r := range rows {
		res[i] = PatientDebtResponse{
			HastaID:    r.PatientID,
			HastaAdi:   r.PatientName,
			ToplamBorc: r.TotalBilled,
			ToplamOdem: r.TotalPaid,
			Bakiye:     r.Balance,
		}
	}
	return res
}

// ToCompanyDebtResponses converts domain company debt rows.
func ToCompanyDebtResponses(rows []domain.CompanyDebt) []CompanyDebtResponse {
	res := make([]CompanyDebtResponse, len(rows))
	for i, r := range rows {
		res[i] = CompanyDebtResponse{
			CompanyID:  r.CompanyID,
			Name:       r.CompanyName,
			ToplamBorc: r.TotalDebt,
		}
	}
	return res
}

// ToMonthlySummaryResponses converts domain monthly buckets.
func ToMonthlySummaryResponses(rows []domain.MonthlySummary) []MonthlySummaryResponse {
	res := make([]MonthlySummaryResponse, len(rows))
	for i, r := range rows {
		name := ""
		if r.Month >= 1 && r.Month <= 12 {
			name = monthNamesTR[r.Month-1]
		}
		res[i] = MonthlySummaryResponse{
			Yil:   r.Year,
			Ay:    r.Month,
			AyAdi: name,
			Gelir: r.Income,
			Gider: r.Expense,
			Net:   r.Net,
		}
	}
	return res
}
