package handler

import (
	"github.com/alirk24/sejam-porfiling/internal/profile/models"
	"github.com/alirk24/sejam-porfiling/internal/profile/service"
)

// PrivatePersonResponse is the flattened record returned for natural
// persons. Key casing is part of the legacy contract consumers parse.
type PrivatePersonResponse struct {
	UniqueIdentifier  string `json:"uniqueIdentifier"`
	Type              string `json:"type"`
	FirstName         string `json:"firstName"`
	LastName          string `json:"lastName"`
	FatherName        string `json:"fatherName"`
	Gender            string `json:"gender"`
	BirthDate         string `json:"birthDate"`
	PlaceOfBirth      string `json:"placeOfBirth"`
	PlaceOfIssue      string `json:"placeOfIssue"`
	Mobile            string `json:"mobile"`
	Email             string `json:"email"`
	TradeCode         string `json:"tradeCode"`
	Sheba             string `json:"sheba"`
	BankName          string `json:"bank_name"`
	BankBranchCode    string `json:"bank_branchCode"`
	BankBranchName    string `json:"bank_branchName"`
	BankBranchCity    string `json:"bank_branchCity"`
	BankAccountNumber string `json:"bank_accountNumber"`
}

// ShareholderView is one entry of a legal person's shareHolders map.
type ShareholderView struct {
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	Position string `json:"position"`
}

// LegalPersonResponse is the flattened record returned for companies.
// Shareholders are keyed by their own unique identifier.
type LegalPersonResponse struct {
	UniqueIdentifier  string                     `json:"uniqueIdentifier"`
	Type              string                     `json:"type"`
	CompanyName       string                     `json:"companyName"`
	EconomicCode      string                     `json:"economicCode"`
	RegisterDate      string                     `json:"registerDate"`
	RegisterPlace     string                     `json:"registerPlace"`
	RegisterNumber    string                     `json:"registerNumber"`
	Mobile            string                     `json:"mobile"`
	Email             string                     `json:"email"`
	TradeCode         string                     `json:"tradeCode"`
	Sheba             string                     `json:"sheba"`
	BankName          string                     `json:"bank_name"`
	BankBranchCode    string                     `json:"bank_branchCode"`
	BankBranchName    string                     `json:"bank_branchName"`
	BankBranchCity    string                     `json:"bank_branchCity"`
	BankAccountNumber string                     `json:"bank_accountNumber"`
	Shareholders      map[string]ShareholderView `json:"shareHolders"`
}

// ErrorResponse is the generic error body. The raw failure detail never
// leaves the gateway; it lives in the error log only.
type ErrorResponse struct {
	Error string `json:"error"`
}

func toPrivateResponse(p *models.Profile) *PrivatePersonResponse {
	return &PrivatePersonResponse{
		UniqueIdentifier:  p.UniqueIdentifier,
		Type:              string(p.Kind),
		FirstName:         p.FirstName,
		LastName:          p.LastName,
		FatherName:        p.FatherName,
		Gender:            p.Gender,
		BirthDate:         p.BirthDate,
		PlaceOfBirth:      p.PlaceOfBirth,
		PlaceOfIssue:      p.PlaceOfIssue,
		Mobile:            p.Mobile,
		Email:             p.Email,
		TradeCode:         p.TradeCode,
		Sheba:             p.Sheba,
		BankName:          p.BankName,
		BankBranchCode:    p.BankBranchCode,
		BankBranchName:    p.BankBranchName,
		BankBranchCity:    p.BankBranchCity,
		BankAccountNumber: p.BankAccountNumber,
	}
}

func toLegalResponse(v *service.VerifiedProfile) *LegalPersonResponse {
	p := &v.Profile
	shareholders := make(map[string]ShareholderView, len(v.Shareholders))
	for _, sh := range v.Shareholders {
		shareholders[sh.UniqueIdentifier] = ShareholderView{
			Name:     sh.FirstName,
			LastName: sh.LastName,
			Position: sh.Position,
		}
	}
	return &LegalPersonResponse{
		UniqueIdentifier:  p.UniqueIdentifier,
		Type:              string(p.Kind),
		CompanyName:       p.CompanyName,
		EconomicCode:      p.EconomicCode,
		RegisterDate:      p.RegisterDate,
		RegisterPlace:     p.RegisterPlace,
		RegisterNumber:    p.RegisterNumber,
		Mobile:            p.Mobile,
		Email:             p.Email,
		TradeCode:         p.TradeCode,
		Sheba:             p.Sheba,
		BankName:          p.BankName,
		BankBranchCode:    p.BankBranchCode,
		BankBranchName:    p.BankBranchName,
		BankBranchCity:    p.BankBranchCity,
		BankAccountNumber: p.BankAccountNumber,
		Shareholders:      shareholders,
	}
}
