package dto

import "github.com/radieske/betting-admin-dashboard/internal/dashboard/model"

type UserPage struct {
	Users []model.UserWithWager `json:"users"`
	PageInfo
}

type TransactionPage struct {
	Transactions []model.Transaction `json:"transactions"`
	PageInfo
}

type ErrorResponse struct {
	Error string `json:"error"`
}
