package dto

import "github.com/RogueScr1be/fast-food-sub005/models"

type ReceiptImportBody struct {
	ImageBase64 string `json:"imageBase64"`
}

type ReceiptImportResponse struct {
	ReceiptImportId string `json:"receiptImportId"`
	Status          string `json:"status"`
}

func AdaptReceiptImportResponse(receipt models.ReceiptImport) ReceiptImportResponse {
	return ReceiptImportResponse{
		ReceiptImportId: receipt.Id,
		Status:          receipt.Status,
	}
}
