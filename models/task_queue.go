package models

// River job argument types. They live in models so that both the enqueueing
// repositories and the workers can reference them without an import cycle.

type SessionPruneJobArgs struct{}

func (SessionPruneJobArgs) Kind() string { return "session_prune" }

type ReceiptOcrJobArgs struct {
	ReceiptImportId string `json:"receipt_import_id"`
	HouseholdKey    string `json:"household_key"`
	ImageBase64     string `json:"image_base64"`
}

func (ReceiptOcrJobArgs) Kind() string { return "receipt_ocr" }

// ReceiptImport is the decision endpoint's acknowledgement of a receipt
// upload. Status is "queued" when an OCR job was enqueued and "stored" when
// the image was only recorded (OCR disabled or enqueueing failed).
type ReceiptImport struct {
	Id     string
	Status string
}

const (
	ReceiptStatusQueued = "queued"
	ReceiptStatusStored = "stored"
)

// ReceiptOcrResult is what the OCR collaborator extracted from a receipt
// image. It feeds taste scoring, not the decision path.
type ReceiptOcrResult struct {
	Merchant string
	Total    string
	Items    []string
}
